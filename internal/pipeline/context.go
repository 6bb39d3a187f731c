package pipeline

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/funvibe/regionck/internal/annotations"
	"github.com/funvibe/regionck/internal/ast"
	"github.com/funvibe/regionck/internal/config"
	"github.com/funvibe/regionck/internal/regions"
	"github.com/funvibe/regionck/internal/symbols"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries one compilation unit through the stages.
type PipelineContext struct {
	Context context.Context

	FilePath    string
	Module      *ast.Module
	SymbolTable *symbols.SymbolTable
	Regions     *regions.Table // region slots created by the type checker
	Options     *config.Options

	// Diagnostics of a rejected unit are rendered here when set, colored
	// according to Options.Render.Color.
	Diagnostics io.Writer

	// Filled in by the region checker.
	RunID       uuid.UUID
	Annotations *annotations.Store

	Errors []error
}

// NewPipelineContext prepares a context for a resolved and type-checked module.
func NewPipelineContext(ctx context.Context, module *ast.Module, syms *symbols.SymbolTable, table *regions.Table) *PipelineContext {
	return &PipelineContext{
		Context:     ctx,
		Module:      module,
		SymbolTable: syms,
		Regions:     table,
		Options:     config.DefaultOptions(),
	}
}
