package exports

import (
	"context"
	"fmt"

	"github.com/funvibe/regionck/internal/pipeline"
)

// ExportProcessor records the exported signatures of a checked unit when an
// export database is configured.
type ExportProcessor struct{}

func (p *ExportProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(ctx.Errors) > 0 || ctx.Annotations == nil || ctx.Module == nil {
		return ctx
	}
	if ctx.Options == nil || ctx.Options.Exports.Database == "" {
		return ctx
	}

	store, err := Open(ctx.Options.Exports.Database)
	if err != nil {
		ctx.Errors = append(ctx.Errors, fmt.Errorf("exports: %w", err))
		return ctx
	}
	defer store.Close()

	goCtx := ctx.Context
	if goCtx == nil {
		goCtx = context.Background()
	}
	sigs := Collect(ctx.Module.Name, ctx.SymbolTable, ctx.Annotations, ctx.RunID)
	if err := store.Save(goCtx, sigs); err != nil {
		ctx.Errors = append(ctx.Errors, fmt.Errorf("exports: %w", err))
	}
	return ctx
}
