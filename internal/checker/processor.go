package checker

import (
	"github.com/funvibe/regionck/internal/diagnostics"
	"github.com/funvibe/regionck/internal/pipeline"
)

// RegionCheckerProcessor runs the region checker as a pipeline stage.
type RegionCheckerProcessor struct{}

func (p *RegionCheckerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Module == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	result, err := New(ctx.SymbolTable, ctx.Regions, ctx.Options).Check(ctx.Module)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		if ctx.Diagnostics != nil {
			if rerr := diagnostics.NewRenderer(ctx.Diagnostics, ctx.Options.Render.Color).Render(err); rerr != nil {
				log.Warningf("cannot render diagnostic: %s", rerr)
			}
		}
		return ctx
	}

	ctx.RunID = result.RunID             // Correlates log lines and exported records
	ctx.Annotations = result.Annotations // Read by later passes
	return ctx
}
