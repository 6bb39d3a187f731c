package checker

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/funvibe/regionck/internal/config"
	"github.com/funvibe/regionck/internal/pipeline"
)

func TestProcessorPublishesAnnotations(t *testing.T) {
	bf := buildBlockCall(false)
	ctx := pipeline.NewPipelineContext(context.Background(), bf.module, bf.syms, bf.table)

	out := pipeline.New(&RegionCheckerProcessor{}).Run(ctx)
	if len(out.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", out.Errors)
	}
	if out.Annotations == nil || out.Annotations.NodeCount() == 0 {
		t.Fatalf("annotations were not published")
	}
	if out.RunID == uuid.Nil {
		t.Errorf("run id was not set")
	}
}

func TestProcessorStopsOnEscape(t *testing.T) {
	bf := buildBlockCall(true)
	ctx := pipeline.NewPipelineContext(context.Background(), bf.module, bf.syms, bf.table)

	out := pipeline.New(&RegionCheckerProcessor{}).Run(ctx)
	if len(out.Errors) != 1 {
		t.Fatalf("expected one error, got %v", out.Errors)
	}
	expectDiagnostic(t, out.Errors[0], "R004")
	if out.Annotations != nil {
		t.Errorf("a rejected unit must not publish annotations")
	}
}

func TestProcessorSkipsFailedUnit(t *testing.T) {
	bf := buildBlockCall(false)
	ctx := pipeline.NewPipelineContext(context.Background(), bf.module, bf.syms, bf.table)
	earlier := errors.New("type error")
	ctx.Errors = append(ctx.Errors, earlier)

	out := (&RegionCheckerProcessor{}).Process(ctx)
	if len(out.Errors) != 1 || out.Errors[0] != earlier {
		t.Errorf("errors = %v", out.Errors)
	}
	if out.Annotations != nil {
		t.Errorf("checker ran on a failed unit")
	}
}

func TestProcessorRendersRejectedUnit(t *testing.T) {
	tests := []struct {
		name  string
		color string
		want  string
	}{
		{
			name:  "plain",
			color: config.ColorNever,
			want: "d.fx:2:3: R004: The capability 'exc' leaves the scope of its handler\n" +
				"  - d.fx:5:10: 'exc' reaches the result of this handler:\n" +
				"    - d.fx:3:9: This block closes over 'exc'\n" +
				"      - d.fx:3:11: 'exc' is used here\n",
		},
		{
			name:  "colored",
			color: config.ColorAlways,
			want:  "\x1b[1m\x1b[31mR004\x1b[0m",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bf := buildBlockCall(true)
			ctx := pipeline.NewPipelineContext(context.Background(), bf.module, bf.syms, bf.table)
			ctx.Options.Render.Color = tt.color
			var buf bytes.Buffer
			ctx.Diagnostics = &buf

			out := pipeline.New(&RegionCheckerProcessor{}).Run(ctx)
			if len(out.Errors) != 1 {
				t.Fatalf("expected one error, got %v", out.Errors)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("rendered:\n%q\nwant it to contain:\n%q", buf.String(), tt.want)
			}
		})
	}
}

func TestProcessorIsSilentOnSuccess(t *testing.T) {
	bf := buildBlockCall(false)
	ctx := pipeline.NewPipelineContext(context.Background(), bf.module, bf.syms, bf.table)
	var buf bytes.Buffer
	ctx.Diagnostics = &buf

	if out := pipeline.New(&RegionCheckerProcessor{}).Run(ctx); len(out.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", out.Errors)
	}
	if buf.Len() != 0 {
		t.Errorf("rendered %q for an accepted unit", buf.String())
	}
}
