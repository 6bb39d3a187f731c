package pipeline

import (
	"context"
	"errors"
	"testing"
)

type recorder struct {
	name string
	seen *[]string
	fail bool
}

func (r *recorder) Process(ctx *PipelineContext) *PipelineContext {
	*r.seen = append(*r.seen, r.name)
	if r.fail {
		ctx.Errors = append(ctx.Errors, errors.New(r.name+" failed"))
	}
	return ctx
}

func TestRunStopsAtFirstFailingStage(t *testing.T) {
	tests := []struct {
		name   string
		failAt int // -1: no stage fails
		want   []string
	}{
		{name: "all stages run", failAt: -1, want: []string{"a", "b", "c"}},
		{name: "stops after failure", failAt: 1, want: []string{"a", "b"}},
		{name: "first stage fails", failAt: 0, want: []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen []string
			var stages []Processor
			for i, name := range []string{"a", "b", "c"} {
				stages = append(stages, &recorder{name: name, seen: &seen, fail: i == tt.failAt})
			}
			ctx := New(stages...).Run(NewPipelineContext(context.Background(), nil, nil, nil))
			if len(seen) != len(tt.want) {
				t.Fatalf("ran %v, want %v", seen, tt.want)
			}
			for i := range seen {
				if seen[i] != tt.want[i] {
					t.Errorf("ran %v, want %v", seen, tt.want)
				}
			}
			if failed := tt.failAt >= 0; failed != (len(ctx.Errors) > 0) {
				t.Errorf("errors = %v", ctx.Errors)
			}
		})
	}
}

func TestNewPipelineContextDefaults(t *testing.T) {
	ctx := NewPipelineContext(context.Background(), nil, nil, nil)
	if ctx.Options == nil {
		t.Fatalf("options must default")
	}
	if !ctx.Options.ExplainEnabled() {
		t.Errorf("explanations are on by default")
	}
}
