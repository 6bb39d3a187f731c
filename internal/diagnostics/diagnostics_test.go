package diagnostics

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/regionck/internal/config"
	"github.com/funvibe/regionck/internal/token"
)

func sampleError() *DiagnosticError {
	def := token.Token{File: "a.fx", Line: 1, Column: 1}
	lam := token.Token{File: "a.fx", Line: 2, Column: 11}
	ref := token.Token{File: "a.fx", Line: 2, Column: 17}
	return NewError(ErrR003, def, config.MsgDefinitionEscape, "f").WithTrace(Trace{
		{Token: lam, Message: "The function 'p' closes over 'cap'", Children: Trace{
			{Token: ref, Message: "'cap' is used here"},
		}},
	})
}

func TestErrorString(t *testing.T) {
	err := sampleError()
	if got, want := err.Error(), "a.fx:1:1: R003: A value introduced in 'f' leaves its scope"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if err.Trace.Len() != 2 {
		t.Errorf("Trace.Len() = %d, want 2", err.Trace.Len())
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewError(ErrR005, token.Token{}, config.MsgInternal, "x").Wrap(cause)
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is must see the wrapped cause")
	}
}

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(&buf, config.ColorNever).Render(sampleError()); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"a.fx:1:1: R003: A value introduced in 'f' leaves its scope",
		"  - a.fx:2:11: The function 'p' closes over 'cap'",
		"    - a.fx:2:17: 'cap' is used here",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderColor(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(&buf, config.ColorAlways).Render(sampleError()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), ansiRed) {
		t.Errorf("color mode always must emit escapes: %q", buf.String())
	}

	buf.Reset()
	// a buffer is never a terminal
	if err := NewRenderer(&buf, config.ColorAuto).Render(sampleError()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("auto mode must not color a non-terminal writer: %q", buf.String())
	}
}

func TestRenderTestModeIsPlain(t *testing.T) {
	config.IsTestMode = true
	defer func() { config.IsTestMode = false }()

	var buf bytes.Buffer
	if err := NewRenderer(&buf, config.ColorAlways).Render(sampleError()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("test mode must not emit escapes: %q", buf.String())
	}
}

func TestRenderForeignError(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(&buf, config.ColorNever).Render(errors.New("plain")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "plain\n" {
		t.Errorf("Render = %q", buf.String())
	}
}

func TestEmptyTraceRendersBareMessage(t *testing.T) {
	err := NewError(ErrR004, token.Token{Line: 3, Column: 1}, config.MsgHandlerEscape, "'exc'")
	var buf bytes.Buffer
	if rerr := NewRenderer(&buf, config.ColorNever).Render(err); rerr != nil {
		t.Fatal(rerr)
	}
	if got, want := buf.String(), "3:1: R004: The capability 'exc' leaves the scope of its handler\n"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}
