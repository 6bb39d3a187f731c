package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/regionck/internal/config"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiDim   = "\x1b[2m"
)

type style struct {
	color bool
}

var plainStyle = style{}

func (s style) wrap(code, text string) string {
	if !s.color {
		return text
	}
	return code + text + ansiReset
}

func (s style) pos(text string) string  { return s.wrap(ansiDim, text) }
func (s style) code(text string) string { return s.wrap(ansiBold+ansiRed, text) }

// Renderer prints diagnostics with their traces.
type Renderer struct {
	w     io.Writer
	style style
}

// NewRenderer creates a renderer for w. In auto mode colors are used only
// when w is a terminal. Test mode never colors.
func NewRenderer(w io.Writer, colorMode string) *Renderer {
	return &Renderer{w: w, style: style{color: useColor(w, colorMode)}}
}

func useColor(w io.Writer, mode string) bool {
	if config.IsTestMode {
		return false
	}
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render writes err. Errors that are not diagnostics are printed as they are.
func (r *Renderer) Render(err error) error {
	de, ok := err.(*DiagnosticError)
	if !ok {
		_, werr := fmt.Fprintln(r.w, err)
		return werr
	}
	var sb strings.Builder
	sb.WriteString(r.style.pos(de.Token.Position()))
	sb.WriteString(": ")
	sb.WriteString(r.style.code(string(de.Code)))
	sb.WriteString(": ")
	sb.WriteString(de.Message)
	sb.WriteByte('\n')
	writeTrace(&sb, de.Trace, 0, r.style)
	_, werr := io.WriteString(r.w, sb.String())
	return werr
}
