package diagnostics

import (
	"strings"

	"github.com/funvibe/regionck/internal/token"
)

// TraceItem names one sub-expression responsible for a leak, with the items
// that explain it in turn.
type TraceItem struct {
	Token    token.Token
	Message  string
	Children Trace
}

// Trace is an ordered provenance trace.
type Trace []TraceItem

// Len returns the number of items in the trace, nested ones included.
func (t Trace) Len() int {
	n := 0
	for _, item := range t {
		n += 1 + item.Children.Len()
	}
	return n
}

// String renders the trace as an indented list without colors.
func (t Trace) String() string {
	var sb strings.Builder
	writeTrace(&sb, t, 0, plainStyle)
	return sb.String()
}

func writeTrace(sb *strings.Builder, t Trace, depth int, st style) {
	for _, item := range t {
		sb.WriteString(strings.Repeat("  ", depth+1))
		sb.WriteString("- ")
		sb.WriteString(st.pos(item.Token.Position()))
		sb.WriteString(": ")
		sb.WriteString(item.Message)
		sb.WriteByte('\n')
		writeTrace(sb, item.Children, depth+1, st)
	}
}
