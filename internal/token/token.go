package token

import "fmt"

// Token is the source anchor the parser leaves on every node.
// The region checker only reads positions and the lexeme for messages.
type Token struct {
	Lexeme string
	File   string
	Line   int
	Column int
}

// IsValid reports whether the token carries a real source position.
func (t Token) IsValid() bool {
	return t.Line > 0
}

// Position renders the token position as file:line:col.
// Missing parts are dropped so synthesized nodes still print sensibly.
func (t Token) Position() string {
	if !t.IsValid() {
		if t.File != "" {
			return t.File
		}
		return "-"
	}
	if t.File == "" {
		return fmt.Sprintf("%d:%d", t.Line, t.Column)
	}
	return fmt.Sprintf("%s:%d:%d", t.File, t.Line, t.Column)
}

func (t Token) String() string {
	if t.Lexeme == "" {
		return t.Position()
	}
	return fmt.Sprintf("%s %q", t.Position(), t.Lexeme)
}
