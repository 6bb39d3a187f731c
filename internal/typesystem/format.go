package typesystem

import (
	"fmt"
	"strings"

	"github.com/funvibe/regionck/internal/regions"
)

// FormatRegions renders t like String, but with resolved region slots
// replaced by their sets and each region printed through name.
func FormatRegions(t Type, table *regions.Table, name func(regions.Region) string) string {
	if t == nil {
		return "Unit"
	}
	switch typ := t.(type) {
	case TApp:
		args := []string{}
		for _, arg := range typ.Args {
			args = append(args, FormatRegions(arg, table, name))
		}
		if len(args) == 0 {
			return FormatRegions(typ.Constructor, table, name)
		}
		return fmt.Sprintf("%s<%s>", FormatRegions(typ.Constructor, table, name), strings.Join(args, ", "))
	case TTuple:
		args := []string{}
		for _, el := range typ.Elements {
			args = append(args, FormatRegions(el, table, name))
		}
		return fmt.Sprintf("(%s)", strings.Join(args, ", "))
	case TFunc:
		params := []string{}
		for _, p := range typ.Params {
			params = append(params, FormatRegions(p, table, name))
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "(%s)", strings.Join(params, ", "))
		for _, b := range typ.Blocks {
			fmt.Fprintf(&sb, " {%s}", FormatRegions(b, table, name))
		}
		fmt.Fprintf(&sb, " => %s", FormatRegions(typ.ReturnType, table, name))
		if typ.Capture != nil {
			if set, ok := table.Concrete(typ.Capture); ok {
				fmt.Fprintf(&sb, " at %s", set.Format(name))
			} else {
				fmt.Fprintf(&sb, " at %s", typ.Capture.String())
			}
		}
		return sb.String()
	default:
		return t.String()
	}
}
