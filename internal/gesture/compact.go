package gesture

import "github.com/xkilldash9x/humanswipe/api/schemas"

// Compact drops every point equal to its immediate predecessor. Rounding nearby
// samples to whole pixels produces such repeats, mostly at the slow ends of the curve.
// The input is not modified.
func Compact(path schemas.Path) schemas.Path {
	if len(path) == 0 {
		return schemas.Path{}
	}
	out := make(schemas.Path, 0, len(path))
	out = append(out, path[0])
	for _, pt := range path[1:] {
		if pt != out[len(out)-1] {
			out = append(out, pt)
		}
	}
	return out
}
