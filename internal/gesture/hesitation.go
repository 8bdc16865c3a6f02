package gesture

import (
	"github.com/xkilldash9x/humanswipe/api/schemas"
	"github.com/xkilldash9x/humanswipe/internal/config"
)

// HesitationKind tags the outcome of the hesitation coin flip.
type HesitationKind int

const (
	HesitationSkipped HesitationKind = iota
	HesitationInserted
)

func (k HesitationKind) String() string {
	if k == HesitationInserted {
		return "inserted"
	}
	return "skipped"
}

// HesitationOutcome records whether a correction wobble was added and where.
// Index is the position of the anchor point; the wobble occupies Index+1 and Index+2.
type HesitationOutcome struct {
	Kind  HesitationKind
	Index int
}

// DecideHesitation flips the weighted coin for a path of pathLen points. Paths
// shorter than cfg.HesitationMinPathLen are always skipped. The anchor sits at
// either the first or the second third of the path with equal odds.
func DecideHesitation(src Source, cfg config.GestureConfig, pathLen int) HesitationOutcome {
	if src.Float64() >= cfg.HesitationProbability || pathLen < cfg.HesitationMinPathLen {
		return HesitationOutcome{Kind: HesitationSkipped, Index: -1}
	}
	idx := pathLen / 3
	if src.Float64() >= 0.5 {
		idx = pathLen * 2 / 3
	}
	return HesitationOutcome{Kind: HesitationInserted, Index: idx}
}

// InsertHesitation returns a copy of path with a pull-back point and a
// push-forward point placed right after path[idx].
func InsertHesitation(src Source, cfg config.GestureConfig, path schemas.Path, idx int) schemas.Path {
	anchor := FromPoint(path[idx])
	back := Vector2D{
		X: anchor.X - Gaussian(src, cfg.HesitationMinorMean, cfg.HesitationMinorStdDev),
		Y: anchor.Y - Gaussian(src, cfg.HesitationMajorMean, cfg.HesitationMajorStdDev),
	}
	forward := Vector2D{
		X: anchor.X + Gaussian(src, cfg.HesitationMajorMean, cfg.HesitationMajorStdDev),
		Y: anchor.Y + Gaussian(src, cfg.HesitationMinorMean, cfg.HesitationMinorStdDev),
	}

	out := make(schemas.Path, 0, len(path)+2)
	out = append(out, path[:idx+1]...)
	out = append(out, back.Round(), forward.Round())
	out = append(out, path[idx+1:]...)
	return out
}

// MaybeInsertHesitation applies DecideHesitation and, when it fires, InsertHesitation.
// A skipped outcome returns path itself.
func MaybeInsertHesitation(src Source, cfg config.GestureConfig, path schemas.Path) (schemas.Path, HesitationOutcome) {
	outcome := DecideHesitation(src, cfg, len(path))
	if outcome.Kind == HesitationSkipped {
		return path, outcome
	}
	return InsertHesitation(src, cfg, path, outcome.Index), outcome
}
