package scorer

import (
	"fmt"

	"github.com/vradovic/fakebench/internal/bench/spec"
)

// CreateFromSpec builds one scorer per spec model, plus a cleanup closing
// all of them.
func CreateFromSpec(models map[string]spec.Model) (map[string]Scorer, func(), error) {
	scorers := make(map[string]Scorer, len(models))

	cleanup := func() {
		for _, s := range scorers {
			_ = s.Close()
		}
	}

	for name, m := range models {
		switch m.Type {
		case "csv":
			s, err := NewCSVScorer(name, m.Validation, m.Test)
			if err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("create csv scorer %q: %w", name, err)
			}
			scorers[name] = s

		case "api":
			scorers[name] = NewAPIScorer(name, m.Connection)

		default:
			cleanup()
			return nil, nil, fmt.Errorf("unsupported model type %q for %q", m.Type, name)
		}
	}

	return scorers, cleanup, nil
}
