// Package input maps raw player input onto one of the currently offered
// choice tokens.
package input

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Candidate is an offered choice: its token and the words that select it.
type Candidate interface {
	Key() string
	Words() []string
}

// Resolve returns the token raw selects. Exact tokens always win; otherwise
// each input word is scored against every candidate word (exact, prefix,
// then edit distance). Input that matches nothing, or that matches two
// tokens equally well, is rejected.
func Resolve[C Candidate](raw string, cs []C) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	for _, c := range cs {
		if c.Key() == trimmed {
			return c.Key(), true
		}
	}

	words := tokenise(normaliseInput(raw))
	if len(words) == 0 {
		return "", false
	}

	best, bestScore, tied := "", 0.0, false
	for _, c := range cs {
		s := score(words, c.Words())
		switch {
		case s == 0:
			continue
		case s > bestScore:
			best, bestScore, tied = c.Key(), s, false
		case s == bestScore && c.Key() != best:
			tied = true
		}
	}
	if best == "" || tied {
		return "", false
	}
	return best, true
}

func score(words, aliases []string) float64 {
	best := 0.0
	for _, w := range words {
		for _, a := range aliases {
			a = strings.ToLower(a)
			var s float64
			switch {
			case w == a:
				s = 1.0
			case len(w) >= 3 && strings.HasPrefix(a, w):
				s = 0.9
			case len(w) >= 3:
				dist := levenshtein.ComputeDistance(w, a)
				if dist > levenshteinLimit(len(a)) {
					continue
				}
				s = 0.72 - 0.08*float64(dist)
			}
			best = max(best, s)
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
