package engine

import "github.com/tatianab/timekeeper/internal/models"

// Gate evaluates the current state to an outcome tag. Gates never mutate
// state; the scene's consequence table says what each outcome does.
type Gate func(models.PlayerState) Outcome

// Fixed always yields o.
func Fixed(o Outcome) Gate {
	return func(models.PlayerState) Outcome { return o }
}

// When yields pass if p holds, fail otherwise.
func When(p models.Predicate, pass, fail Outcome) Gate {
	return func(s models.PlayerState) Outcome {
		if s.Query(p) {
			return pass
		}
		return fail
	}
}

// ItemGate branches on inventory membership. The check itself costs nothing.
func ItemGate(item string, held, missing Outcome) Gate {
	return When(models.HasItem(item), held, missing)
}

// ThresholdGate branches on st >= n.
func ThresholdGate(st models.Stat, n int, pass, fail Outcome) Gate {
	return When(models.StatAtLeast(st, n), pass, fail)
}

// Once yields first until f is set, then again. The consequence of first is
// expected to set f.
func Once(f models.Flag, first, again Outcome) Gate {
	return When(models.Not(models.FlagSet(f)), first, again)
}

// Unless short-circuits to done when p already holds and defers to g
// otherwise. Used for options whose reward must only ever be granted once.
func Unless(p models.Predicate, done Outcome, g Gate) Gate {
	return func(s models.PlayerState) Outcome {
		if s.Query(p) {
			return done
		}
		return g(s)
	}
}
