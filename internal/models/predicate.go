package models

// Predicate is a read-only test over a PlayerState.
type Predicate func(PlayerState) bool

// HasItem holds when item is in the inventory.
func HasItem(item string) Predicate {
	return func(s PlayerState) bool { return s.Has(item) }
}

// FlagSet holds when f is set.
func FlagSet(f Flag) Predicate {
	return func(s PlayerState) bool { return s.Flag(f) }
}

// StatAtLeast holds when st >= n.
func StatAtLeast(st Stat, n int) Predicate {
	return func(s PlayerState) bool { return s.Stat(st) >= n }
}

// AnyOf holds when at least one of ps holds.
func AnyOf(ps ...Predicate) Predicate {
	return func(s PlayerState) bool {
		for _, p := range ps {
			if p(s) {
				return true
			}
		}
		return false
	}
}

// AllOf holds when every one of ps holds. An empty list holds.
func AllOf(ps ...Predicate) Predicate {
	return func(s PlayerState) bool {
		for _, p := range ps {
			if !p(s) {
				return false
			}
		}
		return true
	}
}

// Not negates p.
func Not(p Predicate) Predicate {
	return func(s PlayerState) bool { return !p(s) }
}
