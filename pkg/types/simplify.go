package types

// Unions merges branches into a normalized union: nested unions are
// flattened, Never branches dropped, and duplicates removed, preserving the
// order in which branches first appear. Zero branches give Never; one gives
// the branch itself.
func Unions(branches []Type) Type {
	var flat []Type
	var add func(Type)
	add = func(t Type) {
		switch t := t.(type) {
		case Union:
			for _, m := range t.Members {
				add(m)
			}
			return
		case Never:
			return
		}
		for _, seen := range flat {
			if seen.Eq(t) {
				return
			}
		}
		flat = append(flat, t)
	}
	for _, b := range branches {
		add(b)
	}
	switch len(flat) {
	case 0:
		return Never{}
	case 1:
		return flat[0]
	}
	return Union{Members: flat}
}

// UnionsWithLiterals is Unions plus literal-aware collapsing: all literal
// branches merge into one combined literal arm, positioned where the first
// literal appeared. A literal arm covering both booleans widens to bool,
// and one covering every member of an enum (as reported by enumCount)
// widens to that enum.
func UnionsWithLiterals(branches []Type, stdlib Stdlib, enumCount func(*Class) (int, bool)) Type {
	var flat []Type
	var lits []Lit
	firstLit := -1

	addLit := func(l Lit) {
		for _, seen := range lits {
			if seen.EqLit(l) {
				return
			}
		}
		lits = append(lits, l)
	}
	var add func(Type)
	add = func(t Type) {
		switch t := t.(type) {
		case Union:
			for _, m := range t.Members {
				add(m)
			}
			return
		case Never:
			return
		case Literal:
			if firstLit < 0 {
				firstLit = len(flat)
				flat = append(flat, nil) // placeholder for the combined arm
			}
			for _, l := range t.Lits {
				addLit(l)
			}
			return
		}
		for _, seen := range flat {
			if seen != nil && seen.Eq(t) {
				return
			}
		}
		flat = append(flat, t)
	}
	for _, b := range branches {
		add(b)
	}

	var widened []Type
	if len(lits) > 0 {
		lits, widened = widenExhaustive(lits, stdlib, enumCount)
	}

	var out []Type
	for i, t := range flat {
		if i == firstLit {
			if len(lits) > 0 {
				out = append(out, Literal{Lits: lits})
			}
			for _, w := range widened {
				dup := false
				for _, seen := range out {
					if seen.Eq(w) {
						dup = true
						break
					}
				}
				if !dup {
					out = append(out, w)
				}
			}
			continue
		}
		out = append(out, t)
	}

	switch len(out) {
	case 0:
		return Never{}
	case 1:
		return out[0]
	}
	return Union{Members: out}
}

// widenExhaustive replaces literal value sets that cover a whole type with
// that type: both booleans widen to bool, and a full set of enum members
// widens to the enum.
func widenExhaustive(lits []Lit, stdlib Stdlib, enumCount func(*Class) (int, bool)) ([]Lit, []Type) {
	var widened []Type

	hasTrue, hasFalse := false, false
	enums := make(map[*Class]int)
	for _, l := range lits {
		switch l := l.(type) {
		case LitBool:
			if l {
				hasTrue = true
			} else {
				hasFalse = true
			}
		case LitEnum:
			enums[l.Class]++
		}
	}

	full := make(map[*Class]bool)
	for cls, n := range enums {
		if total, ok := enumCount(cls); ok && n >= total {
			full[cls] = true
			widened = append(widened, ClassType{Class: cls})
		}
	}
	widenBools := hasTrue && hasFalse
	if widenBools {
		widened = append(widened, stdlib.Bool())
	}
	if len(widened) == 0 {
		return lits, nil
	}

	kept := lits[:0]
	for _, l := range lits {
		switch l := l.(type) {
		case LitBool:
			if widenBools {
				continue
			}
		case LitEnum:
			if full[l.Class] {
				continue
			}
		}
		kept = append(kept, l)
	}
	return kept, widened
}
