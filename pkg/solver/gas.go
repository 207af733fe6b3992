package solver

// gas is a decrementing step budget. stop consumes a unit, reporting
// exhaustion instead when none remain; restore hands the unit back once the
// nested call returns. The budget therefore bounds the depth of the
// in-flight call chain rather than the total work of a query.
type gas struct {
	remaining int
}

func newGas(n int) gas {
	return gas{remaining: n}
}

func (g *gas) stop() bool {
	if g.remaining <= 0 {
		return true
	}
	g.remaining--
	return false
}

func (g *gas) restore() {
	g.remaining++
}
