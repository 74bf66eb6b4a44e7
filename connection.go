package neat

// Connection is a single directed, weighted gene linking two nodes. It is
// the unit that crossover aligns by InnovationNumber and that mutation
// creates, disables, or splits.
//
// Invariant (spec §3): InNode is never classified NodeOutput, and
// InNode != OutNode. Genome construction and mutation are the only paths
// that create connections, and both enforce this before minting a gene.
type Connection struct {
	InNode     Node
	OutNode    Node
	Weight     float64
	Enabled    bool
	Innovation int
}

func (c *Connection) clone() *Connection {
	cp := *c
	return &cp
}

// sameEndpoints reports whether two connections link the same (in, out)
// pair, independent of weight, enabled state, or innovation number.
func (c *Connection) sameEndpoints(other *Connection) bool {
	return c.InNode == other.InNode && c.OutNode == other.OutNode
}
