package neat

import (
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// Genome is the encoded directed graph of weighted connections between
// typed nodes (spec §3). HiddenCount must always equal the number of
// distinct hidden node indices referenced by Connections; Connections
// never duplicate an (in, out) pair and never point a connection's
// InNode at an output node.
type Genome struct {
	layout
	HiddenCount int
	Connections []*Connection
}

// NewRandomGenome builds a minimal fully-connected bipartite genome: one
// enabled connection from every bias/input source to every output, with a
// weight sampled uniformly from [-1, 1] (spec §4.2 Construction).
func NewRandomGenome(cfg Config, innov *InnovationRecord, rng *rand.Rand) *Genome {
	l := layout{numInputs: cfg.NumInputs, numOutputs: cfg.NumOutputs}
	g := &Genome{layout: l}

	outEnd := l.firstHidden()
	for src := Node(0); src < l.firstOutput(); src++ {
		for dst := l.firstOutput(); dst < outEnd; dst++ {
			g.Connections = append(g.Connections, &Connection{
				InNode:     src,
				OutNode:    dst,
				Weight:     rng.Float64()*2 - 1,
				Enabled:    true,
				Innovation: innov.Get(src, dst),
			})
		}
	}
	return g
}

// Clone returns a deep copy: the connection slice is fresh, and every
// Connection within it is its own pointer, so mutating the clone never
// touches the original (spec §3: "connections are cloned on crossover").
func (g *Genome) Clone() *Genome {
	cp := &Genome{layout: g.layout, HiddenCount: g.HiddenCount}
	cp.Connections = make([]*Connection, len(g.Connections))
	for i, c := range g.Connections {
		cp.Connections[i] = c.clone()
	}
	return cp
}

// NodeCount returns 1 + NumInputs + NumOutputs + HiddenCount.
func (g *Genome) NodeCount() int {
	return g.totalNodes(g.HiddenCount)
}

// Activate runs the fixed-iteration synchronous activation sweep (spec
// §4.2): two alternating buffers, bias fixed at 1.0, every non-input node
// recomputed each iteration from the previous iteration's values. Returns
// the final Output slice after cfg.ActivationIterations steps.
func (g *Genome) Activate(cfg Config, input []float64) []float64 {
	if len(input) != g.numInputs {
		panicf("neat: Activate called with %d inputs, genome expects %d", len(input), g.numInputs)
	}
	buf := newGenomeActivation(g.layout, g.HiddenCount, input)
	for i := 0; i < cfg.ActivationIterations; i++ {
		buf = g.ActivateStep(cfg, buf)
	}
	out := make([]float64, len(buf.Output))
	copy(out, buf.Output)
	return out
}

// ActivateStep performs a single synchronous propagation step: every
// enabled connection contributes weight * prev.Get(InNode) to its
// OutNode's sum, then every output/hidden node's new value is
// cfg.ActivationFunc(sum). Exposed so external callers (e.g. a UI) can
// animate propagation one step at a time.
func (g *Genome) ActivateStep(cfg Config, prev *GenomeActivation) *GenomeActivation {
	next := &GenomeActivation{
		layout: prev.layout,
		Input:  prev.Input,
		Output: make([]float64, len(prev.Output)),
		Hidden: make([]float64, len(prev.Hidden)),
	}
	outSums := make([]float64, len(prev.Output))
	hidSums := make([]float64, len(prev.Hidden))

	for _, c := range g.Connections {
		if !c.Enabled {
			continue
		}
		v := c.Weight * prev.Get(c.InNode)
		switch prev.kindOf(c.OutNode) {
		case NodeOutput:
			outSums[int(c.OutNode-prev.firstOutput())] += v
		case NodeHidden:
			hidSums[int(c.OutNode-prev.firstHidden())] += v
		default:
			panicf("neat: connection out_node %d is not output or hidden", c.OutNode)
		}
	}

	act := cfg.ActivationFunc
	if act == nil {
		act = Sigmoid
	}
	for i, s := range outSums {
		next.Output[i] = act(s)
	}
	for i, s := range hidSums {
		next.Hidden[i] = act(s)
	}
	return next
}

// enabledConnectionIndices returns the indices of every enabled
// connection.
func (g *Genome) enabledConnectionIndices() []int {
	idx := make([]int, 0, len(g.Connections))
	for i, c := range g.Connections {
		if c.Enabled {
			idx = append(idx, i)
		}
	}
	return idx
}

// hasConnection returns the connection from in to out, if one exists.
func (g *Genome) hasConnection(in, out Node) *Connection {
	probe := &Connection{InNode: in, OutNode: out}
	for _, c := range g.Connections {
		if c.sameEndpoints(probe) {
			return c
		}
	}
	return nil
}

// Mutate applies the three independent, Bernoulli-gated mutations (spec
// §4.2): weight perturbation/replacement, new-connection, new-node.
func (g *Genome) Mutate(cfg Config, innov *InnovationRecord, rng *rand.Rand) {
	if rng.Float64() < cfg.MutateWeightsRate {
		g.mutateWeights(cfg, rng)
	}
	if rng.Float64() < cfg.MutateNewConnectionRate {
		g.mutateAddConnection(cfg, innov, rng)
	}
	if rng.Float64() < cfg.MutateNewNodeRate {
		g.mutateAddNode(cfg, innov, rng)
	}
}

func (g *Genome) mutateWeights(cfg Config, rng *rand.Rand) {
	for _, c := range g.Connections {
		if rng.Float64() < cfg.MutatePerturbWeightRate {
			c.Weight += rng.NormFloat64() * cfg.WeightPerturbStdDev
		} else {
			w := rng.NormFloat64()
			if w > cfg.WeightMutationBound {
				w = cfg.WeightMutationBound
			} else if w < -cfg.WeightMutationBound {
				w = -cfg.WeightMutationBound
			}
			c.Weight = w
		}
	}
}

func (g *Genome) mutateAddConnection(cfg Config, innov *InnovationRecord, rng *rand.Rand) {
	sources := g.sourceCandidates(g.HiddenCount)
	in := sources[rng.Intn(len(sources))]

	outStart := g.firstOutput()
	outEnd := g.totalNodesAsNode()
	out := outStart + Node(rng.Intn(int(outEnd-outStart)))

	if in == out {
		return
	}

	if existing := g.hasConnection(in, out); existing != nil {
		existing.Enabled = true
		return
	}

	g.Connections = append(g.Connections, &Connection{
		InNode:     in,
		OutNode:    out,
		Weight:     rng.Float64()*2 - 1,
		Enabled:    true,
		Innovation: innov.Get(in, out),
	})
}

func (g *Genome) totalNodesAsNode() Node {
	return Node(g.totalNodes(g.HiddenCount))
}

func (g *Genome) mutateAddNode(cfg Config, innov *InnovationRecord, rng *rand.Rand) {
	enabled := g.enabledConnectionIndices()
	if len(enabled) == 0 {
		return
	}
	c := g.Connections[enabled[rng.Intn(len(enabled))]]
	c.Enabled = false

	newNode := g.firstHidden() + Node(g.HiddenCount)
	g.HiddenCount++

	g.Connections = append(g.Connections,
		&Connection{InNode: c.InNode, OutNode: newNode, Weight: 1.0, Enabled: true, Innovation: innov.Get(c.InNode, newNode)},
		&Connection{InNode: newNode, OutNode: c.OutNode, Weight: c.Weight, Enabled: true, Innovation: innov.Get(newNode, c.OutNode)},
	)
}

// Crossover aligns fitter's genes against other's by innovation number
// (spec §4.2). Child connection order follows fitter's iteration order;
// disjoint/excess genes from other are discarded. Matching genes are
// inherited from fitter with probability cfg.CrossoverPickFittestProb,
// from other otherwise. A gene disabled in both parents stays disabled;
// disabled in exactly one parent is inherited disabled with probability
// cfg.DisabledGeneInheritProb.
func Crossover(fitter, other *Genome, cfg Config, rng *rand.Rand) *Genome {
	otherByInnov := make(map[int]*Connection, len(other.Connections))
	for _, c := range other.Connections {
		otherByInnov[c.Innovation] = c
	}

	child := &Genome{layout: fitter.layout}
	child.Connections = make([]*Connection, 0, len(fitter.Connections))

	for _, fc := range fitter.Connections {
		oc, matched := otherByInnov[fc.Innovation]

		var chosen *Connection
		var enabled bool
		if matched {
			if rng.Float64() < cfg.CrossoverPickFittestProb {
				chosen = fc
			} else {
				chosen = oc
			}
			switch {
			case !fc.Enabled && !oc.Enabled:
				enabled = false
			case fc.Enabled != oc.Enabled:
				enabled = rng.Float64() >= cfg.DisabledGeneInheritProb
			default:
				enabled = true
			}
		} else {
			chosen = fc
			enabled = fc.Enabled
		}

		newConn := chosen.clone()
		newConn.Enabled = enabled
		child.Connections = append(child.Connections, newConn)
	}

	child.HiddenCount = countDistinctHidden(child.layout, child.Connections)
	return child
}

// countDistinctHidden returns one more than the highest hidden node index
// (counted from l.firstHidden()) referenced by conns under layout l. When
// the referenced hidden indices run contiguously from the first hidden
// index, as mutation and crossover keep them, this is the number of
// distinct hidden nodes — the value HiddenCount must equal (spec §3
// invariant).
func countDistinctHidden(l layout, conns []*Connection) int {
	seen := make(map[Node]struct{})
	maxHiddenIdx := -1
	for _, c := range conns {
		for _, n := range [2]Node{c.InNode, c.OutNode} {
			if l.kindOf(n) == NodeHidden {
				if _, ok := seen[n]; !ok {
					seen[n] = struct{}{}
				}
				if idx := int(n - l.firstHidden()); idx > maxHiddenIdx {
					maxHiddenIdx = idx
				}
			}
		}
	}
	return maxHiddenIdx + 1
}

// Distance computes the compatibility distance used by speciation (spec
// §4.2): d = disjointFactor*disjointCount + weightFactor*mean(weightDiffs)
// over matching genes, or just disjointFactor*disjointCount when there are
// no matching genes. Symmetric and zero for two empty genomes. Genomes of
// different (NumInputs, NumOutputs) arity are a programmer error and panic.
func Distance(a, b *Genome, cfg Config) float64 {
	if a.layout != b.layout {
		panicf("neat: distance between genomes of different arity (%d/%d vs %d/%d inputs/outputs)",
			a.numInputs, a.numOutputs, b.numInputs, b.numOutputs)
	}
	if len(a.Connections) == 0 && len(b.Connections) == 0 {
		return 0
	}

	aByInnov := make(map[int]*Connection, len(a.Connections))
	for _, c := range a.Connections {
		aByInnov[c.Innovation] = c
	}
	bByInnov := make(map[int]*Connection, len(b.Connections))
	for _, c := range b.Connections {
		bByInnov[c.Innovation] = c
	}

	disjoint := 0
	weightDiffs := make([]float64, 0, len(a.Connections))

	for innovNum, ca := range aByInnov {
		cb, ok := bByInnov[innovNum]
		if !ok {
			disjoint++
			continue
		}
		if ca.Enabled != cb.Enabled {
			weightDiffs = append(weightDiffs, 1.0)
		} else {
			diff := ca.Weight - cb.Weight
			if diff < 0 {
				diff = -diff
			}
			weightDiffs = append(weightDiffs, diff)
		}
	}
	for innovNum := range bByInnov {
		if _, ok := aByInnov[innovNum]; !ok {
			disjoint++
		}
	}

	if len(weightDiffs) == 0 {
		return cfg.DisjointFactor * float64(disjoint)
	}
	return cfg.DisjointFactor*float64(disjoint) + cfg.WeightFactor*stat.Mean(weightDiffs, nil)
}
