package neat

// GenomeActivation holds one forward-pass step's per-node values (spec
// §3). Indexing follows the Node layout: the bias slot always reads 1.0
// and rejects writes; Input/Output/Hidden back every other node kind.
type GenomeActivation struct {
	layout
	Input  []float64
	Output []float64
	Hidden []float64
}

// newGenomeActivation allocates a zeroed activation buffer sized for the
// given layout and hidden count, with Input pre-populated.
func newGenomeActivation(l layout, hiddenCount int, input []float64) *GenomeActivation {
	if len(input) != l.numInputs {
		panicf("neat: activation input length %d does not match NumInputs %d", len(input), l.numInputs)
	}
	in := make([]float64, l.numInputs)
	copy(in, input)
	return &GenomeActivation{
		layout: l,
		Input:  in,
		Output: make([]float64, l.numOutputs),
		Hidden: make([]float64, hiddenCount),
	}
}

// clone returns a deep copy with the same values, for double-buffering
// between activation steps.
func (a *GenomeActivation) clone() *GenomeActivation {
	return &GenomeActivation{
		layout: a.layout,
		Input:  append([]float64(nil), a.Input...),
		Output: append([]float64(nil), a.Output...),
		Hidden: append([]float64(nil), a.Hidden...),
	}
}

// Get reads the current value for n. The bias node always reads 1.0.
func (a *GenomeActivation) Get(n Node) float64 {
	switch a.kindOf(n) {
	case NodeBias:
		return 1.0
	case NodeInput:
		return a.Input[int(n-a.firstInput())]
	case NodeOutput:
		return a.Output[int(n-a.firstOutput())]
	default:
		idx := int(n - a.firstHidden())
		if idx < 0 || idx >= len(a.Hidden) {
			panicf("neat: activation read of out-of-range hidden node %d (have %d hidden nodes)", n, len(a.Hidden))
		}
		return a.Hidden[idx]
	}
}

// Set writes a value for n. Writing the bias node is a programmer error:
// spec §3 says the bias index "always reads 1.0 and is write-rejected."
func (a *GenomeActivation) Set(n Node, v float64) {
	switch a.kindOf(n) {
	case NodeBias:
		panicf("neat: attempted to write the bias node")
	case NodeInput:
		panicf("neat: attempted to write input node %d during activation", n)
	case NodeOutput:
		a.Output[int(n-a.firstOutput())] = v
	default:
		idx := int(n - a.firstHidden())
		if idx < 0 || idx >= len(a.Hidden) {
			panicf("neat: activation write of out-of-range hidden node %d (have %d hidden nodes)", n, len(a.Hidden))
		}
		a.Hidden[idx] = v
	}
}
