package neat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInnovationRecordSharesAcrossIndependentMutations(t *testing.T) {
	innov := NewInnovationRecord()
	l := layout{numInputs: 2, numOutputs: 1}

	// Two unrelated genomes independently add the same (in,out) connection.
	in := l.firstInput() + 1
	out := l.firstOutput()

	numA := innov.Get(in, out)
	numB := innov.Get(in, out)
	require.Equal(t, numA, numB, "two independent discoveries of the same (in,out) pair must share an innovation number")
}

func TestInnovationRecordAllocatesDistinctNumbers(t *testing.T) {
	innov := NewInnovationRecord()
	l := layout{numInputs: 3, numOutputs: 1}

	n1 := innov.Get(l.firstInput(), l.firstOutput())
	n2 := innov.Get(l.firstInput()+1, l.firstOutput())
	require.NotEqual(t, n1, n2)
	require.Equal(t, 2, innov.Size())

	again := innov.Get(l.firstInput(), l.firstOutput())
	require.Equal(t, n1, again)
	require.Equal(t, 2, innov.Size(), "re-querying a known pair must not grow the record")
}

func TestInnovationRecordSharedAcrossMutateAddConnection(t *testing.T) {
	cfg := DefaultConfig(2, 1)
	innov := NewInnovationRecord()

	rngA := rand.New(rand.NewSource(1))
	rngB := rand.New(rand.NewSource(2))

	a := NewRandomGenome(cfg, innov, rngA)
	b := NewRandomGenome(cfg, innov, rngB)

	for i := 0; i < 50; i++ {
		a.mutateAddConnection(cfg, innov, rngA)
		b.mutateAddConnection(cfg, innov, rngB)
	}

	byInnovA := map[int]*Connection{}
	for _, c := range a.Connections {
		byInnovA[c.Innovation] = c
	}
	for _, cb := range b.Connections {
		if ca, ok := byInnovA[cb.Innovation]; ok {
			require.True(t, ca.InNode == cb.InNode && ca.OutNode == cb.OutNode,
				"matching innovation numbers must mark the same (in,out) pair")
		}
	}
}
