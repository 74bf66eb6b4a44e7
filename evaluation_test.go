package neat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateSequential(t *testing.T) {
	cfg := DefaultConfig(1, 1)
	innov := NewInnovationRecord()
	members := []*Genome{
		NewRandomGenome(cfg, innov, newDeterministicRand(1)),
		NewRandomGenome(cfg, innov, newDeterministicRand(2)),
		NewRandomGenome(cfg, innov, newDeterministicRand(3)),
	}

	eval := Evaluate(EnvironmentFunc(func(g *Genome) float64 { return 7.0 }), members, 1)
	require.Len(t, eval.Fitness, 3)
	for _, f := range eval.Fitness {
		require.Equal(t, 7.0, f)
	}
}

func TestEvaluateParallelMatchesSequential(t *testing.T) {
	cfg := DefaultConfig(1, 1)
	innov := NewInnovationRecord()
	members := make([]*Genome, 20)
	for i := range members {
		members[i] = NewRandomGenome(cfg, innov, newDeterministicRand(int64(i)))
	}

	score := func(g *Genome) float64 { return float64(len(g.Connections)) }

	seq := Evaluate(EnvironmentFunc(score), members, 1)
	par := Evaluate(EnvironmentFunc(score), members, 4)

	require.Equal(t, seq.Fitness, par.Fitness)
}

func TestAverageMaxAndAdjustedFitness(t *testing.T) {
	eval := &Evaluation{Fitness: map[ClientId]float64{0: 1.0, 1: 2.0, 2: 3.0, 3: 10.0}}
	sA := &Species{ID: 1, Members: []ClientId{0, 1, 2}}
	sB := &Species{ID: 2, Members: []ClientId{3}}

	require.InDelta(t, 2.0, eval.AverageFitness(sA), 1e-9)
	max, ok := eval.MaxFitness(sA)
	require.True(t, ok)
	require.Equal(t, 3.0, max)

	gMin, gMax := eval.GlobalMinMax()
	require.Equal(t, 1.0, gMin)
	require.Equal(t, 10.0, gMax)

	adjA := eval.AdjustedSpeciesFitness(sA, gMin, gMax)
	adjB := eval.AdjustedSpeciesFitness(sB, gMin, gMax)
	require.InDelta(t, (2.0-1.0)/9.0, adjA, 1e-9)
	require.InDelta(t, (10.0-1.0)/9.0, adjB, 1e-9)
}

func TestChampionAndSpeciesChampion(t *testing.T) {
	eval := &Evaluation{Fitness: map[ClientId]float64{0: 1.0, 1: 9.0, 2: 3.0}}
	cid, fitness := eval.Champion()
	require.Equal(t, ClientId(1), cid)
	require.Equal(t, 9.0, fitness)

	s := &Species{ID: 1, Members: []ClientId{0, 2}}
	cid2, fitness2 := eval.SpeciesChampion(s)
	require.Equal(t, ClientId(2), cid2)
	require.Equal(t, 3.0, fitness2)
}

func TestAdjustedFitnessDenominatorFloorsAtOne(t *testing.T) {
	eval := &Evaluation{Fitness: map[ClientId]float64{0: 5.0, 1: 5.2}}
	s := &Species{ID: 1, Members: []ClientId{0, 1}}
	gMin, gMax := eval.GlobalMinMax()

	adj := eval.AdjustedSpeciesFitness(s, gMin, gMax)
	require.InDelta(t, (5.1-5.0)/1.0, adj, 1e-9, "denominator must floor at 1.0 even when the fitness range is narrower")
}
