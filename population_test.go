package neat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPopulationHasTargetSizeMembers(t *testing.T) {
	cfg := DefaultConfig(3, 2)
	cfg.TargetSize = 40
	innov := NewInnovationRecord()
	rng := newDeterministicRand(1)

	p := NewPopulation(cfg, innov, rng)
	require.Len(t, p.Members, 40)
}

func TestKillStagnantDropsOnlyPastThreshold(t *testing.T) {
	cfg := DefaultConfig(2, 1)
	cfg.StagnationGenerations = 15

	s := &Speciation{
		Species: map[SpeciesId]*Species{
			1: {ID: 1, GenerationsSinceImprovement: 14},
			2: {ID: 2, GenerationsSinceImprovement: 15},
			3: {ID: 3, GenerationsSinceImprovement: 20},
		},
		Order: []SpeciesId{1, 2, 3},
	}

	survivors := killStagnant(cfg, s)
	require.Equal(t, []SpeciesId{1}, survivors)
}

func TestAllocateOffspringSumsToTargetSizeWithMinimumOne(t *testing.T) {
	cfg := DefaultConfig(2, 1)
	cfg.TargetSize = 50

	speciation := &Speciation{
		Species: map[SpeciesId]*Species{
			1: {ID: 1, Members: []ClientId{0, 1, 2, 3, 4}},
			2: {ID: 2, Members: []ClientId{5, 6}},
			3: {ID: 3, Members: []ClientId{7}},
		},
	}
	survivors := []SpeciesId{1, 2, 3}
	adjusted := map[SpeciesId]float64{1: 0.8, 2: 0.15, 3: 0.05}

	sizes := allocateOffspring(cfg, speciation, survivors, adjusted, 1.0)

	total := 0
	for _, id := range survivors {
		require.GreaterOrEqual(t, sizes[id], 1)
		total += sizes[id]
	}
	require.Equal(t, cfg.TargetSize, total)
}

func TestAllocateOffspringHandlesZeroAdjustedSum(t *testing.T) {
	cfg := DefaultConfig(2, 1)
	cfg.TargetSize = 10

	speciation := &Speciation{
		Species: map[SpeciesId]*Species{
			1: {ID: 1, Members: []ClientId{0}},
			2: {ID: 2, Members: []ClientId{1}},
		},
	}
	survivors := []SpeciesId{1, 2}
	adjusted := map[SpeciesId]float64{1: 0, 2: 0}

	sizes := allocateOffspring(cfg, speciation, survivors, adjusted, 0)

	total := 0
	for _, id := range survivors {
		require.GreaterOrEqual(t, sizes[id], 1)
		total += sizes[id]
	}
	require.Equal(t, cfg.TargetSize, total)
}

func TestEvolveReplacesMembersWithElitismAndTargetSize(t *testing.T) {
	cfg := DefaultConfig(2, 1)
	cfg.TargetSize = 12
	cfg.InterspeciesMatingProb = 0

	innov := NewInnovationRecord()
	rng := newDeterministicRand(5)

	p := NewPopulation(cfg, innov, rng)
	env := EnvironmentFunc(func(g *Genome) float64 { return float64(len(g.Connections)) })

	eval := p.Evaluate(env, cfg)
	speciation := p.SpeciateGeneration(cfg, rng, nil, nil)
	championCid, _ := eval.Champion()
	champion := p.Members[championCid]

	p.Evolve(cfg, eval, speciation, rng)

	require.Len(t, p.Members, cfg.TargetSize)
	require.Contains(t, p.Members, champion, "the champion is carried over unchanged as an elite")
	for _, id := range speciation.Order {
		s := speciation.Species[id]
		if s.GenerationsSinceImprovement < cfg.StagnationGenerations {
			require.NotEmpty(t, s.Members)
		}
	}
}

func TestMutateGatesByMutationProb(t *testing.T) {
	cfg := DefaultConfig(2, 1)
	cfg.MutationProb = 0
	innov := NewInnovationRecord()
	rng := newDeterministicRand(9)

	p := NewPopulation(cfg, innov, rng)
	before := make([]int, len(p.Members))
	for i, g := range p.Members {
		before[i] = len(g.Connections)
	}

	p.Mutate(cfg, innov, rng)

	for i, g := range p.Members {
		require.Equal(t, before[i], len(g.Connections), "mutation probability 0 must never mutate")
	}
}
