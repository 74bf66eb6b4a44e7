package neat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluatorFirstGenerationEvaluatesInitialPopulation(t *testing.T) {
	cfg := DefaultConfig(2, 1)
	cfg.TargetSize = 16

	env := EnvironmentFunc(func(g *Genome) float64 { return float64(len(g.Connections)) })
	ev := NewEvaluator(env, cfg, 1)

	eval := ev.EvaluateAndEvolve()
	require.Len(t, eval.Fitness, cfg.TargetSize)
	require.Equal(t, 1, ev.Generation())
}

func TestEvaluatorAdvancesGenerationsAndExposesChampion(t *testing.T) {
	cfg := DefaultConfig(2, 1)
	cfg.TargetSize = 20

	env := EnvironmentFunc(func(g *Genome) float64 { return float64(len(g.Connections)) })
	ev := NewEvaluator(env, cfg, 42)

	for i := 0; i < 5; i++ {
		ev.EvaluateAndEvolve()
	}

	require.Equal(t, 5, ev.Generation())
	require.Len(t, ev.Population().Members, cfg.TargetSize)

	g, fitness := ev.Champion()
	require.NotNil(t, g)
	require.GreaterOrEqual(t, fitness, 0.0)
}

func TestEvaluatorOnGenerationHookReceivesSnapshots(t *testing.T) {
	cfg := DefaultConfig(2, 1)
	cfg.TargetSize = 10

	env := EnvironmentFunc(func(g *Genome) float64 { return 2.0 })
	ev := NewEvaluator(env, cfg, 3)

	var snapshots []Snapshot
	ev.OnGeneration(func(s Snapshot) { snapshots = append(snapshots, s) })

	ev.EvaluateAndEvolve()
	ev.EvaluateAndEvolve()

	require.Len(t, snapshots, 2)
	require.Equal(t, 1, snapshots[0].Generation)
	require.Equal(t, 2, snapshots[1].Generation)
	require.InDelta(t, 2.0, snapshots[0].ChampionFitness, 1e-9)
}

func TestEvaluatorInvalidConfigPanics(t *testing.T) {
	cfg := DefaultConfig(2, 1)
	cfg.TargetSize = 0

	require.Panics(t, func() {
		NewEvaluator(EnvironmentFunc(func(g *Genome) float64 { return 0 }), cfg, 1)
	})
}
