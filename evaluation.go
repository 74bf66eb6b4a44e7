package neat

import (
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Evaluation is the per-member fitness map produced by scoring one
// generation, plus the derived per-species statistics spec §3/§4.5 name.
type Evaluation struct {
	Fitness map[ClientId]float64
}

// Evaluate calls env.Evaluate on every member in index order, or across a
// bounded worker pool when parallelism > 1 (spec §5: evaluate may
// parallelize across members because Environment.Evaluate is required to
// be pure with respect to other members).
func Evaluate(env Environment, members []*Genome, parallelism int) *Evaluation {
	fitness := make(map[ClientId]float64, len(members))

	if parallelism <= 1 {
		for i, g := range members {
			fitness[ClientId(i)] = env.Evaluate(g)
		}
		return &Evaluation{Fitness: fitness}
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, parallelism)

	for i, g := range members {
		wg.Add(1)
		sem <- struct{}{}
		go func(cid ClientId, genome *Genome) {
			defer wg.Done()
			defer func() { <-sem }()
			f := env.Evaluate(genome)
			mu.Lock()
			fitness[cid] = f
			mu.Unlock()
		}(ClientId(i), g)
	}
	wg.Wait()

	return &Evaluation{Fitness: fitness}
}

// AverageFitness returns the mean fitness of s's members.
func (e *Evaluation) AverageFitness(s *Species) float64 {
	if len(s.Members) == 0 {
		panicf("neat: average_fitness of empty species %d", s.ID)
	}
	vals := make([]float64, len(s.Members))
	for i, m := range s.Members {
		vals[i] = e.Fitness[m]
	}
	return stat.Mean(vals, nil)
}

// MaxFitness returns the highest fitness among s's members. ok is false
// when s has no members.
func (e *Evaluation) MaxFitness(s *Species) (max float64, ok bool) {
	if len(s.Members) == 0 {
		return 0, false
	}
	best := e.Fitness[s.Members[0]]
	for _, m := range s.Members[1:] {
		if f := e.Fitness[m]; f > best {
			best = f
		}
	}
	return best, true
}

// Champion returns the ClientId and fitness of the top-scoring member of
// the whole population.
func (e *Evaluation) Champion() (ClientId, float64) {
	if len(e.Fitness) == 0 {
		panicf("neat: champion of empty evaluation")
	}
	first := true
	var best ClientId
	var bestFit float64
	for cid, f := range e.Fitness {
		if first || f > bestFit {
			best, bestFit = cid, f
			first = false
		}
	}
	return best, bestFit
}

// SpeciesChampion returns the ClientId and fitness of s's top-scoring
// member.
func (e *Evaluation) SpeciesChampion(s *Species) (ClientId, float64) {
	cid := s.champion(e)
	return cid, e.Fitness[cid]
}

// GlobalMinMax returns the min and max fitness across the whole
// evaluation, the inputs to AdjustedSpeciesFitness's normalization.
func (e *Evaluation) GlobalMinMax() (min, max float64) {
	if len(e.Fitness) == 0 {
		return 0, 0
	}
	vals := make([]float64, 0, len(e.Fitness))
	for _, f := range e.Fitness {
		vals = append(vals, f)
	}
	return floats.Min(vals), floats.Max(vals)
}

// AdjustedSpeciesFitness normalizes s's average fitness against the
// population's fitness range (spec §3/§4.5):
// (average(s) - globalMin) / max(1.0, globalMax - globalMin).
func (e *Evaluation) AdjustedSpeciesFitness(s *Species, globalMin, globalMax float64) float64 {
	avg := e.AverageFitness(s)
	denom := globalMax - globalMin
	if denom < 1.0 {
		denom = 1.0
	}
	return (avg - globalMin) / denom
}
