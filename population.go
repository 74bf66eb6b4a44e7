package neat

import (
	"math"
	"math/rand"
	"sort"
)

// Population holds the ordered member list and the target size evolution
// rescales toward each generation (spec §3/§4.6).
type Population struct {
	Members    []*Genome
	TargetSize int
	Generation int
}

// NewPopulation creates target_size random initial genomes (spec §4.2
// Construction), one independent draw per member.
func NewPopulation(cfg Config, innov *InnovationRecord, rng *rand.Rand) *Population {
	members := make([]*Genome, cfg.TargetSize)
	for i := range members {
		members[i] = NewRandomGenome(cfg, innov, rng)
	}
	return &Population{Members: members, TargetSize: cfg.TargetSize}
}

// Evaluate scores every member against env (spec §4.6).
func (p *Population) Evaluate(env Environment, cfg Config) *Evaluation {
	return Evaluate(env, p.Members, cfg.EvalParallelism)
}

// SpeciateGeneration partitions the current members against the previous
// generation's Speciation/Evaluation and advances Generation (spec §4.6
// speciate). previous/previousEval are nil on the very first call.
func (p *Population) SpeciateGeneration(cfg Config, rng *rand.Rand, previous *Speciation, previousEval *Evaluation) *Speciation {
	next := Speciate(p.Members, cfg, rng, previous, previousEval)
	p.Generation++
	return next
}

// Evolve runs the spec §4.6 "evolve" phase (the data-flow diagram in §2
// calls this step "reproduce"): kill stagnant species, allocate offspring
// by adjusted fitness with half-delta correction, breed each surviving
// species' elite-plus-offspring, and replace Members. Evolve does not
// mutate offspring — that is the separate Mutate step (spec §4.6/§4.7
// data flow: reproduce → mutate).
func (p *Population) Evolve(cfg Config, eval *Evaluation, speciation *Speciation, rng *rand.Rand) {
	survivors := killStagnant(cfg, speciation)
	if len(survivors) == 0 {
		survivors = append(survivors, speciation.Order...)
	}

	globalMin, globalMax := eval.GlobalMinMax()
	adjusted := make(map[SpeciesId]float64, len(survivors))
	sumAdjusted := 0.0
	for _, id := range survivors {
		a := eval.AdjustedSpeciesFitness(speciation.Species[id], globalMin, globalMax)
		adjusted[id] = a
		sumAdjusted += a
	}

	allocations := allocateOffspring(cfg, speciation, survivors, adjusted, sumAdjusted)
	debug("neat: evolve kept %d/%d species, dropped %d to stagnation", len(survivors), len(speciation.Order), len(speciation.Order)-len(survivors))

	newMembers := make([]*Genome, 0, cfg.TargetSize)
	for _, id := range survivors {
		s := speciation.Species[id]
		allocation := allocations[id]
		if allocation <= 0 {
			continue
		}
		newMembers = append(newMembers, p.breedSpecies(cfg, s, eval, allocation, rng)...)
	}

	p.Members = newMembers
	p.TargetSize = cfg.TargetSize
}

// killStagnant drops every species with GenerationsSinceImprovement at or
// past cfg.StagnationGenerations (spec §4.6 step 1), preserving
// speciation.Order for the survivors.
func killStagnant(cfg Config, speciation *Speciation) []SpeciesId {
	survivors := make([]SpeciesId, 0, len(speciation.Order))
	for _, id := range speciation.Order {
		if speciation.Species[id].GenerationsSinceImprovement < cfg.StagnationGenerations {
			survivors = append(survivors, id)
		}
	}
	return survivors
}

// allocateOffspring implements spec §4.6 step 2: proportional allocation
// by adjusted fitness share, a half-delta correction toward that target,
// then a final rescale so the allocations sum to exactly cfg.TargetSize
// with a per-species minimum of 1.
func allocateOffspring(cfg Config, speciation *Speciation, survivors []SpeciesId, adjusted map[SpeciesId]float64, sumAdjusted float64) map[SpeciesId]int {
	sizes := make(map[SpeciesId]int, len(survivors))

	for _, id := range survivors {
		prevSize := len(speciation.Species[id].Members)

		var rawSize float64
		if sumAdjusted > 0 {
			rawSize = adjusted[id] / sumAdjusted * float64(cfg.TargetSize)
		} else {
			rawSize = 1
		}

		d := (rawSize - float64(prevSize)) * 0.5
		rounded := int(math.Round(d))

		size := prevSize
		switch {
		case rounded != 0:
			size = prevSize + rounded
		case d > 0:
			size = prevSize + 1
		case d < 0:
			size = prevSize - 1
		}
		if size < 1 {
			size = 1
		}
		sizes[id] = size
	}

	rescaleToTarget(sizes, survivors, cfg.TargetSize)
	return sizes
}

// rescaleToTarget adjusts sizes in place so they sum to exactly target,
// never dropping any survivor below 1.
func rescaleToTarget(sizes map[SpeciesId]int, ids []SpeciesId, target int) {
	total := 0
	for _, id := range ids {
		total += sizes[id]
	}
	if total == target {
		return
	}
	if total == 0 {
		for _, id := range ids {
			sizes[id] = 1
		}
		total = len(ids)
	}

	scale := float64(target) / float64(total)
	newTotal := 0
	for _, id := range ids {
		s := int(math.Floor(float64(sizes[id]) * scale))
		if s < 1 {
			s = 1
		}
		sizes[id] = s
		newTotal += s
	}

	order := append([]SpeciesId(nil), ids...)
	sort.Slice(order, func(i, j int) bool { return sizes[order[i]] > sizes[order[j]] })

	remainder := target - newTotal
	for i := 0; remainder > 0; i++ {
		sizes[order[i%len(order)]]++
		remainder--
	}
	for i := 0; remainder < 0 && i < len(order)*target+1; i++ {
		id := order[i%len(order)]
		if sizes[id] > 1 {
			sizes[id]--
			remainder++
		}
	}
}

// breedSpecies produces `allocation` members for the next generation:
// one elite clone of the champion, plus allocation-1 crossover offspring
// drawn from the top cfg.SurvivalThreshold fraction of s's members (spec
// §4.6 step 3). With probability cfg.InterspeciesMatingProb, the second
// parent is drawn from the whole population instead of the survivor pool.
func (p *Population) breedSpecies(cfg Config, s *Species, eval *Evaluation, allocation int, rng *rand.Rand) []*Genome {
	s.SortByFitness(eval)

	poolSize := int(math.Ceil(float64(len(s.Members)) * cfg.SurvivalThreshold))
	if poolSize < 2 {
		poolSize = 2
	}
	if poolSize > len(s.Members) {
		poolSize = len(s.Members)
	}
	pool := s.Members[:poolSize]

	offspring := make([]*Genome, 0, allocation)

	championCid := s.Members[0]
	offspring = append(offspring, p.Members[championCid].Clone())

	for i := 0; i < allocation-1; i++ {
		p1Cid := pool[rng.Intn(len(pool))]
		var p2Cid ClientId
		if rng.Float64() < cfg.InterspeciesMatingProb {
			p2Cid = ClientId(rng.Intn(len(p.Members)))
		} else {
			p2Cid = pool[rng.Intn(len(pool))]
		}

		fitterCid, otherCid := p1Cid, p2Cid
		if eval.Fitness[p2Cid] > eval.Fitness[p1Cid] {
			fitterCid, otherCid = p2Cid, p1Cid
		}
		child := Crossover(p.Members[fitterCid], p.Members[otherCid], cfg, rng)
		offspring = append(offspring, child)
	}

	return offspring
}

// Mutate applies the per-member mutation gate (spec §4.6): each member
// mutates with probability cfg.MutationProb.
func (p *Population) Mutate(cfg Config, innov *InnovationRecord, rng *rand.Rand) {
	for _, g := range p.Members {
		if rng.Float64() < cfg.MutationProb {
			g.Mutate(cfg, innov, rng)
		}
	}
}
