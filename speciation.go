package neat

import "math/rand"

// Speciation partitions a population into species (spec §3/§4.4).
// MemberMap is the inverse of Species[*].Members: every ClientId in the
// population maps to exactly one SpeciesId. Order records species IDs in
// the order they were first matched or created this generation, so a
// later call to Speciate can deterministically find the "first" matching
// previous species (spec §4.4 step 1) instead of relying on Go's
// unordered map iteration.
type Speciation struct {
	Species   map[SpeciesId]*Species
	MemberMap map[ClientId]SpeciesId
	Order     []SpeciesId
}

// Speciate partitions members against the previous generation's
// Speciation/Evaluation (spec §4.4). previous may be nil for the first
// generation, in which case every member starts its own new species.
func Speciate(members []*Genome, cfg Config, rng *rand.Rand, previous *Speciation, previousEval *Evaluation) *Speciation {
	next := &Speciation{
		Species:   make(map[SpeciesId]*Species),
		MemberMap: make(map[ClientId]SpeciesId),
	}

	for i, g := range members {
		cid := ClientId(i)

		matchedID, matchedPrev := findCompatiblePrevious(g, cfg, previous)
		if matchedPrev != nil {
			s, ok := next.Species[matchedID]
			if !ok {
				s = carryOverSpecies(matchedID, matchedPrev, previousEval)
				next.Species[matchedID] = s
				next.Order = append(next.Order, matchedID)
			}
			s.Members = append(s.Members, cid)
			next.MemberMap[cid] = matchedID
			continue
		}

		id := freshSpeciesId(rng, next.Species)
		next.Species[id] = &Species{
			ID:             id,
			Representative: g,
			Members:        []ClientId{cid},
		}
		next.Order = append(next.Order, id)
		next.MemberMap[cid] = id
	}

	return next
}

// carryOverSpecies builds the next generation's record for a species that
// matched a previous-generation representative (spec §4.4 step 2).
func carryOverSpecies(id SpeciesId, prev *Species, previousEval *Evaluation) *Species {
	maxFitness := prev.MaxFitnessSeen
	if previousEval != nil {
		if prevMax, ok := previousEval.MaxFitness(prev); ok && prevMax > maxFitness {
			maxFitness = prevMax
		}
	}

	generationsSinceImprovement := prev.GenerationsSinceImprovement + 1
	if maxFitness > prev.MaxFitnessSeen {
		generationsSinceImprovement = 0
	}

	return &Species{
		ID:                          id,
		Representative:              prev.Representative,
		Age:                         prev.Age + 1,
		MaxFitnessSeen:              maxFitness,
		GenerationsSinceImprovement: generationsSinceImprovement,
	}
}

func freshSpeciesId(rng *rand.Rand, existing map[SpeciesId]*Species) SpeciesId {
	for {
		id := SpeciesId(rng.Uint64())
		if _, taken := existing[id]; !taken {
			return id
		}
	}
}

// findCompatiblePrevious returns the first previous-generation species (in
// previous.Order, spec §4.4's "first ... compatible") whose representative
// is compatible with g.
func findCompatiblePrevious(g *Genome, cfg Config, previous *Speciation) (SpeciesId, *Species) {
	if previous == nil {
		return 0, nil
	}
	for _, id := range previous.Order {
		s := previous.Species[id]
		if s.IsCompatible(g, cfg) {
			return id, s
		}
	}
	return 0, nil
}
