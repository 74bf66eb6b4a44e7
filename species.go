package neat

import "sort"

// ClientId identifies a member within a generation: its index in the
// Population's member list (spec §3 Organism/Member).
type ClientId int

// SpeciesId is a stable 64-bit identifier that persists across
// generations for one reproductively-isolated lineage (spec §3).
type SpeciesId uint64

// Species groups genomes within a compatibility radius of a shared
// representative. Representative is carried from the previous generation
// (spec §3): it is whichever genome the species was identified by last
// time Speciation ran, not necessarily a current member.
type Species struct {
	ID                          SpeciesId
	Representative              *Genome
	Members                     []ClientId
	Age                         int
	MaxFitnessSeen              float64
	GenerationsSinceImprovement int
}

// IsCompatible reports whether g falls within this species' compatibility
// radius of its representative (spec §4.3).
func (s *Species) IsCompatible(g *Genome, cfg Config) bool {
	return Distance(s.Representative, g, cfg) < cfg.CompatibilityThreshold
}

// SortByFitness orders Members descending by fitness, using eval to look
// up each member's score (spec §4.3).
func (s *Species) SortByFitness(eval *Evaluation) {
	sort.Slice(s.Members, func(i, j int) bool {
		return eval.Fitness[s.Members[i]] > eval.Fitness[s.Members[j]]
	})
}

// champion returns the member with the highest fitness. It scans every
// member, so Members need not be sorted first.
func (s *Species) champion(eval *Evaluation) ClientId {
	if len(s.Members) == 0 {
		panicf("neat: champion requested of empty species %d", s.ID)
	}
	best := s.Members[0]
	bestFit := eval.Fitness[best]
	for _, m := range s.Members[1:] {
		if f := eval.Fitness[m]; f > bestFit {
			best, bestFit = m, f
		}
	}
	return best
}
