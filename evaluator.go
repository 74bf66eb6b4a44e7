package neat

import "math/rand"

// Evaluator owns one run's full mutation domain: the population, the
// innovation record, the RNG, and the Environment being optimized against
// (spec §5 — a single Evaluator is the unit multiple concurrent runs must
// not share state across). It also caches the previous generation's
// Speciation and Evaluation so the next call to EvaluateAndEvolve can
// evolve against them before re-speciating.
type Evaluator struct {
	env  Environment
	cfg  Config
	innov *InnovationRecord
	rng  *rand.Rand

	population *Population

	lastSpeciation *Speciation
	lastEvaluation *Evaluation

	onGeneration func(Snapshot)
}

// NewEvaluator constructs a fresh run: a random initial population, its own
// InnovationRecord, and its own RNG seeded independently from any other
// Evaluator (spec §5).
func NewEvaluator(env Environment, cfg Config, seed int64) *Evaluator {
	if err := cfg.Validate(); err != nil {
		panicf("neat: invalid config: %v", err)
	}
	innov := NewInnovationRecord()
	rng := rand.New(rand.NewSource(seed))
	return &Evaluator{
		env:        env,
		cfg:        cfg,
		innov:      innov,
		rng:        rng,
		population: NewPopulation(cfg, innov, rng),
	}
}

// OnGeneration registers an optional hook called with a Snapshot at the end
// of every EvaluateAndEvolve call. It is nil by default and costs nothing
// when unset.
func (ev *Evaluator) OnGeneration(fn func(Snapshot)) {
	ev.onGeneration = fn
}

// Population exposes the current generation's members (spec §4.7).
func (ev *Evaluator) Population() *Population { return ev.population }

// Generation returns how many generations have been produced so far.
func (ev *Evaluator) Generation() int { return ev.population.Generation }

// EvaluateAndEvolve runs one full generation step (spec §4.7 data flow):
//
//	evolve → mutate (if a previous generation exists) → speciate → evaluate → cache
//
// On the very first call there is nothing to evolve yet, so it only
// speciates and evaluates the initial random population. Returns the
// generation's Evaluation.
func (ev *Evaluator) EvaluateAndEvolve() *Evaluation {
	if ev.lastSpeciation != nil && ev.lastEvaluation != nil {
		ev.population.Evolve(ev.cfg, ev.lastEvaluation, ev.lastSpeciation, ev.rng)
		ev.population.Mutate(ev.cfg, ev.innov, ev.rng)
	}

	speciation := ev.population.SpeciateGeneration(ev.cfg, ev.rng, ev.lastSpeciation, ev.lastEvaluation)
	evaluation := ev.population.Evaluate(ev.env, ev.cfg)

	ev.lastSpeciation = speciation
	ev.lastEvaluation = evaluation

	debug("neat: generation %d produced %d species across %d members", ev.population.Generation, len(speciation.Species), len(ev.population.Members))

	if ev.onGeneration != nil {
		ev.onGeneration(ev.snapshot(speciation, evaluation))
	}

	return evaluation
}

// Champion returns the best-scoring genome and its fitness from the most
// recent evaluation.
func (ev *Evaluator) Champion() (*Genome, float64) {
	if ev.lastEvaluation == nil {
		panicf("neat: champion requested before any evaluation ran")
	}
	cid, fitness := ev.lastEvaluation.Champion()
	return ev.population.Members[cid], fitness
}
