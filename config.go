package neat

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ActivationFunction is the signature of a node activation function.
type ActivationFunction func(float64) float64

// Sigmoid is the canonical NEAT activation (spec §4.2, §9 Open Questions:
// "Pick sigmoid for the canonical implementation").
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Config carries every recognized option from spec §6's table plus the
// defaults that section documents. It also carries the ambient parallelism
// knob noted in SPEC_FULL §10 (EvalParallelism), which the spec explicitly
// permits but does not name.
type Config struct {
	NumInputs  int `yaml:"numInputs"`
	NumOutputs int `yaml:"numOutputs"`

	TargetSize              int     `yaml:"targetSize"`
	CompatibilityThreshold  float64 `yaml:"compatibilityThreshold"`
	StagnationGenerations   int     `yaml:"stagnationGenerations"`
	SurvivalThreshold       float64 `yaml:"survivalThreshold"`
	InterspeciesMatingProb  float64 `yaml:"interspeciesMatingProb"`
	MutationProb            float64 `yaml:"mutationProb"`
	MutateWeightsRate       float64 `yaml:"mutateWeightsRate"`
	MutatePerturbWeightRate float64 `yaml:"mutatePerturbWeightRate"`
	MutateNewConnectionRate float64 `yaml:"mutateNewConnectionRate"`
	MutateNewNodeRate       float64 `yaml:"mutateNewNodeRate"`
	CrossoverPickFittestProb float64 `yaml:"crossoverPickFittestProb"`
	DisabledGeneInheritProb float64 `yaml:"disabledGeneInheritProb"`
	DisjointFactor          float64 `yaml:"disjointFactor"`
	WeightFactor            float64 `yaml:"weightFactor"`
	ActivationIterations    int     `yaml:"activationIterations"`
	WeightMutationBound     float64 `yaml:"weightMutationBound"`
	WeightPerturbStdDev     float64 `yaml:"weightPerturbStdDev"`

	// EvalParallelism bounds how many members Population.Evaluate scores
	// concurrently. 0 or 1 means sequential (spec §5 default).
	EvalParallelism int `yaml:"evalParallelism"`

	ActivationFunc ActivationFunction `yaml:"-"`
}

// DefaultConfig returns the configuration spec §6 documents as defaults.
func DefaultConfig(numInputs, numOutputs int) Config {
	return Config{
		NumInputs:                numInputs,
		NumOutputs:               numOutputs,
		TargetSize:               150,
		CompatibilityThreshold:   3.0,
		StagnationGenerations:    15,
		SurvivalThreshold:        0.2,
		InterspeciesMatingProb:   0.003,
		MutationProb:             0.2,
		MutateWeightsRate:        0.90,
		MutatePerturbWeightRate:  0.90,
		MutateNewConnectionRate:  0.5,
		MutateNewNodeRate:        0.2,
		CrossoverPickFittestProb: 0.9,
		DisabledGeneInheritProb:  0.75,
		DisjointFactor:           1.0,
		WeightFactor:             2.0,
		ActivationIterations:     20,
		WeightMutationBound:      30,
		WeightPerturbStdDev:      0.5,
		EvalParallelism:          1,
		ActivationFunc:           Sigmoid,
	}
}

// LoadConfig reads a YAML file and overlays it on DefaultConfig(numInputs,
// numOutputs), then validates. Config loading/persistence is ambient
// plumbing (SPEC_FULL §7), not the evolutionary core; it never touches
// Genome/Population state.
func LoadConfig(path string, numInputs, numOutputs int) (Config, error) {
	cfg := DefaultConfig(numInputs, numOutputs)

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %q", path)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %q", path)
	}
	if cfg.ActivationFunc == nil {
		cfg.ActivationFunc = Sigmoid
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configuration errors at construction time (spec §7).
func (c Config) Validate() error {
	if c.NumInputs <= 0 || c.NumOutputs <= 0 {
		return errors.Wrapf(ErrInvalidArity, "numInputs=%d numOutputs=%d", c.NumInputs, c.NumOutputs)
	}
	if c.TargetSize <= 0 {
		return errors.Wrapf(ErrInvalidPopulationSize, "targetSize=%d", c.TargetSize)
	}
	if err := requirePositive("compatibilityThreshold", c.CompatibilityThreshold); err != nil {
		return err
	}
	if c.StagnationGenerations <= 0 {
		return errors.Wrapf(ErrNonPositiveThreshold, "stagnationGenerations=%d", c.StagnationGenerations)
	}
	for name, p := range map[string]float64{
		"survivalThreshold":        c.SurvivalThreshold,
		"interspeciesMatingProb":   c.InterspeciesMatingProb,
		"mutationProb":             c.MutationProb,
		"mutateWeightsRate":        c.MutateWeightsRate,
		"mutatePerturbWeightRate":  c.MutatePerturbWeightRate,
		"mutateNewConnectionRate":  c.MutateNewConnectionRate,
		"mutateNewNodeRate":        c.MutateNewNodeRate,
		"crossoverPickFittestProb": c.CrossoverPickFittestProb,
		"disabledGeneInheritProb":  c.DisabledGeneInheritProb,
	} {
		if err := requireProbability(name, p); err != nil {
			return err
		}
	}
	if err := requirePositive("disjointFactor", c.DisjointFactor); err != nil {
		return err
	}
	if err := requirePositive("weightFactor", c.WeightFactor); err != nil {
		return err
	}
	if c.ActivationIterations <= 0 {
		return errors.Wrapf(ErrNonPositiveThreshold, "activationIterations=%d", c.ActivationIterations)
	}
	if err := requirePositive("weightMutationBound", c.WeightMutationBound); err != nil {
		return err
	}
	return nil
}
