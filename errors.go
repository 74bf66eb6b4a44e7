package neat

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel configuration errors (spec §7 "Configuration errors: reject at
// construction"). Wrapped with github.com/pkg/errors at the call site so a
// rejected Config/option keeps field context while remaining comparable
// with errors.Is/errors.Cause.
var (
	ErrInvalidProbability    = errors.New("probability must be in [0, 1]")
	ErrNonPositiveThreshold  = errors.New("threshold must be positive")
	ErrInvalidPopulationSize = errors.New("target_size must be positive")
	ErrInvalidArity          = errors.New("numInputs and numOutputs must be positive")
)

// panicf terminates the process with a clear diagnostic for the programmer
// errors spec §7 calls out as non-recoverable (bias-node mutation, empty
// population/species indexing, distance across mismatched arities). The
// teacher used log.Fatal for the equivalent situations; as a library this
// is a panic instead of a log.Fatal, since os.Exit belongs to a binary, not
// a package an Environment author links into their own process.
func panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

func requireProbability(name string, p float64) error {
	if p < 0 || p > 1 {
		return errors.Wrapf(ErrInvalidProbability, "%s=%v", name, p)
	}
	return nil
}

func requirePositive(name string, v float64) error {
	if v <= 0 {
		return errors.Wrapf(ErrNonPositiveThreshold, "%s=%v", name, v)
	}
	return nil
}
