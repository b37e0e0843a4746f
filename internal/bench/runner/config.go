package runner

const (
	DefaultThreshold  = 0.5
	DefaultWarmupRuns = 0
	DefaultRuns       = 1
)

type Config struct {
	// DefaultThreshold is the fixed cut-off every model is evaluated at,
	// independent of tuning.
	DefaultThreshold float64
	// Tune enables per-model threshold selection on the validation split.
	Tune       bool
	WarmupRuns int
	Runs       int
}

func DefaultConfig() Config {
	return Config{
		DefaultThreshold: DefaultThreshold,
		Tune:             true,
		WarmupRuns:       DefaultWarmupRuns,
		Runs:             DefaultRuns,
	}
}
