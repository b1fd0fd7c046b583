package eq

// Config holds chain construction settings.
type Config struct {
	SampleRate   float64
	Environment  Environment
	Persister    Persister
	MasterGainDB float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the settings used when no options are supplied.
func DefaultConfig() Config {
	return Config{
		SampleRate:  48000,
		Environment: DSPEnvironment{},
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithEnvironment injects the stage-allocation environment.
func WithEnvironment(env Environment) Option {
	return func(cfg *Config) {
		if env != nil {
			cfg.Environment = env
		}
	}
}

// WithPersister injects the settings persister the chain notifies after
// each mutation.
func WithPersister(p Persister) Option {
	return func(cfg *Config) {
		cfg.Persister = p
	}
}

// WithMasterGainDB sets the initial master gain applied after the last
// stage.
func WithMasterGainDB(gainDB float64) Option {
	return func(cfg *Config) {
		cfg.MasterGainDB = gainDB
	}
}

func applyOptions(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
