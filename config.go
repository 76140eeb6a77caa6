package parquet

// DefaultPrefetchBatchSize is the number of records the column iterator
// asks the worker pool to decode per prefetch task when the caller hasn't
// overridden it.
const DefaultPrefetchBatchSize = 16384

// Config carries the options that govern how a FileReader or MultiReader
// schedules decoding work. The zero value is not meant to be used
// directly; construct one with DefaultConfig and Apply options to it.
type Config struct {
	// Threads is the worker pool's concurrency bound. <= 0 means hardware
	// concurrency (see hardwood.NewPool).
	Threads int
	// PrefetchBatchSize is how many records a column iterator's prefetch
	// asks for at a time.
	PrefetchBatchSize int
}

// DefaultConfig returns a Config initialized with this package's defaults.
func DefaultConfig() *Config {
	return &Config{
		Threads:           0,
		PrefetchBatchSize: DefaultPrefetchBatchSize,
	}
}

// Apply applies a list of options to c, in order.
func (c *Config) Apply(options ...Option) {
	for _, opt := range options {
		opt.ConfigureFile(c)
	}
}

// Option configures a Config. Functions returned by this package's
// option constructors (Threads, PrefetchBatchSize) implement it, as does
// *Config itself so a fully-built Config can be passed directly to
// OpenFile.
type Option interface {
	ConfigureFile(*Config)
}

func (c *Config) ConfigureFile(config *Config) {
	if c.Threads != 0 {
		config.Threads = c.Threads
	}
	if c.PrefetchBatchSize != 0 {
		config.PrefetchBatchSize = c.PrefetchBatchSize
	}
}

type optionFunc func(*Config)

func (f optionFunc) ConfigureFile(c *Config) { f(c) }

// Threads overrides the worker pool's concurrency bound.
func Threads(n int) Option {
	return optionFunc(func(c *Config) { c.Threads = n })
}

// PrefetchBatchSize overrides the number of records a column iterator
// prefetches per task.
func PrefetchBatchSize(n int) Option {
	return optionFunc(func(c *Config) { c.PrefetchBatchSize = n })
}
