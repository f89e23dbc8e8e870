package symbol

type loadConfig struct {
	typePrefix    string
	commandPrefix string
}

// Option is a functional option for Load and LoadFile.
type Option interface {
	apply(*loadConfig)
}

type optFunc func(*loadConfig)

func (f optFunc) apply(cfg *loadConfig) { f(cfg) }

// WithTypePrefix sets the name prefix of packet type definitions.
// An empty prefix disables packet type names.
func WithTypePrefix(prefix string) Option {
	return optFunc(func(cfg *loadConfig) {
		cfg.typePrefix = prefix
	})
}

// WithCommandPrefix sets the name prefix of command definitions.
// An empty prefix disables command names.
func WithCommandPrefix(prefix string) Option {
	return optFunc(func(cfg *loadConfig) {
		cfg.commandPrefix = prefix
	})
}
