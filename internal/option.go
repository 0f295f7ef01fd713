package internal

import "io"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config   *Config
	mode     string
	treeRoot string
	stdout   io.Writer
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithMode selects the operation Run performs.
func WithMode(mode string) Option {
	return func(a *application) {
		a.mode = mode
	}
}

// WithTreeRoot sets the note the tree mode expands from, by id or fname.
func WithTreeRoot(ref string) Option {
	return func(a *application) {
		a.treeRoot = ref
	}
}

// WithStdout redirects result output away from standard output.
func WithStdout(w io.Writer) Option {
	return func(a *application) {
		a.stdout = w
	}
}
