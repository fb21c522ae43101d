package dashboard

import (
	"errors"
	"io/fs"
	"sync"
)

// Loader reads the document on first use and keeps the result, error
// included, for the life of the process.
type Loader struct {
	once sync.Once
	load func() (*Config, error)
	cfg  *Config
	err  error
}

func NewLoader(path string) *Loader {
	return &Loader{load: func() (*Config, error) { return Load(path) }}
}

// NewLoaderWithFallback parses fallback when no file exists at path. A file
// that exists but does not parse is still an error.
func NewLoaderWithFallback(path string, fallback []byte) *Loader {
	return &Loader{load: func() (*Config, error) {
		cfg, err := Load(path)
		if errors.Is(err, fs.ErrNotExist) {
			return Parse(fallback)
		}
		return cfg, err
	}}
}

func (l *Loader) Config() (*Config, error) {
	l.once.Do(func() {
		l.cfg, l.err = l.load()
	})
	return l.cfg, l.err
}
