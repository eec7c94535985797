// Client configuration for recipebox.
package types

import (
	"errors"
	"net/url"
	"time"
)

// Config holds the settings the core needs: where the backend lives, where
// durable client storage goes, and how ingredient lines become shopping
// lines.
type Config struct {
	BackendURL         string         `json:"backend_url" yaml:"backend_url" mapstructure:"backend_url"`
	DataDir            string         `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	HTTPTimeout        time.Duration  `json:"http_timeout" yaml:"http_timeout" mapstructure:"http_timeout"`
	SkipWords          []string       `json:"skip_words" yaml:"skip_words" mapstructure:"skip_words"`
	Transforms         TransformTable `json:"transforms" yaml:"transforms" mapstructure:"transforms"`
	DefaultSuggestions []string       `json:"default_suggestions" yaml:"default_suggestions" mapstructure:"default_suggestions"`
}

// Defaults applied when the configuration leaves a value unset.
const (
	DefaultHTTPTimeout = 15 * time.Second
)

// DefaultSuggestionSeed is shown in the recall view while the suggestion set
// is empty. It is a display fallback and never persisted.
var DefaultSuggestionSeed = []string{"apples", "carrots", "berries"}

// Config validation errors.
var (
	ErrBackendURLEmpty   = errors.New("backend url must not be empty")
	ErrBackendURLInvalid = errors.New("backend url must be an absolute http or https url")
	ErrTransformKeyEmpty = errors.New("transform key must not be empty")
)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.BackendURL == "" {
		return ErrBackendURLEmpty
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrBackendURLInvalid
	}
	for _, t := range c.Transforms {
		if t.Key == "" {
			return ErrTransformKeyEmpty
		}
	}
	return nil
}

// Timeout returns the configured HTTP timeout or DefaultHTTPTimeout.
func (c Config) Timeout() time.Duration {
	if c.HTTPTimeout <= 0 {
		return DefaultHTTPTimeout
	}
	return c.HTTPTimeout
}

// SuggestionSeed returns the configured default suggestions or
// DefaultSuggestionSeed.
func (c Config) SuggestionSeed() []string {
	if len(c.DefaultSuggestions) == 0 {
		return DefaultSuggestionSeed
	}
	return c.DefaultSuggestions
}
