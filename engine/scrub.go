package engine

import (
	"github.com/linescrub/linescrub/redact"
)

var _ Engine = &Scrubber{}

// Scrubber is the rule/regex engine. It applies an ordered slice of redaction rules to each line, custom
// rules first so they take precedence over the built-in defaults.
type Scrubber struct {
	redactions []*redact.Redact
}

// NewScrubber compiles the configured rules into a ready Scrubber.
func NewScrubber(cfg ScrubConfig) (*Scrubber, error) {
	custom, err := redact.MapNew(cfg.Rules)
	if err != nil {
		return nil, err
	}

	var defaults []*redact.Redact
	if cfg.Defaults == nil || *cfg.Defaults {
		defaults, err = redact.DefaultRedactions()
		if err != nil {
			return nil, err
		}
	}

	return &Scrubber{redactions: redact.Flatten(custom, defaults)}, nil
}

func (s *Scrubber) Name() string {
	return ScrubName
}

// Transform runs every redaction rule over the line in order.
func (s *Scrubber) Transform(text string) (string, error) {
	return redact.String(text, s.redactions)
}
