// Package hcl decodes linescrub configuration files and maps them onto engine configuration.
package hcl

import (
	"fmt"
	"regexp"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/linescrub/linescrub/engine"
	"github.com/linescrub/linescrub/redact"
)

// HCL is the top-level configuration document.
type HCL struct {
	// Engines is the ordered chain of engine names to run. The -engines flag overrides it.
	Engines []string `hcl:"engines,optional"`

	Scrub  *Scrub  `hcl:"scrub,block"`
	Entity *Entity `hcl:"entity,block"`
	Mask   *Mask   `hcl:"mask,block"`
}

// Scrub configures the rule/regex scrubber engine.
type Scrub struct {
	// Defaults controls whether the built-in PII rules are included. Unset means true.
	Defaults   *bool    `hcl:"defaults,optional"`
	Redactions []Redact `hcl:"redact,block"`
}

// Redact is one custom redaction rule. The block label doubles as the rule's ID when no explicit id is set.
type Redact struct {
	Label   string `hcl:"name,label"`
	ID      string `hcl:"id,optional"`
	Match   string `hcl:"match"`
	Replace string `hcl:"replace,optional"`
}

// Entity configures the entity analyzer/anonymizer engine.
type Entity struct {
	Language       string   `hcl:"language,optional"`
	Entities       []string `hcl:"entities,optional"`
	ScoreThreshold float64  `hcl:"score_threshold,optional"`
}

// Mask configures the generic token masker engine.
type Mask struct {
	MaskChar    string `hcl:"mask_char,optional"`
	MinDigitRun int    `hcl:"min_digit_run,optional"`
}

// Parse takes a file path and decodes the file from disk into HCL types.
func Parse(path string) (HCL, error) {
	var h HCL
	err := hclsimple.DecodeFile(path, nil, &h)
	if err != nil {
		return HCL{}, err
	}
	return h, nil
}

// ValidateRedactions confirms each custom rule's matcher compiles, so a typo surfaces at config load rather
// than at engine setup.
func ValidateRedactions(redactions []Redact) error {
	for _, r := range redactions {
		_, err := regexp.Compile(r.Match)
		if err != nil {
			return fmt.Errorf("could not compile redact rule, name=%s, matcher=%s, err=%s", r.Label, r.Match, err)
		}
	}
	return nil
}

// MapRedacts converts config rules into the redact package's Config form, preserving order.
func MapRedacts(redactions []Redact) []redact.Config {
	configs := make([]redact.Config, len(redactions))
	for i, r := range redactions {
		id := r.ID
		if id == "" {
			id = r.Label
		}
		configs[i] = redact.Config{
			Matcher: r.Match,
			ID:      id,
			Replace: r.Replace,
		}
	}
	return configs
}

// BuildEngineConfig maps the decoded document onto the engine package's config types. Missing blocks leave
// the corresponding engine on its defaults.
func BuildEngineConfig(h HCL) (engine.Config, error) {
	var cfg engine.Config

	if h.Scrub != nil {
		if err := ValidateRedactions(h.Scrub.Redactions); err != nil {
			return engine.Config{}, err
		}
		cfg.Scrub = engine.ScrubConfig{
			Rules:    MapRedacts(h.Scrub.Redactions),
			Defaults: h.Scrub.Defaults,
		}
	}

	if h.Entity != nil {
		cfg.Entity = engine.EntityConfig{
			Language:       h.Entity.Language,
			Entities:       h.Entity.Entities,
			ScoreThreshold: h.Entity.ScoreThreshold,
		}
	}

	if h.Mask != nil {
		cfg.Mask = engine.MaskConfig{
			MaskChar:    h.Mask.MaskChar,
			MinDigitRun: h.Mask.MinDigitRun,
		}
	}

	return cfg, nil
}
