// Package engine defines the redaction capabilities the agent chains together, plus a registry for
// constructing them by name. The agent treats every Engine as an opaque text-to-text transform and must
// tolerate any of them failing to construct or erroring on a call.
package engine

import (
	"fmt"

	"github.com/linescrub/linescrub/redact"
)

// Known engine names, in their default chain order.
const (
	ScrubName  = "scrub"
	EntityName = "entity"
	MaskName   = "mask"
)

// Engine is one opaque redaction capability. Transform takes a line of text and returns the transformed
// line; implementations must not retain the input.
type Engine interface {
	Name() string
	Transform(text string) (string, error)
}

// Config carries the per-engine settings the registry needs to construct any known engine.
type Config struct {
	Scrub  ScrubConfig
	Entity EntityConfig
	Mask   MaskConfig
}

// ScrubConfig configures the rule/regex scrubber.
type ScrubConfig struct {
	// Rules are custom redaction rules, applied before the built-in defaults.
	Rules []redact.Config

	// Defaults controls whether the built-in PII rule set is included. Nil means true.
	Defaults *bool
}

// EntityConfig configures the entity analyzer/anonymizer pair.
type EntityConfig struct {
	// Language of the analyzed text. Empty means "en".
	Language string

	// Entities is an allow-list of entity types. Empty means all supported types.
	Entities []string

	// ScoreThreshold drops detections scoring below it. Zero means the analyzer default.
	ScoreThreshold float64
}

// MaskConfig configures the generic token masker.
type MaskConfig struct {
	// MaskChar is the character used for masked content. Empty means "*".
	MaskChar string

	// MinDigitRun is the shortest run of digits that gets masked. Zero means 6.
	MinDigitRun int
}

// DefaultChain returns the engine names run when the operator does not pick their own set, in chain order.
func DefaultChain() []string {
	return []string{ScrubName, EntityName, MaskName}
}

// Known reports whether name refers to an engine this build ships. Callers check this before any file is
// touched so that a bad engine name fails the run up front.
func Known(name string) bool {
	switch name {
	case ScrubName, EntityName, MaskName:
		return true
	}
	return false
}

// New constructs the named engine from cfg. Construction errors are recoverable by the caller: the agent
// marks the engine unavailable and keeps going.
func New(name string, cfg Config) (Engine, error) {
	switch name {
	case ScrubName:
		return NewScrubber(cfg.Scrub)
	case EntityName:
		return NewEntityEngine(cfg.Entity)
	case MaskName:
		return NewMasker(cfg.Mask)
	}
	return nil, fmt.Errorf("unknown engine, name=%s", name)
}
