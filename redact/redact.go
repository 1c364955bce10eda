// Package redact applies regex-based redaction rules to text. Rules are applied sequentially, so a rule
// that appears earlier in a slice takes precedence over later rules.
package redact

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// DefaultReplace is the replacement text used when a rule does not specify its own.
const DefaultReplace = "<REDACTED>"

// Config describes an uncompiled redaction rule. ID and Replace are optional and can be left empty.
type Config struct {
	Matcher string
	ID      string
	Replace string
}

// Redact is one compiled redaction rule: a matcher plus the text that takes its place.
type Redact struct {
	ID      string `json:"ID"`
	matcher *regexp.Regexp
	Replace string `json:"replace"`
}

// New compiles a Config into a ready-to-use redaction rule. An empty ID is generated from the matcher, and
// an empty Replace falls back to DefaultReplace.
func New(cfg Config) (*Redact, error) {
	r, err := regexp.Compile(cfg.Matcher)
	if err != nil {
		return nil, err
	}
	id := cfg.ID
	if id == "" {
		genID := md5.Sum([]byte(cfg.Matcher))
		id = fmt.Sprintf("%x", genID)
	}
	replace := cfg.Replace
	if replace == "" {
		replace = DefaultReplace
	}
	return &Redact{id, r, replace}, nil
}

// MapNew compiles a slice of Configs, stopping at the first invalid matcher.
func MapNew(configs []Config) ([]*Redact, error) {
	redactions := make([]*Redact, len(configs))
	for i, cfg := range configs {
		red, err := New(cfg)
		if err != nil {
			return nil, err
		}
		redactions[i] = red
	}
	return redactions, nil
}

// Flatten merges slices of redactions into one, preserving order. Earlier slices take precedence when the
// rules are later applied.
func Flatten(redactions ...[]*Redact) []*Redact {
	flattened := make([]*Redact, 0)
	for _, rs := range redactions {
		flattened = append(flattened, rs...)
	}
	return flattened
}

// Apply reads everything from r, replaces each match, and writes the result to w.
func (x Redact) Apply(w io.Writer, r io.Reader) error {
	bts, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bts) == 0 {
		_, err = w.Write(bts)
		return err
	}
	newBts := x.matcher.ReplaceAll(bts, []byte(x.Replace))
	_, err = w.Write(newBts)
	return err
}

// ApplyMany takes a slice of redaction rules and a writer + reader, reading everything in and applying the
// rules in sequential order before writing. Each Redact that appears earlier in the list takes precedence
// over later Redacts. It is possible for redactions to collide with one another if a matcher can match the
// Replace string of an earlier Redact.
func ApplyMany(redactions []*Redact, w io.Writer, r io.Reader) error {
	bts, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bts) == 0 {
		_, err = w.Write(bts)
		return err
	}
	for _, red := range redactions {
		bts = red.matcher.ReplaceAll(bts, []byte(red.Replace))
	}
	_, err = w.Write(bts)
	return err
}

// String applies a slice of redaction rules to a string, wrapping it with a reader and writer, and returns
// the redacted string.
func String(result string, redactions []*Redact) (string, error) {
	r := strings.NewReader(result)
	buf := new(bytes.Buffer)
	err := ApplyMany(redactions, buf, r)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
