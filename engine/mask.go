package engine

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	defaultMaskChar    = "*"
	defaultMinDigitRun = 6
)

// secretShaped matches long tokens that look like credentials: 20+ characters from the usual key alphabets.
var secretShaped = regexp.MustCompile(`[A-Za-z0-9+/_=-]{20,}`)

var _ Engine = &Masker{}

// Masker is the generic redaction processor. It has no notion of entity types; it masks digit runs (keeping
// the last four digits for correlation) and fully masks secret-shaped tokens.
type Masker struct {
	maskChar    string
	minDigitRun int

	digitRun *regexp.Regexp
}

// NewMasker builds a Masker from the provided config, applying defaults for unset fields.
func NewMasker(cfg MaskConfig) (*Masker, error) {
	maskChar := cfg.MaskChar
	if maskChar == "" {
		maskChar = defaultMaskChar
	}
	if len(maskChar) != 1 {
		return nil, fmt.Errorf("mask char must be a single character, mask_char=%s", maskChar)
	}

	minDigitRun := cfg.MinDigitRun
	if minDigitRun == 0 {
		minDigitRun = defaultMinDigitRun
	}
	if minDigitRun < 5 {
		return nil, fmt.Errorf("min digit run must leave room for the preserved tail, min_digit_run=%d", minDigitRun)
	}

	digitRun, err := regexp.Compile(fmt.Sprintf(`\d{%d,}`, minDigitRun))
	if err != nil {
		return nil, err
	}

	return &Masker{
		maskChar:    maskChar,
		minDigitRun: minDigitRun,
		digitRun:    digitRun,
	}, nil
}

func (m *Masker) Name() string {
	return MaskName
}

// Transform masks digit runs and secret-shaped tokens in the line.
func (m *Masker) Transform(text string) (string, error) {
	out := m.digitRun.ReplaceAllStringFunc(text, func(run string) string {
		return strings.Repeat(m.maskChar, len(run)-4) + run[len(run)-4:]
	})
	out = secretShaped.ReplaceAllStringFunc(out, func(token string) string {
		if !looksSecret(token) {
			return token
		}
		return strings.Repeat(m.maskChar, len(token))
	})
	return out, nil
}

// looksSecret requires both letters and digits in a token, which keeps ordinary long words and bare
// numbers (already handled by the digit-run pass) out of the full mask.
func looksSecret(token string) bool {
	var hasLetter, hasDigit bool
	for _, c := range token {
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			hasLetter = true
		}
	}
	return hasLetter && hasDigit
}
