// Package entity detects and anonymizes PII entities in plain text. The Analyzer locates entity spans with
// pattern and context recognizers, and the Anonymizer replaces those spans with placeholder tokens.
package entity

import (
	"fmt"
	"sort"
	"strings"
)

// Supported entity types.
const (
	EmailAddress = "EMAIL_ADDRESS"
	PhoneNumber  = "PHONE_NUMBER"
	USSSN        = "US_SSN"
	CreditCard   = "CREDIT_CARD"
	IPAddress    = "IP_ADDRESS"
	Person       = "PERSON"
)

// DefaultScoreThreshold filters out low-confidence detections unless the caller overrides it.
const DefaultScoreThreshold = 0.4

// Detection is one located entity span. Start and End are byte offsets into the analyzed text, with End
// exclusive.
type Detection struct {
	EntityType string  `json:"entity_type"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Score      float64 `json:"score"`
}

// AnalyzerConfig tunes which recognizers run and how confident a detection must be to be reported.
type AnalyzerConfig struct {
	// Entities is an allow-list of entity types. Empty means all supported types.
	Entities []string

	// ScoreThreshold drops detections scoring below it. Zero means DefaultScoreThreshold.
	ScoreThreshold float64
}

// Analyzer locates PII entity spans in text.
type Analyzer struct {
	recognizers []recognizer
	threshold   float64
}

// NewAnalyzer builds an Analyzer from the provided config. Unknown entity types in the allow-list are
// rejected so that a typo does not silently disable detection.
func NewAnalyzer(cfg AnalyzerConfig) (*Analyzer, error) {
	threshold := cfg.ScoreThreshold
	if threshold == 0 {
		threshold = DefaultScoreThreshold
	}

	all := builtinRecognizers()
	if len(cfg.Entities) == 0 {
		return &Analyzer{recognizers: all, threshold: threshold}, nil
	}

	known := make(map[string]bool, len(all))
	for _, r := range all {
		known[r.entityType] = true
	}
	allowed := make(map[string]bool, len(cfg.Entities))
	for _, e := range cfg.Entities {
		e = strings.ToUpper(e)
		if !known[e] {
			return nil, fmt.Errorf("unsupported entity type, entity=%s", e)
		}
		allowed[e] = true
	}

	var keep []recognizer
	for _, r := range all {
		if allowed[r.entityType] {
			keep = append(keep, r)
		}
	}
	return &Analyzer{recognizers: keep, threshold: threshold}, nil
}

// Analyze scans text for PII entities and returns the detections that meet the analyzer's score threshold,
// ordered by start offset. Only English ("en") text is supported.
func (a *Analyzer) Analyze(text, language string) ([]Detection, error) {
	if language != "en" {
		return nil, fmt.Errorf("unsupported language, language=%s", language)
	}

	var detections []Detection
	for _, r := range a.recognizers {
		detections = append(detections, r.detect(text)...)
	}

	filtered := detections[:0]
	for _, d := range detections {
		if d.Score >= a.threshold {
			filtered = append(filtered, d)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Start != filtered[j].Start {
			return filtered[i].Start < filtered[j].Start
		}
		return filtered[i].Score > filtered[j].Score
	})
	return filtered, nil
}
