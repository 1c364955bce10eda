package engine

import (
	"github.com/linescrub/linescrub/entity"
)

var _ Engine = &EntityEngine{}

// EntityEngine pairs the entity analyzer with the anonymizer: detections from the first feed the second.
// Lines with no detections pass through untouched.
type EntityEngine struct {
	language   string
	analyzer   *entity.Analyzer
	anonymizer *entity.Anonymizer
}

// NewEntityEngine builds the analyzer/anonymizer pair from the provided config.
func NewEntityEngine(cfg EntityConfig) (*EntityEngine, error) {
	language := cfg.Language
	if language == "" {
		language = "en"
	}

	analyzer, err := entity.NewAnalyzer(entity.AnalyzerConfig{
		Entities:       cfg.Entities,
		ScoreThreshold: cfg.ScoreThreshold,
	})
	if err != nil {
		return nil, err
	}

	return &EntityEngine{
		language:   language,
		analyzer:   analyzer,
		anonymizer: entity.NewAnonymizer(),
	}, nil
}

func (e *EntityEngine) Name() string {
	return EntityName
}

// Transform analyzes the line and anonymizes any detected entity spans.
func (e *EntityEngine) Transform(text string) (string, error) {
	detections, err := e.analyzer.Analyze(text, e.language)
	if err != nil {
		return "", err
	}
	if len(detections) == 0 {
		return text, nil
	}
	return e.anonymizer.Anonymize(text, detections).Text, nil
}
