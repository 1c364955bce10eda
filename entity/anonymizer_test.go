package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymizer_Anonymize(t *testing.T) {
	an := NewAnonymizer()

	tcs := []struct {
		name       string
		input      string
		detections []Detection
		expect     string
	}{
		{
			name:       "no detections leaves text alone",
			input:      "nothing sensitive",
			detections: nil,
			expect:     "nothing sensitive",
		},
		{
			name:  "single replacement",
			input: "mail me at a@b.io now",
			detections: []Detection{
				{EntityType: EmailAddress, Start: 11, End: 17, Score: 0.95},
			},
			expect: "mail me at <EMAIL_ADDRESS> now",
		},
		{
			name:  "multiple replacements",
			input: "a@b.io or 10.0.0.1",
			detections: []Detection{
				{EntityType: EmailAddress, Start: 0, End: 6, Score: 0.95},
				{EntityType: IPAddress, Start: 10, End: 18, Score: 0.9},
			},
			expect: "<EMAIL_ADDRESS> or <IP_ADDRESS>",
		},
		{
			name:  "overlap resolved by score",
			input: "4111111111111111",
			detections: []Detection{
				{EntityType: CreditCard, Start: 0, End: 16, Score: 0.95},
				{EntityType: PhoneNumber, Start: 5, End: 16, Score: 0.5},
			},
			expect: "<CREDIT_CARD>",
		},
		{
			name:  "out of range detection skipped",
			input: "short",
			detections: []Detection{
				{EntityType: EmailAddress, Start: 0, End: 50, Score: 0.95},
			},
			expect: "short",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			result := an.Anonymize(tc.input, tc.detections)
			assert.Equal(t, tc.expect, result.Text)
		})
	}
}

func TestResolveOverlaps(t *testing.T) {
	detections := []Detection{
		{EntityType: PhoneNumber, Start: 5, End: 16, Score: 0.5},
		{EntityType: CreditCard, Start: 0, End: 16, Score: 0.95},
		{EntityType: EmailAddress, Start: 20, End: 26, Score: 0.95},
	}

	kept := resolveOverlaps(detections)
	require.Len(t, kept, 2)
	assert.Equal(t, CreditCard, kept[0].EntityType)
	assert.Equal(t, EmailAddress, kept[1].EntityType)
}
