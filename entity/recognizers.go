package entity

import (
	"regexp"
)

// recognizer pairs a pattern with an entity type and a base confidence score. When group is non-zero the
// detection span is that capture group rather than the whole match, which lets context words anchor a match
// without being redacted themselves. validate, when set, can adjust the score based on the matched text.
type recognizer struct {
	entityType string
	pattern    *regexp.Regexp
	score      float64
	group      int
	validate   func(match string) float64
}

func (r recognizer) detect(text string) []Detection {
	var detections []Detection
	for _, m := range r.pattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		if r.group > 0 {
			start, end = m[2*r.group], m[2*r.group+1]
			if start < 0 {
				continue
			}
		}
		score := r.score
		if r.validate != nil {
			score = r.validate(text[start:end])
		}
		detections = append(detections, Detection{
			EntityType: r.entityType,
			Start:      start,
			End:        end,
			Score:      score,
		})
	}
	return detections
}

func builtinRecognizers() []recognizer {
	return []recognizer{
		{
			entityType: EmailAddress,
			pattern:    regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
			score:      0.95,
		},
		{
			entityType: IPAddress,
			pattern:    regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
			score:      0.6,
			validate:   validateIPv4,
		},
		{
			entityType: USSSN,
			pattern:    regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
			score:      0.85,
		},
		{
			entityType: CreditCard,
			pattern:    regexp.MustCompile(`\b(?:\d[ -]?){13,16}\b`),
			score:      0.3,
			validate:   validateLuhn,
		},
		{
			entityType: PhoneNumber,
			pattern:    regexp.MustCompile(`(?:\+?1[ .-]?)?\(?\d{3}\)?[ .-]?\d{3}[ .-]?\d{4}\b`),
			score:      0.5,
		},
		{
			// Honorific followed by one or two capitalized words.
			entityType: Person,
			pattern:    regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr|Prof)\.?\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
			score:      0.8,
			group:      1,
		},
		{
			// Labeled name fields, e.g. "Name: John Smith".
			entityType: Person,
			pattern:    regexp.MustCompile(`(?i)\b(?:name|patient|customer|employee|applicant)\s*[:=]\s*(?-i)([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`),
			score:      0.75,
			group:      1,
		},
	}
}

// validateIPv4 boosts the pattern score when every octet is in range, and zeroes it otherwise.
func validateIPv4(match string) float64 {
	octet := 0
	count := 0
	for i := 0; i <= len(match); i++ {
		if i == len(match) || match[i] == '.' {
			if octet > 255 {
				return 0
			}
			octet = 0
			count++
			continue
		}
		octet = octet*10 + int(match[i]-'0')
	}
	if count != 4 {
		return 0
	}
	return 0.9
}

// validateLuhn runs the Luhn checksum over the digits of match. A passing checksum raises the score to
// near-certain; a failing one drops the match below any sane threshold.
func validateLuhn(match string) float64 {
	var digits []int
	for _, c := range match {
		if c >= '0' && c <= '9' {
			digits = append(digits, int(c-'0'))
		}
	}
	if len(digits) < 13 {
		return 0
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	if sum%10 == 0 {
		return 0.95
	}
	return 0.1
}
