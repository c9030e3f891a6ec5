package summarizer

import (
	"fmt"

	"briefly/internal/domain/entity"
)

// KeyPointCount is the exact number of key points a successful response carries
// when the document is short, and the number of key-point candidates taken otherwise.
const KeyPointCount = 3

// Tier sentence counts. An unrecognized tier falls back to defaultTierCount.
const (
	shortTierCount   = 2
	mediumTierCount  = 4
	longTierCount    = 7
	defaultTierCount = 3
)

// TierCount returns how many sentences go into the summary for the given tier,
// capped at the number of available sentences n.
//
// Example:
//
//	TierCount(entity.SummaryLengthShort, 10) // 2
//	TierCount(entity.SummaryLengthLong, 5)   // 5
func TierCount(length entity.SummaryLength, n int) int {
	var count int
	switch length {
	case entity.SummaryLengthShort:
		count = shortTierCount
	case entity.SummaryLengthMedium:
		count = mediumTierCount
	case entity.SummaryLengthLong:
		count = longTierCount
	default:
		count = defaultTierCount
	}
	return min(count, n)
}

// Padding holds the fixed statements used to bring key points up to KeyPointCount.
type Padding struct {
	// Video is placed first when the source was a video reference.
	Video string
	// Generic statements are used in order after Video.
	Generic []string
}

// DefaultPadding returns the built-in padding statements.
func DefaultPadding() Padding {
	return Padding{
		Video: "This summary is based on the transcript of the referenced video.",
		Generic: []string{
			"The source contains additional details not captured in this summary.",
			"Review the full source for complete context.",
			"Key details may depend on context that a short summary cannot convey.",
		},
	}
}

// Validate ensures the padding can always fill KeyPointCount slots. Video may
// be empty, in which case video sources are padded with Generic only.
func (p Padding) Validate() error {
	if len(p.Generic) < KeyPointCount {
		return fmt.Errorf("padding needs at least %d generic statements, got %d", KeyPointCount, len(p.Generic))
	}
	statements := p.Generic
	if p.Video != "" {
		statements = append([]string{p.Video}, p.Generic...)
	}
	seen := make(map[string]struct{}, len(statements))
	for _, s := range statements {
		if s == "" {
			return fmt.Errorf("padding statement must not be empty")
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("duplicate padding statement %q", s)
		}
		seen[s] = struct{}{}
	}
	return nil
}
