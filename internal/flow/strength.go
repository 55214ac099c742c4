package flow

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Strength thresholds, in percent of the strong word count.
const (
	strengthKeepGoing = 50
	strengthFull      = 100
)

// Guidance messages keyed to how far along the description is.
const (
	StrengthMsgStart     = "Provide details about your problem."
	StrengthMsgKeepGoing = "Keep going, add more details to get better help."
	StrengthMsgAlmost    = "Almost there, a few more words make a strong description."
	StrengthMsgStrong    = "Thank you! Your description looks strong."
)

// StrengthIndicator scores a free-text description by word count against a
// target length and maps the score to a guidance message. Markup tags in
// the text count as separators, not words.
type StrengthIndicator struct {
	strongLength int
}

// NewStrengthIndicator creates an indicator that considers a description
// strong at strongLength words. Non-positive lengths fall back to 30 words.
func NewStrengthIndicator(strongLength int) *StrengthIndicator {
	if strongLength <= 0 {
		strongLength = 30
	}
	return &StrengthIndicator{strongLength: strongLength}
}

// WordCount counts the words of text after replacing markup tags with
// spaces.
func (si *StrengthIndicator) WordCount(text string) int {
	plain := tagPattern.ReplaceAllString(text, " ")
	return len(strings.Fields(plain))
}

// Progress returns the description's strength as a percentage, capped at
// 100.
func (si *StrengthIndicator) Progress(text string) int {
	p := si.WordCount(text) * 100 / si.strongLength
	if p > strengthFull {
		return strengthFull
	}
	return p
}

// Message returns the guidance message for the given text.
func (si *StrengthIndicator) Message(text string) string {
	switch p := si.Progress(text); {
	case p == 0:
		return StrengthMsgStart
	case p < strengthKeepGoing:
		return StrengthMsgKeepGoing
	case p < strengthFull:
		return StrengthMsgAlmost
	default:
		return StrengthMsgStrong
	}
}
