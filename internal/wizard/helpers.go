package wizard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/huh"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/assist"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/draft"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/votes"
)

// classificationOptions builds the select options for a case field: the
// service's predictions first, ranked by confidence, then any fallback
// values not already predicted. The result is never empty.
func classificationOptions(classify *assist.ClassificationResponse, fieldName string, fallbacks []string) []huh.Option[string] {
	var predicted []assist.Prediction
	if classify != nil {
		predicted = append(predicted, classify.Fields[fieldName].Predictions...)
		sort.SliceStable(predicted, func(i, j int) bool {
			return predicted[i].Confidence > predicted[j].Confidence
		})
	}

	seen := make(map[string]bool, len(predicted)+len(fallbacks))
	options := make([]huh.Option[string], 0, len(predicted)+len(fallbacks))
	for _, p := range predicted {
		if p.Value == "" || seen[p.Value] {
			continue
		}
		seen[p.Value] = true
		options = append(options, huh.NewOption(p.Value+" (suggested)", p.Value))
	}
	for _, v := range fallbacks {
		if seen[v] {
			continue
		}
		seen[v] = true
		options = append(options, huh.NewOption(v, v))
	}
	return options
}

// isPredicted reports whether value is one of the service's predictions for
// fieldName, which decides whether picking it counts as a classification
// click or a plain field edit.
func isPredicted(classify *assist.ClassificationResponse, fieldName, value string) bool {
	if classify == nil {
		return false
	}
	for _, p := range classify.Fields[fieldName].Predictions {
		if p.Value == value {
			return true
		}
	}
	return false
}

// voteLabel maps a tracked vote to the browser's display label.
func voteLabel(v votes.Vote) string {
	switch v {
	case votes.VotePositive:
		return "positive"
	case votes.VoteNegative:
		return "negative"
	default:
		return ""
	}
}

// uriHash returns the hex xxhash of a document URI for click analytics.
func uriHash(uri string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(uri))
}

// summaryFields is the display order of the case review summary.
var summaryFields = []struct {
	name  string
	label string
}{
	{draft.FieldSubject, "Subject"},
	{draft.FieldDescription, "Description"},
	{draft.FieldPriority, "Priority"},
	{draft.FieldReason, "Reason"},
	{draft.FieldType, "Type"},
	{draft.FieldOrigin, "Origin"},
}

// caseSummary renders the draft as a label-per-line summary for the review
// screen. Unset fields are skipped.
func caseSummary(d draft.Draft) string {
	var sb strings.Builder
	for _, f := range summaryFields {
		if !d.Has(f.name) {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", f.label, d.Get(f.name))
	}
	return strings.TrimRight(sb.String(), "\n")
}
