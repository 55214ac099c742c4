// Package assist is the client for the external case-assist service, which
// predicts case field values (classifications) and recommends documents
// (suggestions) from the subject and description typed so far.
//
// The service owns the real intelligence; this package only fetches, decodes,
// filters, and caches. Failures are surfaced as errors for the flow layer to
// catch and degrade to an empty result.
package assist

// Prediction is one predicted value for a case field.
type Prediction struct {
	// ID identifies the prediction within its response, for click reporting.
	ID string `json:"id"`

	// Value is the predicted field value.
	Value string `json:"value"`

	// Confidence is the service's confidence in [0, 1].
	Confidence float64 `json:"confidence"`
}

// FieldPredictions holds the ranked predictions for one case field.
type FieldPredictions struct {
	Predictions []Prediction `json:"predictions"`
}

// ClassificationResponse is the decoded reply of a classifications fetch.
type ClassificationResponse struct {
	// Fields maps case field names to their predictions.
	Fields map[string]FieldPredictions `json:"fields"`

	// ResponseID ties subsequent click analytics back to this response.
	ResponseID string `json:"responseId"`
}

// Document is one suggested document.
type Document struct {
	Title          string            `json:"title"`
	Excerpt        string            `json:"excerpt"`
	ClickURI       string            `json:"clickUri"`
	UniqueID       string            `json:"uniqueId"`
	HasHTMLVersion bool              `json:"hasHtmlVersion"`
	Fields         map[string]string `json:"fields"`
}

// PermanentID returns the stable identifier used for vote tracking and
// suggestion click analytics, falling back to UniqueID when the service
// did not map one.
func (d Document) PermanentID() string {
	if id, ok := d.Fields["permanentid"]; ok && id != "" {
		return id
	}
	return d.UniqueID
}

// SuggestionResponse is the decoded reply of a document-suggestions fetch.
type SuggestionResponse struct {
	Documents  []Document `json:"documents"`
	ResponseID string     `json:"responseId"`
}

// Empty reports whether the response carries no usable documents.
func (r *SuggestionResponse) Empty() bool {
	return r == nil || len(r.Documents) == 0
}
