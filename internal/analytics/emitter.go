package analytics

import (
	"sync"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/draft"
)

// SuggestionClick describes a clicked document suggestion for the
// suggestion_click payload. DocumentPosition is 1-based.
type SuggestionClick struct {
	SuggestionID     string
	ResponseID       string
	DocumentURI      string
	DocumentURIHash  string
	DocumentTitle    string
	DocumentURL      string
	DocumentPosition int
}

// Emitter produces the fixed-order batches for every wizard action. It is a
// thin sequencing layer over a Sink: each method issues its calls
// back-to-back under one mutex, so a batch is atomic even when emitted from
// different goroutines (the debounce timer fires off the wizard goroutine).
// Everything sharing a sink must share the Emitter wrapping it; the sink
// itself carries staged state between SetTicket/SetAction and Send.
type Emitter struct {
	mu   sync.Mutex
	sink Sink
}

// NewEmitter creates an Emitter over sink.
func NewEmitter(sink Sink) *Emitter {
	return &Emitter{sink: sink}
}

// snapshot builds the ticket snapshot from the collected draft. The reason
// field rides in the custom map even when unset so downstream reporting sees
// a stable shape.
func snapshot(d draft.Draft) Ticket {
	return Ticket{
		Subject:     d.Subject(),
		Description: d.Description(),
		Custom: map[string]any{
			draft.FieldReason: d.Get(draft.FieldReason),
		},
	}
}

// FlowStarted reports the user entering the case-creation flow. The draft
// may be non-empty when a previous run is being resumed.
func (e *Emitter) FlowStarted(d draft.Draft) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sink.SetTicket(snapshot(d))
	e.sink.SetAction(ActionTicketCreateStart, nil)
	e.sink.Send()
}

// FieldUpdated reports a debounced edit to fieldName. Three calls:
// snapshot, ticket_field_update with the field name, send.
func (e *Emitter) FieldUpdated(d draft.Draft, fieldName string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sink.SetTicket(snapshot(d))
	e.sink.SetAction(ActionTicketFieldUpdate, map[string]any{"fieldName": fieldName})
	e.sink.Send()
}

// TicketCreated reports a successfully filed case carrying the new record id.
func (e *Emitter) TicketCreated(d draft.Draft, recordID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := snapshot(d)
	t.ID = recordID
	e.sink.SetTicket(t)
	e.sink.SetAction(ActionTicketCreate, nil)
	e.sink.Send()
}

// Cancelled reports an abandoned flow. This is the two-call form: there is
// no ticket snapshot update on a plain cancel.
func (e *Emitter) Cancelled(reason string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sink.SetAction(ActionTicketCancel, map[string]any{"reason": reason})
	e.sink.Send()
}

// NextStage reports a forward navigation. stageName may be empty; when set
// it identifies the stage being left.
func (e *Emitter) NextStage(stageName string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var payload map[string]any
	if stageName != "" {
		payload = map[string]any{"stageName": stageName}
	}
	e.sink.SetAction(ActionTicketNextStage, payload)
	e.sink.Send()
}

// ClassificationClicked reports the user picking a suggested field value.
func (e *Emitter) ClassificationClicked(d draft.Draft, fieldName, value, responseID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sink.SetTicket(snapshot(d))
	e.sink.SetAction(ActionTicketClassificationClick, map[string]any{
		"fieldName":  fieldName,
		"value":      value,
		"responseId": responseID,
	})
	e.sink.Send()
}

// SuggestionClicked reports the user opening a suggested document.
func (e *Emitter) SuggestionClicked(click SuggestionClick) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sink.SetAction(ActionSuggestionClick, map[string]any{
		"suggestionId": click.SuggestionID,
		"responseId":   click.ResponseID,
		"suggestion": map[string]any{
			"documentUri":      click.DocumentURI,
			"documentUriHash":  click.DocumentURIHash,
			"documentTitle":    click.DocumentTitle,
			"documentUrl":      click.DocumentURL,
			"documentPosition": click.DocumentPosition,
		},
	})
	e.sink.Send()
}

// SuggestionRated reports a helpful/not-helpful vote on a suggestion.
func (e *Emitter) SuggestionRated(suggestionID string, positive bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rating := "negative"
	if positive {
		rating = "positive"
	}
	e.sink.SetAction(ActionSuggestionRate, map[string]any{
		"suggestionId": suggestionID,
		"rating":       rating,
	})
	e.sink.Send()
}
