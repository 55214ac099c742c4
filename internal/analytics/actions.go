// Package analytics reports wizard interactions to the usage-analytics
// service as ordered event batches.
//
// Every user-visible action produces one batch with a fixed call order:
// an optional ticket snapshot (SetTicket), the semantic action (SetAction),
// and a terminal Send that dispatches the event. The three calls of a batch
// are issued synchronously within one callback turn so batches from distinct
// actions never interleave; only the network dispatch behind Send is
// asynchronous.
package analytics

// Supported analytics action names.
const (
	ActionTicketCreateStart         = "ticket_create_start"
	ActionTicketClassificationClick = "ticket_classification_click"
	ActionTicketFieldUpdate         = "ticket_field_update"
	ActionTicketNextStage           = "ticket_next_stage"
	ActionTicketCreate              = "ticket_create"
	ActionTicketCancel              = "ticket_cancel"
	ActionSuggestionClick           = "suggestion_click"
	ActionSuggestionRate            = "suggestion_rate"
)

// Cancellation reasons carried on ticket_cancel.
const (
	// CancelReasonQuit is sent when the user abandons the flow outright.
	CancelReasonQuit = "Quit"

	// CancelReasonSolved is sent when a suggested document solved the
	// problem and no case needs to be filed.
	CancelReasonSolved = "Solved"
)

// Ticket is the case snapshot attached to a batch via SetTicket. It carries
// the full field set known at the time of the action.
type Ticket struct {
	Subject     string         `json:"subject"`
	Description string         `json:"description"`
	ID          string         `json:"id,omitempty"`
	Custom      map[string]any `json:"custom,omitempty"`
}

// Sink receives the ordered calls of an analytics batch. Implementations
// must tolerate SetAction without a preceding SetTicket (the two-call form
// used for plain cancellations) but may assume Send terminates every batch.
type Sink interface {
	// SetTicket stages the current case snapshot for the next Send.
	SetTicket(t Ticket)

	// SetAction stages the semantic action name and its optional payload.
	SetAction(name string, payload map[string]any)

	// Send dispatches the staged batch. Fire-and-forget: no result is
	// consumed and failures must not surface to the caller.
	Send()
}
