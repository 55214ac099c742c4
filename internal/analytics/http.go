package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/logging"
)

var logger = logging.New("analytics")

// defaultDispatchTimeout bounds the fire-and-forget POST behind Send.
const defaultDispatchTimeout = 10 * time.Second

// clickEvent is the wire shape of one dispatched batch, modeled on the
// usage-analytics service's svc click event.
type clickEvent struct {
	VisitorID  string         `json:"visitorId"`
	EventType  string         `json:"eventType"`
	EventValue string         `json:"eventValue"`
	ActionName string         `json:"svcAction"`
	ActionData map[string]any `json:"svcActionData,omitempty"`
	Ticket     *Ticket        `json:"svcTicket,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// HTTPSink stages batch calls synchronously and dispatches the assembled
// event over HTTP on Send. Dispatch happens on a separate goroutine so Send
// returns immediately; failures are logged and dropped, never surfaced.
//
// HTTPSink is not safe for concurrent staging. That matches the batch
// contract: all three calls of a batch happen within one callback turn on
// the wizard goroutine.
type HTTPSink struct {
	url       string
	token     string
	visitorID string
	client    *http.Client

	stagedTicket *Ticket
	stagedAction string
	stagedData   map[string]any
}

// NewHTTPSink creates a sink posting to url. token may be empty for
// unauthenticated collectors. visitorID links all events of one run.
func NewHTTPSink(url, token, visitorID string) *HTTPSink {
	return &HTTPSink{
		url:       url,
		token:     token,
		visitorID: visitorID,
		client:    &http.Client{Timeout: defaultDispatchTimeout},
	}
}

// SetTicket implements Sink.
func (s *HTTPSink) SetTicket(t Ticket) {
	s.stagedTicket = &t
}

// SetAction implements Sink.
func (s *HTTPSink) SetAction(name string, payload map[string]any) {
	s.stagedAction = name
	s.stagedData = payload
}

// Send implements Sink. The staged state is captured before the goroutine
// starts, so a batch staged immediately after Send cannot race with the
// dispatch of the previous one.
func (s *HTTPSink) Send() {
	if s.stagedAction == "" {
		logger.Warn("send called with no staged action, dropping batch")
		return
	}

	ev := clickEvent{
		VisitorID:  s.visitorID,
		EventType:  "svc",
		EventValue: "click",
		ActionName: s.stagedAction,
		ActionData: s.stagedData,
		Ticket:     s.stagedTicket,
		Timestamp:  time.Now().UTC(),
	}

	s.stagedTicket = nil
	s.stagedAction = ""
	s.stagedData = nil

	go s.dispatch(ev)
}

func (s *HTTPSink) dispatch(ev clickEvent) {
	body, err := json.Marshal(ev)
	if err != nil {
		logger.Warn("encoding analytics event", "action", ev.ActionName, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDispatchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		logger.Warn("building analytics request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn("dispatching analytics event", "action", ev.ActionName, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		logger.Warn("analytics collector rejected event",
			"action", ev.ActionName, "status", resp.StatusCode)
		return
	}
	logger.Debug("analytics event sent", "action", ev.ActionName)
}
