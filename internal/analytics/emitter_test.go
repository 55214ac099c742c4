package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/draft"
)

func TestFlowStarted_BatchOrder(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	e := NewEmitter(rec)

	e.FlowStarted(draft.Draft{"subject": "Resumed subject"})

	require.Equal(t, []string{"setTicket", "setAction", "send"}, rec.Methods())
	assert.Equal(t, "Resumed subject", rec.Calls[0].Ticket.Subject)
	assert.Equal(t, ActionTicketCreateStart, rec.Calls[1].Action)
	assert.Nil(t, rec.Calls[1].Payload)
}

func TestFieldUpdated_BatchOrder(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	e := NewEmitter(rec)

	d := draft.Draft{
		"subject":     "This is a test subject",
		"description": "This is a test description long enough",
	}
	e.FieldUpdated(d, "Subject")

	require.Equal(t, []string{"setTicket", "setAction", "send"}, rec.Methods(),
		"a field update is exactly the three-call batch, in order")

	ticket := rec.Calls[0].Ticket
	assert.Equal(t, "This is a test subject", ticket.Subject)
	assert.Equal(t, "This is a test description long enough", ticket.Description)
	assert.Equal(t, "", ticket.Custom["reason"], "reason rides along even when unset")

	assert.Equal(t, ActionTicketFieldUpdate, rec.Calls[1].Action)
	assert.Equal(t, map[string]any{"fieldName": "Subject"}, rec.Calls[1].Payload)
}

func TestTicketCreated_CarriesRecordID(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	e := NewEmitter(rec)

	d := draft.Draft{"subject": "S", "description": "D", "reason": "R"}
	e.TicketCreated(d, "500-case-id")

	require.Equal(t, []string{"setTicket", "setAction", "send"}, rec.Methods())
	assert.Equal(t, "500-case-id", rec.Calls[0].Ticket.ID)
	assert.Equal(t, "R", rec.Calls[0].Ticket.Custom["reason"])
	assert.Equal(t, ActionTicketCreate, rec.Calls[1].Action)
	assert.Nil(t, rec.Calls[1].Payload)
}

func TestCancelled_TwoCallForm(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	e := NewEmitter(rec)

	e.Cancelled(CancelReasonQuit)

	require.Equal(t, []string{"setAction", "send"}, rec.Methods(),
		"a plain cancel carries no ticket snapshot")
	assert.Equal(t, ActionTicketCancel, rec.Calls[0].Action)
	assert.Equal(t, map[string]any{"reason": "Quit"}, rec.Calls[0].Payload)
}

func TestNextStage(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	e := NewEmitter(rec)

	e.NextStage("Create Case Screen")
	e.NextStage("")

	require.Equal(t, []string{"setAction", "send", "setAction", "send"}, rec.Methods())
	assert.Equal(t, map[string]any{"stageName": "Create Case Screen"}, rec.Calls[0].Payload)
	assert.Nil(t, rec.Calls[2].Payload, "empty stage name sends no payload")
}

func TestClassificationClicked(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	e := NewEmitter(rec)

	d := draft.Draft{"subject": "S", "description": "D"}
	e.ClassificationClicked(d, "priority", "High", "resp-1")

	require.Equal(t, []string{"setTicket", "setAction", "send"}, rec.Methods())
	assert.Equal(t, ActionTicketClassificationClick, rec.Calls[1].Action)
	assert.Equal(t, map[string]any{
		"fieldName":  "priority",
		"value":      "High",
		"responseId": "resp-1",
	}, rec.Calls[1].Payload)
}

func TestSuggestionClicked_PayloadShape(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	e := NewEmitter(rec)

	e.SuggestionClicked(SuggestionClick{
		SuggestionID:     "perm-1",
		ResponseID:       "resp-9",
		DocumentURI:      "https://docs.example.com/a",
		DocumentURIHash:  "hash-a",
		DocumentTitle:    "Fixing the widget",
		DocumentURL:      "https://example.com/a",
		DocumentPosition: 1,
	})

	require.Equal(t, []string{"setAction", "send"}, rec.Methods())
	payload := rec.Calls[0].Payload
	assert.Equal(t, "perm-1", payload["suggestionId"])
	assert.Equal(t, "resp-9", payload["responseId"])

	suggestion, ok := payload["suggestion"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Fixing the widget", suggestion["documentTitle"])
	assert.Equal(t, 1, suggestion["documentPosition"], "position is 1-based")
}

func TestSuggestionRated(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	e := NewEmitter(rec)

	e.SuggestionRated("perm-1", true)
	e.SuggestionRated("perm-2", false)

	require.Len(t, rec.Calls, 4)
	assert.Equal(t, "positive", rec.Calls[0].Payload["rating"])
	assert.Equal(t, "negative", rec.Calls[2].Payload["rating"])
}

func TestBatches_NeverInterleave(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	e := NewEmitter(rec)

	d := draft.Draft{"subject": "S"}
	e.FieldUpdated(d, "Subject")
	e.Cancelled(CancelReasonSolved)

	assert.Equal(t,
		[]string{"setTicket", "setAction", "send", "setAction", "send"},
		rec.Methods(),
		"each batch completes before the next begins")
}

// stallingSink blocks inside SetTicket until released, holding a batch open
// so a test can try to sneak a second batch in from another goroutine.
type stallingSink struct {
	rec     *Recorder
	entered chan struct{}
	release chan struct{}
}

func (s *stallingSink) SetTicket(ticket Ticket) {
	s.rec.SetTicket(ticket)
	close(s.entered)
	<-s.release
}

func (s *stallingSink) SetAction(name string, payload map[string]any) {
	s.rec.SetAction(name, payload)
}

func (s *stallingSink) Send() {
	s.rec.Send()
}

func TestConcurrentBatchesStayAtomic(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	sink := &stallingSink{
		rec:     rec,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	e := NewEmitter(sink)

	updateDone := make(chan struct{})
	go func() {
		e.FieldUpdated(draft.Draft{"subject": "S"}, "Subject")
		close(updateDone)
	}()
	<-sink.entered

	cancelDone := make(chan struct{})
	go func() {
		e.Cancelled(CancelReasonQuit)
		close(cancelDone)
	}()

	select {
	case <-cancelDone:
		t.Fatal("cancel batch landed inside an open field-update batch")
	case <-time.After(50 * time.Millisecond):
	}

	close(sink.release)
	<-updateDone
	<-cancelDone

	require.Equal(t,
		[]string{"setTicket", "setAction", "send", "setAction", "send"},
		rec.Methods())
	assert.Equal(t, ActionTicketFieldUpdate, rec.Calls[1].Action)
	assert.Equal(t, ActionTicketCancel, rec.Calls[3].Action)
}

func TestHTTPSink_DispatchesEvent(t *testing.T) {
	t.Parallel()

	received := make(chan clickEvent, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var ev clickEvent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		received <- ev
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	sink := NewHTTPSink(srv.URL, "tok", "visitor-1")
	e := NewEmitter(sink)
	e.FieldUpdated(draft.Draft{"subject": "S", "description": "D"}, "Subject")

	select {
	case ev := <-received:
		assert.Equal(t, "visitor-1", ev.VisitorID)
		assert.Equal(t, "svc", ev.EventType)
		assert.Equal(t, "click", ev.EventValue)
		assert.Equal(t, ActionTicketFieldUpdate, ev.ActionName)
		require.NotNil(t, ev.Ticket)
		assert.Equal(t, "S", ev.Ticket.Subject)
	case <-time.After(2 * time.Second):
		t.Fatal("analytics event never reached the collector")
	}
}

func TestHTTPSink_SendWithoutActionDropsBatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be dispatched")
	}))
	t.Cleanup(srv.Close)

	sink := NewHTTPSink(srv.URL, "", "visitor-1")
	sink.Send()

	time.Sleep(50 * time.Millisecond)
}

func TestHTTPSink_StagingClearsBetweenBatches(t *testing.T) {
	t.Parallel()

	events := make(chan clickEvent, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev clickEvent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		events <- ev
	}))
	t.Cleanup(srv.Close)

	sink := NewHTTPSink(srv.URL, "", "v")
	e := NewEmitter(sink)

	e.FieldUpdated(draft.Draft{"subject": "S"}, "Subject")
	e.Cancelled(CancelReasonQuit)

	var withTicket, withoutTicket int
	for i := 0; i < 2; i++ {
		select {
		case ev := <-events:
			if ev.Ticket != nil {
				withTicket++
			} else {
				withoutTicket++
			}
		case <-time.After(2 * time.Second):
			t.Fatal("missing analytics event")
		}
	}

	assert.Equal(t, 1, withTicket)
	assert.Equal(t, 1, withoutTicket, "the cancel batch must not inherit the previous ticket snapshot")
}
