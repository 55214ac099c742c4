package analytics

// Call records one sink invocation for order-sensitive assertions.
type Call struct {
	// Method is "setTicket", "setAction", or "send".
	Method string

	// Ticket is set when Method is "setTicket".
	Ticket Ticket

	// Action and Payload are set when Method is "setAction".
	Action  string
	Payload map[string]any
}

// Recorder is a Sink that records every call in order. Tests assert on the
// exact sequence to pin down the batch ordering contract.
type Recorder struct {
	Calls []Call
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SetTicket implements Sink.
func (r *Recorder) SetTicket(t Ticket) {
	r.Calls = append(r.Calls, Call{Method: "setTicket", Ticket: t})
}

// SetAction implements Sink.
func (r *Recorder) SetAction(name string, payload map[string]any) {
	r.Calls = append(r.Calls, Call{Method: "setAction", Action: name, Payload: payload})
}

// Send implements Sink.
func (r *Recorder) Send() {
	r.Calls = append(r.Calls, Call{Method: "send"})
}

// Reset discards all recorded calls.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Methods returns the ordered method names of all recorded calls.
func (r *Recorder) Methods() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Method
	}
	return out
}

// NopSink discards every call. Used when analytics reporting is disabled.
type NopSink struct{}

// SetTicket implements Sink.
func (NopSink) SetTicket(Ticket) {}

// SetAction implements Sink.
func (NopSink) SetAction(string, map[string]any) {}

// Send implements Sink.
func (NopSink) Send() {}
