// Package draft models the case draft: the field values accumulated across
// wizard steps and carried between screens as a JSON-serialized string.
//
// A Draft is a value, not a store. Commit operations return merged copies
// and never touch global state; callers own persistence (writing the result
// to the session and signalling the hosting flow). That separation keeps
// every merge rule directly testable.
package draft

import "encoding/json"

// Canonical case field names. Unknown fields are carried verbatim; these
// constants exist so steps and collaborators agree on spelling.
const (
	FieldSubject     = "subject"
	FieldDescription = "description"
	FieldPriority    = "priority"
	FieldReason      = "reason"
	FieldType        = "type"
	FieldOrigin      = "origin"
)

// Draft maps case field names to their collected values. Unset fields are
// absent from the map rather than stored as empty strings.
type Draft map[string]string

// Empty returns a new empty draft.
func Empty() Draft {
	return Draft{}
}

// Parse decodes a JSON-serialized draft. The error is returned so callers
// can apply the non-fatal recovery policy (warn and continue empty).
func Parse(serialized string) (Draft, error) {
	if serialized == "" {
		return Empty(), nil
	}
	var d Draft
	if err := json.Unmarshal([]byte(serialized), &d); err != nil {
		return Empty(), err
	}
	if d == nil {
		d = Empty()
	}
	return d, nil
}

// Serialize encodes the draft as JSON. An empty draft serializes as {}.
func (d Draft) Serialize() string {
	if d == nil {
		return "{}"
	}
	data, err := json.Marshal(d)
	if err != nil {
		// A map[string]string cannot fail to marshal.
		return "{}"
	}
	return string(data)
}

// Get returns the value of field, or the empty string when unset.
func (d Draft) Get(field string) string {
	return d[field]
}

// Has reports whether field has been collected.
func (d Draft) Has(field string) bool {
	_, ok := d[field]
	return ok
}

// Subject returns the collected subject, or "".
func (d Draft) Subject() string { return d[FieldSubject] }

// Description returns the collected description, or "".
func (d Draft) Description() string { return d[FieldDescription] }

// Commit returns a copy of d with partial shallow-merged over it. The merge
// is additive: fields absent from partial are preserved, so a later step can
// never silently discard what an earlier step collected. d is not mutated.
func (d Draft) Commit(partial map[string]string) Draft {
	merged := make(Draft, len(d)+len(partial))
	for k, v := range d {
		merged[k] = v
	}
	for k, v := range partial {
		merged[k] = v
	}
	return merged
}

// CommitProblem applies the describe-problem replacement policy: subject and
// description are owned as a pair by the committing step and replace the
// previous pair outright, while every other collected field is preserved.
// The returned flag reports whether the pair actually changed; when it did,
// the caller must reset the vote-tracking session keys because earlier votes
// referred to suggestions for the old problem statement.
func (d Draft) CommitProblem(subject, description string) (Draft, bool) {
	changed := d[FieldSubject] != subject || d[FieldDescription] != description
	merged := d.Commit(map[string]string{
		FieldSubject:     subject,
		FieldDescription: description,
	})
	return merged, changed
}
