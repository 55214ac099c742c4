package session

import "encoding/json"

// Session wraps a Store with a typed accessor per well-known key. Controllers
// receive a *Session by injection; nothing in the flow reads the raw keys.
type Session struct {
	store Store
}

// New wraps store in a typed Session.
func New(store Store) *Session {
	return &Session{store: store}
}

// CaseData returns the serialized case draft and whether one was stored.
func (s *Session) CaseData() (string, bool) {
	return s.store.Get(KeyCaseData)
}

// SetCaseData stores the serialized case draft.
func (s *Session) SetCaseData(serialized string) {
	s.store.Set(KeyCaseData, serialized)
}

// PreviousNavigation reports whether the last transition was backward.
func (s *Session) PreviousNavigation() bool {
	v, ok := s.store.Get(KeyPreviousNavigation)
	return ok && v == "true"
}

// SetPreviousNavigation records the direction of the last transition.
func (s *Session) SetPreviousNavigation(backward bool) {
	if backward {
		s.store.Set(KeyPreviousNavigation, "true")
	} else {
		s.store.Set(KeyPreviousNavigation, "false")
	}
}

// VotedIDs returns the ids of documents the user has already voted on.
// An absent or malformed entry yields an empty list.
func (s *Session) VotedIDs() []string {
	return s.idList(KeyIDsPreviouslyVoted)
}

// SetVotedIDs replaces the list of already-voted document ids.
func (s *Session) SetVotedIDs(ids []string) {
	s.setIDList(KeyIDsPreviouslyVoted, ids)
}

// PositiveVotedIDs returns the ids of documents the user voted helpful.
func (s *Session) PositiveVotedIDs() []string {
	return s.idList(KeyIDsPreviouslyVotedPositive)
}

// SetPositiveVotedIDs replaces the list of positively voted document ids.
func (s *Session) SetPositiveVotedIDs(ids []string) {
	s.setIDList(KeyIDsPreviouslyVotedPositive, ids)
}

// ResetVotes empties both vote lists. Called when the subject and
// description are replaced, because earlier votes referred to suggestions
// for the old problem statement.
func (s *Session) ResetVotes() {
	s.SetVotedIDs([]string{})
	s.SetPositiveVotedIDs([]string{})
}

// Clear removes the whole session. Called when the flow completes.
func (s *Session) Clear() {
	s.store.Clear()
}

func (s *Session) idList(key string) []string {
	raw, ok := s.store.Get(key)
	if !ok {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		logger.Warn("malformed id list in session", "key", key, "error", err)
		return []string{}
	}
	return ids
}

func (s *Session) setIDList(key string, ids []string) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		// A []string cannot fail to marshal; guard anyway.
		logger.Warn("encoding id list", "key", key, "error", err)
		return
	}
	s.store.Set(key, string(data))
}
