// Package votes tracks helpful/not-helpful votes on suggested documents.
//
// Vote history lives in the session, keyed by document id, so a user cannot
// inflate a document's score by voting twice in one run. The history is
// reset when the problem statement changes, because the old votes referred
// to suggestions for a different problem.
package votes

import (
	"context"
	"fmt"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/analytics"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/logging"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/session"
)

var logger = logging.New("votes")

// Vote is the recorded vote state for one document.
type Vote int

const (
	// VoteNone: the user has not voted on the document this session.
	VoteNone Vote = iota
	// VotePositive: the user voted the document helpful.
	VotePositive
	// VoteNegative: the user voted the document not helpful.
	VoteNegative
)

func (v Vote) String() string {
	switch v {
	case VotePositive:
		return "positive"
	case VoteNegative:
		return "negative"
	default:
		return "none"
	}
}

// Rater reads and bumps per-document helpfulness scores. *record.Client
// satisfies it.
type Rater interface {
	GetScore(ctx context.Context, documentID string) (int, error)
	IncrementScore(ctx context.Context, documentID string) error
}

// Tracker applies the one-vote-per-document policy over the session's vote
// history. Only helpful votes touch the stored score; a not-helpful vote is
// recorded in the history and reported, nothing else.
type Tracker struct {
	sess    *session.Session
	rater   Rater
	emitter *analytics.Emitter
}

// NewTracker creates a tracker over the given collaborators.
func NewTracker(sess *session.Session, rater Rater, emitter *analytics.Emitter) *Tracker {
	return &Tracker{sess: sess, rater: rater, emitter: emitter}
}

// State returns the vote recorded for the document this session.
func (t *Tracker) State(documentID string) Vote {
	if !contains(t.sess.VotedIDs(), documentID) {
		return VoteNone
	}
	if contains(t.sess.PositiveVotedIDs(), documentID) {
		return VotePositive
	}
	return VoteNegative
}

// Score returns the document's current helpfulness score, creating a
// zero-score record for documents never voted on.
func (t *Tracker) Score(ctx context.Context, documentID string) (int, error) {
	score, err := t.rater.GetScore(ctx, documentID)
	if err != nil {
		return 0, fmt.Errorf("votes: reading score: %w", err)
	}
	return score, nil
}

// Vote records the user's verdict on a document. A repeat vote on the same
// document is a no-op. Helpful votes increment the document's score; both
// kinds are reported to analytics.
func (t *Tracker) Vote(ctx context.Context, documentID string, positive bool) error {
	if t.State(documentID) != VoteNone {
		logger.Debug("repeat vote ignored", "documentId", documentID)
		return nil
	}

	if positive {
		if err := t.rater.IncrementScore(ctx, documentID); err != nil {
			return fmt.Errorf("votes: recording vote: %w", err)
		}
		t.sess.SetPositiveVotedIDs(append(t.sess.PositiveVotedIDs(), documentID))
	}
	t.sess.SetVotedIDs(append(t.sess.VotedIDs(), documentID))

	t.emitter.SuggestionRated(documentID, positive)
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
