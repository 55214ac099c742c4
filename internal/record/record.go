// Package record creates and updates support-desk records: the case filed at
// the end of the wizard and the per-document rating counters behind the vote
// tracker.
//
// Unlike the assist and analytics collaborators, failures here are not
// silently degraded: a failed case creation propagates so the flow can keep
// the draft uncommitted and let the user retry.
package record

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/draft"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/logging"
)

var logger = logging.New("record")

// ErrNoCaseID is returned when the service accepts a case but the reply
// carries no record id.
var ErrNoCaseID = errors.New("record: case created without an id")

// defaultTimeout bounds each request to the records service.
const defaultTimeout = 15 * time.Second

// Case fields forwarded on creation, in the service's capitalized spelling.
var caseFieldNames = map[string]string{
	draft.FieldSubject:     "Subject",
	draft.FieldDescription: "Description",
	draft.FieldReason:      "Reason",
	draft.FieldPriority:    "Priority",
	draft.FieldType:        "Type",
	draft.FieldOrigin:      "Origin",
}

// Client talks to the records service.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a records client for the service at baseURL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// CreateCase files a new case from the collected field values and returns
// the created record's id. Unknown fields are dropped; known fields are
// forwarded under their service spelling even when empty.
func (c *Client) CreateCase(ctx context.Context, fields map[string]string) (string, error) {
	payload := map[string]string{}
	for name, serviceName := range caseFieldNames {
		payload[serviceName] = fields[name]
	}

	var reply struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/cases", map[string]any{"fields": payload}, &reply); err != nil {
		return "", fmt.Errorf("record: creating case: %w", err)
	}
	if reply.ID == "" {
		return "", ErrNoCaseID
	}

	logger.Info("case created", "id", reply.ID)
	return reply.ID, nil
}

// rating is the wire shape of one rating record.
type rating struct {
	DocumentID string `json:"documentId"`
	Score      int    `json:"score"`
}

// GetScore returns the rating score for documentID, creating a zero-score
// rating record when none exists yet.
func (c *Client) GetScore(ctx context.Context, documentID string) (int, error) {
	ratings, err := c.findRatings(ctx, documentID)
	if err != nil {
		return 0, fmt.Errorf("record: getting rating: %w", err)
	}
	if len(ratings) == 0 {
		created := rating{DocumentID: documentID, Score: 0}
		if err := c.do(ctx, http.MethodPost, "/ratings", created, nil); err != nil {
			return 0, fmt.Errorf("record: creating rating: %w", err)
		}
		return 0, nil
	}
	return ratings[0].Score, nil
}

// IncrementScore bumps the rating score for documentID by one. A document
// without a rating record is left untouched.
func (c *Client) IncrementScore(ctx context.Context, documentID string) error {
	ratings, err := c.findRatings(ctx, documentID)
	if err != nil {
		return fmt.Errorf("record: incrementing rating: %w", err)
	}
	if len(ratings) == 0 {
		logger.Warn("no rating record to increment", "documentId", documentID)
		return nil
	}

	updated := ratings[0]
	updated.Score++
	if err := c.do(ctx, http.MethodPut, "/ratings", updated, nil); err != nil {
		return fmt.Errorf("record: incrementing rating: %w", err)
	}
	return nil
}

func (c *Client) findRatings(ctx context.Context, documentID string) ([]rating, error) {
	q := url.Values{}
	q.Set("documentId", documentID)

	var ratings []rating
	if err := c.do(ctx, http.MethodGet, "/ratings?"+q.Encode(), nil, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// do performs one JSON request/response round trip.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("service error: status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
