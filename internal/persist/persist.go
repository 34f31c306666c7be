// Package persist talks to the external persistence collaborator — the
// marketing platform sync endpoint that durably stores duplicated custom
// objects and assigns canonical identifiers.
package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"schemaforge/internal/domain"
)

// Persister is the persistence collaborator contract for duplicate
// operations. Exactly one of the returned object and error is set. The
// returned object may carry server-assigned fields, in particular a
// canonical ID differing from the submitted one.
type Persister interface {
	DuplicateCustomObject(ctx context.Context, duplicate *domain.CustomObject) (*domain.CustomObject, error)
}

// envelope is the collaborator's wire response: exactly one of data/error is
// non-null.
type envelope struct {
	Data  *domain.CustomObject `json:"data"`
	Error *string              `json:"error"`
}

// Client is an HTTP Persister against a remote sync endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// DuplicateCustomObject submits a locally-computed duplicate to the remote
// endpoint and returns the canonical object it stored. All failures are
// reported as PersistenceError carrying the collaborator's message.
func (c *Client) DuplicateCustomObject(ctx context.Context, duplicate *domain.CustomObject) (*domain.CustomObject, error) {
	body, err := json.Marshal(duplicate)
	if err != nil {
		return nil, &domain.PersistenceError{Msg: fmt.Sprintf("encode duplicate request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/custom-objects/duplicate", bytes.NewReader(body))
	if err != nil {
		return nil, &domain.PersistenceError{Msg: fmt.Sprintf("build duplicate request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.PersistenceError{Msg: fmt.Sprintf("call persistence collaborator: %v", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &domain.PersistenceError{Msg: fmt.Sprintf("decode collaborator response: %v", err)}
	}

	if env.Error != nil {
		return nil, &domain.PersistenceError{Msg: *env.Error}
	}
	if env.Data == nil {
		return nil, &domain.PersistenceError{Msg: "collaborator returned neither data nor error"}
	}
	return env.Data, nil
}

// Local is a Persister for standalone operation with no remote endpoint
// configured. It accepts every duplicate unchanged.
type Local struct{}

// DuplicateCustomObject echoes the submitted duplicate back as canonical.
func (Local) DuplicateCustomObject(_ context.Context, duplicate *domain.CustomObject) (*domain.CustomObject, error) {
	return duplicate, nil
}
