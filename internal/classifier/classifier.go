// Package classifier wraps the external NLP judgment service. From the
// core's perspective it is a pure function from a description string to
// a structured judgment; every fault degrades to DefaultJudgment so a
// classifier outage can never fail a report submission.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnavailable indicates the classification service is unreachable or
// returned something unusable.
var ErrUnavailable = errors.New("classification service unavailable")

// Judgment is the structured assessment of a free-text description.
type Judgment struct {
	CrimeType      string   `json:"crime_type"`
	Weapons        string   `json:"weapons"`
	PeopleInvolved string   `json:"people_involved"`
	Injured        int      `json:"injured"`
	UrgencyLevel   string   `json:"urgency_level"`
	Authorities    []string `json:"authorities"`
}

// DefaultJudgment is the fixed fallback used on any call failure,
// malformed response, or parse error.
func DefaultJudgment() *Judgment {
	return &Judgment{
		CrimeType:      "Unknown",
		Weapons:        "None reported",
		PeopleInvolved: "Unknown",
		Injured:        0,
		UrgencyLevel:   "Medium",
		Authorities:    []string{"Police"},
	}
}

// Client turns free text into a structured judgment.
type Client interface {
	Analyze(ctx context.Context, description string) (*Judgment, error)
}

// HTTPClient talks to the NLP service over HTTP.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
}

// NewHTTPClient creates a classifier client for the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{baseURL: baseURL, httpc: http.DefaultClient}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// Analyze sends the description for classification. The caller is
// expected to bound ctx with a deadline; a hung service must not hang
// the whole submission.
func (c *HTTPClient) Analyze(ctx context.Context, description string) (*Judgment, error) {
	body, err := json.Marshal(analyzeRequest{Text: description})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return ParseJudgment(raw)
}

// ParseJudgment decodes a judgment from the service response. LLM-backed
// services tend to wrap the JSON in markdown fences or use single
// quotes; both are cleaned up before decoding.
func ParseJudgment(raw []byte) (*Judgment, error) {
	text := string(raw)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```python", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	var j Judgment
	if err := json.Unmarshal([]byte(text), &j); err != nil {
		// Second try with single quotes swapped for double quotes.
		if err2 := json.Unmarshal([]byte(strings.ReplaceAll(text, "'", `"`)), &j); err2 != nil {
			return nil, fmt.Errorf("%w: parse judgment: %w", ErrUnavailable, err)
		}
	}

	if j.UrgencyLevel == "" {
		j.UrgencyLevel = "Medium"
	}
	return &j, nil
}
