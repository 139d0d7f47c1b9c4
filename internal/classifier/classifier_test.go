package classifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJudgment_PlainJSON(t *testing.T) {
	raw := []byte(`{"crime_type":"Robbery","weapons":"Knife","urgency_level":"High","authorities":["Police"]}`)

	j, err := ParseJudgment(raw)
	require.NoError(t, err)
	assert.Equal(t, "Robbery", j.CrimeType)
	assert.Equal(t, "High", j.UrgencyLevel)
	assert.Equal(t, []string{"Police"}, j.Authorities)
}

func TestParseJudgment_MarkdownFence(t *testing.T) {
	raw := []byte("```json\n{\"crime_type\": \"Arson\", \"urgency_level\": \"Very High\"}\n```")

	j, err := ParseJudgment(raw)
	require.NoError(t, err)
	assert.Equal(t, "Arson", j.CrimeType)
	assert.Equal(t, "Very High", j.UrgencyLevel)
}

func TestParseJudgment_SingleQuotes(t *testing.T) {
	raw := []byte(`{'crime_type': 'Theft', 'urgency_level': 'Low', 'authorities': ['Police']}`)

	j, err := ParseJudgment(raw)
	require.NoError(t, err)
	assert.Equal(t, "Theft", j.CrimeType)
	assert.Equal(t, "Low", j.UrgencyLevel)
}

func TestParseJudgment_EmptyUrgencyDefaultsMedium(t *testing.T) {
	j, err := ParseJudgment([]byte(`{"crime_type":"Vandalism"}`))
	require.NoError(t, err)
	assert.Equal(t, "Medium", j.UrgencyLevel)
}

func TestParseJudgment_Garbage(t *testing.T) {
	_, err := ParseJudgment([]byte("sorry, I cannot classify that"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDefaultJudgment(t *testing.T) {
	j := DefaultJudgment()
	assert.Equal(t, "Unknown", j.CrimeType)
	assert.Equal(t, "Medium", j.UrgencyLevel)
	assert.Equal(t, []string{"Police"}, j.Authorities)
}

func TestHTTPClient_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)
		w.Write([]byte(`{"crime_type":"Assault","urgency_level":"High","authorities":["Police","Ambulance"]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	j, err := c.Analyze(context.Background(), "two men fighting outside the bar")
	require.NoError(t, err)
	assert.Equal(t, "Assault", j.CrimeType)
	assert.Equal(t, []string{"Police", "Ambulance"}, j.Authorities)
}

func TestHTTPClient_Analyze_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.Analyze(context.Background(), "test")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_Analyze_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := NewHTTPClient(srv.URL)
	_, err := c.Analyze(ctx, "test")
	assert.ErrorIs(t, err, ErrUnavailable)
}
