package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"crimewatch/backend/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperr.Validation, apperr.KindOf(apperr.New(apperr.Validation, "bad input")))
	assert.Equal(t, apperr.Conflict, apperr.KindOf(apperr.Newf(apperr.Conflict, "already %s", "accepted")))
	assert.Equal(t, apperr.Internal, apperr.KindOf(errors.New("plain")))
	assert.Equal(t, apperr.Internal, apperr.KindOf(nil))
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := apperr.New(apperr.NotFound, "report 7 not found")
	outer := fmt.Errorf("handling request: %w", inner)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(outer))
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Wrap(apperr.Routing, "failed to assign authorities", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "routing")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIs(t *testing.T) {
	err := apperr.New(apperr.Forbidden, "authority role required")
	assert.True(t, apperr.Is(err, apperr.Forbidden))
	assert.False(t, apperr.Is(err, apperr.NotFound))
}
