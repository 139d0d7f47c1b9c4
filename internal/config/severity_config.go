package config

import (
	"fmt"
	"sync"
	"time"
)

// Severity bounds and defaults for the scoring pipeline.
const (
	MinSeverity = 1
	MaxSeverity = 5

	// DefaultUserWeight favours the model: final = 0.3*user + 0.7*model.
	DefaultUserWeight = 0.3

	// DefaultAlertThreshold is the severity at or above which ops are
	// paged through the Telegram notifier.
	DefaultAlertThreshold = 4

	// ClassifierTimeout bounds the external NLP call; past it the
	// pipeline falls back to the default judgment.
	ClassifierTimeout = 10 * time.Second

	// JudgmentCacheTTL is how long classifier judgments live in Redis.
	JudgmentCacheTTL = 24 * time.Hour
)

// SeveritySettings are the admin-tunable knobs of the scoring pipeline.
type SeveritySettings struct {
	UserWeight     float64 `json:"user_weight"`
	AlertThreshold int     `json:"alert_threshold"`
}

// Validate rejects settings outside their allowed ranges.
func (s SeveritySettings) Validate() error {
	if s.UserWeight < 0 || s.UserWeight > 1 {
		return fmt.Errorf("user_weight must be in [0,1], got %v", s.UserWeight)
	}
	if s.AlertThreshold < MinSeverity || s.AlertThreshold > MaxSeverity {
		return fmt.Errorf("alert_threshold must be in [%d,%d], got %d", MinSeverity, MaxSeverity, s.AlertThreshold)
	}
	return nil
}

// SeverityStore holds the live settings. It is injected at startup and
// mutated only through Update, which validates first; there is no bare
// shared map anywhere.
type SeverityStore struct {
	mu       sync.RWMutex
	settings SeveritySettings
}

// NewSeverityStore creates a store with the default settings.
func NewSeverityStore() *SeverityStore {
	return &SeverityStore{settings: SeveritySettings{
		UserWeight:     DefaultUserWeight,
		AlertThreshold: DefaultAlertThreshold,
	}}
}

// Current returns a copy of the live settings.
func (s *SeverityStore) Current() SeveritySettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update replaces the live settings after validation. Called only from
// the admin update path.
func (s *SeverityStore) Update(next SeveritySettings) error {
	if err := next.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.settings = next
	s.mu.Unlock()
	return nil
}
