package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeveritySettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings SeveritySettings
		wantErr  bool
	}{
		{"defaults", SeveritySettings{UserWeight: DefaultUserWeight, AlertThreshold: DefaultAlertThreshold}, false},
		{"weight zero", SeveritySettings{UserWeight: 0, AlertThreshold: 3}, false},
		{"weight one", SeveritySettings{UserWeight: 1, AlertThreshold: 3}, false},
		{"weight negative", SeveritySettings{UserWeight: -0.1, AlertThreshold: 3}, true},
		{"weight above one", SeveritySettings{UserWeight: 1.1, AlertThreshold: 3}, true},
		{"threshold too low", SeveritySettings{UserWeight: 0.5, AlertThreshold: 0}, true},
		{"threshold too high", SeveritySettings{UserWeight: 0.5, AlertThreshold: 6}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSeverityStore_Defaults(t *testing.T) {
	store := NewSeverityStore()
	got := store.Current()
	assert.Equal(t, DefaultUserWeight, got.UserWeight)
	assert.Equal(t, DefaultAlertThreshold, got.AlertThreshold)
}

func TestSeverityStore_UpdateRejectsInvalid(t *testing.T) {
	store := NewSeverityStore()
	err := store.Update(SeveritySettings{UserWeight: 2, AlertThreshold: 3})
	require.Error(t, err)

	// Failed update must not touch the live settings.
	assert.Equal(t, DefaultUserWeight, store.Current().UserWeight)
}

func TestSeverityStore_Update(t *testing.T) {
	store := NewSeverityStore()
	next := SeveritySettings{UserWeight: 0.5, AlertThreshold: 5}
	require.NoError(t, store.Update(next))
	assert.Equal(t, next, store.Current())
}

func TestSeverityStore_ConcurrentAccess(t *testing.T) {
	store := NewSeverityStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Update(SeveritySettings{UserWeight: 0.4, AlertThreshold: 4})
		}()
		go func() {
			defer wg.Done()
			s := store.Current()
			assert.NoError(t, s.Validate())
		}()
	}
	wg.Wait()
}
