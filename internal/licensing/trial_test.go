package licensing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartTrial(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotEmpty(t, cfg.MachineID)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	info, err := StartTrial(cfg, now)
	require.NoError(t, err)
	assert.True(t, info.Active)
	assert.Equal(t, TrialDays, info.DaysRemaining)

	// Persisted: a reload sees the started trial and the same machine ID.
	reloaded, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, reloaded.TrialStarted)
	assert.Equal(t, cfg.MachineID, reloaded.MachineID)

	// One-time only.
	_, err = StartTrial(reloaded, now)
	assert.ErrorIs(t, err, ErrTrialUsed)
}

func TestTrialInfoAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cfg  Config
		want TrialInfo
	}{
		{
			name: "never started",
			cfg:  Config{},
			want: TrialInfo{},
		},
		{
			name: "active",
			cfg: Config{
				TrialStarted:    true,
				TrialExpiration: now.Add(53*time.Hour + 30*time.Minute).Format(time.RFC3339),
			},
			want: TrialInfo{
				Active:           true,
				DaysRemaining:    2,
				HoursRemaining:   5,
				MinutesRemaining: 30,
				ExpiresAt:        now.Add(53*time.Hour + 30*time.Minute).Format(time.RFC3339),
				AlreadyUsed:      true,
			},
		},
		{
			name: "expired",
			cfg: Config{
				TrialStarted:    true,
				TrialExpiration: now.Add(-time.Minute).Format(time.RFC3339),
			},
			want: TrialInfo{
				AlreadyUsed: true,
				ExpiresAt:   now.Add(-time.Minute).Format(time.RFC3339),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrialInfoAt(&tt.cfg, now))
		})
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name     string
		info     TrialInfo
		expected string
	}{
		{"days and hours", TrialInfo{Active: true, DaysRemaining: 2, HoursRemaining: 5}, "2d 5h remaining"},
		{"hours and minutes", TrialInfo{Active: true, HoursRemaining: 3, MinutesRemaining: 12}, "3h 12m remaining"},
		{"minutes only", TrialInfo{Active: true, MinutesRemaining: 42}, "42m remaining"},
		{"expired", TrialInfo{AlreadyUsed: true}, "Trial expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRemaining(tt.info))
		})
	}
}
