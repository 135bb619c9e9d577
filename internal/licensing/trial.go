package licensing

import (
	"errors"
	"fmt"
	"time"
)

// TrialDays is the length of the one-time trial.
const TrialDays = 7

// ErrTrialUsed is returned when a machine tries to start a second trial.
var ErrTrialUsed = errors.New("trial has already been used on this machine")

// TrialInfo describes the trial for display.
type TrialInfo struct {
	Active           bool   `json:"active"`
	DaysRemaining    int    `json:"days_remaining"`
	HoursRemaining   int    `json:"hours_remaining"`
	MinutesRemaining int    `json:"minutes_remaining"`
	ExpiresAt        string `json:"expires_at,omitempty"`
	AlreadyUsed      bool   `json:"already_used"`
}

// TrialInfoAt computes the trial state from stored config.
func TrialInfoAt(cfg *Config, now time.Time) TrialInfo {
	if !cfg.TrialStarted {
		return TrialInfo{}
	}

	exp, err := time.Parse(time.RFC3339, cfg.TrialExpiration)
	if err != nil || !exp.After(now) {
		return TrialInfo{AlreadyUsed: true, ExpiresAt: cfg.TrialExpiration}
	}

	remaining := exp.Sub(now)
	return TrialInfo{
		Active:           true,
		DaysRemaining:    int(remaining.Hours()) / 24,
		HoursRemaining:   int(remaining.Hours()) % 24,
		MinutesRemaining: int(remaining.Minutes()) % 60,
		ExpiresAt:        cfg.TrialExpiration,
		AlreadyUsed:      true,
	}
}

// StartTrial begins the trial, persisting the expiration. It fails if a
// trial was ever started on this machine, even an expired one.
func StartTrial(cfg *Config, now time.Time) (TrialInfo, error) {
	if cfg.TrialStarted {
		return TrialInfo{}, ErrTrialUsed
	}

	expiration := now.Add(TrialDays * 24 * time.Hour)
	cfg.TrialStarted = true
	cfg.TrialExpiration = expiration.Format(time.RFC3339)
	if err := cfg.Save(); err != nil {
		return TrialInfo{}, err
	}

	return TrialInfoAt(cfg, now), nil
}

// FormatRemaining renders the remaining trial time, e.g. "2d 5h remaining".
func FormatRemaining(info TrialInfo) string {
	if !info.Active {
		return "Trial expired"
	}
	if info.DaysRemaining > 0 {
		return fmt.Sprintf("%dd %dh remaining", info.DaysRemaining, info.HoursRemaining)
	}
	if info.HoursRemaining > 0 {
		return fmt.Sprintf("%dh %dm remaining", info.HoursRemaining, info.MinutesRemaining)
	}
	return fmt.Sprintf("%dm remaining", info.MinutesRemaining)
}
