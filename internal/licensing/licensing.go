// Package licensing implements the authorization gate: a one-time trial and
// LemonSqueezy license activation. Tools may only be started while
// authorized.
package licensing

import (
	"strings"
	"time"
)

// LicensePlan is the purchased plan tier.
type LicensePlan string

const (
	PlanMonthly  LicensePlan = "monthly"
	PlanYearly   LicensePlan = "yearly"
	PlanLifetime LicensePlan = "lifetime"
)

// PlanFromVariant maps a LemonSqueezy variant name to a plan. Variant names
// are merchant-controlled strings like "Pro Yearly", so this matches on
// substrings.
func PlanFromVariant(variantName string) LicensePlan {
	lower := strings.ToLower(variantName)
	switch {
	case strings.Contains(lower, "lifetime"):
		return PlanLifetime
	case strings.Contains(lower, "year"):
		return PlanYearly
	default:
		return PlanMonthly
	}
}

// Display returns the capitalized plan name for the UI.
func (p LicensePlan) Display() string {
	switch p {
	case PlanYearly:
		return "Yearly"
	case PlanLifetime:
		return "Lifetime"
	default:
		return "Monthly"
	}
}

// AuthKind discriminates AuthStatus variants.
type AuthKind string

const (
	AuthLicensed     AuthKind = "licensed"
	AuthTrial        AuthKind = "trial"
	AuthTrialExpired AuthKind = "trial_expired"
	AuthNoLicense    AuthKind = "no_license"
)

// AuthStatus is the authorization state shown to the user. Plan and
// KeyPreview are set only for AuthLicensed; the remaining fields only for
// AuthTrial.
type AuthStatus struct {
	Kind           AuthKind    `json:"kind"`
	Plan           LicensePlan `json:"plan,omitempty"`
	KeyPreview     string      `json:"key_preview,omitempty"`
	DaysRemaining  int         `json:"days_remaining,omitempty"`
	HoursRemaining int         `json:"hours_remaining,omitempty"`
}

// Authorized reports whether tools may be started.
func (a AuthStatus) Authorized() bool {
	return a.Kind == AuthLicensed || a.Kind == AuthTrial
}

// AuthStatusAt derives the authorization status from stored state. An
// active license wins over the trial; an expired or never-started trial
// falls through to TrialExpired or NoLicense.
func AuthStatusAt(cfg *Config, now time.Time) AuthStatus {
	if cfg.LicenseKey != "" && cfg.LicenseStatus == "active" {
		plan := cfg.LicensePlan
		if plan == "" {
			plan = PlanMonthly
		}
		return AuthStatus{
			Kind:       AuthLicensed,
			Plan:       plan,
			KeyPreview: MaskKey(cfg.LicenseKey),
		}
	}

	if cfg.TrialExpiration != "" {
		exp, err := time.Parse(time.RFC3339, cfg.TrialExpiration)
		if err == nil {
			if exp.After(now) {
				remaining := exp.Sub(now)
				return AuthStatus{
					Kind:           AuthTrial,
					DaysRemaining:  int(remaining.Hours()) / 24,
					HoursRemaining: int(remaining.Hours()) % 24,
				}
			}
			return AuthStatus{Kind: AuthTrialExpired}
		}
	}

	if cfg.TrialStarted {
		return AuthStatus{Kind: AuthTrialExpired}
	}
	return AuthStatus{Kind: AuthNoLicense}
}

// MaskKey returns a short preview of a license key for display. Keys too
// short to mask safely are hidden entirely.
func MaskKey(key string) string {
	if len(key) > 8 {
		return key[:4] + "..." + key[len(key)-4:]
	}
	return "••••••••"
}
