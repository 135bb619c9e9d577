package licensing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"long key shows edges", "ABCD-1234-EFGH-5678", "ABCD...5678"},
		{"nine chars is maskable", "123456789", "1234...6789"},
		{"short key fully hidden", "12345678", "••••••••"},
		{"empty key fully hidden", "", "••••••••"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskKey(tt.key))
		})
	}
}

func TestPlanFromVariant(t *testing.T) {
	tests := []struct {
		variant  string
		expected LicensePlan
	}{
		{"Pro Lifetime", PlanLifetime},
		{"lifetime deal", PlanLifetime},
		{"Pro Yearly", PlanYearly},
		{"1 Year", PlanYearly},
		{"Pro Monthly", PlanMonthly},
		{"Default", PlanMonthly},
		{"", PlanMonthly},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			assert.Equal(t, tt.expected, PlanFromVariant(tt.variant))
		})
	}
}

func TestAuthStatusAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cfg  Config
		want AuthStatus
	}{
		{
			name: "no license no trial",
			cfg:  Config{MachineID: "m"},
			want: AuthStatus{Kind: AuthNoLicense},
		},
		{
			name: "active license",
			cfg: Config{
				LicenseKey:    "ABCD-1234-EFGH-5678",
				LicenseStatus: "active",
				LicensePlan:   PlanYearly,
			},
			want: AuthStatus{Kind: AuthLicensed, Plan: PlanYearly, KeyPreview: "ABCD...5678"},
		},
		{
			name: "active license with unknown plan defaults to monthly",
			cfg: Config{
				LicenseKey:    "ABCD-1234-EFGH-5678",
				LicenseStatus: "active",
			},
			want: AuthStatus{Kind: AuthLicensed, Plan: PlanMonthly, KeyPreview: "ABCD...5678"},
		},
		{
			name: "inactive license falls through to trial",
			cfg: Config{
				LicenseKey:      "ABCD-1234-EFGH-5678",
				LicenseStatus:   "expired",
				TrialStarted:    true,
				TrialExpiration: now.Add(53 * time.Hour).Format(time.RFC3339),
			},
			want: AuthStatus{Kind: AuthTrial, DaysRemaining: 2, HoursRemaining: 5},
		},
		{
			name: "active trial",
			cfg: Config{
				TrialStarted:    true,
				TrialExpiration: now.Add(53 * time.Hour).Format(time.RFC3339),
			},
			want: AuthStatus{Kind: AuthTrial, DaysRemaining: 2, HoursRemaining: 5},
		},
		{
			name: "expired trial",
			cfg: Config{
				TrialStarted:    true,
				TrialExpiration: now.Add(-time.Hour).Format(time.RFC3339),
			},
			want: AuthStatus{Kind: AuthTrialExpired},
		},
		{
			name: "trial flag set but expiration unparseable",
			cfg: Config{
				TrialStarted:    true,
				TrialExpiration: "not-a-date",
			},
			want: AuthStatus{Kind: AuthTrialExpired},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AuthStatusAt(&tt.cfg, now)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Kind == AuthLicensed || tt.want.Kind == AuthTrial, got.Authorized())
		})
	}
}

func TestClientActivate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/activate", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "KEY-1", r.PostForm.Get("license_key"))
		assert.Equal(t, "my-host", r.PostForm.Get("instance_name"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"activated": true,
			"license_key": {"id": 1, "status": "active", "key": "KEY-1", "activation_usage": 1},
			"instance": {"id": "inst-42"},
			"meta": {"variant_name": "Pro Lifetime", "customer_email": "a@b.c"}
		}`))
	}))
	defer srv.Close()

	client := NewClient()
	client.baseURL = srv.URL

	result, err := client.ActivateLicense(context.Background(), "KEY-1", "my-host")
	require.NoError(t, err)
	assert.True(t, result.Activated)
	assert.Equal(t, "inst-42", result.InstanceID)
	require.NotNil(t, result.LicenseInfo)
	assert.Equal(t, "active", result.LicenseInfo.Status)
	require.NotNil(t, result.Meta)
	assert.Equal(t, PlanLifetime, PlanFromVariant(result.Meta.VariantName))
}

func TestClientValidateRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/validate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"valid": false, "error": "license_key not found"}`))
	}))
	defer srv.Close()

	client := NewClient()
	client.baseURL = srv.URL

	result, err := client.ValidateLicense(context.Background(), "BAD-KEY", "")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "license_key not found", result.Error)
}

func TestClientDeactivate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/deactivate", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "inst-42", r.PostForm.Get("instance_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"deactivated": true}`))
	}))
	defer srv.Close()

	client := NewClient()
	client.baseURL = srv.URL

	ok, err := client.DeactivateLicense(context.Background(), "KEY-1", "inst-42")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckoutURL(t *testing.T) {
	assert.Equal(t, checkoutSubscription, CheckoutURL("monthly"))
	assert.Equal(t, checkoutSubscription, CheckoutURL("yearly"))
	assert.Equal(t, checkoutLifetime, CheckoutURL("lifetime"))
	assert.Equal(t, storeURL, CheckoutURL("enterprise"))
}
