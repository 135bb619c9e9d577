package licensing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiBase = "https://api.lemonsqueezy.com/v1/licenses"

// Checkout URLs. Monthly and yearly are variants of the same subscription
// product and share a checkout page.
const (
	checkoutSubscription = "https://slking.lemonsqueezy.com/checkout/buy/e84ca54b-c009-4262-a434-2528592e4077"
	checkoutLifetime     = "https://slking.lemonsqueezy.com/checkout/buy/346b4776-f424-4c23-8980-227233e240cb"
	storeURL             = "https://slking.lemonsqueezy.com"
)

// CheckoutURL returns the purchase page for a plan, falling back to the
// store front page for anything unrecognized.
func CheckoutURL(plan string) string {
	switch plan {
	case "monthly", "yearly":
		return checkoutSubscription
	case "lifetime":
		return checkoutLifetime
	default:
		return storeURL
	}
}

// Client talks to the LemonSqueezy license API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client with a 10s request timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    apiBase,
	}
}

// LicenseInfo is the license_key object in API responses.
type LicenseInfo struct {
	ID              int64  `json:"id"`
	Status          string `json:"status"`
	Key             string `json:"key"`
	ActivationLimit int    `json:"activation_limit"`
	ActivationUsage int    `json:"activation_usage"`
	ExpiresAt       string `json:"expires_at"`
}

// LicenseMeta is the meta object in API responses.
type LicenseMeta struct {
	StoreID       int64  `json:"store_id"`
	ProductID     int64  `json:"product_id"`
	ProductName   string `json:"product_name"`
	VariantID     int64  `json:"variant_id"`
	VariantName   string `json:"variant_name"`
	CustomerID    int64  `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

type apiInstance struct {
	ID string `json:"id"`
}

type apiResponse struct {
	Valid       bool         `json:"valid"`
	Activated   bool         `json:"activated"`
	Deactivated bool         `json:"deactivated"`
	Error       string       `json:"error"`
	LicenseKey  *LicenseInfo `json:"license_key"`
	Instance    *apiInstance `json:"instance"`
	Meta        *LicenseMeta `json:"meta"`
}

// ValidationResult is the outcome of a validate call.
type ValidationResult struct {
	Valid       bool
	Error       string
	LicenseInfo *LicenseInfo
	InstanceID  string
	Meta        *LicenseMeta
}

// ActivationResult is the outcome of an activate call.
type ActivationResult struct {
	Activated   bool
	Error       string
	LicenseInfo *LicenseInfo
	InstanceID  string
	Meta        *LicenseMeta
}

// ValidateLicense checks a key against the API. An instance ID scopes the
// check to this machine's activation when one exists.
func (c *Client) ValidateLicense(ctx context.Context, licenseKey, instanceID string) (*ValidationResult, error) {
	form := url.Values{"license_key": {licenseKey}}
	if instanceID != "" {
		form.Set("instance_id", instanceID)
	}

	resp, err := c.post(ctx, "/validate", form)
	if err != nil {
		return nil, err
	}

	out := &ValidationResult{
		Valid:       resp.Valid,
		Error:       resp.Error,
		LicenseInfo: resp.LicenseKey,
		Meta:        resp.Meta,
	}
	if resp.Instance != nil {
		out.InstanceID = resp.Instance.ID
	}
	return out, nil
}

// ActivateLicense registers this machine as an instance of the license.
func (c *Client) ActivateLicense(ctx context.Context, licenseKey, instanceName string) (*ActivationResult, error) {
	form := url.Values{
		"license_key":   {licenseKey},
		"instance_name": {instanceName},
	}

	resp, err := c.post(ctx, "/activate", form)
	if err != nil {
		return nil, err
	}

	out := &ActivationResult{
		Activated:   resp.Activated,
		Error:       resp.Error,
		LicenseInfo: resp.LicenseKey,
		Meta:        resp.Meta,
	}
	if resp.Instance != nil {
		out.InstanceID = resp.Instance.ID
	}
	return out, nil
}

// DeactivateLicense removes this machine's activation instance.
func (c *Client) DeactivateLicense(ctx context.Context, licenseKey, instanceID string) (bool, error) {
	form := url.Values{
		"license_key": {licenseKey},
		"instance_id": {instanceID},
	}

	resp, err := c.post(ctx, "/deactivate", form)
	if err != nil {
		return false, err
	}
	if resp.Error != "" {
		return false, errors.New(resp.Error)
	}
	return resp.Deactivated, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("license API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read license API response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse license API response (HTTP %d): %w", resp.StatusCode, err)
	}
	return &parsed, nil
}

// ActivateAndSave activates a key and persists the result. The saved state
// is the source of truth; callers re-derive the auth status from it rather
// than trusting the response they got back.
func ActivateAndSave(ctx context.Context, licenseKey string) (*ActivationResult, error) {
	client := NewClient()
	result, err := client.ActivateLicense(ctx, licenseKey, MachineName())
	if err != nil {
		return nil, err
	}

	if result.Activated {
		cfg, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg.LicenseKey = licenseKey
		cfg.InstanceID = result.InstanceID
		if result.LicenseInfo != nil {
			cfg.LicenseStatus = result.LicenseInfo.Status
		}
		if result.Meta != nil {
			cfg.LicensePlan = PlanFromVariant(result.Meta.VariantName)
			cfg.CustomerEmail = result.Meta.CustomerEmail
		}
		cfg.LastValidated = time.Now().UTC().Format(time.RFC3339)
		if err := cfg.Save(); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// ValidateExisting refreshes the stored license status from the server.
func ValidateExisting(ctx context.Context) (*ValidationResult, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.LicenseKey == "" {
		return nil, errors.New("no license key configured")
	}

	client := NewClient()
	result, err := client.ValidateLicense(ctx, cfg.LicenseKey, cfg.InstanceID)
	if err != nil {
		return nil, err
	}

	if result.Valid {
		if result.LicenseInfo != nil {
			cfg.LicenseStatus = result.LicenseInfo.Status
		}
		cfg.LastValidated = time.Now().UTC().Format(time.RFC3339)
		if err := cfg.Save(); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// DeactivateAndClear removes this machine's activation and wipes the stored
// license. The trial history survives; deactivating does not grant a second
// trial.
func DeactivateAndClear(ctx context.Context) (bool, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return false, err
	}
	if cfg.LicenseKey == "" {
		return false, errors.New("no license key configured")
	}
	if cfg.InstanceID == "" {
		return false, errors.New("no instance ID configured")
	}

	client := NewClient()
	deactivated, err := client.DeactivateLicense(ctx, cfg.LicenseKey, cfg.InstanceID)
	if err != nil {
		return false, err
	}

	if deactivated {
		if err := cfg.ClearLicense(); err != nil {
			return false, err
		}
	}

	return deactivated, nil
}
