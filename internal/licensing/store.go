package licensing

import (
	"os"

	"github.com/google/uuid"

	"github.com/prodhub-io/prodhub/internal/config"
)

// Config is the persisted licensing state, ~/.prodhub/license.json. It
// holds both the license and the trial so a single file answers the
// authorization question.
type Config struct {
	LicenseKey    string      `json:"license_key,omitempty"`
	LicensePlan   LicensePlan `json:"license_plan,omitempty"`
	// LicenseStatus is the last status reported by LemonSqueezy
	// (active, inactive, expired, disabled).
	LicenseStatus string `json:"license_status,omitempty"`
	// InstanceID identifies this machine's activation at LemonSqueezy.
	InstanceID string `json:"instance_id,omitempty"`
	// MachineID is generated once per install.
	MachineID string `json:"machine_id"`
	// TrialStarted stays true forever once the trial begins; the trial is
	// one-time per machine.
	TrialStarted    bool   `json:"trial_started"`
	TrialExpiration string `json:"trial_expiration,omitempty"` // RFC3339
	LastValidated   string `json:"last_validated,omitempty"`   // RFC3339
	CustomerEmail   string `json:"customer_email,omitempty"`
}

func newConfig() *Config {
	return &Config{}
}

// LoadConfig reads license.json, creating it with a fresh machine ID on
// first run. A file missing its machine ID (hand-edited, old version) gets
// one assigned and written back.
func LoadConfig() (*Config, error) {
	path, err := config.GlobalLicenseFile()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadJSONOrDefault(path, newConfig)
	if err != nil {
		return nil, err
	}
	if cfg.MachineID == "" {
		cfg.MachineID = uuid.NewString()
		if err := cfg.Save(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Save writes the licensing state back to license.json.
func (c *Config) Save() error {
	path, err := config.GlobalLicenseFile()
	if err != nil {
		return err
	}
	return config.SaveJSON(path, c)
}

// ClearLicense removes all license fields, keeping the machine ID and the
// trial history.
func (c *Config) ClearLicense() error {
	c.LicenseKey = ""
	c.LicensePlan = ""
	c.LicenseStatus = ""
	c.InstanceID = ""
	c.LastValidated = ""
	c.CustomerEmail = ""
	return c.Save()
}

// MachineName returns the hostname used as the activation instance name.
func MachineName() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "Unknown"
	}
	return name
}
