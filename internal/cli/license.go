package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/prodhub-io/prodhub/internal/licensing"
)

var licenseCmd = &cobra.Command{
	Use:   "license",
	Short: "Manage the license and trial",
}

var licenseStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current authorization state",
	RunE:  runLicenseStatus,
}

var licenseTrialCmd = &cobra.Command{
	Use:   "trial",
	Short: "Start the one-time free trial",
	RunE:  runLicenseTrial,
}

var licenseActivateCmd = &cobra.Command{
	Use:   "activate [license-key]",
	Short: "Activate a license key on this machine",
	Args:  cobra.ExactArgs(1),
	RunE:  runLicenseActivate,
}

var licenseValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Re-validate the stored license against the server",
	RunE:  runLicenseValidate,
}

var licenseDeactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Deactivate the license on this machine",
	RunE:  runLicenseDeactivate,
}

func init() {
	licenseCmd.AddCommand(licenseActivateCmd)
	licenseCmd.AddCommand(licenseDeactivateCmd)
	licenseCmd.AddCommand(licenseStatusCmd)
	licenseCmd.AddCommand(licenseTrialCmd)
	licenseCmd.AddCommand(licenseValidateCmd)
}

func runLicenseStatus(cmd *cobra.Command, args []string) error {
	cfg, err := licensing.LoadConfig()
	if err != nil {
		return err
	}
	auth := licensing.AuthStatusAt(cfg, time.Now())

	switch auth.Kind {
	case licensing.AuthLicensed:
		fmt.Println(styleSuccess.Render("Licensed") + "  " + styleValue.Render(auth.Plan.Display()+" plan"))
		fmt.Println(styleLabel.Render("  Key:   ") + styleValue.Render(auth.KeyPreview))
		if cfg.CustomerEmail != "" {
			fmt.Println(styleLabel.Render("  Email: ") + styleValue.Render(cfg.CustomerEmail))
		}
		if cfg.LastValidated != "" {
			fmt.Println(styleLabel.Render("  Last validated: ") + styleValue.Render(cfg.LastValidated))
		}
	case licensing.AuthTrial:
		fmt.Println(styleWarning.Render("Trial active") +
			styleValue.Render(fmt.Sprintf("  %dd %dh remaining", auth.DaysRemaining, auth.HoursRemaining)))
	case licensing.AuthTrialExpired:
		fmt.Println(styleError.Render("Trial expired"))
		fmt.Println(styleHint.Render("  Activate a license with 'prodhub license activate <key>'"))
	default:
		fmt.Println(styleLabel.Render("No license"))
		fmt.Println(styleHint.Render("  Start a free trial with 'prodhub license trial'"))
	}
	return nil
}

func runLicenseTrial(cmd *cobra.Command, args []string) error {
	b, tele, err := newBackend()
	if err != nil {
		return err
	}
	defer tele.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	info, err := b.StartTrial(ctx)
	if err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render("Trial started") + "  " + styleValue.Render(licensing.FormatRemaining(info)))
	return nil
}

func runLicenseActivate(cmd *cobra.Command, args []string) error {
	b, tele, err := newBackend()
	if err != nil {
		return err
	}
	defer tele.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	auth, err := b.ActivateLicense(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render("License activated") + "  " + styleValue.Render(auth.Plan.Display()+" plan"))
	return nil
}

func runLicenseValidate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := licensing.ValidateExisting(ctx)
	if err != nil {
		return err
	}
	if !result.Valid {
		if result.Error != "" {
			return fmt.Errorf("license invalid: %s", result.Error)
		}
		return fmt.Errorf("license invalid")
	}
	fmt.Println(styleSuccess.Render("License valid"))
	return nil
}

func runLicenseDeactivate(cmd *cobra.Command, args []string) error {
	b, tele, err := newBackend()
	if err != nil {
		return err
	}
	defer tele.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if _, err := b.DeactivateLicense(ctx); err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render("License deactivated on this machine"))
	return nil
}
