package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/prodhub-io/prodhub/internal/keystore"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage the shared OpenAI API key",
	Long: `Manage the OpenAI API key shared by the tools. The key is stored in
the system keychain, with a .env file fallback for headless machines.`,
}

var apikeySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the API key",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAPIKeySet,
}

var apikeyReveal bool

var apikeyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored key, masked",
	RunE:  runAPIKeyShow,
}

var apikeyDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"rm"},
	Short:   "Delete the stored key",
	RunE:    runAPIKeyDelete,
}

func init() {
	apikeyShowCmd.Flags().BoolVar(&apikeyReveal, "reveal", false, "print the full key instead of the masked preview")

	apikeyCmd.AddCommand(apikeyDeleteCmd)
	apikeyCmd.AddCommand(apikeySetCmd)
	apikeyCmd.AddCommand(apikeyShowCmd)
}

func runAPIKeySet(cmd *cobra.Command, args []string) error {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		fmt.Print("API key: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		key = strings.TrimSpace(line)
	}

	if err := keystore.Save(key); err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render("API key saved") + "  " + styleHint.Render(keystore.Masked()))
	return nil
}

func runAPIKeyShow(cmd *cobra.Command, args []string) error {
	b, tele, err := newBackend()
	if err != nil {
		return err
	}
	defer tele.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if !b.HasAPIKey(ctx) {
		fmt.Println(styleLabel.Render("No API key stored"))
		return nil
	}
	if apikeyReveal {
		key, err := b.GetAPIKey(ctx)
		if err != nil {
			return err
		}
		fmt.Println(key)
		return nil
	}
	fmt.Println(styleValue.Render(b.GetAPIKeyMasked(ctx)))
	return nil
}

func runAPIKeyDelete(cmd *cobra.Command, args []string) error {
	if err := keystore.Delete(); err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render("API key deleted"))
	return nil
}
