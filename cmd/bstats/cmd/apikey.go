package cmd

import (
	"fmt"

	"github.com/f3rmion/battlestats/internal/keystore"
	"github.com/spf13/cobra"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage the stored Torn API key",
	Long: `Show, store or remove the Torn API key used for YATA exports. The key
is kept in keys.db in the config directory.`,
}

var apikeyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeSession, err := openSession()
		if err != nil {
			return err
		}
		defer closeSession()

		key, err := s.APIKey()
		if err != nil {
			return err
		}
		if key == "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "No API key stored.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), key)
		return nil
	},
}

var apikeySetCmd = &cobra.Command{
	Use:   "set <key>",
	Short: "Store the API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeSession, err := openSession()
		if err != nil {
			return err
		}
		defer closeSession()

		if err := s.SetAPIKey(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "API key saved.")
		return nil
	},
}

var apikeyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeSession, err := openSession()
		if err != nil {
			return err
		}
		defer closeSession()

		if err := s.Keys.Delete(keystore.APIKey); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "API key removed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(apikeyCmd)
	apikeyCmd.AddCommand(apikeyShowCmd)
	apikeyCmd.AddCommand(apikeySetCmd)
	apikeyCmd.AddCommand(apikeyClearCmd)
}
