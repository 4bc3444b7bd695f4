package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify the Sublight client id and account",
	Long: `Opens a session with the configured client id, API key and optional
account, then closes it again. Set the account with the keys
sublight.username and sublight.password, or leave them empty to log in
anonymously.

No session is kept between commands; each command logs in on first use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		fmt.Fprintln(cmd.OutOrStdout(), "Logging in to Sublight...")
		if err := client.Login(cmd.Context()); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if user := viper.GetString(CfgKeyUsername); user != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in successfully as user: %s\n", user)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in successfully (anonymous).")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(loginCmd)
}
