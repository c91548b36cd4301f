package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the Clockify credentials and workspace",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	client, err := loadClient()
	if err != nil {
		return err
	}
	if err := client.TestConnection(cmd.Context()); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Connection to Clockify OK")
	return nil
}
