package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List active project names, one per line",
	Args:  cobra.NoArgs,
	RunE:  runProjects,
}

func runProjects(cmd *cobra.Command, args []string) error {
	client, err := loadClient()
	if err != nil {
		return err
	}
	projects, err := client.GetProjects(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(projects) == 0 {
		fmt.Fprintln(out, "No projects found.")
		return nil
	}
	for _, project := range projects {
		fmt.Fprintln(out, project.Name)
	}
	return nil
}
