package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available site templates",
	RunE:  runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	tmpls, err := sessionService.ListTemplates(contextOf(cmd))
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}
	if len(tmpls) == 0 {
		cmd.Println("No templates installed.")
		return nil
	}

	for i := range tmpls {
		t := tmpls[i]
		cmd.Printf("  %-20s %s\n", t.ID, t.Name)
		if t.Description != "" {
			cmd.Printf("  %-20s %s\n", "", t.Description)
		}
		if required := t.RequiredFields(); len(required) > 0 {
			cmd.Printf("  %-20s required: %v\n", "", required)
		}
	}
	return nil
}
