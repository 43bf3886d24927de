package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Browse the block catalog",
	Long:  `List the available block types, create block instances and check them for missing fields.`,
}

var blocksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List block types",
	RunE:  runBlocksList,
}

var blocksShowCmd = &cobra.Command{
	Use:   "show [block-type]",
	Short: "Show a block type's fields and defaults",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlocksShow,
}

var blocksNewCmd = &cobra.Command{
	Use:   "new [block-type]",
	Short: "Print a new block of a type as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlocksNew,
}

var blocksValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a block's required fields",
	Long:  `Read a block as JSON from a file, or from stdin when the file is "-" or omitted, and report missing required fields.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBlocksValidate,
}

var blocksRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload the catalog from its source",
	RunE:  runBlocksRefresh,
}

var blocksCategory string

func init() {
	blocksListCmd.Flags().StringVarP(&blocksCategory, "category", "c", "", "Only list types in this category")

	blocksCmd.AddCommand(blocksListCmd)
	blocksCmd.AddCommand(blocksShowCmd)
	blocksCmd.AddCommand(blocksNewCmd)
	blocksCmd.AddCommand(blocksValidateCmd)
	blocksCmd.AddCommand(blocksRefreshCmd)
	rootCmd.AddCommand(blocksCmd)
}

func requireLibrary() error {
	if blockLibrary == nil {
		return errors.New("block library not configured")
	}
	return nil
}

func runBlocksList(cmd *cobra.Command, _ []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	count := 0
	for _, def := range blockLibrary.ListTypes(contextOf(cmd)) {
		if blocksCategory != "" && string(def.Category) != blocksCategory {
			continue
		}
		container := ""
		if def.CanHaveChildren {
			container = " (container)"
		}
		cmd.Printf("  %s %-16s %-22s %s%s\n", def.Icon, def.Type, def.Name, def.Category, container)
		count++
	}
	cmd.Printf("\nTotal: %d block types\n", count)
	return nil
}

func runBlocksShow(cmd *cobra.Command, args []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	def, err := blockLibrary.Definition(contextOf(cmd), domain.BlockType(args[0]))
	if err != nil {
		return fmt.Errorf("failed to get block type: %w", err)
	}

	cmd.Printf("%s %s (%s)\n", def.Icon, def.Name, def.Type)
	if def.Description != "" {
		cmd.Printf("  %s\n", def.Description)
	}
	cmd.Printf("  Category:  %s\n", def.Category)
	cmd.Printf("  Container: %t\n", def.CanHaveChildren)

	if len(def.EditableFields) > 0 {
		cmd.Println("\n  Fields:")
		for _, f := range def.EditableFields {
			req := ""
			if f.Required {
				req = " *"
			}
			cmd.Printf("    %-18s %-12s %s%s\n", f.Name, f.Kind, f.Label, req)
		}
	}
	if len(def.DefaultProperties) > 0 {
		cmd.Println("\n  Defaults:")
		for _, k := range sortedKeys(def.DefaultProperties) {
			cmd.Printf("    %s = %s\n", k, summarise(def.DefaultProperties[k]))
		}
	}
	return nil
}

func runBlocksNew(cmd *cobra.Command, args []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	block, err := blockLibrary.CreateInstance(contextOf(cmd), domain.BlockType(args[0]))
	if err != nil {
		return fmt.Errorf("failed to create block: %w", err)
	}
	return writeJSON(cmd.OutOrStdout(), block)
}

func runBlocksValidate(cmd *cobra.Command, args []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open block file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var block domain.Block
	if err := json.NewDecoder(r).Decode(&block); err != nil {
		return fmt.Errorf("%w: decoding block: %v", domain.ErrInvalidInput, err)
	}

	messages := blockLibrary.Validate(contextOf(cmd), block)
	if len(messages) == 0 {
		cmd.Printf("Block %s (%s) is valid.\n", block.ID, block.Type)
		return nil
	}
	for _, m := range messages {
		cmd.Printf("  - %s\n", m)
	}
	return domain.NewValidationError(messages)
}

func runBlocksRefresh(cmd *cobra.Command, _ []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}
	if err := blockLibrary.RefreshCache(contextOf(cmd)); err != nil {
		return fmt.Errorf("failed to refresh catalog: %w", err)
	}
	cmd.Printf("Catalog reloaded: %d block types.\n", len(blockLibrary.ListTypes(contextOf(cmd))))
	return nil
}
