package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Edit the blocks of a page",
	Long: `Add, update and remove blocks on a page of a multi-page site.

Without --page the homepage (the session's current page) is edited.`,
}

var blockAddCmd = &cobra.Command{
	Use:   "add [site-id] [block-type]",
	Short: "Add a block with default properties",
	Args:  cobra.ExactArgs(2),
	RunE:  runBlockAdd,
}

var blockUpdateCmd = &cobra.Command{
	Use:   "update [site-id] [block-id] [key=value]...",
	Short: "Merge properties into a block",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runBlockUpdate,
}

var blockRemoveCmd = &cobra.Command{
	Use:   "remove [site-id] [block-id]",
	Short: "Remove a block and its children",
	Args:  cobra.ExactArgs(2),
	RunE:  runBlockRemove,
}

var blockMoveCmd = &cobra.Command{
	Use:   "move [site-id] [block-id] [to-page-id]",
	Short: "Move a top-level block to another page",
	Args:  cobra.ExactArgs(3),
	RunE:  runBlockMove,
}

var (
	blockPage   string
	blockParent string
	blockAt     int
)

func init() {
	for _, c := range []*cobra.Command{blockAddCmd, blockUpdateCmd, blockRemoveCmd, blockMoveCmd} {
		c.Flags().StringVarP(&blockPage, "page", "p", "", "Page to edit (default: current page)")
	}
	blockAddCmd.Flags().StringVar(&blockParent, "parent", "", "Add inside this container block")
	blockAddCmd.Flags().IntVar(&blockAt, "at", -1, "Insert position among siblings (-1 appends)")
	blockMoveCmd.Flags().IntVar(&blockAt, "at", -1, "Insert position on the target page (-1 appends)")

	blockCmd.AddCommand(blockAddCmd)
	blockCmd.AddCommand(blockUpdateCmd)
	blockCmd.AddCommand(blockRemoveCmd)
	blockCmd.AddCommand(blockMoveCmd)
	rootCmd.AddCommand(blockCmd)
}

func runBlockAdd(cmd *cobra.Command, args []string) error {
	ctx := contextOf(cmd)
	if _, err := openPagesSite(ctx, args[0]); err != nil {
		return err
	}
	blockType := domain.BlockType(args[1])

	var added domain.Block
	if blockParent == "" {
		b, err := editor.AddBlockOfType(ctx, blockPage, blockType, blockAt)
		if err != nil {
			return fmt.Errorf("failed to add block: %w", err)
		}
		added = b
	} else {
		if blockLibrary == nil {
			return fmt.Errorf("block library not configured")
		}
		b, err := blockLibrary.CreateInstance(ctx, blockType)
		if err != nil {
			return fmt.Errorf("failed to add block: %w", err)
		}
		if err := editor.AddChildBlock(blockPage, blockParent, b, blockAt); err != nil {
			return fmt.Errorf("failed to add block: %w", err)
		}
		added = b
	}

	if _, err := commit(cmd); err != nil {
		return err
	}
	cmd.Printf("Block added: %s (%s)\n", added.ID, added.Type)
	return nil
}

func runBlockUpdate(cmd *cobra.Command, args []string) error {
	if _, err := openPagesSite(contextOf(cmd), args[0]); err != nil {
		return err
	}
	props, err := parseAssignments(args[2:])
	if err != nil {
		return err
	}
	if err := editor.UpdateBlockProperties(blockPage, args[1], props); err != nil {
		return fmt.Errorf("failed to update block: %w", err)
	}
	if _, err := commit(cmd); err != nil {
		return err
	}
	cmd.Printf("Block %s updated (%d properties).\n", args[1], len(props))
	return nil
}

func runBlockRemove(cmd *cobra.Command, args []string) error {
	if _, err := openPagesSite(contextOf(cmd), args[0]); err != nil {
		return err
	}
	if err := editor.RemoveBlock(blockPage, args[1]); err != nil {
		return fmt.Errorf("failed to remove block: %w", err)
	}
	if _, err := commit(cmd); err != nil {
		return err
	}
	cmd.Printf("Block %s removed.\n", args[1])
	return nil
}

func runBlockMove(cmd *cobra.Command, args []string) error {
	snap, err := openPagesSite(contextOf(cmd), args[0])
	if err != nil {
		return err
	}
	from := blockPage
	if from == "" {
		from = snap.CurrentPageID
	}
	if err := editor.MoveBlock(from, args[2], args[1], blockAt); err != nil {
		return fmt.Errorf("failed to move block: %w", err)
	}
	if _, err := commit(cmd); err != nil {
		return err
	}
	cmd.Printf("Block %s moved to page %s.\n", args[1], args[2])
	return nil
}
