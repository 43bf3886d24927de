package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Manage the pages of a multi-page site",
	Long:  `Add, list, rename, reorder and remove pages. The navigation menu follows the pages automatically.`,
}

var pageAddCmd = &cobra.Command{
	Use:   "add [site-id] [title]",
	Short: "Add a page",
	Args:  cobra.ExactArgs(2),
	RunE:  runPageAdd,
}

var pageListCmd = &cobra.Command{
	Use:   "list [site-id]",
	Short: "List pages in order",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageList,
}

var pageRemoveCmd = &cobra.Command{
	Use:   "remove [site-id] [page-id]",
	Short: "Remove a page",
	Long:  `Remove a page. If it was the homepage, the first remaining page becomes the homepage.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runPageRemove,
}

var pageReorderCmd = &cobra.Command{
	Use:   "reorder [site-id] [page-id]...",
	Short: "Reorder pages",
	Long:  `Renumber pages in the given order. Pages not named keep their relative order after the named ones.`,
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPageReorder,
}

var pageRenameCmd = &cobra.Command{
	Use:   "rename [site-id] [page-id] [title]",
	Short: "Rename a page",
	Long:  `Change a page's title. The slug is derived again from the new title.`,
	Args:  cobra.ExactArgs(3),
	RunE:  runPageRename,
}

var pageHidden bool

func init() {
	pageAddCmd.Flags().BoolVar(&pageHidden, "hidden", false, "Keep the page out of the navigation menu")

	pageCmd.AddCommand(pageAddCmd)
	pageCmd.AddCommand(pageListCmd)
	pageCmd.AddCommand(pageRemoveCmd)
	pageCmd.AddCommand(pageReorderCmd)
	pageCmd.AddCommand(pageRenameCmd)
	rootCmd.AddCommand(pageCmd)
}

func runPageAdd(cmd *cobra.Command, args []string) error {
	if _, err := openPagesSite(contextOf(cmd), args[0]); err != nil {
		return err
	}

	page, err := editor.CreatePage(args[1])
	if err != nil {
		return fmt.Errorf("failed to add page: %w", err)
	}
	if pageHidden {
		meta := page.Meta
		meta.ShowInMenu = false
		if err := editor.UpdatePage(page.ID, domain.PageUpdate{Meta: &meta}); err != nil {
			return fmt.Errorf("failed to hide page: %w", err)
		}
	}
	if _, err := commit(cmd); err != nil {
		return err
	}

	cmd.Printf("Page added: %s\n", page.ID)
	cmd.Printf("  Title: %s\n", page.Title)
	cmd.Printf("  Slug:  /%s\n", page.Slug)
	return nil
}

func runPageList(cmd *cobra.Command, args []string) error {
	snap, err := openPagesSite(contextOf(cmd), args[0])
	if err != nil {
		return err
	}
	if len(snap.Pages) == 0 {
		cmd.Println("No pages.")
		return nil
	}

	for i := range snap.Pages {
		p := snap.Pages[i]
		flags := ""
		if p.Meta.IsHomepage {
			flags += " home"
		}
		if !p.Meta.ShowInMenu {
			flags += " hidden"
		}
		cmd.Printf("  %2d. %-24s /%-20s %s%s\n", p.Order, p.Title, p.Slug, p.ID, flags)
	}
	return nil
}

func runPageRemove(cmd *cobra.Command, args []string) error {
	if _, err := openPagesSite(contextOf(cmd), args[0]); err != nil {
		return err
	}
	if err := editor.RemovePage(args[1]); err != nil {
		return fmt.Errorf("failed to remove page: %w", err)
	}
	if _, err := commit(cmd); err != nil {
		return err
	}
	cmd.Printf("Page %s removed.\n", args[1])
	return nil
}

func runPageReorder(cmd *cobra.Command, args []string) error {
	snap, err := openPagesSite(contextOf(cmd), args[0])
	if err != nil {
		return err
	}
	editor.ReorderPages(completeOrder(args[1:], snap.Pages))
	if _, err := commit(cmd); err != nil {
		return err
	}
	return runPageList(cmd, args[:1])
}

// completeOrder appends the pages missing from ids in their current order,
// since the editor drops pages left out of a reorder.
func completeOrder(ids []string, pages []domain.Page) []string {
	named := make(map[string]bool, len(ids))
	for _, id := range ids {
		named[id] = true
	}
	out := append([]string(nil), ids...)
	for i := range pages {
		if !named[pages[i].ID] {
			out = append(out, pages[i].ID)
		}
	}
	return out
}

func runPageRename(cmd *cobra.Command, args []string) error {
	if _, err := openPagesSite(contextOf(cmd), args[0]); err != nil {
		return err
	}
	title := args[2]
	if err := editor.UpdatePage(args[1], domain.PageUpdate{Title: &title}); err != nil {
		return fmt.Errorf("failed to rename page: %w", err)
	}
	if _, err := commit(cmd); err != nil {
		return err
	}
	cmd.Printf("Page %s renamed to %q.\n", args[1], title)
	return nil
}
