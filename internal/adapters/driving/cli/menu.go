package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show and rebuild the navigation menu",
}

var menuShowCmd = &cobra.Command{
	Use:   "show [site-id]",
	Short: "Show the navigation menu",
	Args:  cobra.ExactArgs(1),
	RunE:  runMenuShow,
}

var menuSyncCmd = &cobra.Command{
	Use:   "sync [site-id]",
	Short: "Rebuild the menu from the pages",
	Long: `Rebuild the navigation menu from the pages shown in the menu, in page order.
Manual labels and ordering are discarded.`,
	Args: cobra.ExactArgs(1),
	RunE: runMenuSync,
}

var menuStyleCmd = &cobra.Command{
	Use:   "style [site-id] [horizontal|vertical|dropdown]",
	Short: "Change the menu layout",
	Args:  cobra.ExactArgs(2),
	RunE:  runMenuStyle,
}

func init() {
	menuCmd.AddCommand(menuShowCmd)
	menuCmd.AddCommand(menuSyncCmd)
	menuCmd.AddCommand(menuStyleCmd)
	rootCmd.AddCommand(menuCmd)
}

func printMenu(cmd *cobra.Command, menu *domain.NavigationMenu, pages []domain.Page) {
	if menu == nil || len(menu.Items) == 0 {
		cmd.Println("Menu is empty.")
		return
	}

	titles := make(map[string]string, len(pages))
	for i := range pages {
		titles[pages[i].ID] = pages[i].Title
	}

	cmd.Printf("Menu (%s):\n", menu.Style)
	for _, item := range menu.Items {
		visibility := ""
		if !item.IsVisible {
			visibility = " (hidden)"
		}
		target, ok := titles[item.PageID]
		if !ok {
			target = "missing page"
		}
		cmd.Printf("  %d. %s %s → %s%s\n", item.Order, item.Icon, item.Label, target, visibility)
	}
}

func runMenuShow(cmd *cobra.Command, args []string) error {
	snap, err := openPagesSite(contextOf(cmd), args[0])
	if err != nil {
		return err
	}
	printMenu(cmd, snap.Menu, snap.Pages)
	return nil
}

func runMenuSync(cmd *cobra.Command, args []string) error {
	if _, err := openPagesSite(contextOf(cmd), args[0]); err != nil {
		return err
	}
	if err := editor.RegenerateNavigation(); err != nil {
		return fmt.Errorf("failed to rebuild menu: %w", err)
	}
	if _, err := commit(cmd); err != nil {
		return err
	}
	snap := editor.Snapshot()
	printMenu(cmd, snap.Menu, snap.Pages)
	return nil
}

func runMenuStyle(cmd *cobra.Command, args []string) error {
	snap, err := openPagesSite(contextOf(cmd), args[0])
	if err != nil {
		return err
	}
	var items []domain.MenuItem
	if snap.Menu != nil {
		items = snap.Menu.Items
	}
	if err := editor.UpdateNavigationMenu(items, domain.MenuStyle(args[1])); err != nil {
		return fmt.Errorf("failed to set menu style: %w", err)
	}
	if _, err := commit(cmd); err != nil {
		return err
	}
	cmd.Printf("Menu style set to %s.\n", args[1])
	return nil
}
