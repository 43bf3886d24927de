package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Create and edit sites",
	Long:  `Create sites from templates, fill in their details, adjust the theme and publish them.`,
}

var siteCreateCmd = &cobra.Command{
	Use:   "create [template-id] [couple-name]",
	Short: "Create a site from a template",
	Long: `Create a site from a template.

In template mode (the default) the site is the template filled with the
couple's details. In pages mode the site starts with a homepage copied from
the template and a navigation menu.`,
	Args: cobra.ExactArgs(2),
	RunE: runSiteCreate,
}

var siteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sites",
	RunE:  runSiteList,
}

var siteShowCmd = &cobra.Command{
	Use:   "show [site-id]",
	Short: "Show a site's details and block tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runSiteShow,
}

var siteSetCmd = &cobra.Command{
	Use:   "set [site-id] [field=value]...",
	Short: "Set data fields",
	Long: `Set one or more data fields on a site.

Values that parse as JSON keep their type, so lists of FAQs can be given as
faqs='[{"question":"Parking ?","answer":"Oui"}]'. Anything else is a string.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSiteSet,
}

var siteThemeCmd = &cobra.Command{
	Use:   "theme [site-id]",
	Short: "Show or change the theme",
	Long: `Show the effective theme, or change colour and font roles.

Colour roles: primary, secondary, text, background
Font roles:   heading, body`,
	Args: cobra.ExactArgs(1),
	RunE: runSiteTheme,
}

var siteValidateCmd = &cobra.Command{
	Use:   "validate [site-id]",
	Short: "Report missing required fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runSiteValidate,
}

var sitePreviewCmd = &cobra.Command{
	Use:   "preview [site-id]",
	Short: "Print the merged, renderable site as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSitePreview,
}

var sitePublishCmd = &cobra.Command{
	Use:   "publish [site-id]",
	Short: "Publish a site",
	Args:  cobra.ExactArgs(1),
	RunE:  runSitePublish,
}

var (
	siteMode      string
	themeColors   []string
	themeFonts    []string
	previewPage   string
	previewAsTree bool
)

func init() {
	siteCreateCmd.Flags().StringVarP(&siteMode, "mode", "m", string(domain.ModeTemplate), "Editing mode: template or pages")
	siteThemeCmd.Flags().StringArrayVar(&themeColors, "color", nil, "Set a colour role (role=value)")
	siteThemeCmd.Flags().StringArrayVar(&themeFonts, "font", nil, "Set a font role (role=value)")
	sitePreviewCmd.Flags().StringVarP(&previewPage, "page", "p", "", "Preview one page of a pages-mode site")
	sitePreviewCmd.Flags().BoolVarP(&previewAsTree, "tree", "t", false, "Print an outline instead of JSON")

	siteCmd.AddCommand(siteCreateCmd)
	siteCmd.AddCommand(siteListCmd)
	siteCmd.AddCommand(siteShowCmd)
	siteCmd.AddCommand(siteSetCmd)
	siteCmd.AddCommand(siteThemeCmd)
	siteCmd.AddCommand(siteValidateCmd)
	siteCmd.AddCommand(sitePreviewCmd)
	siteCmd.AddCommand(sitePublishCmd)
	rootCmd.AddCommand(siteCmd)
}

func runSiteCreate(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	site, err := sessionService.CreateSite(contextOf(cmd), args[0], args[1], domain.SiteMode(siteMode))
	if err != nil {
		return fmt.Errorf("failed to create site: %w", err)
	}

	cmd.Printf("Site created: %s\n", site.ID)
	cmd.Printf("  Couple: %s\n", site.CoupleName)
	cmd.Printf("  Slug:   %s\n", site.Slug)
	cmd.Printf("  Mode:   %s\n", site.Mode)
	return nil
}

func runSiteList(cmd *cobra.Command, _ []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	sites, err := sessionService.ListSites(contextOf(cmd))
	if err != nil {
		return fmt.Errorf("failed to list sites: %w", err)
	}
	if len(sites) == 0 {
		cmd.Println("No sites yet. Create one with: sitesmith site create [template-id] [couple-name]")
		return nil
	}

	for i := range sites {
		status := "draft"
		if sites[i].IsPublished {
			status = "published"
		}
		cmd.Printf("  %s  %-30s %-9s %s\n", sites[i].ID, sites[i].CoupleName, sites[i].Mode, status)
	}
	cmd.Printf("\nTotal: %d sites\n", len(sites))
	return nil
}

func runSiteShow(cmd *cobra.Command, args []string) error {
	snap, err := openSite(contextOf(cmd), args[0])
	if err != nil {
		return err
	}
	site := snap.Site

	cmd.Printf("Site: %s\n\n", site.ID)
	cmd.Printf("  Couple:    %s\n", site.CoupleName)
	cmd.Printf("  Slug:      %s\n", site.Slug)
	cmd.Printf("  Template:  %s\n", site.TemplateID)
	cmd.Printf("  Mode:      %s\n", site.Mode)
	cmd.Printf("  Published: %t\n", site.IsPublished)
	cmd.Printf("  Updated:   %s\n", site.UpdatedAt.Format("2006-01-02 15:04:05"))

	if len(snap.Data) > 0 {
		cmd.Println("\n  Data:")
		keys := make([]string, 0, len(snap.Data))
		for k := range snap.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cmd.Printf("    %s: %s\n", k, summarise(snap.Data[k]))
		}
	}

	out := cmd.OutOrStdout()
	if snap.Mode == domain.ModeTemplate {
		if snap.Template != nil {
			cmd.Println("\n  Structure:")
			renderTree(out, snap.Template.Structure)
		}
		return nil
	}

	for i := range snap.Pages {
		page := snap.Pages[i]
		marker := ""
		if page.Meta.IsHomepage {
			marker = " (homepage)"
		}
		cmd.Printf("\n  Page %d: %s [%s] /%s%s\n", page.Order, page.Title, page.ID, page.Slug, marker)
		renderTree(out, page.Structure)
	}
	return nil
}

func runSiteSet(cmd *cobra.Command, args []string) error {
	if _, err := openSite(contextOf(cmd), args[0]); err != nil {
		return err
	}

	fields, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}
	editor.UpdateDataFields(domain.DataRecord(fields))

	if _, err := commit(cmd); err != nil {
		return err
	}
	cmd.Printf("Updated %d field(s) on site %s.\n", len(fields), args[0])
	return nil
}

func runSiteTheme(cmd *cobra.Command, args []string) error {
	if _, err := openSite(contextOf(cmd), args[0]); err != nil {
		return err
	}

	colors, err := parseAssignments(themeColors)
	if err != nil {
		return err
	}
	fonts, err := parseAssignments(themeFonts)
	if err != nil {
		return err
	}
	for role, v := range colors {
		if err := editor.SetColor(domain.ColorRole(role), fmt.Sprint(v)); err != nil {
			return err
		}
	}
	for role, v := range fonts {
		if err := editor.SetFont(domain.FontRole(role), fmt.Sprint(v)); err != nil {
			return err
		}
	}
	if len(colors)+len(fonts) > 0 {
		if _, err := commit(cmd); err != nil {
			return err
		}
	}

	theme := editor.Theme()
	cmd.Println("Colors:")
	for _, role := range domain.ColorRoles() {
		v, _ := theme.Color(role)
		cmd.Printf("  %-10s %s\n", role, v)
	}
	cmd.Println("Fonts:")
	for _, role := range domain.FontRoles() {
		v, _ := theme.Font(role)
		cmd.Printf("  %-10s %s\n", role, v)
	}
	return nil
}

func runSiteValidate(cmd *cobra.Command, args []string) error {
	if _, err := openSite(contextOf(cmd), args[0]); err != nil {
		return err
	}

	messages := editor.Validate(contextOf(cmd))
	if len(messages) == 0 {
		cmd.Println("Site is complete.")
		return nil
	}
	for _, m := range messages {
		cmd.Printf("  - %s\n", m)
	}
	return domain.NewValidationError(messages)
}

func runSitePreview(cmd *cobra.Command, args []string) error {
	if _, err := openSite(contextOf(cmd), args[0]); err != nil {
		return err
	}

	if previewPage != "" {
		merged, err := editor.PreviewPage(previewPage)
		if err != nil {
			return fmt.Errorf("failed to preview page: %w", err)
		}
		if previewAsTree {
			renderTree(cmd.OutOrStdout(), merged.Structure)
			return nil
		}
		return writeJSON(cmd.OutOrStdout(), merged)
	}

	merged, err := editor.Preview()
	if err != nil {
		return fmt.Errorf("failed to preview site: %w", err)
	}
	if previewAsTree {
		renderTree(cmd.OutOrStdout(), merged.Structure)
		return nil
	}
	return writeJSON(cmd.OutOrStdout(), merged)
}

func runSitePublish(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	site, err := sessionService.Publish(contextOf(cmd), args[0])
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			cmd.Println("Site cannot be published yet:")
			cmd.Println("  - " + strings.Join(verr.Messages, "\n  - "))
		}
		return err
	}
	cmd.Printf("Site %s published at %s.\n", site.ID, site.PublishedAt.Format("2006-01-02 15:04:05"))
	return nil
}
