package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

func requireSession() error {
	if sessionService == nil || editor == nil {
		return errors.New("session service not configured")
	}
	return nil
}

// openSite loads siteID into the editor in its own mode.
func openSite(ctx context.Context, siteID string) (domain.EditorSnapshot, error) {
	if err := requireSession(); err != nil {
		return domain.EditorSnapshot{}, err
	}
	if err := sessionService.Open(ctx, siteID); err != nil {
		return domain.EditorSnapshot{}, fmt.Errorf("failed to open site: %w", err)
	}
	return editor.Snapshot(), nil
}

// openPagesSite loads siteID and fails unless it is a multi-page site.
func openPagesSite(ctx context.Context, siteID string) (domain.EditorSnapshot, error) {
	snap, err := openSite(ctx, siteID)
	if err != nil {
		return snap, err
	}
	if snap.Mode != domain.ModePages {
		return snap, fmt.Errorf("site %s is in %s mode; this command needs a pages-mode site", siteID, snap.Mode)
	}
	return snap, nil
}

// commit saves the editor back to storage.
func commit(cmd *cobra.Command) (*domain.Site, error) {
	site, err := sessionService.Commit(contextOf(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to save site: %w", err)
	}
	return site, nil
}

// contextOf returns the command context, or Background when run outside Execute.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
