package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driving"
	"github.com/custodia-labs/sitesmith/internal/logger"
)

// DefaultAutosaveDelay is the quiet period after the last edit before an
// autosave starts.
const DefaultAutosaveDelay = 2 * time.Second

// autosaveTimeout bounds one background save.
const autosaveTimeout = 30 * time.Second

// SnapshotSaver persists an editor snapshot and returns the stored site.
type SnapshotSaver interface {
	Save(ctx context.Context, snapshot domain.EditorSnapshot) (*domain.Site, error)
}

// SaveEditor runs one save through the editor's save lifecycle. Edits made
// while the save is in flight keep the session dirty.
func SaveEditor(ctx context.Context, editor driving.Editor, saver SnapshotSaver) (*domain.Site, error) {
	revision := editor.StartSaving()
	site, err := saver.Save(ctx, editor.Snapshot())
	if err != nil {
		editor.FailSaving(err)
		return nil, err
	}
	editor.FinishSaving(site, revision)
	return site, nil
}

// Autosaver saves the editor after a quiet period following each burst of
// edits. Saves never overlap. An edit made during a save schedules another
// save once that one completes, whatever its outcome. A failed save with no
// such edit is not retried until the next edit or an explicit SaveNow.
type Autosaver struct {
	editor driving.Editor
	saver  SnapshotSaver
	delay  time.Duration

	// saveMu serialises saves.
	saveMu sync.Mutex

	mu           sync.Mutex
	timer        *time.Timer
	inFlight     bool
	followUp     bool
	stopped      bool
	lastRevision uint64
	unsubscribe  func()
	wg           sync.WaitGroup
}

// NewAutosaver creates an autosaver. A non-positive delay uses
// DefaultAutosaveDelay. Call Start to begin watching the editor.
func NewAutosaver(editor driving.Editor, saver SnapshotSaver, delay time.Duration) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosaver{
		editor: editor,
		saver:  saver,
		delay:  delay,
	}
}

// Start subscribes to the editor. Calling Start twice has no effect.
func (a *Autosaver) Start() {
	a.mu.Lock()
	if a.unsubscribe != nil || a.stopped {
		a.mu.Unlock()
		return
	}
	a.lastRevision = a.editor.Snapshot().Revision
	a.mu.Unlock()

	unsubscribe := a.editor.Subscribe(a.onSnapshot)

	a.mu.Lock()
	a.unsubscribe = unsubscribe
	a.mu.Unlock()
}

// Stop disarms the timer, unsubscribes and waits for a running save.
// Pending edits are not saved; call Flush first to keep them.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	a.stopped = true
	a.disarmLocked()
	unsubscribe := a.unsubscribe
	a.unsubscribe = nil
	a.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	a.wg.Wait()
}

// Flush saves immediately when the session is dirty, after any running save.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	a.disarmLocked()
	a.mu.Unlock()
	return a.run(ctx, false)
}

// SaveNow saves immediately, even when nothing changed.
func (a *Autosaver) SaveNow(ctx context.Context) error {
	a.mu.Lock()
	a.disarmLocked()
	a.mu.Unlock()
	return a.run(ctx, true)
}

// onSnapshot reacts to content edits only: the revision moves on every edit
// and never on save bookkeeping.
func (a *Autosaver) onSnapshot(s domain.EditorSnapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped || s.Revision <= a.lastRevision {
		return
	}
	a.lastRevision = s.Revision

	if a.inFlight {
		a.followUp = true
		return
	}
	a.armLocked()
}

// armLocked (re)starts the debounce timer. mu must be held.
func (a *Autosaver) armLocked() {
	a.disarmLocked()
	a.wg.Add(1)
	a.timer = time.AfterFunc(a.delay, func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), autosaveTimeout)
		defer cancel()
		if err := a.run(ctx, false); err != nil {
			logger.Warn("autosave failed: %v", err)
		}
	})
}

// disarmLocked stops a pending timer. mu must be held.
func (a *Autosaver) disarmLocked() {
	if a.timer != nil && a.timer.Stop() {
		a.wg.Done()
	}
	a.timer = nil
}

func (a *Autosaver) run(ctx context.Context, force bool) error {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()

	if !force && !a.editor.Snapshot().IsDirty {
		return nil
	}

	a.mu.Lock()
	a.inFlight = true
	a.followUp = false
	a.mu.Unlock()

	_, err := SaveEditor(ctx, a.editor, a.saver)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.inFlight = false
	// Edits that arrived during the save are scheduled even when it failed;
	// only the failed snapshot itself is not retried.
	if a.followUp && !a.stopped {
		a.armLocked()
	}
	a.followUp = false
	return err
}
