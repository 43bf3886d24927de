// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/styles"
)

// Item is one row: a title, an optional badge and a muted detail line.
type Item struct {
	ID     string
	Title  string
	Badge  string
	Detail string
}

// List is a navigable list of items with a visible window that follows the
// selection.
type List struct {
	items    []Item
	selected int
	empty    string
	styles   *styles.Styles
	width    int
	height   int
}

// New creates a list. empty is shown when there are no items.
func New(s *styles.Styles, empty string) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &List{
		styles: s,
		empty:  empty,
		width:  80,
		height: 10,
	}
}

// Update handles list navigation keys.
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.items) > 0 {
				l.selected = len(l.items) - 1
			}
		}
	}
	return l, nil
}

// View renders the visible window of the list.
func (l *List) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render(l.empty)
	}

	// Each item takes two lines.
	visible := l.height / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.items) {
		end = len(l.items)
	}

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i))
	}
	return strings.Join(lines, "\n")
}

func (l *List) renderItem(index int) string {
	item := l.items[index]
	title := truncate(item.Title, l.width-20)
	if title == "" {
		title = "(sans titre)"
	}

	var line string
	if index == l.selected {
		line = l.styles.Selected.Render("> " + title)
	} else {
		line = l.styles.Normal.Render("  " + title)
	}
	if item.Badge != "" {
		line += " " + l.styles.Badge.Render("["+item.Badge+"]")
	}
	if item.Detail != "" {
		line += "\n" + l.styles.Muted.Render("    "+truncate(item.Detail, l.width-6))
	}
	return line
}

func truncate(s string, limit int) string {
	if limit < 10 {
		limit = 10
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

// SetItems replaces the items, keeping the selection in range.
func (l *List) SetItems(items []Item) {
	l.items = items
	l.clamp()
}

// Items returns the current items.
func (l *List) Items() []Item {
	return l.items
}

// Selected returns the selected index.
func (l *List) Selected() int {
	return l.selected
}

// SetSelected sets the selected index. Out of range values are ignored.
func (l *List) SetSelected(index int) {
	if index >= 0 && index < len(l.items) {
		l.selected = index
	}
}

// SelectByID selects the item with the given id and reports whether it exists.
func (l *List) SelectByID(id string) bool {
	for i, item := range l.items {
		if item.ID == id {
			l.selected = i
			return true
		}
	}
	return false
}

// SelectedItem returns the selected item, or false if the list is empty.
func (l *List) SelectedItem() (Item, bool) {
	if len(l.items) == 0 {
		return Item{}, false
	}
	return l.items[l.selected], true
}

// MoveUp moves selection up.
func (l *List) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *List) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *List) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *List) Count() int {
	return len(l.items)
}

func (l *List) clamp() {
	switch {
	case len(l.items) == 0:
		l.selected = 0
	case l.selected >= len(l.items):
		l.selected = len(l.items) - 1
	}
}
