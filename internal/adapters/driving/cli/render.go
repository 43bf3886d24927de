package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// treeStyles colours block trees when stdout is a terminal.
type treeStyles struct {
	typeName lipgloss.Style
	id       lipgloss.Style
	value    lipgloss.Style
	slot     lipgloss.Style
	muted    lipgloss.Style
}

func newTreeStyles(styled bool) treeStyles {
	if !styled {
		plain := lipgloss.NewStyle()
		return treeStyles{typeName: plain, id: plain, value: plain, slot: plain, muted: plain}
	}
	return treeStyles{
		typeName: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B7355")),
		id:       lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		value:    lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4")),
		slot:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#D4AF37")),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // Fd fits in int on supported platforms
}

// renderTree writes a block forest as an indented outline.
func renderTree(w io.Writer, blocks []domain.Block) {
	st := newTreeStyles(isTerminal(w))
	writeBlocks(w, st, blocks, "")
}

func writeBlocks(w io.Writer, st treeStyles, blocks []domain.Block, indent string) {
	for i, b := range blocks {
		branch, next := "├── ", "│   "
		if i == len(blocks)-1 {
			branch, next = "└── ", "    "
		}
		fmt.Fprintf(w, "%s%s%s %s\n", indent, branch, st.typeName.Render(string(b.Type)), st.id.Render("["+b.ID+"]"))

		for _, key := range sortedKeys(b.Properties) {
			style := st.value
			if strings.HasSuffix(key, domain.SlotSuffix) {
				style = st.slot
			}
			fmt.Fprintf(w, "%s%s  %s = %s\n", indent, next, st.muted.Render(key), style.Render(summarise(b.Properties[key])))
		}
		writeBlocks(w, st, b.Children, indent+next)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

const maxValueWidth = 60

// summarise renders a property value on one line.
func summarise(v any) string {
	var s string
	switch val := v.(type) {
	case string:
		s = fmt.Sprintf("%q", val)
	case nil:
		s = "null"
	default:
		data, err := json.Marshal(val)
		if err != nil {
			s = fmt.Sprintf("%v", val)
		} else {
			s = string(data)
		}
	}
	if r := []rune(s); len(r) > maxValueWidth {
		s = string(r[:maxValueWidth-1]) + "…"
	}
	return s
}

// writeJSON pretty-prints v.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
