package domain

// SaveStatus is the save lifecycle state of an editing session.
type SaveStatus string

// Save lifecycle states. Error stays logically dirty so a retry is safe.
const (
	StatusClean  SaveStatus = "clean"
	StatusDirty  SaveStatus = "dirty"
	StatusSaving SaveStatus = "saving"
	StatusError  SaveStatus = "error"
)

// EditorSnapshot is one immutable state of an editing session.
// Snapshots handed to callers are deep copies.
type EditorSnapshot struct {
	// Version increases by one on every state transition.
	Version uint64

	// Revision increases on every content edit. A save records the revision
	// it started from so edits made while it was in flight stay dirty.
	Revision uint64

	Mode     SiteMode
	Site     *Site
	Template *Template
	Data     DataRecord
	Theme    Theme

	// BaseTheme is what the site's theme overrides are measured against:
	// the template default in template mode.
	BaseTheme Theme

	IsDirty  bool
	IsSaving bool
	Error    string

	Pages          []Page
	CurrentPageID  string
	CurrentBlockID string
	BlockLibrary   []BlockTypeDefinition
	Menu           *NavigationMenu
}

// Clone returns a deep copy of the snapshot.
func (s EditorSnapshot) Clone() EditorSnapshot {
	out := s
	if s.Site != nil {
		site := s.Site.Clone()
		out.Site = &site
	}
	if s.Template != nil {
		tmpl := s.Template.Clone()
		out.Template = &tmpl
	}
	out.Data = s.Data.Clone()
	out.Pages = ClonePages(s.Pages)
	out.BlockLibrary = CloneCatalog(s.BlockLibrary)
	if s.Menu != nil {
		menu := s.Menu.Clone()
		out.Menu = &menu
	}
	return out
}

// Status derives the save lifecycle state.
func (s EditorSnapshot) Status() SaveStatus {
	switch {
	case s.IsSaving:
		return StatusSaving
	case s.Error != "":
		return StatusError
	case s.IsDirty:
		return StatusDirty
	default:
		return StatusClean
	}
}

// Page returns a copy of the page with the given id.
func (s EditorSnapshot) Page(id string) (Page, bool) {
	for i := range s.Pages {
		if s.Pages[i].ID == id {
			return s.Pages[i].Clone(), true
		}
	}
	return Page{}, false
}

// CurrentPage returns a copy of the page being edited.
func (s EditorSnapshot) CurrentPage() (Page, bool) {
	if s.CurrentPageID == "" {
		return Page{}, false
	}
	return s.Page(s.CurrentPageID)
}

// CurrentBlock returns a copy of the selected block.
func (s EditorSnapshot) CurrentBlock() (Block, bool) {
	if s.CurrentBlockID == "" {
		return Block{}, false
	}
	if s.Mode == ModeTemplate {
		if s.Template == nil {
			return Block{}, false
		}
		return FindBlock(s.Template.Structure, s.CurrentBlockID)
	}
	page, ok := s.CurrentPage()
	if !ok {
		return Block{}, false
	}
	return FindBlock(page.Structure, s.CurrentBlockID)
}
