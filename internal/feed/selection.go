package feed

// ViewMode selects between the full catalog and the personalized pool.
type ViewMode string

const (
	ViewAll          ViewMode = "all"
	ViewPersonalized ViewMode = "personalized"
)

// SortMode orders the visible list.
type SortMode string

const (
	SortTrending SortMode = "trending"
	SortDate     SortMode = "date"
)

// LevelAll keeps every level in the visible list.
const LevelAll = "all"

// Selection is the ephemeral per-view filter state. It is owned by the
// current view and never persisted.
type Selection struct {
	View  ViewMode
	Level string // LevelAll or an exact level value
	Sort  SortMode
	Query string
	Tags  []string // selected tags, OR semantics across them
}

// DefaultSelection returns the state a fresh view starts with.
func DefaultSelection() Selection {
	return Selection{
		View:  ViewAll,
		Level: LevelAll,
		Sort:  SortDate,
	}
}

// ClearFilters resets query, level, sort, and selected tags to their
// defaults. The view mode is kept: clearing filters is not a mode switch.
func (s *Selection) ClearFilters() {
	d := DefaultSelection()
	d.View = s.View
	*s = d
}
