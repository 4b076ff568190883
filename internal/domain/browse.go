package domain

// GenreAll is the sentinel genre selecting the whole catalog.
const GenreAll = "All"

// BrowseState is the session-local catalog view state: the selected genre and
// the current 1-based page. It is not persisted.
type BrowseState struct {
	Genre string
	Page  int
}

// NewBrowseState returns the initial view state: all genres, first page.
func NewBrowseState() BrowseState {
	return BrowseState{Genre: GenreAll, Page: 1}
}

// SelectGenre transitions to the given genre. The page always resets to 1,
// regardless of the prior page. Selecting the current genre is idempotent.
func (s BrowseState) SelectGenre(genre string) BrowseState {
	return BrowseState{Genre: genre, Page: 1}
}

// SelectPage transitions to the given page within the same genre. Pages
// outside [1, pageCount] leave the state unchanged.
func (s BrowseState) SelectPage(page, pageCount int) BrowseState {
	if page < 1 || page > pageCount {
		return s
	}
	return BrowseState{Genre: s.Genre, Page: page}
}
