package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBrowseState(t *testing.T) {
	s := NewBrowseState()
	assert.Equal(t, GenreAll, s.Genre)
	assert.Equal(t, 1, s.Page)
}

func TestBrowseState_SelectGenre_ResetsPage(t *testing.T) {
	s := BrowseState{Genre: GenreAll, Page: 3}

	s = s.SelectGenre("Mystery")

	assert.Equal(t, "Mystery", s.Genre)
	assert.Equal(t, 1, s.Page)
}

func TestBrowseState_SelectGenre_Idempotent(t *testing.T) {
	s := BrowseState{Genre: "Fiction", Page: 1}
	assert.Equal(t, s, s.SelectGenre("Fiction"))
}

func TestBrowseState_SelectPage(t *testing.T) {
	s := BrowseState{Genre: "Fiction", Page: 1}

	s = s.SelectPage(3, 5)
	assert.Equal(t, BrowseState{Genre: "Fiction", Page: 3}, s)

	// Out-of-range pages leave the state unchanged.
	assert.Equal(t, s, s.SelectPage(0, 5))
	assert.Equal(t, s, s.SelectPage(6, 5))

	// Selecting the current page again is idempotent.
	assert.Equal(t, s, s.SelectPage(3, 5))
}
