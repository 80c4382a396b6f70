package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFields = SortFields{"title": "f.title", "film_id": "f.film_id"}

func TestParseSortEmptyField(t *testing.T) {
	s, err := ParseSort("", "desc", testFields)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestParseSortDefaultsToAsc(t *testing.T) {
	s, err := ParseSort("title", "", testFields)
	require.NoError(t, err)
	assert.Equal(t, &Sort{Field: "title", Column: "f.title", Order: Asc}, s)
}

func TestParseSortCaseInsensitiveOrder(t *testing.T) {
	s, err := ParseSort("title", "DESC", testFields)
	require.NoError(t, err)
	assert.Equal(t, Desc, s.Order)
}

func TestParseSortRejects(t *testing.T) {
	_, err := ParseSort("password", "asc", testFields)
	assert.ErrorIs(t, err, ErrInvalidSortField)
	assert.True(t, IsClientError(err))

	_, err = ParseSort("title", "sideways", testFields)
	assert.ErrorIs(t, err, ErrInvalidSortOrder)
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, []string{"f.film_id ASC"}, OrderBy(nil, "f.film_id"))
	assert.Equal(t,
		[]string{"f.title DESC", "f.film_id ASC"},
		OrderBy(&Sort{Column: "f.title", Order: Desc}, "f.film_id"))
	assert.Equal(t,
		[]string{"f.film_id DESC"},
		OrderBy(&Sort{Column: "f.film_id", Order: Desc}, "f.film_id"))
}
