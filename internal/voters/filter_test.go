package voters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage_MiddlePage(t *testing.T) {
	p := NewPage(10, 2, 3, 3, nil)

	assert.Equal(t, int64(10), p.Total)
	assert.Equal(t, 4, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
	if assert.NotNil(t, p.NextPage) {
		assert.Equal(t, 3, *p.NextPage)
	}
	if assert.NotNil(t, p.PrevPage) {
		assert.Equal(t, 1, *p.PrevPage)
	}
}

func TestNewPage_FirstPage(t *testing.T) {
	p := NewPage(5, 1, 2, 2, nil)

	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
	assert.Nil(t, p.PrevPage)
}

func TestNewPage_LastPage(t *testing.T) {
	p := NewPage(5, 3, 2, 1, nil)

	assert.Equal(t, 3, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.Nil(t, p.NextPage)
	assert.True(t, p.HasPrevPage)
}

func TestNewPage_ExactMultiple(t *testing.T) {
	p := NewPage(6, 3, 2, 2, nil)

	assert.Equal(t, 3, p.TotalPages)
	assert.False(t, p.HasNextPage)
}

func TestNewPage_EmptyResult(t *testing.T) {
	p := NewPage(0, 1, 10, 0, nil)

	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
}

func TestNormalizePaging_Defaults(t *testing.T) {
	page, limit := normalizePaging(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)

	page, limit = normalizePaging(-3, -1)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)

	page, limit = normalizePaging(4, 25)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, limit)
}
