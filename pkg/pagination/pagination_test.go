package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	p := New(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, 0, p.Offset)
}

func TestNew_CustomValues(t *testing.T) {
	p := New(3, 50)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.PerPage)
	assert.Equal(t, 100, p.Offset) // (3-1) * 50
}

func TestNew_NegativePage(t *testing.T) {
	p := New(-1, 20)
	assert.Equal(t, 1, p.Page)
}

func TestNew_PerPageOverCap(t *testing.T) {
	p := New(1, 200)
	assert.Equal(t, DefaultPerPage, p.PerPage)
}

func TestNew_PerPageExactlyMax(t *testing.T) {
	p := New(1, MaxPerPage)
	assert.Equal(t, MaxPerPage, p.PerPage)
}

func TestNew_NegativePerPage(t *testing.T) {
	p := New(1, -5)
	assert.Equal(t, DefaultPerPage, p.PerPage)
}

func TestNewResult_Metadata(t *testing.T) {
	r := NewResult([]string{"a", "b"}, 11, New(2, 5))
	assert.Equal(t, 11, r.TotalCount)
	assert.Equal(t, 2, r.Page)
	assert.Equal(t, 5, r.PerPage)
	assert.Equal(t, 3, r.TotalPages) // ceil(11/5)
	assert.True(t, r.HasNext)
	assert.True(t, r.HasPrev)
}

func TestNewResult_FirstPage(t *testing.T) {
	r := NewResult([]int{1, 2, 3}, 3, New(1, 20))
	assert.Equal(t, 1, r.TotalPages)
	assert.False(t, r.HasNext)
	assert.False(t, r.HasPrev)
}

func TestNewResult_LastPage(t *testing.T) {
	r := NewResult([]int{1}, 21, New(2, 20))
	assert.Equal(t, 2, r.TotalPages)
	assert.False(t, r.HasNext)
	assert.True(t, r.HasPrev)
}

func TestNewResult_ExactMultiple(t *testing.T) {
	r := NewResult([]int{1}, 40, New(1, 20))
	assert.Equal(t, 2, r.TotalPages)
}

func TestNewResult_NilDataBecomesEmptySlice(t *testing.T) {
	r := NewResult[string](nil, 0, New(1, 20))
	assert.NotNil(t, r.Data)
	assert.Empty(t, r.Data)
	assert.Equal(t, 0, r.TotalPages)
}
