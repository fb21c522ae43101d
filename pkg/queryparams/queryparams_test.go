package queryparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListParams_Validate(t *testing.T) {
	a := assert.New(t)

	p := ListParams{Page: -3, PerPage: 5000, Search: "  gga ", OrderBy: "ASC"}
	p.Validate()
	a.Equal(DefaultPage, p.Page)
	a.Equal(MaxPerPage, p.PerPage)
	a.Equal("gga", p.Search)
	a.Equal("asc", p.OrderBy)

	p = ListParams{}
	p.Validate()
	a.Equal(DefaultPerPage, p.PerPage)
	a.Equal(DefaultOrderBy, p.OrderBy)
	a.Equal(0, p.CalculateOffset())

	p = ListParams{Page: 3, PerPage: 10}
	a.Equal(20, p.CalculateOffset())

	d := DefaultListParams()
	a.Equal(DefaultPage, d.Page)
	a.Equal(OrderDesc, d.OrderBy)
}

func TestNewPaginatedResult(t *testing.T) {
	a := assert.New(t)

	r := NewPaginatedResult([]int{1, 2}, 21, ListParams{Page: 2, PerPage: 10})
	a.Equal(3, r.Meta.TotalPages)
	a.True(r.Meta.HasPrev())
	a.True(r.Meta.HasNext())
	a.Equal(1, r.Meta.PrevPage())
	a.Equal(3, r.Meta.NextPage())

	r = NewPaginatedResult(nil, 0, ListParams{Page: 1, PerPage: 10})
	a.Equal(0, r.Meta.TotalPages)
	a.False(r.Meta.HasNext())
}
