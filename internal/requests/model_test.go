package requests

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	for _, st := range []Status{StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled} {
		assert.True(t, st.Valid(), "%s", st)
	}
	assert.False(t, Status("SHIPPED").Valid())
	assert.False(t, Status("").Valid())
	assert.False(t, Status("open").Valid())
}

func TestCategoryValid(t *testing.T) {
	for _, c := range []Category{CategoryFood, CategoryMedicine, CategoryClothing, CategoryElectronics, CategoryBooks, CategoryOther} {
		assert.True(t, c.Valid(), "%s", c)
	}
	assert.False(t, Category("Vehicles").Valid())
	assert.False(t, Category("food").Valid())
}

func TestNewPagination(t *testing.T) {
	cases := []struct {
		total, limit, offset int
		hasMore              bool
	}{
		{total: 100, limit: 20, offset: 0, hasMore: true},
		{total: 100, limit: 20, offset: 80, hasMore: false},
		{total: 100, limit: 20, offset: 79, hasMore: true},
		{total: 0, limit: 20, offset: 0, hasMore: false},
		{total: 20, limit: 20, offset: 0, hasMore: false},
		{total: 21, limit: 20, offset: 0, hasMore: true},
	}

	for _, tc := range cases {
		p := NewPagination(tc.total, tc.limit, tc.offset)
		assert.Equal(t, tc.hasMore, p.HasMore, "total=%d limit=%d offset=%d", tc.total, tc.limit, tc.offset)
		assert.Equal(t, tc.total, p.Total)
	}
}
