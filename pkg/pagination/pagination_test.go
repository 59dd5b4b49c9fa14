package pagination

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	assert.Equal(t, Params{Page: 1, Limit: 10}, New(0, 0))
	assert.Equal(t, Params{Page: 1, Limit: 10}, New(-3, -1))
	assert.Equal(t, Params{Page: 2, Limit: MaxLimit}, New(2, 5000))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, New(1, 10).Offset())
	assert.Equal(t, 20, New(3, 10).Offset())
}

func TestNew_HugePageKeepsOffsetPositive(t *testing.T) {
	for _, page := range []int{100000000000000000, 200000000000000000, math.MaxInt} {
		p := New(page, MaxLimit)
		assert.Equal(t, math.MaxInt/MaxLimit, p.Page)
		assert.Greater(t, p.Offset(), 0)
		assert.LessOrEqual(t, p.Offset(), math.MaxInt-MaxLimit)
	}

	p := New(math.MaxInt, 1)
	assert.Greater(t, p.Offset(), 0)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/doctors?page=3&limit=25", nil)
	assert.Equal(t, Params{Page: 3, Limit: 25}, FromRequest(r))

	r = httptest.NewRequest("GET", "/doctors?page=abc", nil)
	assert.Equal(t, Params{Page: 1, Limit: 10}, FromRequest(r))
}

func TestMeta(t *testing.T) {
	meta := New(4, 10).Meta(35)
	assert.Equal(t, int64(35), meta.Total)
	assert.Equal(t, 4, meta.TotalPages)
	assert.Equal(t, 4, meta.Page)
}
