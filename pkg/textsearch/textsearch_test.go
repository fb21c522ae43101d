package textsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQLFilter(t *testing.T) {
	fragment, args := SQLFilter("title", "gyro")
	assert.Equal(t, "title LIKE ?", fragment)
	assert.Equal(t, []interface{}{"%gyro%"}, args)
}

func TestAnyOf(t *testing.T) {
	a := assert.New(t)

	fragment, args := AnyOf("ctd", "title", "body")
	a.Equal("title LIKE ? OR body LIKE ?", fragment)
	a.Equal([]interface{}{"%ctd%", "%ctd%"}, args)

	fragment, args = AnyOf("ctd")
	a.Equal("", fragment)
	a.Empty(args)
}
