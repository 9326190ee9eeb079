package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample() Rows {
	return Rows{
		{"day": "2026-08-27", "count": 10},
		{"day": "2026-08-28", "count": 12, "region": "eu"},
	}
}

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{"count", "day", "region"}, sample().Columns())
	assert.Empty(t, Rows{}.Columns())
}

func TestSelect(t *testing.T) {
	got := sample().Select("day")
	assert.Equal(t, Rows{
		{"day": "2026-08-27"},
		{"day": "2026-08-28"},
	}, got)
}

func TestFilter(t *testing.T) {
	got := sample().Filter(func(r Row) bool {
		return r["count"].(int) > 10
	})
	assert.Len(t, got, 1)
	assert.Equal(t, "2026-08-28", got[0]["day"])
}
