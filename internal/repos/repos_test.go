package repos

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNameMatcher(t *testing.T) {
	m := NewNameMatcher("CAFÉ")
	assert.True(t, m.Matches("Café Über"))
	assert.True(t, m.Matches("café"))
	assert.False(t, m.Matches("Cafe"))

	assert.True(t, NewNameMatcher("über").Matches("Café Über"))
	assert.True(t, NewNameMatcher("100%").Matches("100% Pure"))
	assert.False(t, NewNameMatcher("_").Matches("Guns N Petals"))
	assert.True(t, NewNameMatcher("").Matches("anything"))
}

func TestCountsToMap(t *testing.T) {
	m := CountsToMap([]CountHelper{{ID: 1, Count: 3}, {ID: 4, Count: 1}})
	assert.Equal(t, map[uint]uint{1: 3, 4: 1}, m)
	assert.Empty(t, CountsToMap(nil))
}

func TestTranslateWriteError(t *testing.T) {
	assert.NoError(t, TranslateWriteError(nil, "ignored"))
	plain := errors.New("disk on fire")
	err := TranslateWriteError(plain, "Create")
	assert.Equal(t, plain, errors.Cause(err))
	assert.Contains(t, err.Error(), "Create")
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:/tmp/fyyur.db?_foreign_keys=1&_loc=UTC", SQLiteDSN("/tmp/fyyur.db"))
}
