package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapKeysAreUppercase(t *testing.T) {
	t.Parallel()
	m := Empty()
	m.Set("foo", "bar")
	assert.Equal(t, "bar", m.Get("FOO"))
	assert.Equal(t, "bar", m.Get("foo"))
	assert.Equal(t, []string{"FOO"}, m.Keys())
}

func TestMapLookup(t *testing.T) {
	t.Parallel()
	m := Empty()
	_, found := m.Lookup("missing")
	assert.False(t, found)

	m.Set("key", "value")
	v, found := m.Lookup("key")
	assert.True(t, found)
	assert.Equal(t, "value", v)
}

func TestMapGetOrErr(t *testing.T) {
	t.Parallel()
	m := Empty()
	_, err := m.GetOrErr("foo")
	assert.Error(t, err)
	assert.Equal(t, `missing ENV variable "FOO"`, err.Error())

	m.Set("foo", "bar")
	v, err := m.GetOrErr("foo")
	assert.NoError(t, err)
	assert.Equal(t, "bar", v)
}

func TestMapMerge(t *testing.T) {
	t.Parallel()
	m := FromMap(map[string]string{"A": "1", "B": "2"})
	src := FromMap(map[string]string{"B": "x", "C": "3"})

	// Existing keys take precedence
	m.Merge(src, false)
	assert.Equal(t, map[string]string{"A": "1", "B": "2", "C": "3"}, m.ToMap())

	// Overwrite
	m.Merge(src, true)
	assert.Equal(t, map[string]string{"A": "1", "B": "x", "C": "3"}, m.ToMap())
}

func TestMapToSlice(t *testing.T) {
	t.Parallel()
	m := FromMap(map[string]string{"B": "2", "A": "1"})
	assert.Equal(t, []string{"A=1", "B=2"}, m.ToSlice())
}

func TestMapClone(t *testing.T) {
	t.Parallel()
	m := FromMap(map[string]string{"A": "1"})
	clone := m.Clone()
	clone.Set("A", "changed")
	assert.Equal(t, "1", m.Get("A"))
	assert.Equal(t, "changed", clone.Get("A"))
}

func TestFlagToEnv(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "DSC_LOG_FILE", FlagToEnv("log-file"))
	assert.Equal(t, "DSC_VERBOSE", FlagToEnv("verbose"))
}
