package favorites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/lifter/internal/exercise"
	"github.com/five82/lifter/internal/kv"
)

func TestToggle_AddsThenRemoves(t *testing.T) {
	mem := kv.NewMemory()
	s, err := Load(mem)
	require.NoError(t, err)

	on, err := s.Toggle("custom_1")
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, s.Contains("custom_1"))

	on, err = s.Toggle("custom_1")
	require.NoError(t, err)
	assert.False(t, on)
	assert.False(t, s.Contains("custom_1"))
	assert.Equal(t, 2, mem.Writes(Key))
}

func TestToggle_NumericAndStringIdentityAgree(t *testing.T) {
	s, err := Load(kv.NewMemory())
	require.NoError(t, err)

	on, err := s.Toggle(exercise.NewID(123))
	require.NoError(t, err)
	require.True(t, on)
	assert.True(t, s.Contains(exercise.NewID("123")))

	on, err = s.Toggle(exercise.NewID("123"))
	require.NoError(t, err)
	assert.False(t, on)
	assert.False(t, s.Contains(exercise.NewID(123)))
}

func TestToggle_EmptyIDIgnored(t *testing.T) {
	mem := kv.NewMemory()
	s, err := Load(mem)
	require.NoError(t, err)

	on, err := s.Toggle("")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Zero(t, mem.Writes(Key))
}

func TestSet_RoundTrip(t *testing.T) {
	mem := kv.NewMemory()
	s, err := Load(mem)
	require.NoError(t, err)
	for _, id := range []exercise.ID{"5", "custom_9", "77"} {
		_, err := s.Toggle(id)
		require.NoError(t, err)
	}

	reloaded, err := Load(mem)
	require.NoError(t, err)
	assert.Equal(t, s.IDs(), reloaded.IDs())
}

func TestLoad_DropsDuplicatesAndBlanks(t *testing.T) {
	mem := kv.NewMemory()
	mem.SetRaw(Key, []byte(`ids = ["5", " 5", "", "7"]`))
	s, err := Load(mem)
	require.NoError(t, err)
	assert.Equal(t, []exercise.ID{"5", "7"}, s.IDs())
}

func TestRemove(t *testing.T) {
	s, err := Load(kv.NewMemory())
	require.NoError(t, err)
	_, err = s.Toggle("5")
	require.NoError(t, err)

	removed, err := s.Remove("6")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = s.Remove("5")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Zero(t, s.Len())
}
