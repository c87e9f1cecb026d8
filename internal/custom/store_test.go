package custom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/lifter/internal/exercise"
	"github.com/five82/lifter/internal/kv"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestCreate_BuildsCustomEntry(t *testing.T) {
	mem := kv.NewMemory()
	s, err := Load(mem)
	require.NoError(t, err)
	s.SetClock(fixedClock(1700000000000))

	ref, created, err := s.Create("  Landmine Press ", "Shoulders")
	require.NoError(t, err)
	require.True(t, created)

	assert.Equal(t, exercise.ID("custom_1700000000000"), ref.ID)
	assert.Equal(t, "Landmine Press", ref.Name)
	assert.Equal(t, "shoulders", ref.Target)
	assert.Equal(t, "custom", ref.BodyPart)
	assert.True(t, ref.IsCustom)
	assert.Equal(t, 1, mem.Writes(Key))
}

func TestCreate_MissingBodyPartDefaultsTarget(t *testing.T) {
	s, err := Load(kv.NewMemory())
	require.NoError(t, err)

	ref, created, err := s.Create("Sled Push", "   ")
	require.NoError(t, err)
	require.True(t, created)
	assert.Equal(t, "custom", ref.Target)
}

func TestCreate_EmptyNameIsNoOp(t *testing.T) {
	mem := kv.NewMemory()
	s, err := Load(mem)
	require.NoError(t, err)

	_, created, err := s.Create("   ", "legs")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Zero(t, s.Len())
	assert.Zero(t, mem.Writes(Key))
}

func TestCreate_SameMillisecondGetsDistinctIDs(t *testing.T) {
	s, err := Load(kv.NewMemory())
	require.NoError(t, err)
	s.SetClock(fixedClock(42))

	a, _, err := s.Create("A", "")
	require.NoError(t, err)
	b, _, err := s.Create("B", "")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestStore_RoundTrip(t *testing.T) {
	mem := kv.NewMemory()
	s, err := Load(mem)
	require.NoError(t, err)
	s.SetClock(fixedClock(1))
	_, _, err = s.Create("One", "legs")
	require.NoError(t, err)
	_, _, err = s.Create("Two", "")
	require.NoError(t, err)

	reloaded, err := Load(mem)
	require.NoError(t, err)
	assert.Equal(t, s.All(), reloaded.All())
}

func TestDelete(t *testing.T) {
	mem := kv.NewMemory()
	s, err := Load(mem)
	require.NoError(t, err)
	ref, _, err := s.Create("One", "legs")
	require.NoError(t, err)

	deleted, err := s.Delete("missing")
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = s.Delete(ref.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Zero(t, s.Len())

	reloaded, err := Load(mem)
	require.NoError(t, err)
	assert.Zero(t, reloaded.Len())
}

func TestFindAndDelete_NormalizeIDs(t *testing.T) {
	s, err := Load(kv.NewMemory())
	require.NoError(t, err)
	s.SetClock(fixedClock(1700000000000))
	ref, _, err := s.Create("Sled Push", "legs")
	require.NoError(t, err)

	padded := exercise.ID("  " + string(ref.ID) + " ")
	found, ok := s.Find(padded)
	require.True(t, ok)
	assert.Equal(t, ref.ID, found.ID)

	deleted, err := s.Delete(padded)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Zero(t, s.Len())
}

func TestLoad_LegacyRecordsKeepRawBodyPart(t *testing.T) {
	mem := kv.NewMemory()
	mem.SetRaw(Key, []byte(`
[[exercises]]
id = "cust_1699999999999"
name = "Nordic Curl"
target = "custom"
bodyPart = "legs"
isCustom = true
`))
	s, err := Load(mem)
	require.NoError(t, err)
	all := s.All()
	require.Len(t, all, 1)
	assert.Equal(t, "legs", all[0].BodyPart)
	assert.True(t, all[0].IsCustom)
}
