package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/kv"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestStore(t *testing.T) (*Store, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	s := NewStore(mem, nil)
	s.Now = fixedClock(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))
	return s, mem
}

func TestAddRejectsBlankTitle(t *testing.T) {
	s, mem := newTestStore(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := s.Add(Input{Title: title})
		require.ErrorIs(t, err, ErrEmptyTitle)
	}
	assert.Equal(t, 0, s.Len())
	_, ok, _ := mem.Get(TasksKey)
	assert.False(t, ok, "rejected add must not persist anything")
}

func TestAddNormalizesAndPrepends(t *testing.T) {
	s, _ := newTestStore(t)

	first, err := s.Add(Input{Title: "  first  ", Description: " desc "})
	require.NoError(t, err)
	second, err := s.Add(Input{Title: "second", Priority: PriorityHigh, Category: "work"})
	require.NoError(t, err)

	assert.Equal(t, "first", first.Title)
	assert.Equal(t, "desc", first.Description)
	assert.Equal(t, PriorityMedium, first.Priority)
	assert.Equal(t, "other", first.Category)
	assert.False(t, first.Completed)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	tasks := s.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "second", tasks[0].Title, "newest first")
	assert.Equal(t, "first", tasks[1].Title)
}

func TestUpdatedAtNeverBeforeCreatedAt(t *testing.T) {
	s, _ := newTestStore(t)
	created := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	s.Now = fixedClock(created)

	added, err := s.Add(Input{Title: "a"})
	require.NoError(t, err)
	assert.Equal(t, added.CreatedAt, added.UpdatedAt)

	s.Now = fixedClock(created.Add(time.Hour))
	toggled, err := s.Toggle(added.ID)
	require.NoError(t, err)
	assert.True(t, toggled.UpdatedAt.After(toggled.CreatedAt))

	s.Now = fixedClock(created.Add(2 * time.Hour))
	edited, err := s.Edit(added.ID, Input{Title: "b"})
	require.NoError(t, err)
	assert.False(t, edited.UpdatedAt.Before(edited.CreatedAt))
	assert.Equal(t, added.CreatedAt, edited.CreatedAt)
}

func TestEditPreservesIdentityFields(t *testing.T) {
	s, _ := newTestStore(t)
	added, err := s.Add(Input{Title: "original"})
	require.NoError(t, err)
	_, err = s.Toggle(added.ID)
	require.NoError(t, err)

	due, err := ParseDate("2026-09-01")
	require.NoError(t, err)
	edited, err := s.Edit(added.ID, Input{
		Title:    "renamed",
		Due:      &due,
		Priority: PriorityLow,
		Category: "home",
	})
	require.NoError(t, err)

	assert.Equal(t, added.ID, edited.ID)
	assert.Equal(t, added.CreatedAt, edited.CreatedAt)
	assert.True(t, edited.Completed, "edit must not reset completion")
	assert.Equal(t, "renamed", edited.Title)
	assert.Equal(t, "2026-09-01", edited.Due.String())
	assert.Equal(t, PriorityLow, edited.Priority)
	assert.Equal(t, "home", edited.Category)
}

func TestMissingIDSurfacesNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Add(Input{Title: "keep me"})
	require.NoError(t, err)

	_, err = s.Edit("no-such-id", Input{Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Toggle("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
	err = s.Delete("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 1, s.Len(), "list unchanged after misses")
}

func TestPersistFailureKeepsMutation(t *testing.T) {
	s, mem := newTestStore(t)
	mem.FailWrites = true

	added, err := s.Add(Input{Title: "survives"})
	var pe *PersistError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "add", pe.Op)
	assert.True(t, errors.Is(err, kv.ErrWriteFailed))

	// Memory stays the source of truth.
	assert.Equal(t, 1, s.Len())
	got, ok := s.Get(added.ID)
	require.True(t, ok)
	assert.Equal(t, "survives", got.Title)
}

func TestClearCompleted(t *testing.T) {
	s, mem := newTestStore(t)
	a, _ := s.Add(Input{Title: "a"})
	b, _ := s.Add(Input{Title: "b"})
	_, _ = s.Add(Input{Title: "c"})
	_, err := s.Toggle(a.ID)
	require.NoError(t, err)
	_, err = s.Toggle(b.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, s.CompletedCount())
	removed, err := s.ClearCompleted()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, s.Len())

	// Nothing completed left: no mutation and no persistence write.
	mem.FailWrites = true
	removed, err = s.ClearCompleted()
	require.NoError(t, err, "no-op clear must not touch the kv store")
	assert.Equal(t, 0, removed)
	assert.Equal(t, 1, s.Len())
}

func TestLoadRoundTripIsByteStable(t *testing.T) {
	s, mem := newTestStore(t)
	due, err := ParseDate("2026-09-15")
	require.NoError(t, err)
	_, err = s.Add(Input{Title: "one", Description: "with \"quotes\"", Due: &due})
	require.NoError(t, err)
	_, err = s.Add(Input{Title: "two", Priority: PriorityHigh, Category: "work"})
	require.NoError(t, err)

	first, ok, err := mem.Get(TasksKey)
	require.NoError(t, err)
	require.True(t, ok)

	reloaded := NewStore(mem, nil)
	reloaded.Load()
	require.Equal(t, s.Tasks(), reloaded.Tasks())

	again, err := Marshal(reloaded.Tasks())
	require.NoError(t, err)
	assert.Equal(t, first, again, "serialize∘deserialize∘serialize must be identity")
}

func TestLoadDiscardsCorruptState(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(TasksKey, "{not json"))

	s := NewStore(mem, nil)
	s.Load()
	assert.Equal(t, 0, s.Len())

	// Schema violations are discarded too, not half-parsed.
	require.NoError(t, mem.Set(TasksKey, `[{"id":"x","completed":false}]`))
	s.Load()
	assert.Equal(t, 0, s.Len())
}

func TestLoadMissingKeyStartsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	s.Load()
	assert.Equal(t, 0, s.Len())
}
