package selector

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
)

func TestResolveChildren(t *testing.T) {
	children := []Child{
		{Option: Option{ID: 1, Label: "B.Tech CSE", ConstraintValue: 8}, ParentID: 10, Active: true},
		{Option: Option{ID: 2, Label: "B.Tech ECE", ConstraintValue: 8}, ParentID: 11, Active: true},
		{Option: Option{ID: 3, Label: "M.Tech CSE", ConstraintValue: 4}, ParentID: 10, Active: true},
		{Option: Option{ID: 4, Label: "Old Diploma", ConstraintValue: 6}, ParentID: 10, Active: false},
	}

	t.Run("filters by parent and activity, preserving order", func(t *testing.T) {
		options := ResolveChildren(10, children)
		require.Len(t, options, 2)
		assert.Equal(t, int64(1), options[0].ID)
		assert.Equal(t, int64(3), options[1].ID)
	})

	t.Run("parent without active children yields empty list", func(t *testing.T) {
		options := ResolveChildren(99, children)
		assert.NotNil(t, options)
		assert.Empty(t, options)
	})

	t.Run("resolution is idempotent", func(t *testing.T) {
		first := ResolveChildren(10, children)
		second := ResolveChildren(10, children)
		assert.Equal(t, first, second)
	})
}

func TestDeriveBound(t *testing.T) {
	assert.Equal(t, DefaultMaxSemesters, DeriveBound(nil))

	yearCourse := &models.Course{DurationValue: 4, DurationUnit: models.DurationYear}
	assert.Equal(t, 8, DeriveBound(yearCourse))

	semesterCourse := &models.Course{DurationValue: 6, DurationUnit: models.DurationSemester}
	assert.Equal(t, 6, DeriveBound(semesterCourse))
}

// fakeChildSource serves options per parent. A parent listed in gates
// blocks in FetchChildren until its gate channel is closed.
type fakeChildSource struct {
	mu       sync.Mutex
	byParent map[int64][]Option
	gates    map[int64]chan struct{}
	started  map[int64]chan struct{}
	err      error
}

func (f *fakeChildSource) FetchChildren(_ context.Context, parentID int64) ([]Option, error) {
	f.mu.Lock()
	gate := f.gates[parentID]
	started := f.started[parentID]
	options := f.byParent[parentID]
	err := f.err
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return options, nil
}

func TestResolverParentChange(t *testing.T) {
	source := &fakeChildSource{
		byParent: map[int64][]Option{
			10: {{ID: 1, Label: "B.Tech CSE", ConstraintValue: 8}},
		},
	}
	r := NewResolver(source, zerolog.Nop())

	r.OnParentChange(context.Background(), 10)

	snap := r.Snapshot()
	assert.Equal(t, int64(10), snap.ParentID)
	assert.False(t, snap.Disabled)
	require.Len(t, snap.Options, 1)
	assert.Equal(t, "B.Tech CSE", snap.Options[0].Label)
}

func TestResolverClearsChildOnParentChange(t *testing.T) {
	source := &fakeChildSource{
		byParent: map[int64][]Option{
			10: {{ID: 1, Label: "B.Tech CSE", ConstraintValue: 8}},
			11: {{ID: 2, Label: "B.Sc Physics", ConstraintValue: 6}},
		},
	}
	r := NewResolver(source, zerolog.Nop())

	r.OnParentChange(context.Background(), 10)
	require.NoError(t, r.Select(1))
	assert.Equal(t, int64(1), r.Snapshot().ChildID)

	r.OnParentChange(context.Background(), 11)
	snap := r.Snapshot()
	assert.Zero(t, snap.ChildID, "child selection must not survive a parent change")
	require.Len(t, snap.Options, 1)
	assert.Equal(t, int64(2), snap.Options[0].ID)
}

func TestResolverEmptyParentDisablesChild(t *testing.T) {
	source := &fakeChildSource{byParent: map[int64][]Option{}}
	r := NewResolver(source, zerolog.Nop())

	r.OnParentChange(context.Background(), 0)

	snap := r.Snapshot()
	assert.True(t, snap.Disabled)
	assert.Empty(t, snap.Options)
	assert.ErrorIs(t, r.Select(1), apperrors.ErrValidationFailed)
}

func TestResolverDiscardsStaleFetch(t *testing.T) {
	source := &fakeChildSource{
		byParent: map[int64][]Option{
			10: {{ID: 1, Label: "Stale"}},
			11: {{ID: 2, Label: "Fresh"}},
		},
		gates:   map[int64]chan struct{}{10: make(chan struct{})},
		started: map[int64]chan struct{}{10: make(chan struct{})},
	}
	r := NewResolver(source, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		r.OnParentChange(context.Background(), 10)
		close(done)
	}()
	<-source.started[10]

	// Supersede the in-flight fetch, then let it complete.
	r.OnParentChange(context.Background(), 11)
	close(source.gates[10])
	<-done

	snap := r.Snapshot()
	assert.Equal(t, int64(11), snap.ParentID)
	require.Len(t, snap.Options, 1)
	assert.Equal(t, "Fresh", snap.Options[0].Label, "stale fetch result must be discarded")
}

func TestResolverFetchErrorFallsBackToEmpty(t *testing.T) {
	source := &fakeChildSource{err: errors.New("connection refused")}
	r := NewResolver(source, zerolog.Nop())

	r.OnParentChange(context.Background(), 10)

	snap := r.Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Options)
	assert.ErrorIs(t, r.Select(1), apperrors.ErrValidationFailed)
}

func TestResolverSelect(t *testing.T) {
	source := &fakeChildSource{
		byParent: map[int64][]Option{
			10: {{ID: 1, Label: "B.Tech CSE", ConstraintValue: 8}, {ID: 3, Label: "M.Tech CSE", ConstraintValue: 4}},
		},
	}
	r := NewResolver(source, zerolog.Nop())
	r.OnParentChange(context.Background(), 10)

	assert.ErrorIs(t, r.Select(99), apperrors.ErrValidationFailed)
	require.NoError(t, r.Select(3))
	assert.Equal(t, 4, r.Bound())
}

func TestResolverPrime(t *testing.T) {
	source := &fakeChildSource{
		byParent: map[int64][]Option{
			10: {{ID: 1, Label: "B.Tech CSE", ConstraintValue: 8}},
		},
	}
	r := NewResolver(source, zerolog.Nop())

	require.NoError(t, r.Prime(context.Background(), 10, 1))
	snap := r.Snapshot()
	assert.Equal(t, int64(10), snap.ParentID)
	assert.Equal(t, int64(1), snap.ChildID)
	assert.Equal(t, 8, r.Bound())

	// Priming with a child that is no longer offered fails instead of
	// silently selecting nothing.
	assert.Error(t, r.Prime(context.Background(), 10, 42))
}

func TestResolverBoundDefault(t *testing.T) {
	source := &fakeChildSource{byParent: map[int64][]Option{}}
	r := NewResolver(source, zerolog.Nop())
	assert.Equal(t, DefaultMaxSemesters, r.Bound())
}
