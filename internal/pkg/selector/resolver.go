package selector

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
)

// DefaultMaxSemesters bounds the semester picker when no course is selected.
const DefaultMaxSemesters = 8

// Option is a single selectable child entry. ConstraintValue carries the
// bound the selection imposes further downstream (for a course option this
// is its total semester count).
type Option struct {
	ID              int64  `json:"id"`
	Label           string `json:"label"`
	ConstraintValue int    `json:"constraintValue,omitempty"`
}

// Child is a member of the authoritative child collection a selection
// chain filters over.
type Child struct {
	Option
	ParentID int64
	Active   bool
}

// ResolveChildren filters the authoritative child collection down to the
// active children of parentID, preserving input order. A parent with no
// active children yields an empty (non-nil) list, never an error; the
// caller presents a "no children available" state.
func ResolveChildren(parentID int64, children []Child) []Option {
	options := []Option{}
	for _, c := range children {
		if c.ParentID == parentID && c.Active {
			options = append(options, c.Option)
		}
	}
	return options
}

// DeriveBound derives the semester bound from a selected course. With no
// selection the bound falls back to DefaultMaxSemesters and the dependent
// field stays disabled.
func DeriveBound(course *models.Course) int {
	if course == nil {
		return DefaultMaxSemesters
	}
	return course.TotalSemesters()
}

// ChildSource fetches the child options scoped to a parent selection.
type ChildSource interface {
	FetchChildren(ctx context.Context, parentID int64) ([]Option, error)
}

// Resolver keeps one parent/child link of a dependent-selection chain
// consistent while the parent value changes. Fetch completions are guarded
// by a generation counter: a response for a superseded parent selection is
// discarded instead of populating children for the wrong parent.
type Resolver struct {
	source ChildSource
	logger zerolog.Logger

	mu         sync.Mutex
	generation uint64
	parentID   int64
	childID    int64
	options    []Option
	loading    bool
}

// Snapshot is the externally visible state of a resolver.
type Snapshot struct {
	ParentID int64
	ChildID  int64
	Options  []Option
	Loading  bool
	// Disabled mirrors the UI contract: the child control is unusable
	// while no parent is selected or a fetch is in flight.
	Disabled bool
}

// NewResolver creates a resolver over the given child source.
func NewResolver(source ChildSource, logger zerolog.Logger) *Resolver {
	return &Resolver{
		source:  source,
		logger:  logger,
		options: []Option{},
	}
}

// OnParentChange clears all downstream state and loads the children scoped
// to the new parent. The downstream selection is cleared before the fetch
// is issued, so no stale child value survives a parent change. An empty
// parent skips the fetch and leaves the child control disabled.
//
// The call blocks until the fetch settles, but concurrent invocations are
// safe: whichever call started last wins, and earlier in-flight results
// are dropped on arrival.
func (r *Resolver) OnParentChange(ctx context.Context, parentID int64) {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	r.parentID = parentID
	r.childID = 0
	r.options = []Option{}
	if parentID == 0 {
		r.loading = false
		r.mu.Unlock()
		return
	}
	r.loading = true
	r.mu.Unlock()

	options, err := r.source.FetchChildren(ctx, parentID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		// A newer parent selection superseded this fetch.
		r.logger.Debug().Int64("parentID", parentID).Msg("Discarding stale children fetch")
		return
	}
	r.loading = false
	if err != nil {
		// Non-fatal: the control falls back to an empty option set.
		r.logger.Warn().Err(err).Int64("parentID", parentID).Msg("Children fetch failed")
		r.options = []Option{}
		return
	}
	if options == nil {
		options = []Option{}
	}
	r.options = options
}

// Select applies a child selection. The child must be one of the currently
// resolved options; selecting while a fetch is pending or before a parent
// is chosen fails.
func (r *Resolver) Select(childID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.parentID == 0 || r.loading {
		return apperrors.NewValidationError("No selectable options available yet")
	}
	for _, opt := range r.options {
		if opt.ID == childID {
			r.childID = childID
			return nil
		}
	}
	return apperrors.NewValidationError("Selected value is not a valid option")
}

// Prime pre-populates the resolver for an edit form: children scoped to
// the entity's current parent are fetched first, and only then is the
// stored child value applied. Setting the child before its option is
// loaded would silently fail to display the right label.
func (r *Resolver) Prime(ctx context.Context, parentID, childID int64) error {
	r.OnParentChange(ctx, parentID)
	if childID == 0 {
		return nil
	}
	return r.Select(childID)
}

// Bound returns the downstream bound imposed by the current child
// selection, or DefaultMaxSemesters when nothing constrains it.
func (r *Resolver) Bound() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, opt := range r.options {
		if opt.ID == r.childID && opt.ConstraintValue > 0 {
			return opt.ConstraintValue
		}
	}
	return DefaultMaxSemesters
}

// Snapshot returns the current resolver state.
func (r *Resolver) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	options := make([]Option, len(r.options))
	copy(options, r.options)
	return Snapshot{
		ParentID: r.parentID,
		ChildID:  r.childID,
		Options:  options,
		Loading:  r.loading,
		Disabled: r.parentID == 0 || r.loading,
	}
}
