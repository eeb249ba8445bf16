package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
)

func TestApproveLeave(t *testing.T) {
	t.Run("pending request is approved", func(t *testing.T) {
		next, err := ApproveLeave(models.LeavePending, "")
		require.NoError(t, err)
		assert.Equal(t, models.LeaveApproved, next)
	})

	t.Run("remarks are optional on approval", func(t *testing.T) {
		next, err := ApproveLeave(models.LeavePending, "looks fine")
		require.NoError(t, err)
		assert.Equal(t, models.LeaveApproved, next)
	})

	t.Run("terminal states are immutable", func(t *testing.T) {
		for _, current := range []models.LeaveStatus{models.LeaveApproved, models.LeaveRejected} {
			next, err := ApproveLeave(current, "")
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
			assert.Equal(t, current, next)
		}
	})
}

func TestRejectLeave(t *testing.T) {
	t.Run("pending request is rejected with remarks", func(t *testing.T) {
		next, err := RejectLeave(models.LeavePending, "overlaps exam week")
		require.NoError(t, err)
		assert.Equal(t, models.LeaveRejected, next)
	})

	t.Run("remarks are required", func(t *testing.T) {
		_, err := RejectLeave(models.LeavePending, "   ")
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("terminal states are immutable", func(t *testing.T) {
		_, err := RejectLeave(models.LeaveApproved, "too late")
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})
}

func TestToggle(t *testing.T) {
	assert.Equal(t, models.StatusInactive, Toggle(models.StatusActive))
	assert.Equal(t, models.StatusActive, Toggle(models.StatusInactive))
}

func TestDecideDelete(t *testing.T) {
	t.Run("no dependents allows delete", func(t *testing.T) {
		assert.NoError(t, DecideDelete("department", models.DependentCounts{}))
	})

	t.Run("any dependent blocks delete with breakdown", func(t *testing.T) {
		dependents := models.DependentCounts{Courses: 2, Students: 40}
		err := DecideDelete("department", dependents)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrDependencyConflict)

		var conflict *apperrors.DependencyConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "department", conflict.Entity)
		assert.Equal(t, dependents, conflict.Dependents)
		assert.EqualValues(t, 42, conflict.Dependents.Total())
	})
}
