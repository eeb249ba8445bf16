// Package workflow enforces the lifecycle rules shared by approval-style
// and toggle-style entities: which status transitions are legal, what each
// transition requires, and when a hard delete must give way to deactivation.
package workflow

import (
	"fmt"
	"strings"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
)

// ApproveLeave transitions a pending leave request to approved. Remarks
// are optional. Terminal states are immutable: approving an already
// decided request fails deterministically.
func ApproveLeave(current models.LeaveStatus, remarks string) (models.LeaveStatus, error) {
	if err := requirePending(current, "approve"); err != nil {
		return current, err
	}
	_ = remarks
	return models.LeaveApproved, nil
}

// RejectLeave transitions a pending leave request to rejected. A non-empty
// remark is required so the applicant learns why.
func RejectLeave(current models.LeaveStatus, remarks string) (models.LeaveStatus, error) {
	if strings.TrimSpace(remarks) == "" {
		return current, apperrors.NewValidationError("Remarks are required when rejecting a leave request")
	}
	if err := requirePending(current, "reject"); err != nil {
		return current, err
	}
	return models.LeaveRejected, nil
}

func requirePending(current models.LeaveStatus, action string) error {
	if current.IsTerminal() {
		return apperrors.NewInvalidTransitionError(
			fmt.Sprintf("Cannot %s a leave request that is already %s", action, current))
	}
	if current != models.LeavePending {
		return apperrors.NewInvalidTransitionError(
			fmt.Sprintf("Cannot %s a leave request in state %q", action, current))
	}
	return nil
}

// Toggle flips an active/inactive status. It always succeeds: the only
// precondition is that the entity exists, which the caller has already
// established by loading it.
func Toggle(current models.EntityStatus) models.EntityStatus {
	return current.Opposite()
}

// DecideDelete gates a hard delete on the dependent-record breakdown. Any
// dependent in any category blocks the delete; the returned error carries
// the per-category counts so the caller can offer deactivation instead.
func DecideDelete(entity string, dependents models.DependentCounts) error {
	if dependents.Total() > 0 {
		return apperrors.NewDependencyConflictError(entity, dependents)
	}
	return nil
}
