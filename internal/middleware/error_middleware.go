package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mertdogan/campusdesk/internal/app/models/dto"
	"github.com/mertdogan/campusdesk/internal/pkg/apperrors"
	"github.com/mertdogan/campusdesk/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Every controller
// funnels its error path through here so status codes and payload shapes
// stay uniform across the API.
func HandleAPIError(c *gin.Context, err error) {
	message := err.Error()

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(c, http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message))

	case errors.Is(err, apperrors.ErrDependencyConflict):
		detail := dto.NewErrorDetail(dto.ErrorCodeDependencyConflict, message)
		var conflict *apperrors.DependencyConflictError
		if errors.As(err, &conflict) {
			detail = detail.WithDetails(dto.DependencyConflictResponse{
				Courses:  conflict.Dependents.Courses,
				Subjects: conflict.Dependents.Subjects,
				Students: conflict.Dependents.Students,
				Faculty:  conflict.Dependents.Faculty,
			})
		}
		respond(c, http.StatusConflict, detail)

	case errors.Is(err, apperrors.ErrInvalidTransition):
		respond(c, http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, message))

	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrDepartmentNotFound, apperrors.ErrCourseNotFound,
		apperrors.ErrSubjectNotFound, apperrors.ErrStudentNotFound,
		apperrors.ErrFacultyNotFound, apperrors.ErrNoticeNotFound,
		apperrors.ErrLeaveNotFound, apperrors.ErrFeeNotFound,
		apperrors.ErrRouteNotFound, apperrors.ErrUserNotFound):
		respond(c, http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message))

	case apperrors.Is(err, apperrors.ErrConflict, apperrors.ErrResourceAlreadyExists):
		respond(c, http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"))

	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Account is disabled"))

	case apperrors.Is(err, apperrors.ErrTokenExpired, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		respond(c, http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication failed"))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, message))

	default:
		// The cause stays in the logs; callers get a generic message.
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError,
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

func respond(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.JSON(status, dto.APIResponse{
		Error:     detail,
		Timestamp: time.Now(),
	})
}

// HandleValidationError maps a request binding failure to a 400 response.
func HandleValidationError(c *gin.Context, err error) {
	respond(c, http.StatusBadRequest,
		dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()))
}
