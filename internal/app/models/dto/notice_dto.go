package dto

import "github.com/mertdogan/campusdesk/internal/app/models"

// CreateNoticeRequest represents notice creation data
type CreateNoticeRequest struct {
	Title          string  `json:"title" binding:"required"`
	Content        string  `json:"content" binding:"required"`
	TargetAudience string  `json:"targetAudience" binding:"required,oneof=all faculty students"`
	Priority       string  `json:"priority" binding:"required,oneof=low medium high urgent"`
	IsImportant    bool    `json:"isImportant"`
	ExpiresAt      *string `json:"expiresAt"`
}

// NoticeListResponse is a paginated notice feed
type NoticeListResponse struct {
	Notices []*models.Notice `json:"notices"`
	PaginationInfo
}
