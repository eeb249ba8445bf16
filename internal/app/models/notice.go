package models

import "time"

// Notice represents an announcement posted by admin or faculty
type Notice struct {
	ID             int64          `json:"id"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	TargetAudience NoticeAudience `json:"targetAudience"`
	Priority       NoticePriority `json:"priority"`
	IsImportant    bool           `json:"isImportant"`
	CreatedByID    int64          `json:"createdById"`
	CreatedByRole  RoleType       `json:"createdByRole"`
	ExpiresAt      *time.Time     `json:"expiresAt,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// VisibleTo evaluates the audience rule at read time. Faculty-authored
// notices are only ever shown to students; admin-authored notices follow
// their stored target audience.
func (n *Notice) VisibleTo(viewer RoleType) bool {
	if n.CreatedByRole == RoleFaculty {
		return viewer == RoleStudent
	}
	switch n.TargetAudience {
	case AudienceAll:
		return true
	case AudienceFaculty:
		return viewer == RoleFaculty || viewer == RoleAdmin
	case AudienceStudents:
		return viewer == RoleStudent || viewer == RoleAdmin
	}
	return false
}

// Expired reports whether the notice has passed its expiry, if any.
func (n *Notice) Expired(now time.Time) bool {
	return n.ExpiresAt != nil && now.After(*n.ExpiresAt)
}
