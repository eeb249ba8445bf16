package models

// Subject represents a subject taught within a course semester
type Subject struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Code      string       `json:"code"`
	CourseID  int64        `json:"courseId"`
	Semester  int          `json:"semester"`
	Credits   int          `json:"credits"`
	Type      SubjectType  `json:"type"`
	FacultyID *int64       `json:"facultyId,omitempty"`
	Status    EntityStatus `json:"status"`
	Course    *Course      `json:"course,omitempty"`
}
