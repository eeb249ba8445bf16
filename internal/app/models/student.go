package models

// Student represents an enrolled student
type Student struct {
	ID           int64        `json:"id"`
	UserID       int64        `json:"userId"`
	RollNo       string       `json:"rollNo"`
	DepartmentID int64        `json:"departmentId"`
	CourseID     int64        `json:"courseId"`
	Year         int          `json:"year"`
	Semester     int          `json:"semester"`
	Section      string       `json:"section"`
	Status       EntityStatus `json:"status"`
	User         *User        `json:"user,omitempty"`
	Course       *Course      `json:"course,omitempty"`
}
