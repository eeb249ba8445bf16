package models

// FacultyMember represents a teaching staff member
type FacultyMember struct {
	ID           int64        `json:"id"`
	UserID       int64        `json:"userId"`
	EmployeeID   string       `json:"employeeId"`
	DepartmentID int64        `json:"departmentId"`
	Designation  string       `json:"designation"`
	SubjectIDs   []int64      `json:"subjectIds"`
	Status       EntityStatus `json:"status"`
	User         *User        `json:"user,omitempty"`
}
