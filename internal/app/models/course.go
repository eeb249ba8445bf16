package models

// Course represents a course offered by a department
type Course struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Code          string       `json:"code"`
	DepartmentID  int64        `json:"departmentId"`
	DurationValue int          `json:"durationValue"`
	DurationUnit  DurationUnit `json:"durationUnit"`
	Status        EntityStatus `json:"status"`
	Department    *Department  `json:"department,omitempty"`
}

// TotalSemesters derives the semester count from the course duration.
// A duration in years spans two semesters per year.
func (c *Course) TotalSemesters() int {
	if c.DurationUnit == DurationYear {
		return c.DurationValue * 2
	}
	return c.DurationValue
}
