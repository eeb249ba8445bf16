package models

// Department represents an academic department
type Department struct {
	ID                 int64        `json:"id"`
	Name               string       `json:"name"`
	Code               string       `json:"code"`
	Status             EntityStatus `json:"status"`
	HeadOfDepartmentID *int64       `json:"headOfDepartmentId,omitempty"`
}

// DependentCounts is the per-category breakdown of records that
// reference an entity and block its hard delete.
type DependentCounts struct {
	Courses  int64 `json:"courses"`
	Subjects int64 `json:"subjects"`
	Students int64 `json:"students"`
	Faculty  int64 `json:"faculty"`
}

// Total returns the sum across all dependent categories.
func (d DependentCounts) Total() int64 {
	return d.Courses + d.Subjects + d.Students + d.Faculty
}
