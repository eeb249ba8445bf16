package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is the shared not-found sentinel for all repositories.
var ErrNotFound = errors.New("record not found")

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	DepartmentRepository *DepartmentRepository
	CourseRepository     *CourseRepository
	SubjectRepository    *SubjectRepository
	StudentRepository    *StudentRepository
	FacultyRepository    *FacultyRepository
	NoticeRepository     *NoticeRepository
	LeaveRepository      *LeaveRepository
	FeeRepository        *FeeRepository
	TransportRepository  *TransportRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		CourseRepository:     NewCourseRepository(db),
		SubjectRepository:    NewSubjectRepository(db),
		StudentRepository:    NewStudentRepository(db),
		FacultyRepository:    NewFacultyRepository(db),
		NoticeRepository:     NewNoticeRepository(db),
		LeaveRepository:      NewLeaveRepository(db),
		FeeRepository:        NewFeeRepository(db),
		TransportRepository:  NewTransportRepository(db),
	}
}
