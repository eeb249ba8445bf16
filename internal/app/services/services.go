package services

import (
	"github.com/mertdogan/campusdesk/internal/app/repositories"
	"github.com/mertdogan/campusdesk/internal/pkg/auth"
	"github.com/mertdogan/campusdesk/internal/pkg/events"
)

// Services holds all the service instances
type Services struct {
	AuthService       *AuthService
	DepartmentService *DepartmentService
	CourseService     *CourseService
	SubjectService    *SubjectService
	StudentService    *StudentService
	FacultyService    *FacultyService
	NoticeService     *NoticeService
	LeaveService      *LeaveService
	FeeService        *FeeService
	TransportService  *TransportService
}

// NewServices initializes all services over the repository container
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, emitter events.Emitter) *Services {
	return &Services{
		AuthService:       NewAuthService(repos.UserRepository, jwtService),
		DepartmentService: NewDepartmentService(repos.DepartmentRepository),
		CourseService:     NewCourseService(repos.CourseRepository, repos.DepartmentRepository),
		SubjectService:    NewSubjectService(repos.SubjectRepository, repos.CourseRepository, repos.FacultyRepository),
		StudentService:    NewStudentService(repos.StudentRepository, repos.UserRepository, repos.CourseRepository, repos.DepartmentRepository),
		FacultyService:    NewFacultyService(repos.FacultyRepository, repos.UserRepository, repos.DepartmentRepository, repos.SubjectRepository),
		NoticeService:     NewNoticeService(repos.NoticeRepository, emitter),
		LeaveService:      NewLeaveService(repos.LeaveRepository, emitter),
		FeeService:        NewFeeService(repos.FeeRepository, repos.StudentRepository),
		TransportService:  NewTransportService(repos.TransportRepository),
	}
}
