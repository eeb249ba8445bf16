package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mertdogan/campusdesk/internal/app/controllers"
	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	departmentController *controllers.DepartmentController,
	courseController *controllers.CourseController,
	subjectController *controllers.SubjectController,
	studentController *controllers.StudentController,
	facultyController *controllers.FacultyController,
	noticeController *controllers.NoticeController,
	leaveController *controllers.LeaveController,
	feeController *controllers.FeeController,
	transportController *controllers.TransportController,
	eventsController *controllers.EventsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)
	staffOnly := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleFaculty)

	// Notification side-channel
	authenticated.GET("/events/subscribe", eventsController.Subscribe)

	departments := authenticated.Group("/departments")
	{
		departments.GET("", departmentController.GetAllDepartments)
		departments.GET("/options", departmentController.GetDepartmentOptions)
		departments.GET("/:id", departmentController.GetDepartmentByID)

		departmentsAdmin := departments.Group("", adminOnly)
		{
			departmentsAdmin.POST("", departmentController.CreateDepartment)
			departmentsAdmin.PUT("/:id", departmentController.UpdateDepartment)
			departmentsAdmin.DELETE("/:id", departmentController.DeleteDepartment)
			departmentsAdmin.PATCH("/:id/deactivate", departmentController.DeactivateDepartment)
			departmentsAdmin.PATCH("/:id/toggle", departmentController.ToggleDepartmentStatus)
		}
	}

	courses := authenticated.Group("/courses")
	{
		courses.GET("", courseController.GetAllCourses)
		courses.GET("/options", courseController.GetCourseOptions)
		courses.GET("/semester-bound", courseController.GetSemesterBound)
		courses.GET("/:id", courseController.GetCourseByID)

		coursesAdmin := courses.Group("", adminOnly)
		{
			coursesAdmin.POST("", courseController.CreateCourse)
			coursesAdmin.PUT("/:id", courseController.UpdateCourse)
			coursesAdmin.DELETE("/:id", courseController.DeleteCourse)
			coursesAdmin.PATCH("/:id/toggle", courseController.ToggleCourseStatus)
		}
	}

	subjects := authenticated.Group("/subjects")
	{
		subjects.GET("", subjectController.GetAllSubjects)
		subjects.GET("/:id", subjectController.GetSubjectByID)

		subjectsAdmin := subjects.Group("", adminOnly)
		{
			subjectsAdmin.POST("", subjectController.CreateSubject)
			subjectsAdmin.PUT("/:id", subjectController.UpdateSubject)
			subjectsAdmin.DELETE("/:id", subjectController.DeleteSubject)
			subjectsAdmin.PATCH("/:id/toggle", subjectController.ToggleSubjectStatus)
		}
	}

	students := authenticated.Group("/students", staffOnly)
	{
		students.GET("", studentController.GetAllStudents)
		students.GET("/:id", studentController.GetStudentByID)

		studentsAdmin := students.Group("", adminOnly)
		{
			studentsAdmin.POST("", studentController.CreateStudent)
			studentsAdmin.PUT("/:id", studentController.UpdateStudent)
			studentsAdmin.DELETE("/:id", studentController.DeleteStudent)
			studentsAdmin.PATCH("/:id/toggle", studentController.ToggleStudentStatus)
		}
	}

	faculty := authenticated.Group("/faculty")
	{
		faculty.GET("", facultyController.GetAllFaculty)
		faculty.GET("/:id", facultyController.GetFacultyByID)

		facultyAdmin := faculty.Group("", adminOnly)
		{
			facultyAdmin.POST("", facultyController.CreateFaculty)
			facultyAdmin.PUT("/:id", facultyController.UpdateFaculty)
			facultyAdmin.DELETE("/:id", facultyController.DeleteFaculty)
			facultyAdmin.PATCH("/:id/toggle", facultyController.ToggleFacultyStatus)
		}
	}

	notices := authenticated.Group("/notices")
	{
		notices.GET("", noticeController.GetNoticeFeed)
		notices.GET("/:id", noticeController.GetNoticeByID)

		noticesStaff := notices.Group("", staffOnly)
		{
			noticesStaff.POST("", noticeController.CreateNotice)
			noticesStaff.PUT("/:id", noticeController.UpdateNotice)
			noticesStaff.DELETE("/:id", noticeController.DeleteNotice)
		}
	}

	leaves := authenticated.Group("/leaves")
	{
		leaves.POST("", leaveController.ApplyLeave)
		leaves.GET("/my", leaveController.GetMyLeaves)
		leaves.GET("/:id", leaveController.GetLeaveByID)

		leavesStaff := leaves.Group("", staffOnly)
		{
			leavesStaff.GET("", leaveController.GetAllLeaves)
			leavesStaff.PATCH("/:id/approve", leaveController.ApproveLeave)
			leavesStaff.PATCH("/:id/reject", leaveController.RejectLeave)
			leavesStaff.GET("/stats", leaveController.GetLeaveStats)
			leavesStaff.GET("/analytics", leaveController.GetLeaveAnalytics)
		}
	}

	fees := authenticated.Group("/fees")
	{
		fees.GET("/my", feeController.GetMyFees)

		feesAdmin := fees.Group("", adminOnly)
		{
			feesAdmin.POST("", feeController.CreateFee)
			feesAdmin.GET("", feeController.GetAllFees)
			feesAdmin.GET("/:id", feeController.GetFeeByID)
			feesAdmin.PATCH("/:id/pay", feeController.MarkFeePaid)
			feesAdmin.DELETE("/:id", feeController.DeleteFee)
		}
	}

	transport := authenticated.Group("/transport/routes")
	{
		transport.GET("", transportController.GetAllRoutes)
		transport.GET("/:id", transportController.GetRouteByID)

		transportAdmin := transport.Group("", adminOnly)
		{
			transportAdmin.POST("", transportController.CreateRoute)
			transportAdmin.PUT("/:id", transportController.UpdateRoute)
			transportAdmin.DELETE("/:id", transportController.DeleteRoute)
			transportAdmin.PATCH("/:id/toggle", transportController.ToggleRouteStatus)
		}
	}
}
