package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/middleware"
	"github.com/okami-ct/okami-dashboard/internal/models"
	"github.com/okami-ct/okami-dashboard/internal/service"
	"github.com/okami-ct/okami-dashboard/internal/store"
)

// SessionService opens, resolves and closes dashboard sessions.
type SessionService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
	Resolve(ctx context.Context, id string) (*models.Session, error)
	Logout(ctx context.Context, id string) error
}

// Dependencies are the collaborators the routes need.
type Dependencies struct {
	Sessions       SessionService
	SessionBackend Pinger
	Hub            *store.Hub
	Reports        reportRenderer
	Metrics        *service.MetricsService
	Validate       *validator.Validate
	Logger         *zap.Logger
	SecureCookie   bool
}

// Register mounts every dashboard route on r.
func Register(r gin.IRouter, deps Dependencies) {
	validate := deps.Validate
	if validate == nil {
		validate = dto.NewValidator()
	}

	var (
		staff     = middleware.RequireRoles(models.RoleAdmin, models.RoleReceptionist, models.RoleTeacher)
		office    = middleware.RequireRoles(models.RoleAdmin, models.RoleReceptionist)
		adminOnly = middleware.RequireRoles(models.RoleAdmin)
		promoters = middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher)

		admin        = string(models.RoleAdmin)
		receptionist = string(models.RoleReceptionist)
		teacher      = string(models.RoleTeacher)
	)

	metricsHandler := NewMetricsHandler(deps.Metrics, deps.SessionBackend, deps.Hub)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	auth := NewAuthHandler(deps.Sessions, deps.Hub, deps.SecureCookie)
	r.POST("/auth/login", auth.Login)
	r.POST("/auth/logout", auth.Logout)

	reports := NewReportHandler(deps.Reports)
	r.GET("/reports/files/:token", reports.Download)

	api := r.Group("", middleware.Session(deps.Sessions, deps.Hub), middleware.PathIDs())
	api.GET("/me", auth.Me)
	api.GET("/metrics/summary", adminOnly, metricsHandler.Summary)

	students := NewStudentHandler()
	studentRoutes := api.Group("/students")
	studentRoutes.GET("/:id/profile", middleware.RBAC(admin, receptionist, teacher, middleware.Self), students.Profile)
	studentRoutes.GET("/:id/classes", middleware.RBAC(admin, receptionist, teacher, middleware.Self), students.Classes)
	studentRoutes.POST("/:id/classes/:classId", office, students.Enroll)
	studentRoutes.DELETE("/:id/classes/:classId", office, students.Unenroll)
	NewResourceHandler(func(reg *store.Registry) CollectionStore[models.Student, dto.StudentInput] {
		return reg.Students
	}, validate).Register(studentRoutes.Group("", staff), office)

	teachers := NewTeacherHandler()
	teacherRoutes := api.Group("/teachers")
	teacherRoutes.GET("/:id/classes", middleware.RBAC(admin, receptionist, middleware.Self), teachers.Classes)
	NewResourceHandler(func(reg *store.Registry) CollectionStore[models.Teacher, dto.TeacherInput] {
		return reg.Teachers
	}, validate).Register(teacherRoutes.Group("", staff), adminOnly)

	classes := NewClassHandler()
	classRoutes := api.Group("/classes")
	classRoutes.GET("/schedule", classes.Schedule)
	classRoutes.GET("/:id/students", staff, classes.Students)
	classRoutes.GET("/:id/checkins", staff, classes.Checkins)
	NewResourceHandler(func(reg *store.Registry) CollectionStore[models.Class, dto.ClassInput] {
		return reg.Classes
	}, validate).Register(classRoutes, adminOnly)

	checkins := NewCheckinHandler()
	checkinRoutes := api.Group("/checkins", staff)
	checkinRoutes.GET("/today", checkins.Today)
	checkinRoutes.GET("/student/:studentId", checkins.ByStudent)
	checkinRoutes.GET("/class/:classId", checkins.ByClass)
	NewResourceHandler(func(reg *store.Registry) CollectionStore[models.Checkin, dto.CheckinInput] {
		return reg.Checkins
	}, validate).Register(checkinRoutes)

	payments := NewPaymentHandler(validate)
	paymentRoutes := api.Group("/payments", office)
	paymentRoutes.GET("/overdue", payments.Overdue)
	paymentRoutes.GET("/student/:studentId", payments.ByStudent)
	paymentRoutes.POST("/generate", payments.GenerateMonthly)
	paymentRoutes.POST("/:id/pay", payments.Pay)
	NewResourceHandler(func(reg *store.Registry) CollectionStore[models.Payment, dto.PaymentInput] {
		return reg.Payments
	}, validate).Register(paymentRoutes)

	NewResourceHandler(func(reg *store.Registry) CollectionStore[models.Expense, dto.ExpenseInput] {
		return reg.Expenses
	}, validate).Register(api.Group("/expenses", office))

	belts := NewBeltHandler(validate)
	beltRoutes := api.Group("/belts")
	beltRoutes.GET("/catalog", belts.Catalog)
	beltRoutes.POST("/promote", promoters, belts.Promote)
	beltRoutes.GET("/overview", staff, belts.Overview)
	beltRoutes.GET("/table", staff, belts.Table)
	beltRoutes.GET("/progress/:studentId", staff, belts.Progress)
	NewResourceHandler(func(reg *store.Registry) CollectionStore[models.BeltPromotion, dto.PromotionInput] {
		return reg.Belts
	}, validate).Register(beltRoutes.Group("", staff), promoters)

	videos := NewVideoHandler(validate)
	videoRoutes := api.Group("/videos")
	videoRoutes.POST("/upload", promoters, videos.Upload)
	videoRoutes.GET("/free", videos.Free)
	videoRoutes.GET("/module/:moduleId", videos.ByModule)
	videoRoutes.GET("/class/:classId", videos.ByClass)
	NewResourceHandler(func(reg *store.Registry) CollectionStore[models.Video, dto.VideoInput] {
		return reg.Videos
	}, validate).Register(videoRoutes, promoters)

	NewResourceHandler(func(reg *store.Registry) CollectionStore[models.Module, dto.ModuleInput] {
		return reg.Modules
	}, validate).Register(api.Group("/modules"), promoters)

	dashboard := NewDashboardHandler(deps.Logger)
	api.GET("/dashboard/admin", office, dashboard.Admin)
	api.GET("/dashboard/financial", office, dashboard.Financial)

	api.GET("/reports/payments.csv", office, reports.PaymentsCSV)
	api.GET("/reports/payments.pdf", office, reports.PaymentsPDF)
	api.GET("/reports/students.csv", staff, reports.StudentsCSV)
}
