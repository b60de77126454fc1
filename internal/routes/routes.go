package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/redislock"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/availability"
)

type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client // nil when REDIS_ADDR is empty
	Config *config.Config
	Log    *zap.Logger
	Audit  audit.Recorder
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logging(d.Log),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(d.DB)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	unitOfWork := infraRepo.NewGormUnitOfWork(d.DB)

	var locker availability.SlotLocker = availability.NoopLocker{}
	if d.Redis != nil {
		locker = redislock.NewSlotLocker(d.Redis, d.Config.SlotLockTTL, d.Log)
	}

	clock := timezone.SystemClock{}

	// ======================================================
	// USE CASES
	// ======================================================
	createAvailabilityUC := ucAvailability.NewCreateAvailability(
		availabilityRepo,
		unitOfWork,
		clock,
		d.Audit,
		d.Log,
	)
	getAvailabilityUC := ucAvailability.NewGetAvailability(availabilityRepo)
	listAvailabilitiesUC := ucAvailability.NewListAvailabilitiesByDoctor(availabilityRepo)
	deleteAvailabilityUC := ucAvailability.NewDeleteAvailability(
		availabilityRepo,
		unitOfWork,
		d.Audit,
		d.Log,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		availabilityRepo,
		unitOfWork,
		locker,
		clock,
		d.Audit,
		d.Log,
	)
	getAppointmentUC := ucAppointment.NewGetAppointment(appointmentRepo)
	listByClientUC := ucAppointment.NewListAppointmentsByClient(appointmentRepo)
	listByDoctorUC := ucAppointment.NewListAppointmentsByDoctor(appointmentRepo)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		unitOfWork,
		clock,
		d.Audit,
		d.Log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(
		createAvailabilityUC,
		getAvailabilityUC,
		listAvailabilitiesUC,
		deleteAvailabilityUC,
		timezone.Location(d.Config.DefaultTimezone),
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		getAppointmentUC,
		listByClientUC,
		listByDoctorUC,
		updateAppointmentUC,
	)

	authHandler := handlers.NewAuthHandler(userRepo, d.Config)
	meHandler := handlers.NewMeHandler(userRepo)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	var redisCheck handlers.CheckFunc
	if d.Redis != nil {
		redisCheck = func(ctx context.Context) error {
			return d.Redis.Ping(ctx).Err()
		}
	}
	healthHandler := handlers.NewHealthHandler(
		func(ctx context.Context) error { return dbpkg.Ping(ctx, d.DB) },
		redisCheck,
	)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/health/live", healthHandler.Live)
	r.GET("/health/ready", healthHandler.Ready)

	r.POST("/auth/login", authHandler.Login)

	// ======================================================
	// SECURED
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(d.Config))
	{
		secured.GET("/me", meHandler.GetMe)

		// ------------------------------
		// AVAILABILITY
		// ------------------------------
		canManageSlots := middleware.RequireRole(models.RoleDoctor, models.RoleAdmin)

		secured.POST("/availability", canManageSlots, availabilityHandler.Create)
		secured.GET("/availability/:id", availabilityHandler.GetByID)
		secured.GET("/availability/by-doctor/:doctorId", availabilityHandler.ListByDoctor)
		secured.DELETE("/availability/:id", canManageSlots, availabilityHandler.Delete)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		canBook := middleware.RequireRole(models.RoleClient, models.RoleAdmin)

		secured.POST("/appointment/:clientId", canBook, appointmentHandler.Create)
		secured.GET("/appointment/by-client/:clientId", appointmentHandler.ListByClient)
		secured.GET("/appointment/by-doctor/:doctorId", appointmentHandler.ListByDoctor)
		secured.GET("/appointment/:id", appointmentHandler.GetByID)
		secured.PATCH("/appointment", appointmentHandler.Update)

		secured.GET("/audit-logs", middleware.RequireRole(models.RoleAdmin), auditLogsHandler.List)
	}
}
