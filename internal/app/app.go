// Package app wires configuration, stores and services into a runnable application.
package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/handler"
	internalmiddleware "github.com/ReeshabhSaini/CampusGrid-sub000/internal/middleware"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/repository"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/service"
	"github.com/ReeshabhSaini/CampusGrid-sub000/pkg/cache"
	"github.com/ReeshabhSaini/CampusGrid-sub000/pkg/config"
	"github.com/ReeshabhSaini/CampusGrid-sub000/pkg/database"
	"github.com/ReeshabhSaini/CampusGrid-sub000/pkg/export"
	"github.com/ReeshabhSaini/CampusGrid-sub000/pkg/logger"
	corsmiddleware "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/middleware/cors"
	reqidmiddleware "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/middleware/requestid"
)

// Repositories bundles the postgres-backed stores.
type Repositories struct {
	Sessions    *repository.TimetableRepository
	Reschedules *repository.RescheduleRepository
	Holidays    *repository.HolidayRepository
	Halls       *repository.LectureHallRepository
	Courses     *repository.CourseRepository
	Professors  *repository.ProfessorRepository
	Students    *repository.StudentRepository
}

// Services bundles the domain services.
type Services struct {
	Metrics      *service.MetricsService
	Availability *service.AvailabilityService
	Halls        *service.HallService
	Reschedules  *service.RescheduleService
	Calendar     *service.CalendarService
	Timetable    *service.TimetableService
	Holidays     *service.HolidayService
	Catalog      *service.CatalogService
	Export       *service.ExportService
}

// App owns every long-lived resource of a running process.
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	DB           *sqlx.DB
	Redis        *redis.Client
	Repositories Repositories
	Services     Services
}

// New connects to postgres (and redis when the reservation lock is enabled) and builds the services.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	a := &App{Config: cfg, Logger: log, DB: db}
	if cfg.Reservation.LockEnabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.Redis = client
	}

	if err := a.build(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) build() error {
	a.Repositories = Repositories{
		Sessions:    repository.NewTimetableRepository(a.DB),
		Reschedules: repository.NewRescheduleRepository(a.DB),
		Holidays:    repository.NewHolidayRepository(a.DB),
		Halls:       repository.NewLectureHallRepository(a.DB),
		Courses:     repository.NewCourseRepository(a.DB),
		Professors:  repository.NewProfessorRepository(a.DB),
		Students:    repository.NewStudentRepository(a.DB),
	}

	start, err := models.ParseTimeOfDay(a.Config.Timetable.WorkingHoursStart)
	if err != nil {
		return fmt.Errorf("working hours start: %w", err)
	}
	end, err := models.ParseTimeOfDay(a.Config.Timetable.WorkingHoursEnd)
	if err != nil {
		return fmt.Errorf("working hours end: %w", err)
	}
	template, err := models.NewWorkingHoursTemplate(start, end, a.Config.Timetable.SlotWidth())
	if err != nil {
		return fmt.Errorf("working hours template: %w", err)
	}

	var metrics *service.MetricsService
	if a.Config.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}
	validate, err := service.NewValidator()
	if err != nil {
		return err
	}
	repos := a.Repositories
	loc := a.Config.Timetable.Location()

	reschedules := service.NewRescheduleService(repos.Reschedules, repos.Sessions, repos.Halls, repos.Professors, validate, a.Logger, metrics)
	if a.Redis != nil {
		reschedules.UseLock(repository.NewLockRepository(a.Redis), a.Config.Reservation.LockTTL)
	}

	calendar := service.NewCalendarService(repos.Sessions, repos.Reschedules, repos.Holidays, repos.Students, service.CalendarConfig{
		DefaultWeeks: a.Config.Timetable.DefaultWindowWeeks,
		MaxWeeks:     a.Config.Timetable.MaxWindowWeeks,
		Location:     loc,
	}, validate, a.Logger, metrics)

	a.Services = Services{
		Metrics:      metrics,
		Availability: service.NewAvailabilityService(repos.Sessions, repos.Reschedules, template, validate, a.Logger, metrics),
		Halls:        service.NewHallService(repos.Sessions, repos.Reschedules, repos.Halls, validate, a.Logger, metrics),
		Reschedules:  reschedules,
		Calendar:     calendar,
		Timetable:    service.NewTimetableService(repos.Sessions, repos.Courses, repos.Halls, repos.Professors, validate, a.Logger),
		Holidays:     service.NewHolidayService(repos.Holidays, validate, a.Logger),
		Catalog:      service.NewCatalogService(repos.Halls, repos.Courses, validate, a.Logger),
		Export: service.NewExportService(calendar, a.Logger,
			export.NewCSVExporter(), export.NewPDFExporter(), export.NewICalExporter("-//CampusGrid//Timetable//EN")),
	}
	return nil
}

// Router builds the gin engine with middleware, API routes and docs.
func (a *App) Router() *gin.Engine {
	if a.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(a.Logger))
	r.Use(corsmiddleware.New(a.Config.CORS.AllowedOrigins))
	if a.Services.Metrics != nil {
		r.Use(internalmiddleware.Metrics(a.Services.Metrics, "/metrics"))
	}

	s := a.Services
	handler.RegisterRoutes(r, a.Config.APIPrefix, handler.Handlers{
		Availability: handler.NewAvailabilityHandler(s.Availability, s.Halls),
		Reschedule:   handler.NewRescheduleHandler(s.Reschedules),
		Calendar:     handler.NewCalendarHandler(s.Calendar, s.Export),
		Timetable:    handler.NewTimetableHandler(s.Timetable),
		Holiday:      handler.NewHolidayHandler(s.Holidays),
		Catalog:      handler.NewCatalogHandler(s.Catalog),
		Metrics:      handler.NewMetricsHandler(s.Metrics, a.DB),
	})

	if a.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	return r
}

// Close releases database and cache connections.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn("close redis", zap.Error(err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Warn("close postgres", zap.Error(err))
		}
	}
}
