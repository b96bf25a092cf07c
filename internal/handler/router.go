package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups the HTTP handlers mounted by RegisterRoutes. Nil handlers are skipped.
type Handlers struct {
	Availability *AvailabilityHandler
	Reschedule   *RescheduleHandler
	Calendar     *CalendarHandler
	Timetable    *TimetableHandler
	Holiday      *HolidayHandler
	Catalog      *CatalogHandler
	Metrics      *MetricsHandler
}

// RegisterRoutes mounts the API under prefix and the operational endpoints at the root.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers) {
	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		r.GET("/ready", h.Metrics.Ready)
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	api := r.Group(prefix)

	if h.Availability != nil {
		availability := api.Group("/availability")
		availability.GET("/free-slots", h.Availability.FreeSlots)
		availability.GET("/halls", h.Availability.AvailableHalls)
	}

	if h.Reschedule != nil {
		api.POST("/reschedules", h.Reschedule.Create)
		api.GET("/reschedules/:id", h.Reschedule.Get)
		api.DELETE("/reschedules/:id", h.Reschedule.Cancel)
		api.GET("/professors/:id/reschedules", h.Reschedule.ListByProfessor)
	}

	if h.Calendar != nil {
		api.GET("/calendar", h.Calendar.Schedule)
		api.GET("/calendar/export", h.Calendar.Export)
	}

	if h.Timetable != nil {
		timetable := api.Group("/timetable")
		timetable.GET("", h.Timetable.List)
		timetable.POST("", h.Timetable.Create)
		timetable.POST("/bulk", h.Timetable.BulkCreate)
		timetable.GET("/:id", h.Timetable.Get)
		timetable.DELETE("/:id", h.Timetable.Delete)
	}

	if h.Holiday != nil {
		api.GET("/holidays", h.Holiday.List)
		api.POST("/holidays", h.Holiday.Create)
		api.DELETE("/holidays/:id", h.Holiday.Delete)
	}

	if h.Catalog != nil {
		api.GET("/halls", h.Catalog.ListHalls)
		api.POST("/halls", h.Catalog.CreateHall)
		api.GET("/courses", h.Catalog.ListCourses)
		api.POST("/courses", h.Catalog.CreateCourse)
	}
}
