// Package router wires handlers and middleware onto an echo instance.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/shift-scheduler/internal/handler"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Employees *handler.EmployeeHandler
	Shifts    *handler.ShiftHandler
	Analytics *handler.AnalyticsHandler
	Export    *handler.ExportHandler
	Ready     echo.HandlerFunc
}

// RegisterRoutes mounts the probes and metrics at the root and the API
// under /v1.  mw applies to the API group only; probes stay uncached and
// unthrottled.
func RegisterRoutes(e *echo.Echo, h Handlers, gatherer prometheus.Gatherer, mw ...echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)
	if h.Ready != nil {
		e.GET("/readyz", h.Ready)
	}
	if gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	v1 := e.Group("/v1", mw...)

	emp := v1.Group("/employees")
	emp.GET("", h.Employees.List)
	emp.POST("", h.Employees.Create)
	emp.GET("/:id", h.Employees.Get)
	emp.Match([]string{http.MethodPut, http.MethodPatch}, "/:id", h.Employees.Update)
	emp.DELETE("/:id", h.Employees.Delete)

	sh := v1.Group("/shifts")
	sh.GET("", h.Shifts.List)
	sh.POST("", h.Shifts.Create)
	sh.GET("/:id", h.Shifts.Get)
	sh.Match([]string{http.MethodPut, http.MethodPatch}, "/:id", h.Shifts.Update)
	sh.DELETE("/:id", h.Shifts.Delete)

	v1.GET("/analytics", h.Analytics.Aggregate)
	v1.GET("/analytics/:employee_id", h.Analytics.AggregateByEmployee)

	if h.Export != nil {
		v1.GET("/export/shifts.xlsx", h.Export.Shifts)
	}
}
