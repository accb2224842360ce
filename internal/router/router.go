// Package router defines how HTTP routes are registered for the API.
package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lodging-reservation/internal/handler"
    "github.com/iliyamo/lodging-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check, used by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the allocation endpoints under /v1.  Every
// route requires a valid access token with a PLANNER or SALES role;
// tokens are issued by the identity service and only verified here.
//
// The availability picker is read-only and sits behind the response
// cache.  The generation endpoints mutate the schedule and sit behind
// the rate limiter instead: they lock rows, and a misbehaving client
// retrying in a tight loop would serialize everyone else's runs.
func RegisterAPI(e *echo.Echo, a *handler.AvailabilityHandler, g *handler.GenerationHandler,
    jwtSecret string, cache echo.MiddlewareFunc, limiter echo.MiddlewareFunc) {

    v1 := e.Group("/v1")
    v1.Use(middleware.JWTAuth(jwtSecret))
    v1.Use(middleware.RequireRole("PLANNER", "SALES"))

    v1.GET("/centers/:id/rental-units/available", a.GetAvailableUnits, cache)

    v1.POST("/booking-lines/generate", g.Generate, limiter)
    v1.PATCH("/booking-lines/:id/qty-vars", g.UpdateLineQtyVars, limiter)
    v1.PATCH("/sojourn-groups/:id/dates", g.UpdateGroupDates, limiter)
}
