// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/config"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/handler"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/middleware"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Catalog   *handler.CatalogHandler
	Passenger *handler.PassengerHandler
	Ticket    *handler.TicketHandler
	Views     *handler.ViewsHandler
}

// Register mounts all routes. The masked read views are public and
// sit behind the Redis response cache and rate limiter (both
// pass-throughs when rdb is nil). Every mutation requires a clerk
// token.
func Register(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Bootstrap registration and login never require a token.
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	// Public read surface: masked projections only.
	views := e.Group("/v1")
	views.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	views.Use(middleware.NewViewCache(config.LoadCacheConfig(), rdb))
	views.GET("/passengers/active", h.Views.ActivePassengers)
	views.GET("/tickets/active", h.Views.ActiveTickets)
	views.GET("/trains/:id/stops", h.Views.TrainStops)
	views.GET("/stations", h.Catalog.ListStations)

	// Mutations: clerk token required.
	mut := e.Group("/v1")
	mut.Use(middleware.JWTAuth(jwtSecret))
	mut.Use(middleware.RequireRole("CLERK"))
	mut.POST("/auth/clerks", h.Auth.Register)
	mut.POST("/stations", h.Catalog.CreateStation)
	mut.POST("/coaches", h.Catalog.CreateCoach)
	mut.POST("/trains", h.Catalog.CreateTrain)
	mut.POST("/trains/:id/stops", h.Catalog.AddRouteStop)
	mut.DELETE("/stops/:id", h.Catalog.DeleteRouteStop)
	mut.POST("/passengers", h.Passenger.Create)
	mut.PUT("/passengers/:id", h.Passenger.Update)
	mut.DELETE("/passengers/:id", h.Passenger.Delete)
	mut.POST("/tickets", h.Ticket.Book)
	mut.PATCH("/tickets/:id", h.Ticket.Reschedule)
	mut.DELETE("/tickets/:id", h.Ticket.Cancel)
}
