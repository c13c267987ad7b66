// Package router wires handlers and middleware onto the echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-dashboard/internal/handler"
	"github.com/iliyamo/cinema-dashboard/internal/middleware"
)

// RegisterRoutes registers routes that need no session, currently the
// health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/", func(c echo.Context) error { return middleware.Redirect(c, "/movies") })
}

// RegisterAuth registers login and logout.  limit guards the login POST
// against credential stuffing.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limit echo.MiddlewareFunc) {
	e.GET("/login", a.ShowLogin)
	e.POST("/login", a.Login, limit)
	e.POST("/logout", a.Logout)
}

// RegisterPublic registers the catalog and movie pages.  Reading is open
// to everyone; writing a review requires a session.
func RegisterPublic(e *echo.Echo, h *handler.CatalogHandler, cache, limit echo.MiddlewareFunc) {
	e.GET("/movies", h.Movies, cache)
	e.GET("/movies/filter", h.Filter)
	e.GET("/movies/:id", h.Movie)

	g := e.Group("/movies/:id/review", middleware.RequireAuth(), limit)
	g.POST("", h.SubmitReview)
	g.POST("/delete", h.DeleteReview)
}

// RegisterDashboard registers the admin pages.  All of them require
// ADMIN or SUPER_ADMIN; user management requires SUPER_ADMIN.
func RegisterDashboard(e *echo.Echo, d *handler.DashboardHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/dashboard", middleware.RequireAuth(), middleware.RequireAdmin())
	g.GET("", func(c echo.Context) error { return middleware.Redirect(c, "/dashboard/movies") })

	// ---- Genres ----
	g.GET("/genres", d.Genres)
	g.GET("/genres/table", d.GenresTable)
	g.POST("/genres", d.CreateGenre, limit)
	g.GET("/genres/:id/delete", d.ConfirmDeleteGenre)
	g.POST("/genres/:id/delete", d.DeleteGenre, limit)

	// ---- Users ----
	g.GET("/users", d.Users)
	g.GET("/users/table", d.UsersTable)
	su := g.Group("/users", middleware.RequireSuperAdmin(), limit)
	su.GET("/:id/delete", d.ConfirmDeleteUser)
	su.POST("/:id/delete", d.DeleteUser)
	su.POST("/:id/admin", d.ToggleAdmin)

	// ---- Movies ----
	g.GET("/movies", d.Movies)
	g.GET("/movies/table", d.MoviesTable)
	g.GET("/movies/new", d.NewMovie)
	g.GET("/movies/:id/edit", d.EditMovie)
	g.POST("/movies", d.CreateMovie, limit)
	g.POST("/movies/:id", d.UpdateMovie, limit)
	g.GET("/movies/:id/delete", d.ConfirmDeleteMovie)
	g.POST("/movies/:id/delete", d.DeleteMovie, limit)
}
