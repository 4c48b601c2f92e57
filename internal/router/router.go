package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/lottostack/lottery-booking/internal/handler"
	"github.com/lottostack/lottery-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth, protected endpoints
// under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// rotates the refresh token
	g.POST("/refresh", a.Refresh)
	// issues a new access token without rotating the refresh token
	g.POST("/refresh-access", a.RefreshAccess)
	// logout accepts a refresh_token body or an Authorization header, so
	// it does not sit behind the JWT middleware
	g.POST("/logout", a.Logout)
	e.POST("/v1/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "CUSTOMER"))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints: the lottery
// catalogue and declared results. No JWT or role middleware applies.
func RegisterPublic(e *echo.Echo, l *handler.LotteryHandler, r *handler.ResultHandler) {
	e.GET("/v1/lotteries", l.List)
	e.GET("/v1/lotteries/:id", l.Get)
	e.GET("/v1/results", r.List)
}
