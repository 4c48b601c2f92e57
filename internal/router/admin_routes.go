package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lottostack/lottery-booking/internal/handler"
	"github.com/lottostack/lottery-booking/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1. All routes
// require a valid JWT and the ADMIN role. Admins manage the lottery
// lifecycle, declare results and decide payout claims.
func RegisterAdmin(e *echo.Echo, al *handler.AdminLotteryHandler, aw *handler.AdminWithdrawalHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Lotteries ----
	g.POST("/lotteries", al.Create)
	g.PATCH("/lotteries/:id/status", al.UpdateStatus)
	g.POST("/lotteries/:id/result", al.DeclareResult)

	// ---- Withdrawals ----
	g.GET("/withdrawals", aw.List)
	g.GET("/withdrawals/:id", aw.Get)
	g.PATCH("/withdrawals/:id", aw.Decide)
}
