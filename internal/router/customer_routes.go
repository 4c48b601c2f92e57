package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lottostack/lottery-booking/internal/handler"
	"github.com/lottostack/lottery-booking/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1. All
// routes require a valid JWT and the CUSTOMER role. Customers browse the
// number pool, manage their cart, settle it, and track tickets, winnings
// and payout claims.
func RegisterCustomer(e *echo.Echo, l *handler.LotteryHandler, cart *handler.CartHandler,
	pay *handler.PaymentHandler, res *handler.ResultHandler, wd *handler.WithdrawalHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER"),
	)

	// number pool for a draw date; nothing is reserved by looking
	g.GET("/lotteries/:id/numbers", l.Numbers)

	// ---- Cart ----
	g.POST("/cart", cart.Add)
	g.GET("/cart", cart.List)
	g.DELETE("/cart/:id", cart.Delete)

	// ---- Settlement ----
	g.POST("/payment/process", pay.Process)

	// ---- Tickets & winnings ----
	g.GET("/my-tickets", res.MyTickets)
	g.GET("/my-winnings", res.MyWinnings)

	// ---- Withdrawals ----
	g.POST("/withdrawals", wd.Create)
	g.GET("/my-withdrawals", wd.ListMine)
}
