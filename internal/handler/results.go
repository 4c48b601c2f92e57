package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lottostack/lottery-booking/internal/draw"
	"github.com/lottostack/lottery-booking/internal/model"
	"github.com/lottostack/lottery-booking/internal/repository"
)

// ResultHandler serves declared results and the caller's win status.
type ResultHandler struct {
	Results *repository.ResultRepo
	Orders  *repository.OrderRepo
}

func NewResultHandler(results *repository.ResultRepo, orders *repository.OrderRepo) *ResultHandler {
	if results == nil || orders == nil {
		panic("nil repository passed to NewResultHandler")
	}
	return &ResultHandler{Results: results, Orders: orders}
}

// dayRange parses an optional ?date= query (default today, UTC) into the
// inclusive [startOfDay, endOfDay] window used for result lookups.
func dayRange(c echo.Context) (time.Time, time.Time, bool) {
	raw := c.QueryParam("date")
	var day time.Time
	if raw == "" {
		day = time.Now().UTC()
	} else {
		var err error
		day, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Second)
	return start, end, true
}

// List handles GET /v1/results?date=. Results whose lottery draw date
// falls on the given day, newest declaration first.
func (h *ResultHandler) List(c echo.Context) error {
	from, to, ok := dayRange(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	items, err := h.Results.ListByDrawDate(c.Request().Context(), from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load results"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// MyWinnings handles GET /v1/my-winnings?date=. It intersects the day's
// declared winning numbers with the caller's booked tickets; the caller
// "won" iff the intersection is non-empty.
func (h *ResultHandler) MyWinnings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	from, to, ok := dayRange(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx := c.Request().Context()
	results, err := h.Results.ListByDrawDate(ctx, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load results"})
	}
	booked, err := h.Orders.TicketNumbersByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tickets"})
	}

	declared := make([][]string, 0, len(results))
	for _, r := range results {
		res := model.LotteryResult{
			FirstPrizeNumber:  r.FirstPrizeNumber,
			SecondPrizeNumber: r.SecondPrizeNumber,
			ThirdPrizeNumber:  r.ThirdPrizeNumber,
		}
		declared = append(declared, res.WinningNumbers())
	}
	winning := draw.WinningTickets(booked, declared)

	return c.JSON(http.StatusOK, echo.Map{
		"won":             len(winning) > 0,
		"winning_tickets": winning,
	})
}

// MyTickets handles GET /v1/my-tickets: the caller's booked tickets with
// their order details, newest first.
func (h *ResultHandler) MyTickets(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Orders.ListTicketsByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tickets"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
