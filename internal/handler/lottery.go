package handler

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lottostack/lottery-booking/internal/config"
	"github.com/lottostack/lottery-booking/internal/draw"
	"github.com/lottostack/lottery-booking/internal/model"
	"github.com/lottostack/lottery-booking/internal/repository"
)

// LotteryHandler serves the public lottery catalogue and the per-draw
// ticket number pool.
type LotteryHandler struct {
	Cfg       config.Config
	Lotteries *repository.LotteryRepo
	Orders    *repository.OrderRepo
}

func NewLotteryHandler(cfg config.Config, l *repository.LotteryRepo, o *repository.OrderRepo) *LotteryHandler {
	if l == nil || o == nil {
		panic("nil repository passed to NewLotteryHandler")
	}
	return &LotteryHandler{Cfg: cfg, Lotteries: l, Orders: o}
}

// List handles GET /v1/lotteries. An optional ?status= filter narrows
// the catalogue; unknown statuses are a 400.
func (h *LotteryHandler) List(c echo.Context) error {
	status := c.QueryParam("status")
	switch status {
	case "", model.LotteryUpcoming, model.LotteryActive, model.LotteryCompleted, model.LotteryCancelled:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
	}
	items, err := h.Lotteries.List(c.Request().Context(), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load lotteries"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/lotteries/:id.
func (h *LotteryHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lottery id"})
	}
	l, err := h.Lotteries.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrLotteryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lottery not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load lottery"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": l})
}

// Numbers handles GET /v1/lotteries/:id/numbers?date=&count=. It offers
// a pool of candidate ticket numbers for the draw date, excluding
// numbers already booked. Generating a pool reserves nothing; a number
// is only claimed when settlement books it.
func (h *LotteryHandler) Numbers(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lottery id"})
	}
	date := c.QueryParam("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	count := h.Cfg.TicketPoolSize
	if raw := c.QueryParam("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid count"})
		}
		if n < count {
			count = n
		}
	}

	ctx := c.Request().Context()
	l, err := h.Lotteries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLotteryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lottery not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load lottery"})
	}
	if !l.OpenForSale() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "lottery is not open for sale"})
	}

	booked, err := h.Orders.BookedNumbersForDraw(ctx, id, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booked numbers"})
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	pool, err := draw.GeneratePool(draw.SeriesFor(l.LotteryType), count, h.Cfg.TicketScanLimit, booked, rnd)
	if err != nil {
		if errors.Is(err, draw.ErrPoolExhausted) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no ticket numbers available for this draw"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate numbers"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"lottery_id": id,
		"draw_date":  date,
		"numbers":    pool,
	})
}
