package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lottostack/lottery-booking/internal/model"
	"github.com/lottostack/lottery-booking/internal/repository"
)

// AdminLotteryHandler covers the administrator surface of the lottery
// lifecycle: creating draws, moving them through their statuses and
// declaring results.
type AdminLotteryHandler struct {
	Lotteries *repository.LotteryRepo
	Results   *repository.ResultRepo
}

func NewAdminLotteryHandler(l *repository.LotteryRepo, r *repository.ResultRepo) *AdminLotteryHandler {
	if l == nil || r == nil {
		panic("nil repository passed to NewAdminLotteryHandler")
	}
	return &AdminLotteryHandler{Lotteries: l, Results: r}
}

type createLotteryReq struct {
	Name         string  `json:"name"`
	LotteryType  string  `json:"lottery_type"`
	DrawDate     string  `json:"draw_date"` // RFC3339
	TicketPrice  uint32  `json:"ticket_price"`
	FirstPrize   uint64  `json:"first_prize"`
	SecondPrize  *uint64 `json:"second_prize"`
	ThirdPrize   *uint64 `json:"third_prize"`
	TotalTickets uint32  `json:"total_tickets"`
}

// Create handles POST /v1/admin/lotteries. New draws start upcoming.
func (h *AdminLotteryHandler) Create(c echo.Context) error {
	var req createLotteryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	switch req.LotteryType {
	case model.TypeWeekly, model.TypeMonthly, model.TypeSpecial, model.TypeBumper:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lottery_type"})
	}
	drawDate, err := time.Parse(time.RFC3339, req.DrawDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "draw_date must be RFC3339"})
	}
	if req.TicketPrice == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket_price is required"})
	}
	if req.FirstPrize == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_prize is required"})
	}
	if req.TotalTickets == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_tickets is required"})
	}

	l := model.Lottery{
		Name:         req.Name,
		LotteryType:  req.LotteryType,
		DrawDate:     drawDate,
		TicketPrice:  req.TicketPrice,
		FirstPrize:   req.FirstPrize,
		SecondPrize:  req.SecondPrize,
		ThirdPrize:   req.ThirdPrize,
		TotalTickets: req.TotalTickets,
		Status:       model.LotteryUpcoming,
	}
	if err := h.Lotteries.Create(c.Request().Context(), &l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create lottery"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": l})
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /v1/admin/lotteries/:id/status. Only the
// transitions upcoming→active|cancelled and active→completed|cancelled
// are allowed; completed and cancelled are terminal.
func (h *AdminLotteryHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lottery id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	switch req.Status {
	case model.LotteryActive, model.LotteryCompleted, model.LotteryCancelled:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx := c.Request().Context()
	l, err := h.Lotteries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLotteryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lottery not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load lottery"})
	}
	if !model.ValidStatusTransition(l.Status, req.Status) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "invalid transition from " + l.Status + " to " + req.Status,
		})
	}
	if err := h.Lotteries.UpdateStatus(ctx, id, l.Status, req.Status); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// status changed underneath us
			return c.JSON(http.StatusConflict, echo.Map{"error": "lottery status changed, retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": req.Status})
}

type declareResultReq struct {
	FirstPrizeNumber  string `json:"first_prize_number"`
	SecondPrizeNumber string `json:"second_prize_number"`
	ThirdPrizeNumber  string `json:"third_prize_number"`
}

// DeclareResult handles POST /v1/admin/lotteries/:id/result. The result
// insert and the forced completed status commit together: declaring a
// result is terminal for the draw and can happen once.
func (h *AdminLotteryHandler) DeclareResult(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lottery id"})
	}
	var req declareResultReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.FirstPrizeNumber = strings.TrimSpace(req.FirstPrizeNumber)
	if req.FirstPrizeNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_prize_number is required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Lotteries.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrLotteryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lottery not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load lottery"})
	}

	tx, err := h.Results.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rec := model.LotteryResult{
		LotteryID:        id,
		FirstPrizeNumber: req.FirstPrizeNumber,
	}
	if s := strings.TrimSpace(req.SecondPrizeNumber); s != "" {
		rec.SecondPrizeNumber = &s
	}
	if s := strings.TrimSpace(req.ThirdPrizeNumber); s != "" {
		rec.ThirdPrizeNumber = &s
	}
	if err := h.Results.CreateTx(ctx, tx, &rec); err != nil {
		if errors.Is(err, repository.ErrResultExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "result already declared"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create result"})
	}
	if err := h.Lotteries.MarkCompletedTx(ctx, tx, id); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "lottery is already completed or cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to complete lottery"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusCreated, echo.Map{"result_id": rec.ID, "lottery_id": id})
}
