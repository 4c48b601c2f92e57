package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lottostack/lottery-booking/internal/config"
	"github.com/lottostack/lottery-booking/internal/model"
	"github.com/lottostack/lottery-booking/internal/repository"
)

// CartHandler serves the authenticated user's cart. The cart is only a
// staging area: nothing in it is reserved or priced until settlement.
type CartHandler struct {
	Cfg       config.Config
	Cart      *repository.CartRepo
	Lotteries *repository.LotteryRepo
}

func NewCartHandler(cfg config.Config, cart *repository.CartRepo, lotteries *repository.LotteryRepo) *CartHandler {
	if cart == nil || lotteries == nil {
		panic("nil repository passed to NewCartHandler")
	}
	return &CartHandler{Cfg: cfg, Cart: cart, Lotteries: lotteries}
}

// ticketNumberPattern matches the generator's "<series>/<seq>" output,
// e.g. "15-19/2548".
var ticketNumberPattern = regexp.MustCompile(`^[0-9]{2}-[0-9]{2}/[0-9]+$`)

type addCartReq struct {
	LotteryID     uint64   `json:"lottery_id"`
	TicketNumbers []string `json:"ticket_numbers"`
	DrawDates     []string `json:"draw_dates"`
}

// Add handles POST /v1/cart. Ticket numbers are capped at the bunch
// limit server-side; the referenced lottery must exist and still be
// selling.
func (h *CartHandler) Add(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req addCartReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.LotteryID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lottery_id is required"})
	}
	if len(req.TicketNumbers) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket_numbers is required"})
	}
	if len(req.TicketNumbers) > h.Cfg.BunchLimit {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "too many ticket numbers, max " + strconv.Itoa(h.Cfg.BunchLimit),
		})
	}
	if len(req.DrawDates) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "draw_dates is required"})
	}

	// deduplicate while preserving order; blanks are dropped, so the
	// slices must be re-checked for emptiness before anything persists
	numbers := dedupe(req.TicketNumbers)
	dates := dedupe(req.DrawDates)
	if len(numbers) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket_numbers is required"})
	}
	if len(dates) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "draw_dates is required"})
	}
	for _, n := range numbers {
		if !ticketNumberPattern.MatchString(n) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":         "ticket numbers must look like 15-19/2548",
				"ticket_number": n,
			})
		}
	}
	for _, d := range dates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "draw dates must be YYYY-MM-DD"})
		}
	}

	ctx := c.Request().Context()
	l, err := h.Lotteries.GetByID(ctx, req.LotteryID)
	if err != nil {
		if errors.Is(err, repository.ErrLotteryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lottery not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load lottery"})
	}
	if !l.OpenForSale() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "lottery is not open for sale"})
	}

	item := model.CartItem{
		UserID:        userID,
		LotteryID:     req.LotteryID,
		TicketNumbers: numbers,
		DrawDates:     dates,
	}
	if err := h.Cart.Add(ctx, &item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add to cart"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": item.ID})
}

// List handles GET /v1/cart. Prices in the response reflect the current
// lottery record and are for display only.
func (h *CartHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Cart.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Delete handles DELETE /v1/cart/:id. Ownership is enforced in the
// query, so an id belonging to another user comes back as 404.
func (h *CartHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cart item id"})
	}
	if err := h.Cart.DeleteByIDAndUser(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cart item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete cart item"})
	}
	return c.NoContent(http.StatusNoContent)
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
