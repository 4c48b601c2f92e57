package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lottostack/lottery-booking/internal/config"
	"github.com/lottostack/lottery-booking/internal/model"
	"github.com/lottostack/lottery-booking/internal/queue"
	"github.com/lottostack/lottery-booking/internal/repository"
	"github.com/lottostack/lottery-booking/internal/utils"
)

// PaymentHandler runs settlement: it converts the caller's cart into
// orders and booked tickets. Everything the records are built from —
// user identity, pricing, transaction IDs — is derived server-side; no
// client-supplied body data is trusted. No real funds move; payment is
// simulated.
type PaymentHandler struct {
	Cfg    config.Config
	Cart   *repository.CartRepo
	Orders *repository.OrderRepo
	Users  *repository.UserRepo

	// Publish sends the post-settlement event. Swappable in tests;
	// defaults to the RabbitMQ publisher.
	Publish func(ctx context.Context, ev queue.OrderConfirmedEvent) error
}

func NewPaymentHandler(cfg config.Config, cart *repository.CartRepo, orders *repository.OrderRepo, users *repository.UserRepo,
	publish func(ctx context.Context, ev queue.OrderConfirmedEvent) error) *PaymentHandler {
	if cart == nil || orders == nil || users == nil {
		panic("nil repository passed to NewPaymentHandler")
	}
	return &PaymentHandler{Cfg: cfg, Cart: cart, Orders: orders, Users: users, Publish: publish}
}

// Process handles POST /v1/payment/process.
//
// The whole expansion runs in one transaction: load the cart with the
// lottery rows locked, insert one order + one booked ticket per
// (ticket number × draw date) pair, then clear the cart and commit.
// Any failure rolls everything back and leaves the cart intact for
// retry. A duplicate (lottery, draw date, number) means another buyer
// settled that ticket first and aborts the batch with 409.
func (h *PaymentHandler) Process(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	timeout := time.Duration(h.Cfg.SettlementTimeout) * time.Second
	ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
	defer cancel()

	tx, err := h.Orders.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	items, err := h.Cart.ListForSettlementTx(ctx, tx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
	}
	if len(items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cart is empty"})
	}

	orderIDs := make([]uint64, 0, len(items))
	events := make([]queue.OrderConfirmedEvent, 0, len(items))
	for _, it := range items {
		open := model.Lottery{Status: it.LotteryStatus}
		if !open.OpenForSale() {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":      "lottery is no longer open for sale",
				"lottery_id": it.LotteryID,
			})
		}
		var lastTxnID string
		for _, date := range it.DrawDates {
			for _, number := range it.TicketNumbers {
				txnID := utils.NewTransactionID()
				order := model.Order{
					UserID:        userID,
					LotteryID:     it.LotteryID,
					LotteryName:   it.LotteryName,
					TicketPrice:   it.TicketPrice,
					DrawTime:      it.DrawTime,
					TransactionID: txnID,
					Status:        "confirmed",
				}
				if err := h.Orders.CreateOrderTx(ctx, tx, &order); err != nil {
					log.Printf("settlement: order insert failed user=%d cart_item=%d number=%s date=%s: %v",
						userID, it.CartItemID, number, date, err)
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "settlement failed"})
				}
				ticket := model.BookedTicket{
					UserID:       userID,
					OrderID:      order.ID,
					LotteryID:    it.LotteryID,
					TicketNumber: number,
					DrawDate:     date,
				}
				if err := h.Orders.CreateTicketTx(ctx, tx, &ticket); err != nil {
					if errors.Is(err, repository.ErrTicketTaken) {
						return c.JSON(http.StatusConflict, echo.Map{
							"error":         "ticket already booked",
							"ticket_number": number,
							"draw_date":     date,
						})
					}
					log.Printf("settlement: ticket insert failed user=%d cart_item=%d number=%s date=%s: %v",
						userID, it.CartItemID, number, date, err)
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "settlement failed"})
				}
				orderIDs = append(orderIDs, order.ID)
				lastTxnID = txnID
			}
			events = append(events, queue.OrderConfirmedEvent{
				UserID:        userID,
				LotteryName:   it.LotteryName,
				TicketNumbers: it.TicketNumbers,
				DrawDate:      date,
				TransactionID: lastTxnID,
				TicketPrice:   it.TicketPrice,
				TotalAmount:   uint64(it.TicketPrice) * uint64(len(it.TicketNumbers)),
				ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
			})
		}
	}

	if err := h.Cart.DeleteByUserTx(ctx, tx, userID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to clear cart"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	h.publishConfirmations(userID, events)

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"order_ids": orderIDs,
	})
}

// publishConfirmations sends one event per settled (cart item, date) to
// the broker. Best-effort: failures are logged and never affect the
// committed settlement.
func (h *PaymentHandler) publishConfirmations(userID uint64, events []queue.OrderConfirmedEvent) {
	if h.Publish == nil || len(events) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("settlement: load user %d for notification failed: %v", userID, err)
		return
	}
	for i := range events {
		events[i].UserName = u.Name
		events[i].Phone = u.Phone
		if err := h.Publish(ctx, events[i]); err != nil {
			log.Printf("settlement: publish confirmation for user %d failed: %v", userID, err)
		}
	}
}
