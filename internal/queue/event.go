// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderConfirmedEvent is published after a settlement commits. It carries
// enough information for downstream consumers to notify the buyer or feed
// analytics without querying the primary database.
type OrderConfirmedEvent struct {
	UserID        uint64   `json:"user_id"`
	UserName      string   `json:"user_name"`
	Phone         string   `json:"phone"`
	LotteryName   string   `json:"lottery_name"`
	TicketNumbers []string `json:"ticket_numbers"`
	DrawDate      string   `json:"draw_date"`
	TransactionID string   `json:"transaction_id"`
	TicketPrice   uint32   `json:"ticket_price"`
	TotalAmount   uint64   `json:"total_amount"`
	ConfirmedAt   string   `json:"confirmed_at"`
}
