package model

import "time"

// CartItem holds one pending selection: a lottery, the ticket numbers the
// user picked, and the draw dates they want those numbers for.  Every
// number is considered purchased for every listed date, so settlement
// expands the item into len(TicketNumbers) × len(DrawDates) orders.
// CartItems are ephemeral — the user deletes them individually or the
// settlement engine deletes them in bulk after a successful purchase.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – owning user; a cart item is never visible to anyone else.
//  LotteryID     – the lottery the numbers belong to.
//  TicketNumbers – non-empty set of ticket-number strings ("15-19/2548").
//  DrawDates     – non-empty set of draw dates ("2025-11-08").
//  CreatedAt     – creation timestamp.
type CartItem struct {
	ID            uint64    // cart_items.id
	UserID        uint64    // cart_items.user_id
	LotteryID     uint64    // cart_items.lottery_id
	TicketNumbers []string  // cart_items.ticket_numbers (JSON)
	DrawDates     []string  // cart_items.draw_dates (JSON)
	CreatedAt     time.Time // cart_items.created_at
}
