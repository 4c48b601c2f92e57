package model

import "time"

// Order is the immutable purchase record for exactly one (ticket number,
// draw date) pair.  Lottery name and ticket price are snapshotted at
// settlement time from the lotteries row so later edits to the lottery
// cannot change what the buyer paid.  The transaction identifier is
// generated server-side only; clients never supply it.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – buyer.
//  LotteryID     – the lottery purchased against.
//  LotteryName   – lottery name at purchase time.
//  TicketPrice   – price paid, in rupees, at purchase time.
//  DrawTime      – draw date the ticket was bought for.
//  TransactionID – globally unique settlement identifier ("TXN...").
//  Status        – always "confirmed"; orders are written fully formed.
//  CreatedAt     – creation timestamp.
type Order struct {
	ID            uint64    // orders.id
	UserID        uint64    // orders.user_id
	LotteryID     uint64    // orders.lottery_id
	LotteryName   string    // orders.lottery_name
	TicketPrice   uint32    // orders.ticket_price
	DrawTime      time.Time // orders.draw_time
	TransactionID string    // orders.transaction_id
	Status        string    // orders.status
	CreatedAt     time.Time // orders.created_at
}

// BookedTicket is the permanent proof of purchase for one ticket number on
// one draw date.  It is created exactly once per settled pair, never
// mutated and never deleted.  The unique key on
// (lottery_id, draw_date, ticket_number) guarantees no two users hold the
// same number for the same draw.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – owner.
//  OrderID      – back-reference to the order that paid for it.
//  LotteryID    – the lottery the number belongs to.
//  TicketNumber – the formatted number string.
//  DrawDate     – the draw date the number is held for ("2025-11-08").
//  CreatedAt    – creation timestamp.
type BookedTicket struct {
	ID           uint64    // booked_tickets.id
	UserID       uint64    // booked_tickets.user_id
	OrderID      uint64    // booked_tickets.order_id
	LotteryID    uint64    // booked_tickets.lottery_id
	TicketNumber string    // booked_tickets.ticket_number
	DrawDate     string    // booked_tickets.draw_date
	CreatedAt    time.Time // booked_tickets.created_at
}
