package model

import "time"

// Lottery lifecycle states.  A lottery is never deleted; it only moves
// between these states.  Declaring a result forces Completed.
const (
	LotteryUpcoming  = "upcoming"
	LotteryActive    = "active"
	LotteryCompleted = "completed"
	LotteryCancelled = "cancelled"
)

// Lottery categories matching the draw schedule the operator runs.
const (
	TypeWeekly  = "weekly"
	TypeMonthly = "monthly"
	TypeSpecial = "special"
	TypeBumper  = "bumper"
)

// Lottery represents one scheduled draw that tickets can be purchased
// against.  Prize tiers carry explicit amounts; the second and third
// tiers are optional and nil means the draw simply has no such tier.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name shown to buyers.
//  LotteryType  – category (weekly, monthly, special, bumper).
//  DrawDate     – when the draw happens.
//  TicketPrice  – price of one ticket in rupees.
//  FirstPrize   – first‑tier prize amount.
//  SecondPrize  – optional second‑tier prize amount.
//  ThirdPrize   – optional third‑tier prize amount.
//  TotalTickets – size of the number pool for this draw.
//  Status       – lifecycle status (see constants above).
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Lottery struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	LotteryType  string    `json:"lottery_type"`
	DrawDate     time.Time `json:"draw_date"`
	TicketPrice  uint32    `json:"ticket_price"`
	FirstPrize   uint64    `json:"first_prize"`
	SecondPrize  *uint64   `json:"second_prize,omitempty"`
	ThirdPrize   *uint64   `json:"third_prize,omitempty"`
	TotalTickets uint32    `json:"total_tickets"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OpenForSale reports whether tickets for this lottery may still be put
// in a cart.  Completed and cancelled draws are closed.
func (l Lottery) OpenForSale() bool {
	return l.Status == LotteryUpcoming || l.Status == LotteryActive
}

// ValidStatusTransition reports whether a lottery may move from one
// lifecycle status to another.  The normal path is upcoming → active →
// completed; cancelled is reachable from any non-terminal state.
func ValidStatusTransition(from, to string) bool {
	switch from {
	case LotteryUpcoming:
		return to == LotteryActive || to == LotteryCancelled
	case LotteryActive:
		return to == LotteryCompleted || to == LotteryCancelled
	default:
		// completed and cancelled are terminal
		return false
	}
}
