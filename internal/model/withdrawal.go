package model

import "time"

// Withdrawal claim states.  Only an administrator moves a claim out of
// pending, stamping who processed it and when.
const (
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalRejected = "rejected"
)

// Withdrawal captures a payout claim for a winning booked ticket.  The
// identity and bank fields are validated at intake (see the validation
// package); the claim then waits for an admin decision.  A user may hold
// at most one non-rejected claim per (ticket number, draw date).
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – claimant.
//  TicketNumber  – the winning ticket number being claimed.
//  DrawDate      – draw date of the winning ticket ("2025-11-08").
//  Amount        – prize amount claimed, in rupees.
//  Name          – claimant name as it appears on the bank account.
//  Email         – contact email.
//  BankName      – bank the payout goes to.
//  Branch        – bank branch.
//  AccountNumber – 9–18 digit account number.
//  IFSCCode      – 11 character IFSC routing code.
//  PANNumber     – PAN card number.
//  AadharNumber  – 12 digit Aadhar number.
//  Status        – pending, approved or rejected.
//  ProcessedBy   – admin user who decided the claim (nullable).
//  ProcessedAt   – when the claim was decided (nullable).
//  CreatedAt     – creation timestamp.
type Withdrawal struct {
	ID            uint64     `json:"id"`
	UserID        uint64     `json:"user_id"`
	TicketNumber  string     `json:"ticket_number"`
	DrawDate      string     `json:"draw_date"`
	Amount        uint64     `json:"amount"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	BankName      string     `json:"bank_name"`
	Branch        string     `json:"branch"`
	AccountNumber string     `json:"account_number"`
	IFSCCode      string     `json:"ifsc_code"`
	PANNumber     string     `json:"pan_number"`
	AadharNumber  string     `json:"aadhar_number"`
	Status        string     `json:"status"`
	ProcessedBy   *uint64    `json:"processed_by,omitempty"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
