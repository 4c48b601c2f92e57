package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validWithdrawal() WithdrawalInput {
	return WithdrawalInput{
		TicketNumber:  "10-19/1001",
		DrawDate:      "2025-11-08",
		Name:          "Asha Verma",
		Email:         "asha@example.com",
		BankName:      "State Bank of India",
		Branch:        "Connaught Place",
		AccountNumber: "12345678901234567", // 17 digits
		IFSCCode:      "SBIN0001234",
		PANNumber:     "ABCDE1234F",
		AadharNumber:  "123412341234",
	}
}

func TestValidateWithdrawalAccepts(t *testing.T) {
	assert.Empty(t, ValidateWithdrawal(validWithdrawal()))
}

func TestValidateWithdrawalRejectsShortAccount(t *testing.T) {
	in := validWithdrawal()
	in.AccountNumber = "12345678" // 8 digits
	errs := ValidateWithdrawal(in)
	assert.Contains(t, errs, "account_number")
	assert.Len(t, errs, 1)
}

func TestValidateWithdrawalFieldErrors(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*WithdrawalInput)
	}{
		{"ifsc_code", func(in *WithdrawalInput) { in.IFSCCode = "SBIN1001234" }}, // fifth char must be 0
		{"ifsc_code", func(in *WithdrawalInput) { in.IFSCCode = "sbin0001234" }},
		{"pan_number", func(in *WithdrawalInput) { in.PANNumber = "ABCD51234F" }},
		{"pan_number", func(in *WithdrawalInput) { in.PANNumber = "ABCDE12345" }},
		{"aadhar_number", func(in *WithdrawalInput) { in.AadharNumber = "12341234123" }}, // 11 digits
		{"email", func(in *WithdrawalInput) { in.Email = "not-an-email" }},
		{"ticket_number", func(in *WithdrawalInput) { in.TicketNumber = "" }},
		{"bank_name", func(in *WithdrawalInput) { in.BankName = "" }},
	}
	for _, tc := range cases {
		in := validWithdrawal()
		tc.mutate(&in)
		errs := ValidateWithdrawal(in)
		assert.Contains(t, errs, tc.field, "expected error for %s", tc.field)
		assert.Len(t, errs, 1)
	}
}

func TestValidateRegister(t *testing.T) {
	ok := RegisterInput{Name: "Asha Verma", Email: "asha@example.com", Phone: "9876543210", Password: "longenough"}
	assert.Empty(t, ValidateRegister(ok))

	bad := RegisterInput{Name: "", Email: "asha@", Phone: "98765", Password: "short"}
	errs := ValidateRegister(bad)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "password")
}
