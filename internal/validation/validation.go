// Package validation holds the field-level checks applied to registration
// and withdrawal submissions. Each validator returns a map keyed by field
// name so handlers can render errors per field; an empty map means the
// input passed.
package validation

import "regexp"

var (
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe   = regexp.MustCompile(`^[0-9]{10}$`)
	accountRe = regexp.MustCompile(`^[0-9]{9,18}$`)
	ifscRe    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	panRe     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]{1}$`)
	aadharRe  = regexp.MustCompile(`^[0-9]{12}$`)
)

// RegisterInput is the registration form payload.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ValidateRegister checks a registration submission.
func ValidateRegister(in RegisterInput) map[string]string {
	errs := make(map[string]string)
	if in.Name == "" {
		errs["name"] = "name is required"
	}
	if !emailRe.MatchString(in.Email) {
		errs["email"] = "invalid email address"
	}
	if !phoneRe.MatchString(in.Phone) {
		errs["phone"] = "phone must be 10 digits"
	}
	if len(in.Password) < 8 {
		errs["password"] = "password must be at least 8 characters"
	}
	return errs
}

// WithdrawalInput is the payout claim form payload.
type WithdrawalInput struct {
	TicketNumber  string `json:"ticket_number"`
	DrawDate      string `json:"draw_date"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	BankName      string `json:"bank_name"`
	Branch        string `json:"branch"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	PANNumber     string `json:"pan_number"`
	AadharNumber  string `json:"aadhar_number"`
}

// ValidateWithdrawal checks a payout claim submission.
func ValidateWithdrawal(in WithdrawalInput) map[string]string {
	errs := make(map[string]string)
	if in.TicketNumber == "" {
		errs["ticket_number"] = "ticket number is required"
	}
	if in.DrawDate == "" {
		errs["draw_date"] = "draw date is required"
	}
	if in.Name == "" {
		errs["name"] = "name is required"
	}
	if !emailRe.MatchString(in.Email) {
		errs["email"] = "invalid email address"
	}
	if in.BankName == "" {
		errs["bank_name"] = "bank name is required"
	}
	if in.Branch == "" {
		errs["branch"] = "branch is required"
	}
	if !accountRe.MatchString(in.AccountNumber) {
		errs["account_number"] = "account number must be 9 to 18 digits"
	}
	if !ifscRe.MatchString(in.IFSCCode) {
		errs["ifsc_code"] = "invalid IFSC code"
	}
	if !panRe.MatchString(in.PANNumber) {
		errs["pan_number"] = "invalid PAN number"
	}
	if !aadharRe.MatchString(in.AadharNumber) {
		errs["aadhar_number"] = "aadhar must be 12 digits"
	}
	return errs
}
