package models

import "strconv"

// Payment statuses track compensation settlement for an enrollment.
const (
	// PaymentStatusPaid marks compensation that has been disbursed.
	PaymentStatusPaid = "paid"
	// PaymentStatusPending marks compensation awaiting disbursement.
	PaymentStatusPending = "pending"
	// PaymentStatusRefunded marks compensation clawed back after the fact.
	PaymentStatusRefunded = "refunded"
	// PaymentStatusFailed marks a disbursement attempt that errored out.
	PaymentStatusFailed = "failed"
	// PaymentStatusWaived marks compensation forfeited, usually for a no-show.
	PaymentStatusWaived = "waived"
	// PaymentStatusVoid marks a record that never owed anything.
	PaymentStatusVoid = "void"
)

// Payment methods name the disbursement channel.
const (
	// PaymentMethodGiftCard is the default campus disbursement channel.
	PaymentMethodGiftCard = "gift_card"
	// PaymentMethodCash is an in-person cash payout.
	PaymentMethodCash = "cash"
	// PaymentMethodCreditCard is a card reimbursement.
	PaymentMethodCreditCard = "credit_card"
	// PaymentMethodPaypal is a PayPal transfer.
	PaymentMethodPaypal = "paypal"
	// PaymentMethodVenmo is a Venmo transfer.
	PaymentMethodVenmo = "venmo"
	// PaymentMethodNone marks a payment with nothing to disburse.
	PaymentMethodNone = "none"
)

// Payment is the compensation record for one (participant, session) pair.
// Void and waived payments always carry a zero amount and method "none".
type Payment struct {
	ParticipantID string `json:"participant_id" gorm:"size:36;primaryKey"`
	SessionID     string `json:"session_id" gorm:"size:36;primaryKey"`
	Amount        int    `json:"amount" gorm:"not null"`
	Method        string `json:"method" gorm:"size:20;not null"`
	Status        string `json:"status" gorm:"size:20;not null;index"`
}

// Settles reports whether the payment status can carry a nonzero amount.
func (p Payment) Settles() bool {
	return p.Status != PaymentStatusVoid && p.Status != PaymentStatusWaived
}

// CSVHeader returns the payment column order.
func (Payment) CSVHeader() []string {
	return []string{"participant_id", "session_id", "amount", "method", "status"}
}

// CSVRecord returns the payment as one CSV row.
func (p Payment) CSVRecord() []string {
	return []string{
		p.ParticipantID,
		p.SessionID,
		strconv.Itoa(p.Amount),
		p.Method,
		p.Status,
	}
}
