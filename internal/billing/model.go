package billing

import "time"

const (
	InvoicePending = "pending"
	InvoicePaid    = "paid"
)

type Invoice struct {
	ID          int       `json:"id" db:"id"`
	MemberID    int       `json:"member_id" db:"member_id"`
	AmountCents int64     `json:"amount_cents" db:"amount_cents"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type Payment struct {
	ID          int       `json:"id" db:"id"`
	InvoiceID   int       `json:"invoice_id" db:"invoice_id"`
	AmountCents int64     `json:"amount_cents" db:"amount_cents"`
	Method      string    `json:"method" db:"method"`
	PaidAt      time.Time `json:"paid_at" db:"paid_at"`
}

type CreateInvoiceRequest struct {
	MemberID    int   `json:"member_id" binding:"required"`
	AmountCents int64 `json:"amount_cents" binding:"required,gt=0"`
}

type RecordPaymentRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Method      string `json:"method" binding:"required,oneof=cash card transfer"`
}

// PaymentRecorded is the event published after a payment row is
// written. Invoice status is updated by the consumer, not inline with
// the write.
type PaymentRecorded struct {
	PaymentID   int       `json:"payment_id"`
	InvoiceID   int       `json:"invoice_id"`
	MemberID    int       `json:"member_id"`
	AmountCents int64     `json:"amount_cents"`
	RecordedAt  time.Time `json:"recorded_at"`
}
