package billing

import "context"

type Repository interface {
	CreateInvoice(ctx context.Context, memberID int, amountCents int64) (*Invoice, error)
	GetInvoice(ctx context.Context, id int) (*Invoice, error)
	ListInvoicesByMember(ctx context.Context, memberID int) ([]Invoice, error)
	InsertPayment(ctx context.Context, invoiceID int, amountCents int64, method string) (*Payment, error)
	MarkInvoicePaid(ctx context.Context, invoiceID int) error
}
