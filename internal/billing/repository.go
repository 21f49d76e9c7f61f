package billing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrInvoiceAlreadyPaid = errors.New("invoice already paid")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateInvoice(ctx context.Context, memberID int, amountCents int64) (*Invoice, error) {
	query := `
		INSERT INTO invoices (member_id, amount_cents, status)
		VALUES ($1, $2, 'pending')
		RETURNING id, member_id, amount_cents, status, created_at
	`

	var invoice Invoice
	err := r.db.GetContext(ctx, &invoice, query, memberID, amountCents)
	if err != nil {
		return nil, storageErr(err)
	}

	return &invoice, nil
}

func (r *repository) GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	query := `
		SELECT id, member_id, amount_cents, status, created_at
		FROM invoices
		WHERE id = $1
	`

	var invoice Invoice
	err := r.db.GetContext(ctx, &invoice, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}

	return &invoice, nil
}

func (r *repository) ListInvoicesByMember(ctx context.Context, memberID int) ([]Invoice, error) {
	query := `
		SELECT id, member_id, amount_cents, status, created_at
		FROM invoices
		WHERE member_id = $1
		ORDER BY created_at DESC
	`

	var invoices []Invoice
	err := r.db.SelectContext(ctx, &invoices, query, memberID)
	if err != nil {
		return nil, storageErr(err)
	}

	return invoices, nil
}

// InsertPayment writes the payment row inside a transaction that holds
// the invoice row locked, so double submissions against the same
// invoice cannot both pass the paid check.
func (r *repository) InsertPayment(ctx context.Context, invoiceID int, amountCents int64, method string) (*Payment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	defer tx.Rollback()

	var status string
	err = tx.GetContext(ctx, &status,
		`SELECT status FROM invoices WHERE id = $1 FOR UPDATE`, invoiceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}

	if status == InvoicePaid {
		return nil, ErrInvoiceAlreadyPaid
	}

	var payment Payment
	err = tx.GetContext(ctx, &payment, `
		INSERT INTO payments (invoice_id, amount_cents, method)
		VALUES ($1, $2, $3)
		RETURNING id, invoice_id, amount_cents, method, paid_at
	`, invoiceID, amountCents, method)
	if err != nil {
		return nil, storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr(err)
	}

	return &payment, nil
}

func (r *repository) MarkInvoicePaid(ctx context.Context, invoiceID int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = 'paid' WHERE id = $1`, invoiceID)
	if err != nil {
		return storageErr(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageErr(err)
	}
	if rows == 0 {
		return ErrInvoiceNotFound
	}

	return nil
}
