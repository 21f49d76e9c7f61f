package billing

import (
	"context"
	"encoding/json"
	"time"

	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
	"gymdesk/internal/user"

	"github.com/redis/go-redis/v9"
)

const eventsKey = "payments:events"

// Receipter queues a payment receipt for the member. Delivery is best
// effort.
type Receipter interface {
	PaymentReceipt(ctx context.Context, email, name string, amount float64, when time.Time) error
}

type Service interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error)
	RecordPayment(ctx context.Context, invoiceID int, req RecordPaymentRequest) (*Payment, error)
	ListInvoicesByMember(ctx context.Context, memberID int) ([]Invoice, error)
	Start(ctx context.Context)
	Close() error
}

type service struct {
	repo     Repository
	userRepo user.Repository
	receipts Receipter
	redis    *redis.Client
}

func NewService(repo Repository, userRepo user.Repository, receipts Receipter, redisAddr string) Service {
	return newService(repo, userRepo, receipts,
		redis.NewClient(&redis.Options{Addr: redisAddr}))
}

func newService(repo Repository, userRepo user.Repository, receipts Receipter, client *redis.Client) Service {
	return &service{
		repo:     repo,
		userRepo: userRepo,
		receipts: receipts,
		redis:    client,
	}
}

func (s *service) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	return s.repo.CreateInvoice(ctx, req.MemberID, req.AmountCents)
}

func (s *service) ListInvoicesByMember(ctx context.Context, memberID int) ([]Invoice, error) {
	return s.repo.ListInvoicesByMember(ctx, memberID)
}

// RecordPayment writes the payment and publishes a PaymentRecorded
// event. The invoice flips to paid when the worker consumes the event,
// not here.
func (s *service) RecordPayment(ctx context.Context, invoiceID int, req RecordPaymentRequest) (*Payment, error) {
	invoice, err := s.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	payment, err := s.repo.InsertPayment(ctx, invoiceID, req.AmountCents, req.Method)
	if err != nil {
		return nil, err
	}

	metrics.RecordPayment()
	logger.Info("payment recorded",
		"payment_id", payment.ID, "invoice_id", invoiceID, "amount_cents", payment.AmountCents)

	event := PaymentRecorded{
		PaymentID:   payment.ID,
		InvoiceID:   invoiceID,
		MemberID:    invoice.MemberID,
		AmountCents: payment.AmountCents,
		RecordedAt:  payment.PaidAt,
	}
	if err := s.publish(ctx, event); err != nil {
		logger.Error("failed to publish payment event",
			"payment_id", payment.ID, "err", err)
	}

	return payment, nil
}

func (s *service) publish(ctx context.Context, event PaymentRecorded) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.redis.LPush(ctx, eventsKey, data).Err()
}

// Start drains PaymentRecorded events and settles the invoices they
// reference.
func (s *service) Start(ctx context.Context) {
	logger.Info("billing worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("billing worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, eventsKey).Result()
	if err != nil {
		return
	}

	var event PaymentRecorded
	if err := json.Unmarshal([]byte(result[1]), &event); err != nil {
		logger.Error("bad payment event payload", "err", err)
		return
	}

	if err := s.repo.MarkInvoicePaid(ctx, event.InvoiceID); err != nil {
		logger.Error("failed to settle invoice",
			"invoice_id", event.InvoiceID, "payment_id", event.PaymentID, "err", err)
		return
	}

	logger.Info("invoice settled", "invoice_id", event.InvoiceID)
	s.sendReceipt(ctx, event)
}

func (s *service) sendReceipt(ctx context.Context, event PaymentRecorded) {
	if s.receipts == nil {
		return
	}

	member, err := s.userRepo.FindByID(ctx, event.MemberID)
	if err != nil {
		logger.Error("payment receipt skipped", "member_id", event.MemberID, "err", err)
		return
	}

	amount := float64(event.AmountCents) / 100
	if err := s.receipts.PaymentReceipt(ctx, member.Email, member.Name, amount, event.RecordedAt); err != nil {
		logger.Error("payment receipt failed", "member_id", event.MemberID, "err", err)
	}
}

func (s *service) Close() error {
	return s.redis.Close()
}
