package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey  = "notifications"
	failedKey = "notifications:failed"

	maxTries = 3
)

type Job struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Service queues notification emails on Redis and drains them in a
// background worker. Sending is best effort: callers only learn about
// queueing failures, delivery failures end up on the failed list.
type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return newService(redis.NewClient(&redis.Options{Addr: redisAddr}),
		fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass)
}

func newService(client *redis.Client, fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass string) *Service {
	return &Service{
		redis:    client,
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) enqueue(ctx context.Context, job Job) error {
	job.Tries = 0
	job.Created = time.Now()

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Error("failed to queue notification", "to", job.To, "type", job.Type, "err", err)
		metrics.RecordNotification(job.Type, "queue_error")
		return err
	}

	metrics.RecordNotification(job.Type, "queued")
	logger.Info("notification queued", "type", job.Type, "to", job.To)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("notification worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}
	metrics.SetNotifyQueueLength(s.QueueLength(ctx))

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Error("bad notification payload", "err", err)
		return
	}

	job.Tries++
	if err := s.sendNow(job); err != nil {
		logger.Error("notification delivery failed",
			"to", job.To, "attempt", job.Tries, "err", err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			return
		}

		s.saveFailed(job, err)
		return
	}

	metrics.RecordNotification(job.Type, "sent")
	logger.Info("notification sent", "type", job.Type, "to", job.To)
}

func (s *Service) sendNow(job Job) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job Job, cause error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": cause.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedKey, data)

	metrics.RecordNotification(job.Type, "failed")
	logger.Error("notification moved to failed queue", "to", job.To, "type", job.Type)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

// BookingConfirmed queues a confirmation for a freshly booked session
// or class registration.
func (s *Service) BookingConfirmed(ctx context.Context, email, name, what string, start time.Time) error {
	body := fmt.Sprintf(`Hi %s,

Your booking is confirmed!

What: %s
When: %s

See you at the gym!

- GymDesk Team`, name, what, start.Format("Jan 2, 2006 at 3:04 PM"))

	return s.enqueue(ctx, Job{
		Type:    "booking_confirmation",
		To:      email,
		Name:    name,
		Subject: "Booking Confirmed - " + what,
		Body:    body,
	})
}

// PaymentReceipt queues a receipt after a payment is recorded against
// an invoice.
func (s *Service) PaymentReceipt(ctx context.Context, email, name string, amount float64, when time.Time) error {
	body := fmt.Sprintf(`Hi %s,

We received your payment of $%.2f on %s.

Thanks for training with us!

- GymDesk Team`, name, amount, when.Format("Jan 2, 2006"))

	return s.enqueue(ctx, Job{
		Type:    "payment_receipt",
		To:      email,
		Name:    name,
		Subject: "Payment Received",
		Body:    body,
	})
}
