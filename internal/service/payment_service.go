package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Cha17/gowra-sub000/internal/domain"
	"github.com/Cha17/gowra-sub000/internal/dto"
	"github.com/Cha17/gowra-sub000/internal/repository"
	"github.com/Cha17/gowra-sub000/pkg/telemetry"
)

// PaymentService errors
var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrAlreadyPaid       = errors.New("registration is already paid")
	ErrNotPaymentOwner   = errors.New("registration belongs to another user")
	ErrPaymentNotRefund  = errors.New("only paid payments can be refunded")
	ErrAmountNotPositive = errors.New("registration has no amount due")
)

// PaymentService defines the interface for the simulated payment gateway
type PaymentService interface {
	// Process charges a pending registration and flips it to paid
	Process(ctx context.Context, userID string, req *dto.ProcessPaymentRequest) (*dto.PaymentWithRegistration, error)
	// Refund reverses a paid ledger row; admin only, enforced at the route
	Refund(ctx context.Context, paymentID string) (*domain.Payment, error)
	// History retrieves a user's ledger rows
	History(ctx context.Context, userID string) ([]*domain.Payment, error)
	// ListAll retrieves all ledger rows with pagination
	ListAll(ctx context.Context, page, limit int) ([]*domain.Payment, int, error)
}

// paymentService implements PaymentService
type paymentService struct {
	paymentRepo      repository.PaymentRepository
	registrationRepo repository.RegistrationRepository
	eventRepo        repository.EventRepository
	processedCounter *telemetry.Counter
	amountHistogram  *telemetry.Histogram
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo repository.PaymentRepository, registrationRepo repository.RegistrationRepository, eventRepo repository.EventRepository) PaymentService {
	// nil instruments on error: Add/Record are no-ops then
	processedCounter, _ := telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "payments_processed_total",
		Description: "Payments successfully processed",
		Unit:        "1",
	})
	amountHistogram, _ := telemetry.NewHistogram(telemetry.MetricOpts{
		Name:        "payment_amount",
		Description: "Amount charged per processed payment",
		Unit:        "1",
	})
	return &paymentService{
		paymentRepo:      paymentRepo,
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		processedCounter: processedCounter,
		amountHistogram:  amountHistogram,
	}
}

// Process simulates a gateway charge. No external call is made; the ledger
// insert and the registration status flip commit in one transaction.
func (s *paymentService) Process(ctx context.Context, userID string, req *dto.ProcessPaymentRequest) (*dto.PaymentWithRegistration, error) {
	reg, err := s.registrationRepo.GetByID(ctx, req.RegistrationID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, ErrRegistrationNotFound
	}
	if reg.UserID != userID {
		return nil, ErrNotPaymentOwner
	}
	if reg.IsPaid() {
		return nil, ErrAlreadyPaid
	}

	event, err := s.eventRepo.GetByID(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}
	if event != nil && event.HasOccurred(time.Now()) {
		return nil, ErrEventOccurred
	}

	payment, err := domain.NewPayment(reg.ID, reg.UserID, reg.PaymentAmount, req.PaymentMethod, req.PaymentReference)
	if err != nil {
		if reg.PaymentAmount <= 0 {
			return nil, ErrAmountNotPositive
		}
		return nil, err
	}

	if err := s.paymentRepo.ProcessInTx(ctx, payment); err != nil {
		return nil, err
	}

	reg.PaymentStatus = domain.PaymentStatusPaid
	reg.PaymentReference = payment.Reference

	s.processedCounter.Add(ctx, 1, attribute.String("method", payment.Method))
	s.amountHistogram.Record(ctx, payment.Amount)
	return &dto.PaymentWithRegistration{Payment: payment, Registration: reg}, nil
}

// Refund reverses a paid charge with a new negative-amount ledger row. The
// original row and the registration are marked refunded in the same
// transaction; the original amount is never mutated.
func (s *paymentService) Refund(ctx context.Context, paymentID string) (*domain.Payment, error) {
	original, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, ErrPaymentNotFound
	}

	refund, err := domain.NewRefund(original)
	if err != nil {
		return nil, ErrPaymentNotRefund
	}

	if err := s.paymentRepo.RefundInTx(ctx, refund, original.ID); err != nil {
		return nil, err
	}
	return refund, nil
}

// History retrieves a user's ledger rows, newest first
func (s *paymentService) History(ctx context.Context, userID string) ([]*domain.Payment, error) {
	return s.paymentRepo.ListByUser(ctx, userID)
}

// ListAll retrieves all ledger rows with pagination
func (s *paymentService) ListAll(ctx context.Context, page, limit int) ([]*domain.Payment, int, error) {
	return s.paymentRepo.List(ctx, page, limit)
}
