package service

import (
	"context"
	"testing"
	"time"

	"trademini-be/internal/config"
	"trademini-be/internal/dto"
	"trademini-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPendingPayment(repo *fakePaymentRepo, userName, planName string, createdAt time.Time) uuid.UUID {
	id := uuid.New()
	telegram := int64(4242)
	payment := &entity.Payment{
		Id:        id,
		UserId:    uuid.New(),
		PlanId:    uuid.New(),
		Amount:    25,
		Currency:  "USD",
		Method:    "midtrans",
		Status:    entity.PaymentStatusPending,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	repo.seed(payment, &entity.PaymentDetail{
		Id:           id,
		UserId:       payment.UserId,
		UserTelegram: &telegram,
		UserName:     userName,
		PlanName:     planName,
		Amount:       payment.Amount,
		Currency:     payment.Currency,
		Method:       payment.Method,
		Status:       payment.Status,
		CreatedAt:    createdAt,
	})
	return id
}

func TestReviewApproveReturnsJoinedDetail(t *testing.T) {
	repo := newFakePaymentRepo()

	// The reviewed payment is an hour old; a fresher pending payment
	// sits on top of the list ordering, so only an id lookup can
	// produce the right row.
	target := seedPendingPayment(repo, "Alice Trader", "Pro Monthly", time.Now().Add(-time.Hour))
	seedPendingPayment(repo, "Bob Trader", "Starter", time.Now())

	audit := &fakeAuditService{}
	svc := NewPaymentService(&fakeFactory{uow: &fakeUnitOfWork{payments: repo}}, nil, audit, nil, nil, &config.Config{})

	actor := uuid.New()
	resp, err := svc.Review(context.Background(), actor, target, &dto.PaymentActionRequest{Action: "approve"})
	require.NoError(t, err)

	assert.Equal(t, target, resp.Id)
	assert.Equal(t, "Alice Trader", resp.UserName)
	assert.Equal(t, "Pro Monthly", resp.PlanName)
	assert.Equal(t, string(entity.PaymentStatusApproved), resp.Status)
	assert.Equal(t, "$25.00", resp.AmountLabel)
	assert.False(t, resp.CanReview)

	require.Len(t, audit.records, 1)
	assert.Equal(t, "PAYMENT_approved", audit.records[0])
}

func TestReviewRejectedTwiceIsFinalized(t *testing.T) {
	repo := newFakePaymentRepo()
	target := seedPendingPayment(repo, "Alice Trader", "Pro Monthly", time.Now())

	svc := NewPaymentService(&fakeFactory{uow: &fakeUnitOfWork{payments: repo}}, nil, &fakeAuditService{}, nil, nil, &config.Config{})

	actor := uuid.New()
	_, err := svc.Review(context.Background(), actor, target, &dto.PaymentActionRequest{Action: "reject", Reason: "no proof"})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), actor, target, &dto.PaymentActionRequest{Action: "approve"})
	assert.ErrorIs(t, err, ErrPaymentFinalized)
}

func TestReviewUnknownAction(t *testing.T) {
	repo := newFakePaymentRepo()
	target := seedPendingPayment(repo, "Alice Trader", "Pro Monthly", time.Now())

	svc := NewPaymentService(&fakeFactory{uow: &fakeUnitOfWork{payments: repo}}, nil, &fakeAuditService{}, nil, nil, &config.Config{})

	_, err := svc.Review(context.Background(), uuid.New(), target, &dto.PaymentActionRequest{Action: "escalate"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}
