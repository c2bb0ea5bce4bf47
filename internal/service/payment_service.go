package service

import (
	"context"
	"crypto/sha512"
	"errors"
	"fmt"
	"time"

	"trademini-be/internal/config"
	"trademini-be/internal/dto"
	"trademini-be/internal/entity"
	"trademini-be/internal/repository/specification"
	"trademini-be/internal/repository/unitofwork"
	"trademini-be/internal/websocket"
	"trademini-be/pkg/events"
	pktNats "trademini-be/pkg/nats"
	"trademini-be/pkg/view"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrPaymentFinalized = errors.New("payment already reviewed")
)

type IPaymentService interface {
	// ListPending lists payments awaiting manual review, joined with
	// user and plan data for the review panel.
	ListPending(ctx context.Context, req *dto.PaymentListRequest) ([]*dto.PaymentResponse, error)

	// Review applies an approve/reject decision to one pending payment.
	Review(ctx context.Context, actorId uuid.UUID, paymentId uuid.UUID, req *dto.PaymentActionRequest) (*dto.PaymentResponse, error)

	// Checkout opens a provider transaction for a mini-app user buying
	// a plan. Promo codes are applied server side; the final amount is
	// what the provider charges.
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)

	// HandleProviderWebhook processes the provider's settlement
	// callback, after verifying its signature.
	HandleProviderWebhook(ctx context.Context, req *dto.ProviderWebhookRequest) error
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	promoService   IPromoService
	auditService   IAuditService
	eventPublisher *pktNats.Publisher
	hub            *websocket.Hub
	cfg            *config.Config
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	promoService IPromoService,
	auditService IAuditService,
	eventPublisher *pktNats.Publisher,
	hub *websocket.Hub,
	cfg *config.Config,
) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		promoService:   promoService,
		auditService:   auditService,
		eventPublisher: eventPublisher,
		hub:            hub,
		cfg:            cfg,
	}
}

func toPaymentResponse(d *entity.PaymentDetail) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		Id:           d.Id,
		UserId:       d.UserId,
		UserTelegram: d.UserTelegram,
		UserName:     d.UserName,
		PlanName:     d.PlanName,
		Amount:       d.Amount,
		Currency:     d.Currency,
		AmountLabel:  view.FormatMoney(d.Amount, d.Currency),
		Method:       d.Method,
		Status:       string(d.Status),
		BadgeColor:   view.PaymentBadgeColor(string(d.Status)),
		ProviderRef:  d.ProviderRef,
		CreatedAt:    d.CreatedAt,
		CanReview:    d.Status == entity.PaymentStatusPending,
	}
}

func (s *paymentService) ListPending(ctx context.Context, req *dto.PaymentListRequest) ([]*dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	status := req.Status
	if status == "" {
		status = string(entity.PaymentStatusPending)
	}

	details, err := uow.PaymentRepository().GetDetails(ctx, status, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PaymentResponse, 0, len(details))
	for _, d := range details {
		res = append(res, toPaymentResponse(d))
	}
	return res, nil
}

func (s *paymentService) Review(ctx context.Context, actorId uuid.UUID, paymentId uuid.UUID, req *dto.PaymentActionRequest) (*dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: paymentId})
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status != entity.PaymentStatusPending {
		return nil, ErrPaymentFinalized
	}

	oldStatus := string(payment.Status)
	switch req.Action {
	case "approve":
		payment.Status = entity.PaymentStatusApproved
	case "reject":
		payment.Status = entity.PaymentStatusRejected
	default:
		return nil, ErrUnknownAction
	}
	payment.ReviewedBy = &actorId
	payment.UpdatedAt = time.Now()

	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return nil, err
	}

	table := "payments"
	_ = s.auditService.Record(ctx, actorId, "PAYMENT_"+string(payment.Status),
		fmt.Sprintf("payment %s %s", paymentId, payment.Status), &table,
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": string(payment.Status), "reason": req.Reason})

	if s.eventPublisher != nil {
		var evt events.Event
		if payment.Status == entity.PaymentStatusApproved {
			evt = events.PaymentApproved(paymentId.String(), payment.Amount, payment.Currency)
		} else {
			evt = events.PaymentRejected(paymentId.String(), req.Reason)
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("Warn: failed to publish payment event: %v\n", err)
		}
	}

	if s.hub != nil {
		s.hub.Broadcast(websocket.ConsoleEvent{
			Type: "payment_reviewed",
			Data: map[string]interface{}{
				"payment_id": paymentId.String(),
				"status":     string(payment.Status),
			},
		})
	}

	// Re-read through the detail projection so the response matches
	// what the list shows.
	if detail, err := uow.PaymentRepository().GetDetail(ctx, paymentId); err == nil && detail != nil {
		return toPaymentResponse(detail), nil
	}

	return &dto.PaymentResponse{
		Id:          payment.Id,
		UserId:      payment.UserId,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		AmountLabel: view.FormatMoney(payment.Amount, payment.Currency),
		Method:      payment.Method,
		Status:      string(payment.Status),
		BadgeColor:  view.PaymentBadgeColor(string(payment.Status)),
		ProviderRef: payment.ProviderRef,
		CreatedAt:   payment.CreatedAt,
	}, nil
}

func (s *paymentService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: req.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.New("plan not found")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	amount := plan.Price
	if req.PromoCode != "" {
		validation, err := s.promoService.Validate(ctx, &dto.ValidatePromoRequest{Code: req.PromoCode, PlanId: plan.Id})
		if err != nil {
			return nil, err
		}
		if validation.Valid && validation.FinalAmount != nil {
			amount = *validation.FinalAmount
			if promo, err := uow.PromoRepository().FindByCode(ctx, validation.Code); err == nil && promo != nil {
				if err := uow.PromoRepository().IncrementUseCount(ctx, promo.Id); err != nil {
					return nil, err
				}
			}
		}
	}

	payment := &entity.Payment{
		Id:        uuid.New(),
		UserId:    userId,
		PlanId:    plan.Id,
		Amount:    amount,
		Currency:  plan.Currency,
		Method:    "midtrans",
		Status:    entity.PaymentStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uow.PaymentRepository().Create(ctx, payment); err != nil {
		return nil, err
	}

	// Provider call happens after the row is committed; a provider
	// failure leaves a pending payment an admin can still reject.
	var sClient snap.Client
	env := midtrans.Sandbox
	if s.cfg.Payment.MidtransProduction {
		env = midtrans.Production
	}
	sClient.New(s.cfg.Payment.MidtransServerKey, env)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  payment.Id.String(),
			GrossAmt: int64(amount),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: s.cfg.App.ClientURL + "?payment=success",
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    plan.Id.String(),
				Price: int64(amount),
				Qty:   1,
				Name:  plan.Name,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	ref := snapResp.Token
	payment.ProviderRef = &ref
	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		PaymentId:   payment.Id,
		OrderId:     payment.Id.String(),
		Amount:      amount,
		Currency:    plan.Currency,
		RedirectURL: snapResp.RedirectURL,
		SnapToken:   snapResp.Token,
	}, nil
}

func (s *paymentService) HandleProviderWebhook(ctx context.Context, req *dto.ProviderWebhookRequest) error {
	serverKey := s.cfg.Payment.MidtransServerKey
	if serverKey == "" {
		return fmt.Errorf("server configuration error")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		return fmt.Errorf("invalid signature")
	}

	orderId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return fmt.Errorf("invalid order id")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return err
	}
	if payment == nil {
		return ErrPaymentNotFound
	}
	if payment.Status != entity.PaymentStatusPending {
		// Replayed notification, nothing to do.
		return nil
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		payment.Status = entity.PaymentStatusApproved
	case "deny", "cancel", "expire":
		payment.Status = entity.PaymentStatusRejected
	default:
		// pending / authorize / refund flows keep the row as is.
		return nil
	}
	payment.UpdatedAt = time.Now()

	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		var evt events.Event
		if payment.Status == entity.PaymentStatusApproved {
			evt = events.PaymentApproved(payment.Id.String(), payment.Amount, payment.Currency)
		} else {
			evt = events.PaymentRejected(payment.Id.String(), req.TransactionStatus)
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("Warn: failed to publish payment event: %v\n", err)
		}
	}

	if s.hub != nil {
		s.hub.Broadcast(websocket.ConsoleEvent{
			Type: "payment_settled",
			Data: map[string]interface{}{
				"payment_id": payment.Id.String(),
				"status":     string(payment.Status),
			},
		})
	}

	return nil
}
