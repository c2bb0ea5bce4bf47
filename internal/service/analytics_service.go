package service

import (
	"context"
	"time"

	"trademini-be/internal/dto"
	"trademini-be/internal/entity"
	"trademini-be/internal/repository/specification"
	"trademini-be/internal/repository/unitofwork"
	"trademini-be/pkg/view"
)

type IAnalyticsService interface {
	GetStats(ctx context.Context) (*dto.AnalyticsStatsResponse, error)
}

type analyticsService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAnalyticsService(uowFactory unitofwork.RepositoryFactory) IAnalyticsService {
	return &analyticsService{uowFactory: uowFactory}
}

func (s *analyticsService) GetStats(ctx context.Context) (*dto.AnalyticsStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	activeUsers, err := uow.UserRepository().Count(ctx, specification.ByStatus{Status: string(entity.UserStatusActive)})
	if err != nil {
		return nil, err
	}
	bannedUsers, err := uow.UserRepository().Count(ctx, specification.ByStatus{Status: string(entity.UserStatusBanned)})
	if err != nil {
		return nil, err
	}

	revenue, err := uow.PaymentRepository().GetTotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	pendingPayments, err := uow.PaymentRepository().CountByStatus(ctx, string(entity.PaymentStatusPending))
	if err != nil {
		return nil, err
	}

	activeBans, err := uow.BanRepository().Count(ctx, specification.Unexpired{Now: time.Now()})
	if err != nil {
		return nil, err
	}

	today := time.Now().Truncate(24 * time.Hour)
	approvedToday := int64(0)
	approved, err := uow.PaymentRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.PaymentStatusApproved)},
		specification.CreatedAfter{Time: today},
	)
	if err != nil {
		return nil, err
	}
	approvedToday = int64(len(approved))

	completed, err := uow.BroadcastRepository().FindAll(ctx,
		specification.Filter("delivery_status", string(entity.BroadcastStatusCompleted)))
	if err != nil {
		return nil, err
	}

	return &dto.AnalyticsStatsResponse{
		TotalUsers:      totalUsers,
		ActiveUsers:     activeUsers,
		BannedUsers:     bannedUsers,
		TotalRevenue:    revenue,
		RevenueLabel:    view.FormatMoney(revenue, "USD"),
		PendingPayments: pendingPayments,
		ApprovedToday:   approvedToday,
		ActiveBans:      activeBans,
		BroadcastsSent:  int64(len(completed)),
	}, nil
}
