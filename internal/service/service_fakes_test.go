package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"trademini-be/internal/dto"
	"trademini-be/internal/entity"
	"trademini-be/internal/pkg/logger"
	"trademini-be/internal/repository/contract"
	"trademini-be/internal/repository/specification"
	"trademini-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory doubles for the repository layer. They interpret the
// handful of specifications the services under test actually pass;
// anything else is ignored.

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{}) {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                 { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

type fakeAuditService struct {
	mu      sync.Mutex
	records []string
}

func (f *fakeAuditService) Record(ctx context.Context, actorId uuid.UUID, actionType, description string, affectedTable *string, oldValues, newValues map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, actionType)
	return nil
}

func (f *fakeAuditService) List(ctx context.Context, req *dto.AdminLogListRequest) ([]*dto.AdminLogResponse, int64, error) {
	return nil, 0, nil
}

func (f *fakeAuditService) GetOne(ctx context.Context, id uuid.UUID) (*dto.AdminLogResponse, error) {
	return nil, nil
}

func (f *fakeAuditService) ServiceLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

type fakeBroadcastRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.BroadcastMessage
}

func newFakeBroadcastRepo() *fakeBroadcastRepo {
	return &fakeBroadcastRepo{items: map[uuid.UUID]*entity.BroadcastMessage{}}
}

func (r *fakeBroadcastRepo) put(b *entity.BroadcastMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.items[b.Id] = &cp
}

func (r *fakeBroadcastRepo) get(id uuid.UUID) *entity.BroadcastMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.items[id]; ok {
		cp := *b
		return &cp
	}
	return nil
}

func (r *fakeBroadcastRepo) Create(ctx context.Context, msg *entity.BroadcastMessage) error {
	r.put(msg)
	return nil
}

func (r *fakeBroadcastRepo) Update(ctx context.Context, msg *entity.BroadcastMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[msg.Id]
	cp := *msg
	if ok {
		// Counter bumps land through UpdateCounters; Update must not
		// roll them back.
		cp.SuccessCount = existing.SuccessCount
		cp.FailureCount = existing.FailureCount
	}
	r.items[msg.Id] = &cp
	return nil
}

func (r *fakeBroadcastRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BroadcastMessage, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			return r.get(byID.ID), nil
		}
	}
	return nil, nil
}

func (r *fakeBroadcastRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BroadcastMessage, error) {
	var status string
	for _, spec := range specs {
		if f, ok := spec.(specification.FilterBy); ok && f.Field == "delivery_status" {
			status, _ = f.Value.(string)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.BroadcastMessage
	for _, b := range r.items {
		if status == "" || string(b.DeliveryStatus) == status {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBroadcastRepo) UpdateCounters(ctx context.Context, id uuid.UUID, success, failure int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.items[id]; ok {
		b.SuccessCount += success
		b.FailureCount += failure
	}
	return nil
}

type fakeUserRepo struct {
	audience     map[string][]int64
	countByState map[string]int64
	total        int64
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) FindByTelegramId(ctx context.Context, telegramId int64) (*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	for _, spec := range specs {
		if byStatus, ok := spec.(specification.ByStatus); ok {
			return r.countByState[byStatus.Status], nil
		}
	}
	return r.total, nil
}

func (r *fakeUserRepo) TelegramIdsForAudience(ctx context.Context, audience string) ([]int64, error) {
	return r.audience[audience], nil
}

type fakeBanRepo struct {
	bans []*entity.Ban
}

func (r *fakeBanRepo) Create(ctx context.Context, ban *entity.Ban) error { return nil }
func (r *fakeBanRepo) Delete(ctx context.Context, id uuid.UUID) error    { return nil }
func (r *fakeBanRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Ban, error) {
	return nil, nil
}
func (r *fakeBanRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Ban, error) {
	return r.bans, nil
}

func (r *fakeBanRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var unexpired *specification.Unexpired
	for _, spec := range specs {
		if u, ok := spec.(specification.Unexpired); ok {
			unexpired = &u
		}
	}
	var n int64
	for _, ban := range r.bans {
		if unexpired != nil && ban.ExpiresAt != nil && !ban.ExpiresAt.After(unexpired.Now) {
			continue
		}
		n++
	}
	return n, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*entity.Payment
	details  map[uuid.UUID]*entity.PaymentDetail
	revenue  float64
	pending  int64
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		payments: map[uuid.UUID]*entity.Payment{},
		details:  map[uuid.UUID]*entity.PaymentDetail{},
	}
}

func (r *fakePaymentRepo) seed(p *entity.Payment, d *entity.PaymentDetail) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.payments[p.Id] = &cp
	if d != nil {
		dcp := *d
		r.details[p.Id] = &dcp
	}
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *payment
	r.payments[payment.Id] = &cp
	return nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *payment
	r.payments[payment.Id] = &cp
	if d, ok := r.details[payment.Id]; ok {
		d.Status = payment.Status
	}
	return nil
}

func (r *fakePaymentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			r.mu.Lock()
			defer r.mu.Unlock()
			if p, ok := r.payments[byID.ID]; ok {
				cp := *p
				return &cp, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error) {
	var status string
	var after time.Time
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByStatus:
			status = s.Status
		case specification.CreatedAfter:
			after = s.Time
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.payments {
		if status != "" && string(p.Status) != status {
			continue
		}
		if !after.IsZero() && p.CreatedAt.Before(after) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePaymentRepo) GetDetails(ctx context.Context, status string, limit, offset int) ([]*entity.PaymentDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.PaymentDetail
	for _, d := range r.details {
		if status == "" || string(d.Status) == status {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePaymentRepo) GetDetail(ctx context.Context, id uuid.UUID) (*entity.PaymentDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.details[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (r *fakePaymentRepo) GetTotalRevenue(ctx context.Context) (float64, error) {
	return r.revenue, nil
}

func (r *fakePaymentRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.pending, nil
}

// Unused corners of the unit of work return zero values.

type stubAdminLogRepo struct{}

func (stubAdminLogRepo) Create(ctx context.Context, log *entity.AdminLog) error { return nil }
func (stubAdminLogRepo) FindOne(ctx context.Context, id uuid.UUID) (*entity.AdminLog, error) {
	return nil, nil
}
func (stubAdminLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AdminLog, error) {
	return nil, nil
}
func (stubAdminLogRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type stubPlanRepo struct{}

func (stubPlanRepo) Create(ctx context.Context, plan *entity.Plan) error { return nil }
func (stubPlanRepo) Update(ctx context.Context, plan *entity.Plan) error { return nil }
func (stubPlanRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }
func (stubPlanRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Plan, error) {
	return nil, nil
}
func (stubPlanRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Plan, error) {
	return nil, nil
}

type stubPromoRepo struct{}

func (stubPromoRepo) Create(ctx context.Context, promo *entity.PromoCode) error { return nil }
func (stubPromoRepo) Update(ctx context.Context, promo *entity.PromoCode) error { return nil }
func (stubPromoRepo) FindByCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	return nil, nil
}
func (stubPromoRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PromoCode, error) {
	return nil, nil
}
func (stubPromoRepo) IncrementUseCount(ctx context.Context, id uuid.UUID) error { return nil }

type fakeUnitOfWork struct {
	users      contract.UserRepository
	bans       contract.BanRepository
	broadcasts contract.BroadcastRepository
	payments   contract.PaymentRepository
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	if u.users == nil {
		return &fakeUserRepo{}
	}
	return u.users
}

func (u *fakeUnitOfWork) BanRepository() contract.BanRepository {
	if u.bans == nil {
		return &fakeBanRepo{}
	}
	return u.bans
}

func (u *fakeUnitOfWork) AdminLogRepository() contract.AdminLogRepository { return stubAdminLogRepo{} }

func (u *fakeUnitOfWork) BroadcastRepository() contract.BroadcastRepository {
	if u.broadcasts == nil {
		return newFakeBroadcastRepo()
	}
	return u.broadcasts
}

func (u *fakeUnitOfWork) PlanRepository() contract.PlanRepository { return stubPlanRepo{} }

func (u *fakeUnitOfWork) PaymentRepository() contract.PaymentRepository {
	if u.payments == nil {
		return newFakePaymentRepo()
	}
	return u.payments
}

func (u *fakeUnitOfWork) PromoRepository() contract.PromoRepository { return stubPromoRepo{} }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }
