package repository

import (
	"context"

	"github.com/tair/dairy-ledger/internal/ledger/domain"
	"github.com/tair/dairy-ledger/pkg/store"
)

type PaymentRepository struct {
	gw store.Gateway
}

func NewPaymentRepository(gw store.Gateway) *PaymentRepository {
	return &PaymentRepository{gw: gw}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return r.gw.Create(ctx, payment)
}

func (r *PaymentRepository) CreateAllocation(ctx context.Context, allocation *domain.PaymentAllocation) error {
	return r.gw.Create(ctx, allocation)
}

func (r *PaymentRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	var payment domain.Payment
	if err := r.gw.First(ctx, &payment, store.Q().Where("idempotency_key", store.Eq, key)); err != nil {
		return nil, err
	}
	if err := r.loadAllocations(ctx, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uint) (*domain.Payment, error) {
	var payment domain.Payment
	if err := r.gw.Get(ctx, id, &payment); err != nil {
		return nil, err
	}
	if err := r.loadAllocations(ctx, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) ListByCustomer(ctx context.Context, customerID uint) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.gw.Query(ctx, &payments, store.Q().
		Where("customer_id", store.Eq, customerID).
		OrderBy("paid_at", true).
		OrderBy("id", true))
	if err != nil {
		return nil, err
	}
	for i := range payments {
		if err := r.loadAllocations(ctx, &payments[i]); err != nil {
			return nil, err
		}
	}
	return payments, nil
}

func (r *PaymentRepository) CountByCustomer(ctx context.Context, customerID uint) (int64, error) {
	return r.gw.Count(ctx, &domain.Payment{}, store.Q().Where("customer_id", store.Eq, customerID))
}

func (r *PaymentRepository) loadAllocations(ctx context.Context, payment *domain.Payment) error {
	return r.gw.Query(ctx, &payment.Allocations, store.Q().
		Where("payment_id", store.Eq, payment.ID).
		OrderBy("id", false))
}
