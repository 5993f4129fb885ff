package repository

import (
	"context"
	"strings"

	"github.com/tair/dairy-ledger/internal/user/domain"
	"github.com/tair/dairy-ledger/pkg/store"
)

type UserRepository struct {
	gw store.Gateway
}

func NewUserRepository(gw store.Gateway) *UserRepository {
	return &UserRepository{gw: gw}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.gw.Create(ctx, user)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.gw.Get(ctx, id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.gw.First(ctx, &user, store.Q().Where("username", store.Eq, username)); err != nil {
		return nil, err
	}
	return &user, nil
}

// List filters by type in the store and by search text in memory; the
// staff table stays small.
func (r *UserRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.User, error) {
	q := store.Q()
	if filter.UserType != "" {
		q = q.Where("user_type", store.Eq, filter.UserType)
	}
	q = q.OrderBy("created_at", true).OrderBy("id", true)

	var users []domain.User
	if err := r.gw.Query(ctx, &users, q); err != nil {
		return nil, err
	}

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		matched := users[:0]
		for _, u := range users {
			if strings.Contains(strings.ToLower(u.Name), search) ||
				strings.Contains(strings.ToLower(u.Username), search) ||
				strings.Contains(strings.ToLower(u.Email), search) ||
				strings.Contains(strings.ToLower(u.UserType), search) {
				matched = append(matched, u)
			}
		}
		users = matched
	}
	return page(users, filter.Limit, filter.Offset), nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.gw.Update(ctx, &domain.User{}, user.ID, map[string]interface{}{
		"name":      user.Name,
		"mobile":    user.Mobile,
		"email":     user.Email,
		"address":   user.Address,
		"user_type": user.UserType,
		"user_pay":  user.UserPay,
	})
}

func (r *UserRepository) SetPassword(ctx context.Context, id uint, hash string) error {
	return r.gw.Update(ctx, &domain.User{}, id, map[string]interface{}{"password": hash})
}

func (r *UserRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.gw.Update(ctx, &domain.User{}, id, map[string]interface{}{"is_active": active})
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.gw.Delete(ctx, &domain.User{}, id)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.gw.Count(ctx, &domain.User{}, store.Q())
}

func (r *UserRepository) CountActive(ctx context.Context) (int64, error) {
	return r.gw.Count(ctx, &domain.User{}, store.Q().Where("is_active", store.Eq, true))
}

func (r *UserRepository) CountByType(ctx context.Context, userType string) (int64, error) {
	return r.gw.Count(ctx, &domain.User{}, store.Q().Where("user_type", store.Eq, userType))
}

type UserTypeRepository struct {
	gw store.Gateway
}

func NewUserTypeRepository(gw store.Gateway) *UserTypeRepository {
	return &UserTypeRepository{gw: gw}
}

func (r *UserTypeRepository) Create(ctx context.Context, userType *domain.UserType) error {
	return r.gw.Create(ctx, userType)
}

func (r *UserTypeRepository) FindByID(ctx context.Context, id uint) (*domain.UserType, error) {
	var userType domain.UserType
	if err := r.gw.Get(ctx, id, &userType); err != nil {
		return nil, err
	}
	return &userType, nil
}

func (r *UserTypeRepository) FindByName(ctx context.Context, name string) (*domain.UserType, error) {
	var userType domain.UserType
	if err := r.gw.First(ctx, &userType, store.Q().Where("name", store.Eq, name)); err != nil {
		return nil, err
	}
	return &userType, nil
}

func (r *UserTypeRepository) List(ctx context.Context) ([]domain.UserType, error) {
	var types []domain.UserType
	err := r.gw.Query(ctx, &types, store.Q().OrderBy("name", false))
	return types, err
}

// Update writes the active flag and pages. The name is the key users refer
// to and does not change.
func (r *UserTypeRepository) Update(ctx context.Context, userType *domain.UserType) error {
	return r.gw.Update(ctx, &domain.UserType{}, userType.ID, map[string]interface{}{
		"pages":     userType.Pages,
		"is_active": userType.IsActive,
	})
}

func (r *UserTypeRepository) Delete(ctx context.Context, id uint) error {
	return r.gw.Delete(ctx, &domain.UserType{}, id)
}

func page(users []domain.User, limit, offset int) []domain.User {
	if offset >= len(users) {
		return []domain.User{}
	}
	users = users[offset:]
	if limit > 0 && limit < len(users) {
		users = users[:limit]
	}
	return users
}
