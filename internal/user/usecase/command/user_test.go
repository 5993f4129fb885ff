package command_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/dairy-ledger/internal/user/domain"
	"github.com/tair/dairy-ledger/internal/user/repository"
	"github.com/tair/dairy-ledger/internal/user/usecase/command"
	"github.com/tair/dairy-ledger/internal/user/usecase/query"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/auth"
	"github.com/tair/dairy-ledger/pkg/httpx"
	"github.com/tair/dairy-ledger/pkg/store"
	"github.com/tair/dairy-ledger/pkg/store/storetest"
)

type fixture struct {
	users domain.UserRepository
	types domain.UserTypeRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gw := storetest.NewGateway(t, &domain.User{}, &domain.UserType{})
	f := &fixture{
		users: repository.NewTracedUserRepository(repository.NewUserRepository(gw)),
		types: repository.NewUserTypeRepository(gw),
	}

	_, err := command.NewCreateUserTypeHandler(f.types).Handle(context.Background(), command.UserTypeCommand{
		Name:     "Cashier",
		Pages:    []string{httpx.PageSells, httpx.PageCustomers, httpx.PageSells},
		IsActive: true,
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) createUser(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := command.NewCreateUserHandler(f.users, f.types).Handle(context.Background(), command.CreateUserCommand{
		Name:     "Sita",
		Username: username,
		Password: "milk123",
		UserType: "cashier",
		UserPay:  decimal.NewFromInt(9000),
	})
	require.NoError(t, err)
	return user
}

func TestCreateUserHashesPassword(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "sita")

	assert.NotEqual(t, "milk123", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "milk123"))
	assert.True(t, user.IsActive)

	create := command.NewCreateUserHandler(f.users, f.types)
	_, err := create.Handle(context.Background(), command.CreateUserCommand{
		Name: "Dup", Username: "sita", Password: "milk123", UserType: "cashier",
	})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	_, err = create.Handle(context.Background(), command.CreateUserCommand{
		Name: "Ravi", Username: "ravi", Password: "milk123", UserType: "manager",
	})
	assert.True(t, apperr.IsValidation(err))

	_, err = create.Handle(context.Background(), command.CreateUserCommand{
		Name: "Ravi", Username: "ravi", Password: "123", UserType: "cashier",
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestLoginIssuesTokenWithPages(t *testing.T) {
	ctx := context.Background()
	auth.SetSecret("test-secret")
	f := newFixture(t)
	user := f.createUser(t, "sita")
	login := command.NewLoginUserHandler(f.users, f.types)

	resp, err := login.Handle(ctx, command.LoginUserCommand{Username: "sita", Password: "milk123"})
	require.NoError(t, err)
	assert.Equal(t, domain.PageList{httpx.PageSells, httpx.PageCustomers}, resp.Pages)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.True(t, claims.CanAccess(httpx.PageSells))
	assert.False(t, claims.CanAccess(httpx.PageUsers))

	_, err = login.Handle(ctx, command.LoginUserCommand{Username: "sita", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = login.Handle(ctx, command.LoginUserCommand{Username: "nobody", Password: "milk123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = command.NewToggleActiveHandler(f.users).Handle(ctx, command.ToggleActiveCommand{UserID: user.ID, IsActive: false})
	require.NoError(t, err)
	_, err = login.Handle(ctx, command.LoginUserCommand{Username: "sita", Password: "milk123"})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}

func TestChangePasswordChecksCurrent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.createUser(t, "sita")
	change := command.NewChangePasswordHandler(f.users)

	err := change.Handle(ctx, command.ChangePasswordCommand{UserID: user.ID, CurrentPassword: "nope", NewPassword: "curd456"})
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	err = change.Handle(ctx, command.ChangePasswordCommand{UserID: user.ID, CurrentPassword: "milk123", NewPassword: "12"})
	assert.True(t, apperr.IsValidation(err))

	require.NoError(t, change.Handle(ctx, command.ChangePasswordCommand{UserID: user.ID, CurrentPassword: "milk123", NewPassword: "curd456"}))
	stored, err := f.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.Password, "curd456"))
}

func TestUserTypeLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := command.NewCreateUserTypeHandler(f.types).Handle(ctx, command.UserTypeCommand{Name: "helper", Pages: []string{"reports"}})
	assert.True(t, apperr.IsValidation(err))

	cashier, err := f.types.FindByName(ctx, "cashier")
	require.NoError(t, err)

	updated, err := command.NewUpdateUserTypeHandler(f.types).Handle(ctx, command.UserTypeCommand{
		ID:       cashier.ID,
		Pages:    []string{httpx.PageDashboard},
		IsActive: false,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	reloaded, err := f.types.FindByID(ctx, cashier.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PageList{httpx.PageDashboard}, reloaded.Pages)
	assert.False(t, reloaded.IsActive)

	user := f.createUser(t, "sita")
	remove := command.NewDeleteUserTypeHandler(f.types, f.users)
	assert.ErrorIs(t, remove.Handle(ctx, cashier.ID), domain.ErrUserTypeInUse)

	require.NoError(t, command.NewDeleteUserHandler(f.users).Handle(ctx, user.ID))
	require.NoError(t, remove.Handle(ctx, cashier.ID))

	types, err := query.NewListUserTypesHandler(f.types).Handle(ctx)
	require.NoError(t, err)
	assert.Empty(t, types)
}

func TestListAndStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createUser(t, "sita")
	ravi := f.createUser(t, "ravi")

	_, err := command.NewToggleActiveHandler(f.users).Handle(ctx, command.ToggleActiveCommand{UserID: ravi.ID})
	require.NoError(t, err)

	users, err := query.NewListUsersHandler(f.users).Handle(ctx, domain.ListFilter{Search: "RAV"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ravi", users[0].Username)

	stats, err := query.NewGetStatsHandler(f.users, f.types).Handle(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.ActiveUsers)
	assert.EqualValues(t, 2, stats.ByType["cashier"])
}
