package user

import (
	"github.com/google/wire"

	"github.com/tair/dairy-ledger/internal/user/delivery/http"
	"github.com/tair/dairy-ledger/internal/user/domain"
	"github.com/tair/dairy-ledger/internal/user/repository"
	"github.com/tair/dairy-ledger/internal/user/usecase/command"
	"github.com/tair/dairy-ledger/internal/user/usecase/query"
	"github.com/tair/dairy-ledger/pkg/store"
)

// ProvideUserRepository provides the traced user repository
func ProvideUserRepository(gw store.Gateway) domain.UserRepository {
	return repository.NewTracedUserRepository(repository.NewUserRepository(gw))
}

// ProvideUserTypeRepository provides the user type repository
func ProvideUserTypeRepository(gw store.Gateway) domain.UserTypeRepository {
	return repository.NewUserTypeRepository(gw)
}

// ProviderSet wires the user module
var ProviderSet = wire.NewSet(
	ProvideUserRepository,
	ProvideUserTypeRepository,
	command.NewCreateUserHandler,
	command.NewLoginUserHandler,
	command.NewUpdateUserHandler,
	command.NewDeleteUserHandler,
	command.NewChangePasswordHandler,
	command.NewToggleActiveHandler,
	command.NewCreateUserTypeHandler,
	command.NewUpdateUserTypeHandler,
	command.NewDeleteUserTypeHandler,
	query.NewGetUserHandler,
	query.NewListUsersHandler,
	query.NewListUserTypesHandler,
	query.NewGetStatsHandler,
	http.NewUserHandler,
)
