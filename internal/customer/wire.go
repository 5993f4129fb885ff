package customer

import (
	"github.com/google/wire"

	"github.com/tair/dairy-ledger/internal/customer/delivery/http"
	"github.com/tair/dairy-ledger/internal/customer/domain"
	"github.com/tair/dairy-ledger/internal/customer/repository"
	"github.com/tair/dairy-ledger/internal/customer/usecase/command"
	"github.com/tair/dairy-ledger/internal/customer/usecase/query"
	"github.com/tair/dairy-ledger/pkg/store"
)

// ProvideCustomerRepository provides the customer repository
func ProvideCustomerRepository(gw store.Gateway) domain.CustomerRepository {
	return repository.NewCustomerRepository(gw)
}

// ProviderSet wires the customer module
var ProviderSet = wire.NewSet(
	ProvideCustomerRepository,
	command.NewCreateCustomerHandler,
	command.NewUpdateCustomerHandler,
	command.NewDeleteCustomerHandler,
	query.NewGetCustomerHandler,
	query.NewListCustomersHandler,
	http.NewCustomerHandler,
)
