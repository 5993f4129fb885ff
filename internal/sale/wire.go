package sale

import (
	"github.com/google/wire"

	"github.com/tair/dairy-ledger/internal/sale/delivery/http"
	"github.com/tair/dairy-ledger/internal/sale/domain"
	"github.com/tair/dairy-ledger/internal/sale/repository"
	"github.com/tair/dairy-ledger/internal/sale/usecase/command"
	"github.com/tair/dairy-ledger/internal/sale/usecase/query"
	"github.com/tair/dairy-ledger/pkg/store"
)

// ProvideSaleRepository provides the sale repository
func ProvideSaleRepository(gw store.Gateway) domain.SaleRepository {
	return repository.NewSaleRepository(gw)
}

// ProviderSet wires the sale module
var ProviderSet = wire.NewSet(
	ProvideSaleRepository,
	command.NewCreateSaleHandler,
	query.NewGetSaleHandler,
	query.NewListSalesHandler,
	http.NewSaleHandler,
)
