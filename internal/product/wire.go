package product

import (
	"github.com/google/wire"

	"github.com/tair/dairy-ledger/internal/product/delivery/http"
	"github.com/tair/dairy-ledger/internal/product/domain"
	"github.com/tair/dairy-ledger/internal/product/repository"
	"github.com/tair/dairy-ledger/internal/product/usecase/command"
	"github.com/tair/dairy-ledger/internal/product/usecase/query"
	"github.com/tair/dairy-ledger/pkg/config"
	"github.com/tair/dairy-ledger/pkg/store"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(gw store.Gateway) domain.ProductRepository {
	return repository.NewProductRepository(gw)
}

// ProvideLowStockThreshold provides the low stock threshold from configuration
func ProvideLowStockThreshold(cfg *config.Config) domain.LowStockThreshold {
	return domain.LowStockThreshold(cfg.LowStockThreshold)
}

// CommandHandlerSet provides all command handlers
var CommandHandlerSet = wire.NewSet(
	command.NewCreateProductHandler,
	command.NewUpdateProductHandler,
	command.NewDeleteProductHandler,
)

// QueryHandlerSet provides all query handlers
var QueryHandlerSet = wire.NewSet(
	query.NewGetProductHandler,
	query.NewListProductsHandler,
	query.NewGetStatsHandler,
)

// ProviderSet wires the product module
var ProviderSet = wire.NewSet(
	ProvideProductRepository,
	ProvideLowStockThreshold,
	CommandHandlerSet,
	QueryHandlerSet,
	http.NewProductHandler,
)
