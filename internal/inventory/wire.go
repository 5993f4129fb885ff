package inventory

import (
	"github.com/google/wire"

	"github.com/tair/dairy-ledger/internal/inventory/domain"
	"github.com/tair/dairy-ledger/internal/inventory/repository"
	"github.com/tair/dairy-ledger/pkg/config"
	"github.com/tair/dairy-ledger/pkg/store"
)

// ProvidePolicy provides the stock policy from configuration
func ProvidePolicy(cfg *config.Config) Policy {
	return Policy{Strict: cfg.StrictStock}
}

// ProvideInventoryRepository provides the inventory repository
func ProvideInventoryRepository(gw store.Gateway) domain.InventoryRepository {
	return repository.NewInventoryRepository(gw)
}

// RepositorySet provides the stock policy and read repository. Handlers
// live in subpackages that import this one, so their constructors are
// listed by the application injector.
var RepositorySet = wire.NewSet(
	ProvidePolicy,
	ProvideInventoryRepository,
)
