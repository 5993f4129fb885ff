package cash

import (
	"github.com/google/wire"

	"github.com/tair/dairy-ledger/internal/cash/domain"
	"github.com/tair/dairy-ledger/internal/cash/repository"
	"github.com/tair/dairy-ledger/pkg/store"
)

// ProvideCashRepository provides the cash repository
func ProvideCashRepository(gw store.Gateway) domain.CashRepository {
	return repository.NewCashRepository(gw)
}

var RepositorySet = wire.NewSet(ProvideCashRepository)
