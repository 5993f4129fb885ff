//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/tair/dairy-ledger/internal/cash"
	cashhttp "github.com/tair/dairy-ledger/internal/cash/delivery/http"
	cashcommand "github.com/tair/dairy-ledger/internal/cash/usecase/command"
	cashquery "github.com/tair/dairy-ledger/internal/cash/usecase/query"
	"github.com/tair/dairy-ledger/internal/customer"
	"github.com/tair/dairy-ledger/internal/dashboard"
	"github.com/tair/dairy-ledger/internal/expense"
	"github.com/tair/dairy-ledger/internal/inventory"
	inventoryhttp "github.com/tair/dairy-ledger/internal/inventory/delivery/http"
	inventorycommand "github.com/tair/dairy-ledger/internal/inventory/usecase/command"
	inventoryquery "github.com/tair/dairy-ledger/internal/inventory/usecase/query"
	ledgerhttp "github.com/tair/dairy-ledger/internal/ledger/delivery/http"
	ledgercommand "github.com/tair/dairy-ledger/internal/ledger/usecase/command"
	ledgerquery "github.com/tair/dairy-ledger/internal/ledger/usecase/query"
	"github.com/tair/dairy-ledger/internal/product"
	"github.com/tair/dairy-ledger/internal/sale"
	"github.com/tair/dairy-ledger/internal/user"
	"github.com/tair/dairy-ledger/pkg/config"
)

// InfrastructureSet provides the shared plumbing every module depends on
var InfrastructureSet = wire.NewSet(
	ProvideDB,
	ProvideGateway,
	ProvideRunner,
	ProvideRedis,
	ProvideCache,
	ProvidePublisher,
	ProvideCalendar,
	ProvideGuard,
	ProvideMetrics,
	ProvideRateLimiter,
)

// InventorySet wires the inventory usecases and delivery
var InventorySet = wire.NewSet(
	inventory.RepositorySet,
	inventorycommand.NewAddStockHandler,
	inventorycommand.NewRecordWasteHandler,
	inventorycommand.NewAdjustStockHandler,
	inventoryquery.NewGetDailySummaryHandler,
	inventoryquery.NewListDailyRecordsHandler,
	inventoryquery.NewListMovementsHandler,
	inventoryhttp.NewInventoryHandler,
)

// LedgerSet wires customer payments and the ledger view
var LedgerSet = wire.NewSet(
	ledgercommand.NewApplyPaymentHandler,
	ledgercommand.NewRecomputeDueHandler,
	ledgerquery.NewGetCustomerLedgerHandler,
	ledgerhttp.NewLedgerHandler,
)

// CashSet wires the cash journal and position
var CashSet = wire.NewSet(
	cash.RepositorySet,
	cashcommand.NewCreateEntryHandler,
	cashcommand.NewUpdateEntryHandler,
	cashcommand.NewDeleteEntryHandler,
	cashcommand.NewSetStartingCashHandler,
	cashquery.NewGetPositionHandler,
	cashquery.NewListEntriesHandler,
	cashhttp.NewCashHandler,
)

// InitializeServer builds the service from configuration
func InitializeServer(cfg *config.Config) (*Server, func(), error) {
	wire.Build(
		InfrastructureSet,
		product.ProviderSet,
		customer.ProviderSet,
		InventorySet,
		sale.ProviderSet,
		LedgerSet,
		CashSet,
		expense.ProviderSet,
		user.ProviderSet,
		dashboard.ProviderSet,
		wire.Struct(new(Handlers), "*"),
		NewServer,
	)
	return nil, nil, nil
}
