package dashboard

import (
	"github.com/google/wire"

	"github.com/tair/dairy-ledger/internal/dashboard/delivery/http"
	"github.com/tair/dairy-ledger/internal/dashboard/usecase/query"
)

// ProviderSet wires the dashboard module
var ProviderSet = wire.NewSet(
	query.NewGetStatsHandler,
	http.NewDashboardHandler,
)
