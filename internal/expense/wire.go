package expense

import (
	"github.com/google/wire"

	"github.com/tair/dairy-ledger/internal/expense/delivery/http"
	"github.com/tair/dairy-ledger/internal/expense/domain"
	"github.com/tair/dairy-ledger/internal/expense/repository"
	"github.com/tair/dairy-ledger/internal/expense/usecase/command"
	"github.com/tair/dairy-ledger/internal/expense/usecase/query"
	"github.com/tair/dairy-ledger/pkg/store"
)

// ProvideExpenseRepository provides the expense repository
func ProvideExpenseRepository(gw store.Gateway) domain.ExpenseRepository {
	return repository.NewExpenseRepository(gw)
}

// ProviderSet wires the expense module
var ProviderSet = wire.NewSet(
	ProvideExpenseRepository,
	command.NewCreateExpenseHandler,
	command.NewUpdateExpenseHandler,
	command.NewDeleteExpenseHandler,
	query.NewGetExpenseHandler,
	query.NewListExpensesHandler,
	http.NewExpenseHandler,
)
