package command_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/dairy-ledger/internal/inventory"
	inventorydomain "github.com/tair/dairy-ledger/internal/inventory/domain"
	inventoryrepo "github.com/tair/dairy-ledger/internal/inventory/repository"
	"github.com/tair/dairy-ledger/internal/product/domain"
	"github.com/tair/dairy-ledger/internal/product/repository"
	"github.com/tair/dairy-ledger/internal/product/usecase/command"
	"github.com/tair/dairy-ledger/internal/product/usecase/query"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
	"github.com/tair/dairy-ledger/pkg/store/storetest"
)

const today = period.Date("2026-10-18")

type fixture struct {
	gw     store.Gateway
	runner *store.Runner
	repo   domain.ProductRepository
	create *command.CreateProductHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gw := storetest.NewGateway(t, &domain.Product{}, &inventorydomain.DailyRecord{}, &inventorydomain.StockMovement{})
	runner := store.NewRunner(gw, 3)
	return &fixture{
		gw:     gw,
		runner: runner,
		repo:   repository.NewProductRepository(gw),
		create: command.NewCreateProductHandler(runner, inventory.Policy{}, nil),
	}
}

func (f *fixture) mustCreate(t *testing.T, name string, qty string) *domain.Product {
	t.Helper()
	p, err := f.create.Handle(context.Background(), command.CreateProductCommand{
		Name:            name,
		Unit:            domain.UnitLiter,
		PricePerUnit:    decimal.NewFromInt(30),
		InitialQuantity: decimal.RequireFromString(qty),
		BusinessDate:    today,
	})
	require.NoError(t, err)
	return p
}

func TestCreateProductBooksOpeningStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p := f.mustCreate(t, "  Buffalo Milk ", "12")
	assert.Equal(t, "Buffalo Milk", p.Name)
	assert.True(t, p.Quantity.Equal(decimal.NewFromInt(12)))

	stored, err := f.repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, stored.Quantity.Equal(decimal.NewFromInt(12)))
	assert.True(t, stored.IsActive)

	record, err := inventoryrepo.NewInventoryRepository(f.gw).FindRecord(ctx, p.ID, today)
	require.NoError(t, err)
	assert.True(t, record.NewAdded.Equal(decimal.NewFromInt(12)))

	n, err := inventoryrepo.NewInventoryRepository(f.gw).CountMovements(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.create.Handle(ctx, command.CreateProductCommand{Name: "", Unit: domain.UnitKg})
	assert.True(t, apperr.IsValidation(err))

	_, err = f.create.Handle(ctx, command.CreateProductCommand{Name: "Paneer", Unit: "Box"})
	assert.True(t, apperr.IsValidation(err))

	_, err = f.create.Handle(ctx, command.CreateProductCommand{Name: "Paneer", Unit: domain.UnitKg, PricePerUnit: decimal.NewFromInt(-1)})
	assert.True(t, apperr.IsValidation(err))

	n, err := f.repo.Count(ctx, false)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteProductKeepsHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	del := command.NewDeleteProductHandler(f.runner, nil)

	withStock := f.mustCreate(t, "Curd", "5")
	empty := f.mustCreate(t, "Ghee", "0")

	res, err := del.Handle(ctx, command.DeleteProductCommand{ID: withStock.ID})
	require.NoError(t, err)
	assert.True(t, res.Deactivated)
	kept, err := f.repo.FindByID(ctx, withStock.ID)
	require.NoError(t, err)
	assert.False(t, kept.IsActive)

	res, err = del.Handle(ctx, command.DeleteProductCommand{ID: empty.ID})
	require.NoError(t, err)
	assert.False(t, res.Deactivated)
	_, err = f.repo.FindByID(ctx, empty.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = del.Handle(ctx, command.DeleteProductCommand{ID: 999})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.mustCreate(t, "Lassi", "0")

	inactive := false
	updated, err := command.NewUpdateProductHandler(f.repo).Handle(ctx, command.UpdateProductCommand{
		ID:           p.ID,
		PricePerUnit: decimal.RequireFromString("22.50"),
		Unit:         domain.UnitPacket,
		IsActive:     &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Lassi", updated.Name)

	stored, err := f.repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitPacket, stored.Unit)
	assert.True(t, stored.PricePerUnit.Equal(decimal.RequireFromString("22.5")))
	assert.False(t, stored.IsActive)
}

func TestListAndStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.mustCreate(t, "Cow Milk", "40")
	f.mustCreate(t, "Toned Milk", "4")
	f.mustCreate(t, "Butter", "0")

	list := query.NewListProductsHandler(f.repo, 10)
	views, err := list.Handle(ctx, query.ListProductsQuery{Search: "milk"})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Cow Milk", views[0].Name)
	assert.Equal(t, domain.StockIn, views[0].StockStatus)
	assert.Equal(t, domain.StockLow, views[1].StockStatus)

	paged, err := list.Handle(ctx, query.ListProductsQuery{Search: "milk", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "Toned Milk", paged[0].Name)

	stats, err := query.NewGetStatsHandler(f.repo, 10).Handle(ctx, query.GetStatsQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalProducts)
	assert.EqualValues(t, 1, stats.LowStock)
	assert.EqualValues(t, 1, stats.OutOfStock)
	assert.True(t, stats.StockValue.Equal(decimal.NewFromInt(44*30)))
}
