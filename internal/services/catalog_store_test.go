package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"beautystock/internal/domain"
	applog "beautystock/internal/log"
	"beautystock/internal/repos"
	"beautystock/internal/services"
)

const (
	catalogPath = "/data/catalog.csv"
	salesPath   = "/data/transactions.csv"
)

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.Local)

// newStore opens a store over an in-memory filesystem seeded with seed.
func newStore(t *testing.T, seed []domain.Product) (*services.CatalogStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store := services.NewCatalogStore(repos.NewCSVStore(fs, catalogPath, salesPath), nil)
	store.Now = func() time.Time { return fixedNow }
	require.NoError(t, store.Load(seed))
	return store, fs
}

func reopen(t *testing.T, fs afero.Fs) *services.CatalogStore {
	t.Helper()
	store := services.NewCatalogStore(repos.NewCSVStore(fs, catalogPath, salesPath), nil)
	store.Now = func() time.Time { return fixedNow }
	require.NoError(t, store.Load(nil))
	return store
}

// flakyStorage fails catalog writes or sales log appends on demand.
type flakyStorage struct {
	services.Storage
	failSave   bool
	failAppend bool
}

func (f *flakyStorage) AppendTransactions(txns []domain.Transaction) error {
	if f.failAppend {
		return errors.New("log locked")
	}
	return f.Storage.AppendTransactions(txns)
}

func (f *flakyStorage) SaveCatalog(p []domain.Product) error {
	if f.failSave {
		return errors.New("disk full")
	}
	return f.Storage.SaveCatalog(p)
}

func TestLoad_SeedsDefaultsOnFirstRun(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	fs := afero.NewMemMapFs()
	store := services.NewCatalogStore(repos.NewCSVStore(fs, catalogPath, salesPath), applog.FromZap(zap.New(core)))

	require.NoError(t, store.Load(repos.DefaultProducts()))
	assert.Equal(t, 12, store.Len())
	assert.Equal(t, 1, logs.FilterMessage("catalog.seed").Len())

	exists, err := afero.Exists(fs, catalogPath)
	require.NoError(t, err)
	assert.True(t, exists)

	// second start loads what was saved rather than seeding again
	require.NoError(t, store.DeleteProduct("SK001", true))
	again := reopen(t, fs)
	assert.Equal(t, 11, again.Len())
}

func TestGenerateCode_PerPrefixSequence(t *testing.T) {
	store, _ := newStore(t, nil)

	code, err := store.AddProduct(domain.CategorySkincare, "Toner", 5, 1000)
	require.NoError(t, err)
	assert.Equal(t, "SK001", code)

	code, err = store.AddProduct(domain.CategoryBodycare, "Soap", 5, 1000)
	require.NoError(t, err)
	assert.Equal(t, "BD001", code)

	code, err = store.AddProduct(domain.CategorySkincare, "Serum", 5, 1000)
	require.NoError(t, err)
	assert.Equal(t, "SK002", code)
}

func TestGenerateCode_UsesHighestSuffix(t *testing.T) {
	store, _ := newStore(t, []domain.Product{
		{Code: "SK002", Name: "a", Category: domain.CategorySkincare},
		{Code: "SK009", Name: "b", Category: domain.CategorySkincare},
		{Code: "SKXYZ", Name: "c", Category: domain.CategorySkincare},
	})

	code, err := store.GenerateCode(domain.CategorySkincare)
	require.NoError(t, err)
	assert.Equal(t, "SK010", code)

	_, err = store.GenerateCode("haircare")
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestAddProduct_Validation(t *testing.T) {
	store, _ := newStore(t, nil)

	_, err := store.AddProduct("haircare", "Shampoo", 1, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
	_, err = store.AddProduct(domain.CategorySkincare, "Serum", -1, 1)
	assert.ErrorIs(t, err, domain.ErrNegativeValue)
	assert.Equal(t, 0, store.Len())
}

func TestCatalog_RoundTripThroughStorage(t *testing.T) {
	store, fs := newStore(t, repos.DefaultProducts())
	_, err := store.AddProduct(domain.CategoryBodycare, "Body scrub, 200g", 3, 42000)
	require.NoError(t, err)

	again := reopen(t, fs)
	assert.Equal(t, store.List(""), again.List(""))
	assert.Equal(t, store.LowStock(100), again.LowStock(100))
}

func TestDeleteProduct_RequiresConfirmation(t *testing.T) {
	store, fs := newStore(t, repos.DefaultProducts())

	err := store.DeleteProduct("BD003", false)
	assert.ErrorIs(t, err, domain.ErrNotConfirmed)
	_, ok := store.Get("BD003")
	assert.True(t, ok)
	assert.Equal(t, 12, reopen(t, fs).Len())

	require.NoError(t, store.DeleteProduct("BD003", true))
	_, ok = store.Get("BD003")
	assert.False(t, ok)
	assert.Equal(t, 11, reopen(t, fs).Len())

	assert.ErrorIs(t, store.DeleteProduct("BD003", true), domain.ErrProductNotFound)
}

func TestEditProduct(t *testing.T) {
	store, fs := newStore(t, repos.DefaultProducts())

	name, price := "Viva milk cleanser 200ml", 12000
	p, err := store.EditProduct("SK001", services.ProductUpdate{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, domain.Product{Code: "SK001", Name: name, Category: domain.CategorySkincare, Stock: 50, Price: price}, p)

	// category may drift from the prefix
	body := domain.CategoryBodycare
	_, err = store.EditProduct("SK002", services.ProductUpdate{Category: &body})
	require.NoError(t, err)

	got, _ := reopen(t, fs).Get("SK002")
	assert.Equal(t, domain.CategoryBodycare, got.Category)

	bad := domain.Category("nails")
	_, err = store.EditProduct("SK001", services.ProductUpdate{Category: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	neg := -4
	_, err = store.EditProduct("SK001", services.ProductUpdate{Stock: &neg})
	assert.ErrorIs(t, err, domain.ErrNegativeValue)

	_, err = store.EditProduct("XX001", services.ProductUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestParseFields(t *testing.T) {
	fields, err := services.ParseFields("ALL")
	require.NoError(t, err)
	assert.Equal(t, services.AllFields, fields)

	fields, err = services.ParseFields("price, name,price")
	require.NoError(t, err)
	assert.Equal(t, []services.Field{services.FieldPrice, services.FieldName}, fields)

	_, err = services.ParseFields("colour")
	assert.ErrorIs(t, err, domain.ErrUnknownField)
	_, err = services.ParseFields("")
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestMutation_RolledBackWhenSaveFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	storage := &flakyStorage{Storage: repos.NewCSVStore(fs, catalogPath, salesPath)}
	store := services.NewCatalogStore(storage, nil)
	require.NoError(t, store.Load(repos.DefaultProducts()))
	storage.failSave = true

	_, err := store.AddProduct(domain.CategorySkincare, "Serum", 1, 1)
	require.Error(t, err)
	assert.Equal(t, 12, store.Len())

	require.Error(t, store.DeleteProduct("SK001", true))
	_, ok := store.Get("SK001")
	assert.True(t, ok)

	name := "renamed"
	_, err = store.EditProduct("SK001", services.ProductUpdate{Name: &name})
	require.Error(t, err)
	p, _ := store.Get("SK001")
	assert.Equal(t, "Viva milk cleanser 100ml", p.Name)

	_, err = store.Sell("SK001", 5)
	require.Error(t, err)
	p, _ = store.Get("SK001")
	assert.Equal(t, 50, p.Stock)

	_, err = store.Restock("SK001", 5)
	require.Error(t, err)
	p, _ = store.Get("SK001")
	assert.Equal(t, 50, p.Stock)
	assert.Empty(t, store.RestockLog())

	txns, err := storage.ReadTransactions()
	require.NoError(t, err)
	assert.Empty(t, txns)
}
