package cli_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beautystock/internal/cli"
	"beautystock/internal/repos"
	"beautystock/internal/services"
)

func runScript(t *testing.T, lines ...string) (*services.CatalogStore, string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store := services.NewCatalogStore(repos.NewCSVStore(fs, "/data/catalog.csv", "/data/transactions.csv"), nil)
	store.Now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.Local) }
	require.NoError(t, store.Load(repos.DefaultProducts()))

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	cli.NewShell(store, in, &out, nil, 10).Run()
	return store, out.String()
}

func TestShell_AddSellReportSearch(t *testing.T) {
	store, out := runScript(t,
		"1", "1",
		"2", "skincare", "Rose toner", "5", "15000",
		"5", "sk007", "2", "y", "BD001", "abc", "BD001", "1", "n",
		"7", "all", "daily",
		"8", "rose",
		"0",
	)

	assert.Contains(t, out, "No products are running low.")
	assert.Contains(t, out, "-- BODYCARE --\n[BD001] Nalpamara herbal soap 75g (bodycare) - Rp25000 | Stock: 50\n")
	assert.Contains(t, out, "-- SKINCARE --")
	assert.Contains(t, out, "Product added with code SK007.")
	assert.Contains(t, out, "Please enter a whole number.")
	assert.Contains(t, out, "Rose toner x2 = Rp30000\n")
	assert.Contains(t, out, "Sale saved.")
	assert.Contains(t, out, "Rose toner x2 = Rp30000 | Time: 2026-10-15 09:00:00\n")
	assert.Contains(t, out, "Total Sales: Rp55000\n")
	assert.Contains(t, out, "[SK007] Rose toner (skincare) - Rp15000 | Stock: 3\n")
	assert.Contains(t, out, "Goodbye!")

	p, _ := store.Get("BD001")
	assert.Equal(t, 49, p.Stock)
}

func TestShell_ExitsWhenInputRunsOut(t *testing.T) {
	_, out := runScript(t)
	assert.Contains(t, out, "Input closed. Exiting.")
}

func TestShell_SaleCommittedWhenInputEndsMidSession(t *testing.T) {
	store, out := runScript(t, "5", "SK001", "3")
	assert.Contains(t, out, "Sale saved.")
	p, _ := store.Get("SK001")
	assert.Equal(t, 47, p.Stock)
}

func TestShell_SaleRejectsOverselling(t *testing.T) {
	store, out := runScript(t, "5", "SK001", "51", "done", "0")
	assert.Contains(t, out, "Insufficient stock.")
	assert.Contains(t, out, "No products were sold.")
	p, _ := store.Get("SK001")
	assert.Equal(t, 50, p.Stock)
}

func TestShell_DeleteNeedsConfirmation(t *testing.T) {
	store, out := runScript(t, "4", "sk001", "n", "4", "XX001", "0")
	assert.Contains(t, out, "Deletion cancelled.")
	assert.Contains(t, out, "Product not found.")
	_, ok := store.Get("SK001")
	assert.True(t, ok)
}

func TestShell_RestockRejectsNonPositive(t *testing.T) {
	store, out := runScript(t, "6", "SK001", "-5", "SK001", "5", "n", "0")
	assert.Contains(t, out, "Quantity must be greater than 0.")
	assert.Contains(t, out, "Restock finished.")
	p, _ := store.Get("SK001")
	assert.Equal(t, 55, p.Stock)
}

func TestShell_EditAllKeepsStockOnEmptyAnswer(t *testing.T) {
	store, out := runScript(t, "3", "sk002", "all", "Face mist", "bodycare", "", "7000", "0")
	assert.Contains(t, out, "Product updated.")

	p, _ := store.Get("SK002")
	assert.Equal(t, "Face mist", p.Name)
	assert.Equal(t, "bodycare", string(p.Category))
	assert.Equal(t, 50, p.Stock)
	assert.Equal(t, 7000, p.Price)
}

func TestShell_InvalidInputs(t *testing.T) {
	_, out := runScript(t,
		"2", "haircare",
		"3", "SK001", "colour",
		"7", "all", "yearly",
		"1", "9",
		"x",
		"0",
	)
	assert.Contains(t, out, "Invalid category!")
	assert.Contains(t, out, "Unknown field.")
	assert.Contains(t, out, "Invalid time range.")
	assert.Contains(t, out, "Invalid choice.\n")
	assert.Contains(t, out, "Invalid choice. Try again.")
}

func TestShell_LowStockAlertAtStartup(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := services.NewCatalogStore(repos.NewCSVStore(fs, "/c.csv", "/t.csv"), nil)
	seed := repos.DefaultProducts()
	seed[4].Stock = 10
	require.NoError(t, store.Load(seed))

	var out bytes.Buffer
	cli.NewShell(store, strings.NewReader("0\n"), &out, nil, 10).Run()
	assert.Contains(t, out.String(), "[SK005] Madagascar Centela | Stock: 10\n")
	assert.NotContains(t, out.String(), "[SK001] Viva milk cleanser 100ml | Stock")
}

func TestShell_CategoryMenusFollowCatalogCategories(t *testing.T) {
	_, out := runScript(t, "1", "3", "2", "haircare", "0")
	assert.Contains(t, out, "1. All Products\n2. Skincare\n3. Bodycare\n")
	assert.Contains(t, out, "[BD006]")
	assert.NotContains(t, out, "[SK001]")
	assert.Contains(t, out, "Category (skincare/bodycare): ")
}

func TestShell_MalformedCodesAreRejectedBeforeLookup(t *testing.T) {
	store, out := runScript(t,
		"5", "S1", "SK001", "2", "n",
		"4", "12345",
		"3", "bd",
		"0",
	)
	assert.Equal(t, 3, strings.Count(out, "Invalid product code."))
	assert.NotContains(t, out, "Product code not found.")
	assert.NotContains(t, out, "Product not found.")
	assert.Contains(t, out, "Sale saved.")
	p, _ := store.Get("SK001")
	assert.Equal(t, 48, p.Stock)
}
