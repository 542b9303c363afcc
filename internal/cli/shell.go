package cli

import (
	"errors"
	"fmt"
	"io"

	"beautystock/internal/domain"
	applog "beautystock/internal/log"
	"beautystock/internal/services"
	"beautystock/internal/validate"
)

const menu = `
===== BEAUTY PRODUCT MANAGEMENT =====
1. View Products
2. Add Product
3. Edit Product
4. Delete Product
5. Sales Transaction
6. Restock Products
7. Sales Report
8. Search Products
0. Exit
`

// Shell is the interactive front end over a CatalogStore.
type Shell struct {
	Store             *services.CatalogStore
	In                *Prompter
	Out               io.Writer
	Log               *applog.Logger
	LowStockThreshold int
}

func NewShell(store *services.CatalogStore, in io.Reader, out io.Writer, logger *applog.Logger, threshold int) *Shell {
	if logger == nil {
		logger = applog.Nop()
	}
	return &Shell{
		Store:             store,
		In:                NewPrompter(in, out),
		Out:               out,
		Log:               logger,
		LowStockThreshold: threshold,
	}
}

// Run shows the low stock alert and then serves the menu until the user
// exits or input runs out.
func (sh *Shell) Run() {
	sh.LowStockAlert()
	for {
		fmt.Fprint(sh.Out, menu)
		choice := sh.In.Ask("Choose menu: ")
		if sh.In.Closed() {
			fmt.Fprintln(sh.Out, "Input closed. Exiting.")
			return
		}
		switch choice {
		case "1":
			sh.ListProducts()
		case "2":
			sh.AddProduct()
		case "3":
			sh.EditProduct()
		case "4":
			sh.DeleteProduct()
		case "5":
			sh.Sale()
		case "6":
			sh.Restock()
		case "7":
			sh.Report()
		case "8":
			sh.Search()
		case "0":
			fmt.Fprintln(sh.Out, "Leaving the application. Goodbye!")
			return
		default:
			fmt.Fprintln(sh.Out, "Invalid choice. Try again.")
		}
	}
}

func (sh *Shell) println(msg string) { fmt.Fprintln(sh.Out, msg) }

// fail reports err to the user; the operation is abandoned and the menu
// comes back.
func (sh *Shell) fail(action string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCategory):
		sh.println("Invalid category!")
	case errors.Is(err, domain.ErrProductNotFound):
		sh.println("Product not found.")
	case errors.Is(err, domain.ErrInsufficientStock):
		sh.println("Insufficient stock.")
	case errors.Is(err, domain.ErrInvalidQuantity):
		sh.println("Quantity must be greater than 0.")
	case errors.Is(err, domain.ErrNegativeValue):
		sh.println("Stock and price cannot be negative.")
	case errors.Is(err, validate.ErrMalformedCode):
		sh.println("Invalid product code.")
	case errors.Is(err, validate.ErrMalformedNumber):
		sh.println("Please enter a whole number.")
	case errors.Is(err, domain.ErrUnknownField):
		sh.println("Unknown field.")
	case errors.Is(err, domain.ErrUnknownWindow):
		sh.println("Invalid time range.")
	default:
		sh.println("Error: " + err.Error())
		return
	}
	sh.Log.Warn(action+".rejected", map[string]any{"reason": err.Error()})
}

func (sh *Shell) askInt(prompt string, def int) (int, error) {
	return validate.Int(sh.In.Ask(prompt), def)
}

// askCode reads a product code; a malformed one is reported under action.
func (sh *Shell) askCode(action, prompt string) (string, bool) {
	code, ok := validate.Code(sh.In.Ask(prompt))
	if !ok {
		sh.fail(action, fmt.Errorf("%w: %q", validate.ErrMalformedCode, code))
	}
	return code, ok
}
