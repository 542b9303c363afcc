package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"beautystock/internal/domain"
	"beautystock/internal/services"
	"beautystock/internal/validate"
)

// menu 1
func (sh *Shell) ListProducts() {
	sh.println("Choose which products to view:")
	sh.println("1. All Products")
	title := cases.Title(language.Und)
	for i, c := range domain.Categories {
		fmt.Fprintf(sh.Out, "%d. %s\n", i+2, title.String(c.String()))
	}
	choice, err := strconv.Atoi(strings.TrimSpace(sh.In.Ask("Enter choice: ")))
	if err != nil || choice < 1 || choice > len(domain.Categories)+1 {
		sh.println("Invalid choice.")
		return
	}
	var filter domain.Category
	if choice > 1 {
		filter = domain.Categories[choice-2]
	}

	products := sh.Store.List(filter)
	sh.println("Available Products:")
	if len(products) == 0 {
		sh.println("No products.")
		return
	}
	if filter == "" {
		writeSections(sh.Out, services.GroupRuns(products))
		return
	}
	for _, p := range products {
		writeProduct(sh.Out, p)
	}
}

// menu 2
func (sh *Shell) AddProduct() {
	category, ok := domain.ParseCategory(sh.In.Ask("Category (" + categoryChoices() + "): "))
	if !ok {
		sh.fail("product.add", domain.ErrInvalidCategory)
		return
	}
	name := sh.In.Ask("Product name: ")
	stock, err := sh.askInt("Initial stock: ", 0)
	if err != nil {
		sh.fail("product.add", err)
		return
	}
	price, err := sh.askInt("Price: ", 0)
	if err != nil {
		sh.fail("product.add", err)
		return
	}

	code, err := sh.Store.AddProduct(category, name, stock, price)
	if err != nil {
		sh.fail("product.add", err)
		return
	}
	fmt.Fprintf(sh.Out, "Product added with code %s.\n", code)
}

// menu 3
func (sh *Shell) EditProduct() {
	code, ok := sh.askCode("product.edit", "Code of the product to edit: ")
	if !ok {
		return
	}
	current, ok := sh.Store.Get(code)
	if !ok {
		sh.fail("product.edit", domain.ErrProductNotFound)
		return
	}
	fmt.Fprintf(sh.Out, "Current data: Name: %s, Category: %s, Stock: %d, Price: %d\n",
		current.Name, current.Category, current.Stock, current.Price)

	fields, err := services.ParseFields(sh.In.Ask("Change (name/stock/price/category/all): "))
	if err != nil {
		sh.fail("product.edit", err)
		return
	}

	var upd services.ProductUpdate
	for _, f := range fields {
		switch f {
		case services.FieldName:
			name := sh.In.Ask("New name: ")
			upd.Name = &name
		case services.FieldCategory:
			category, ok := domain.ParseCategory(sh.In.Ask("New category (" + categoryChoices() + "): "))
			if !ok {
				sh.fail("product.edit", domain.ErrInvalidCategory)
				return
			}
			upd.Category = &category
		case services.FieldStock:
			stock, err := sh.askInt("New stock: ", current.Stock)
			if err != nil {
				sh.fail("product.edit", err)
				return
			}
			upd.Stock = &stock
		case services.FieldPrice:
			price, err := sh.askInt("New price: ", current.Price)
			if err != nil {
				sh.fail("product.edit", err)
				return
			}
			upd.Price = &price
		}
	}

	if _, err := sh.Store.EditProduct(code, upd); err != nil {
		sh.fail("product.edit", err)
		return
	}
	sh.println("Product updated.")
}

// menu 4
func (sh *Shell) DeleteProduct() {
	code, ok := sh.askCode("product.delete", "Code of the product to delete: ")
	if !ok {
		return
	}
	p, ok := sh.Store.Get(code)
	if !ok {
		sh.fail("product.delete", domain.ErrProductNotFound)
		return
	}
	confirmed := validate.Yes(sh.In.Ask(fmt.Sprintf("Really delete %s? (y/n): ", p.Name)))

	err := sh.Store.DeleteProduct(code, confirmed)
	switch {
	case errors.Is(err, domain.ErrNotConfirmed):
		sh.println("Deletion cancelled.")
	case err != nil:
		sh.fail("product.delete", err)
	default:
		sh.println("Product deleted.")
	}
}

// menu 5
func (sh *Shell) Sale() {
	sh.println("Sale started. Type 'done' to finish.")
	ss := sh.Store.BeginSale()
	for !sh.In.Closed() {
		raw := sh.In.Ask("Product code: ")
		if validate.Done(raw) {
			break
		}
		code, ok := validate.Code(raw)
		if !ok {
			sh.fail("sale", fmt.Errorf("%w: %q", validate.ErrMalformedCode, code))
			continue
		}
		if _, ok := sh.Store.Get(code); !ok {
			sh.println("Product code not found.")
			continue
		}
		qty, err := sh.askInt("Quantity bought: ", 0)
		if err != nil {
			sh.fail("sale", err)
			continue
		}
		if _, err := ss.Add(code, qty); err != nil {
			sh.fail("sale", err)
			continue
		}
		if !validate.Yes(sh.In.Ask("Add another product? (y/n): ")) {
			break
		}
	}

	lines := ss.Lines()
	if err := ss.Commit(); err != nil {
		sh.fail("sale", err)
		return
	}
	if len(lines) == 0 {
		sh.println("No products were sold.")
		return
	}
	total := 0
	for _, l := range lines {
		p, _ := sh.Store.Get(l.Code)
		fmt.Fprintf(sh.Out, "%s x%d = Rp%d\n", p.Name, l.Quantity, p.Price*l.Quantity)
		total += p.Price * l.Quantity
	}
	fmt.Fprintf(sh.Out, "Total: Rp%d\n", total)
	sh.println("Sale saved.")
}

// menu 6
func (sh *Shell) Restock() {
	sh.println("Restock started. Type 'done' to finish.")
	rs := sh.Store.BeginRestock()
	for !sh.In.Closed() {
		raw := sh.In.Ask("Product code: ")
		if validate.Done(raw) {
			break
		}
		code, ok := validate.Code(raw)
		if !ok {
			sh.fail("restock", fmt.Errorf("%w: %q", validate.ErrMalformedCode, code))
			continue
		}
		if _, ok := sh.Store.Get(code); !ok {
			sh.println("Product code not found.")
			continue
		}
		qty, err := sh.askInt("Restock quantity: ", 0)
		if err != nil {
			sh.fail("restock", err)
			continue
		}
		if _, err := rs.Add(code, qty); err != nil {
			sh.fail("restock", err)
			continue
		}
		if !validate.Yes(sh.In.Ask("Restock another product? (y/n): ")) {
			break
		}
	}
	if err := rs.Commit(); err != nil {
		sh.fail("restock", err)
		return
	}
	sh.println("Restock finished.")
}

// menu 7
func (sh *Shell) Report() {
	var f domain.ReportFilter
	if raw := strings.TrimSpace(sh.In.Ask("Report category (all/" + categoryChoices() + "): ")); raw != "" && !strings.EqualFold(raw, "all") {
		category, ok := domain.ParseCategory(raw)
		if !ok {
			sh.fail("report", domain.ErrInvalidCategory)
			return
		}
		f.Category = category
	}
	window, ok := domain.ParseWindow(sh.In.Ask("Time range (all/daily/weekly/monthly): "))
	if !ok {
		sh.fail("report", domain.ErrUnknownWindow)
		return
	}
	f.Window = window

	r, err := sh.Store.SalesReport(f)
	if err != nil {
		sh.fail("report", err)
		return
	}
	writeReport(sh.Out, r)
}

// menu 8
func (sh *Shell) Search() {
	keyword := sh.In.Ask("Search keyword (name/category): ")
	sh.println("\nSearch Results:")
	found := false
	for _, p := range sh.Store.Search(keyword) {
		writeProduct(sh.Out, p)
		found = true
	}
	if !found {
		sh.println("No matching products.")
	}
}

// LowStockAlert lists products at or below the configured threshold.
func (sh *Shell) LowStockAlert() {
	fmt.Fprintf(sh.Out, "\n[ALERT] Products running low (<= %d):\n", sh.LowStockThreshold)
	low := sh.Store.LowStock(sh.LowStockThreshold)
	if len(low) == 0 {
		sh.println("No products are running low.")
		return
	}
	for _, p := range low {
		fmt.Fprintf(sh.Out, "[%s] %s | Stock: %d\n", p.Code, p.Name, p.Stock)
	}
}

func categoryChoices() string {
	names := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		names[i] = c.String()
	}
	return strings.Join(names, "/")
}
