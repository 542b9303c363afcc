package cli

import (
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"beautystock/internal/domain"
	"beautystock/internal/services"
)

func writeProduct(w io.Writer, p domain.Product) {
	fmt.Fprintf(w, "[%s] %s (%s) - Rp%d | Stock: %d\n", p.Code, p.Name, p.Category, p.Price, p.Stock)
}

// writeSections prints a category header before each run of products.
func writeSections(w io.Writer, sections []services.ListSection) {
	upper := cases.Upper(language.Und)
	for _, s := range sections {
		fmt.Fprintf(w, "-- %s --\n", upper.String(string(s.Category)))
		for _, p := range s.Products {
			writeProduct(w, p)
		}
	}
}

func writeReport(w io.Writer, r domain.SalesReport) {
	fmt.Fprintln(w, "Sales Report:")
	if len(r.Lines) == 0 {
		fmt.Fprintln(w, "No sales recorded for this selection.")
	}
	for _, l := range r.Lines {
		when := "-"
		if !l.At.IsZero() {
			when = l.At.Format(domain.TimestampLayout)
		}
		fmt.Fprintf(w, "%s x%d = Rp%d | Time: %s\n", l.Name, l.Quantity, l.Subtotal, when)
	}
	fmt.Fprintf(w, "Total Sales: Rp%d\n", r.Total)
}
