package domain

import (
	"strings"
	"time"
)

type Window string

const (
	WindowAll     Window = "all"
	WindowDaily   Window = "daily"
	WindowWeekly  Window = "weekly"
	WindowMonthly Window = "monthly"
)

func ParseWindow(s string) (Window, bool) {
	switch w := Window(strings.ToLower(strings.TrimSpace(s))); w {
	case WindowAll, WindowDaily, WindowWeekly, WindowMonthly:
		return w, true
	case "":
		return WindowAll, true
	}
	return "", false
}

// ReportFilter selects transactions for a sales report. An empty Category
// means every category.
type ReportFilter struct {
	Category Category
	Window   Window
}

type ReportLine struct {
	Code     string
	Name     string
	Quantity int
	Price    int
	Subtotal int
	At       time.Time
}

type SalesReport struct {
	Lines []ReportLine
	Total int
}
