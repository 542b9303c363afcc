package services

import (
	"fmt"
	"time"

	"beautystock/internal/domain"
)

// the sales log stores whole seconds
const timeResolution = time.Second

// SalesReport prices every logged sale at the product's current price.
// Sales of products that no longer exist are left out, and rows without a
// timestamp only appear when the window is "all".
func (s *CatalogStore) SalesReport(f domain.ReportFilter) (domain.SalesReport, error) {
	window, ok := domain.ParseWindow(string(f.Window))
	if !ok {
		return domain.SalesReport{}, fmt.Errorf("%w: %q", domain.ErrUnknownWindow, f.Window)
	}
	if f.Category != "" && f.Category.Prefix() == "" {
		return domain.SalesReport{}, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, f.Category)
	}

	txns, err := s.Storage.ReadTransactions()
	if err != nil {
		s.Log.Error("sales.read", err, nil)
		return domain.SalesReport{}, fmt.Errorf("read sales log: %w", err)
	}

	today := dateOf(s.Now())
	report := domain.SalesReport{Lines: []domain.ReportLine{}}
	for _, t := range txns {
		if !inWindow(t, window, today) {
			continue
		}
		i, ok := s.index[t.Code]
		if !ok {
			continue
		}
		p := s.products[i]
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		subtotal := p.Price * t.Quantity
		report.Lines = append(report.Lines, domain.ReportLine{
			Code:     t.Code,
			Name:     p.Name,
			Quantity: t.Quantity,
			Price:    p.Price,
			Subtotal: subtotal,
			At:       t.At,
		})
		report.Total += subtotal
	}
	return report, nil
}

func inWindow(t domain.Transaction, w domain.Window, today time.Time) bool {
	if w == domain.WindowAll {
		return true
	}
	if !t.Timestamped() {
		return false
	}
	day := dateOf(t.At)
	switch w {
	case domain.WindowDaily:
		return day.Equal(today)
	case domain.WindowWeekly:
		return !day.Before(today.AddDate(0, 0, -7))
	case domain.WindowMonthly:
		return !day.Before(today.AddDate(0, 0, -30))
	}
	return false
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
