package services

import (
	"fmt"

	"github.com/google/uuid"

	"beautystock/internal/domain"
)

// SaleSession collects sold line items. Stock is taken as each line is
// added, so later lines see what earlier ones left; Commit writes the
// catalog and appends the lines to the sales log once.
type SaleSession struct {
	ID    string
	store *CatalogStore
	lines []domain.Transaction
	done  bool
}

func (s *CatalogStore) BeginSale() *SaleSession {
	return &SaleSession{ID: uuid.NewString(), store: s}
}

func (ss *SaleSession) Add(code string, qty int) (domain.Transaction, error) {
	if ss.done {
		return domain.Transaction{}, domain.ErrSessionClosed
	}
	if qty <= 0 {
		return domain.Transaction{}, domain.ErrInvalidQuantity
	}
	i, err := ss.store.lookup(code)
	if err != nil {
		return domain.Transaction{}, err
	}
	p := &ss.store.products[i]
	if qty > p.Stock {
		return domain.Transaction{}, fmt.Errorf("%w: %s has %d, asked for %d", domain.ErrInsufficientStock, code, p.Stock, qty)
	}

	p.Stock -= qty
	t := domain.Transaction{Code: code, Quantity: qty, At: ss.store.Now().Truncate(timeResolution)}
	ss.lines = append(ss.lines, t)
	return t, nil
}

func (ss *SaleSession) Lines() []domain.Transaction {
	return append([]domain.Transaction(nil), ss.lines...)
}

// Commit persists the session. With no lines nothing is written. If the
// catalog cannot be saved the taken stock is put back.
func (ss *SaleSession) Commit() error {
	if ss.done {
		return domain.ErrSessionClosed
	}
	ss.done = true
	if len(ss.lines) == 0 {
		return nil
	}
	s := ss.store
	if err := s.persist("sale.commit"); err != nil {
		for _, t := range ss.lines {
			if i, ok := s.index[t.Code]; ok {
				s.products[i].Stock += t.Quantity
			}
		}
		return err
	}
	if err := s.Storage.AppendTransactions(ss.lines); err != nil {
		s.Log.Error("sales.append", err, map[string]any{"session": ss.ID, "lines": len(ss.lines)})
		return fmt.Errorf("catalog saved but sales log not written: %w", err)
	}
	s.Log.Audit("sale.commit", map[string]any{"session": ss.ID, "lines": len(ss.lines)})
	return nil
}

// Sell records a one-line sale.
func (s *CatalogStore) Sell(code string, qty int) (domain.Transaction, error) {
	ss := s.BeginSale()
	t, err := ss.Add(code, qty)
	if err != nil {
		return domain.Transaction{}, err
	}
	return t, ss.Commit()
}

// RestockSession collects restocked line items until Commit.
type RestockSession struct {
	ID    string
	store *CatalogStore
	lines []domain.RestockRecord
	done  bool
}

func (s *CatalogStore) BeginRestock() *RestockSession {
	return &RestockSession{ID: uuid.NewString(), store: s}
}

// Add increases stock. Quantities must be positive.
func (rs *RestockSession) Add(code string, qty int) (domain.RestockRecord, error) {
	if rs.done {
		return domain.RestockRecord{}, domain.ErrSessionClosed
	}
	if qty <= 0 {
		return domain.RestockRecord{}, domain.ErrInvalidQuantity
	}
	i, err := rs.store.lookup(code)
	if err != nil {
		return domain.RestockRecord{}, err
	}
	rs.store.products[i].Stock += qty
	r := domain.RestockRecord{Code: code, Quantity: qty}
	rs.lines = append(rs.lines, r)
	return r, nil
}

func (rs *RestockSession) Commit() error {
	if rs.done {
		return domain.ErrSessionClosed
	}
	rs.done = true
	if len(rs.lines) == 0 {
		return nil
	}
	s := rs.store
	if err := s.persist("restock.commit"); err != nil {
		for _, r := range rs.lines {
			if i, ok := s.index[r.Code]; ok {
				s.products[i].Stock -= r.Quantity
			}
		}
		return err
	}
	s.restocks = append(s.restocks, rs.lines...)
	s.Log.Audit("restock.commit", map[string]any{"session": rs.ID, "lines": len(rs.lines)})
	return nil
}

func (s *CatalogStore) Restock(code string, qty int) (domain.RestockRecord, error) {
	rs := s.BeginRestock()
	r, err := rs.Add(code, qty)
	if err != nil {
		return domain.RestockRecord{}, err
	}
	return r, rs.Commit()
}

// RestockLog lists the restocks committed since the store was opened.
func (s *CatalogStore) RestockLog() []domain.RestockRecord {
	return append([]domain.RestockRecord(nil), s.restocks...)
}
