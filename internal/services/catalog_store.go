package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"beautystock/internal/domain"
	applog "beautystock/internal/log"
	"beautystock/internal/repos"
)

// Storage persists the catalog and the sales log. Implemented by
// repos.CSVStore and repos.SQLiteStore.
type Storage interface {
	LoadCatalog() ([]domain.Product, error)
	SaveCatalog(products []domain.Product) error
	AppendTransactions(txns []domain.Transaction) error
	ReadTransactions() ([]domain.Transaction, error)
}

// CatalogStore owns the in-memory catalog. Products keep the order they were
// loaded or added in; every mutation rewrites the whole catalog through
// Storage and is rolled back in memory if that write fails.
type CatalogStore struct {
	Storage Storage
	Log     *applog.Logger
	Now     func() time.Time

	products []domain.Product
	index    map[string]int
	restocks []domain.RestockRecord
}

func NewCatalogStore(storage Storage, logger *applog.Logger) *CatalogStore {
	if logger == nil {
		logger = applog.Nop()
	}
	return &CatalogStore{
		Storage: storage,
		Log:     logger,
		Now:     time.Now,
		index:   map[string]int{},
	}
}

// Load reads the catalog from storage. On first run the seed products are
// written instead.
func (s *CatalogStore) Load(seed []domain.Product) error {
	products, err := s.Storage.LoadCatalog()
	switch {
	case errors.Is(err, repos.ErrCatalogMissing):
		s.reset(seed)
		if err := s.persist("catalog.seed"); err != nil {
			return err
		}
		s.Log.Audit("catalog.seed", map[string]any{"products": len(s.products)})
		return nil
	case err != nil:
		s.Log.Error("catalog.load", err, nil)
		return fmt.Errorf("load catalog: %w", err)
	}
	s.reset(products)
	s.Log.Info("catalog.load", map[string]any{"products": len(s.products)})
	return nil
}

// reset replaces the catalog. A repeated code keeps its first position and
// its last values.
func (s *CatalogStore) reset(products []domain.Product) {
	s.products = make([]domain.Product, 0, len(products))
	s.index = make(map[string]int, len(products))
	for _, p := range products {
		if i, ok := s.index[p.Code]; ok {
			s.products[i] = p
			continue
		}
		s.index[p.Code] = len(s.products)
		s.products = append(s.products, p)
	}
}

func (s *CatalogStore) persist(action string) error {
	snapshot := make([]domain.Product, len(s.products))
	copy(snapshot, s.products)
	if err := s.Storage.SaveCatalog(snapshot); err != nil {
		s.Log.Error("catalog.save", err, map[string]any{"during": action})
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

func (s *CatalogStore) lookup(code string) (int, error) {
	i, ok := s.index[code]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrProductNotFound, code)
	}
	return i, nil
}

// Get returns a copy of the product with the given code.
func (s *CatalogStore) Get(code string) (domain.Product, bool) {
	i, ok := s.index[code]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

func (s *CatalogStore) Len() int { return len(s.products) }

// GenerateCode returns the next unused code for the category prefix: the
// highest existing numeric suffix plus one, zero padded to three digits.
func (s *CatalogStore) GenerateCode(category domain.Category) (string, error) {
	prefix := category.Prefix()
	if prefix == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidCategory, category)
	}
	highest := 0
	for _, p := range s.products {
		if !strings.HasPrefix(p.Code, prefix) {
			continue
		}
		n, err := strconv.Atoi(p.Code[len(prefix):])
		if err != nil {
			continue
		}
		highest = max(highest, n)
	}
	return fmt.Sprintf("%s%03d", prefix, highest+1), nil
}

func (s *CatalogStore) AddProduct(category domain.Category, name string, stock, price int) (string, error) {
	code, err := s.GenerateCode(category)
	if err != nil {
		return "", err
	}
	if stock < 0 || price < 0 {
		return "", domain.ErrNegativeValue
	}

	s.index[code] = len(s.products)
	s.products = append(s.products, domain.Product{
		Code: code, Name: name, Category: category, Stock: stock, Price: price,
	})
	if err := s.persist("product.add"); err != nil {
		s.products = s.products[:len(s.products)-1]
		delete(s.index, code)
		return "", err
	}
	s.Log.Audit("product.add", map[string]any{"code": code, "category": string(category), "stock": stock, "price": price})
	return code, nil
}

// DeleteProduct removes a product only when confirmed is true; otherwise it
// returns domain.ErrNotConfirmed and leaves the catalog untouched.
func (s *CatalogStore) DeleteProduct(code string, confirmed bool) error {
	i, err := s.lookup(code)
	if err != nil {
		return err
	}
	if !confirmed {
		return domain.ErrNotConfirmed
	}

	before := s.products
	s.reset(append(append([]domain.Product{}, before[:i]...), before[i+1:]...))
	if err := s.persist("product.delete"); err != nil {
		s.reset(before)
		return err
	}
	s.Log.Audit("product.delete", map[string]any{"code": code})
	return nil
}
