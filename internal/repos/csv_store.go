package repos

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"beautystock/internal/domain"
)

// ErrCatalogMissing means no catalog was ever saved. Callers treat it as a
// first run.
var ErrCatalogMissing = errors.New("catalog not found")

var catalogHeader = []string{"code", "name", "category", "stock", "price"}

// CSVStore keeps the catalog and the sales log as two delimited text files.
type CSVStore struct {
	fs              afero.Fs
	catalogPath     string
	transactionPath string
}

func NewCSVStore(fs afero.Fs, catalogPath, transactionPath string) *CSVStore {
	return &CSVStore{fs: fs, catalogPath: catalogPath, transactionPath: transactionPath}
}

// LoadCatalog reads the catalog file. Columns are matched by header name.
func (s *CSVStore) LoadCatalog() ([]domain.Product, error) {
	f, err := s.fs.Open(s.catalogPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCatalogMissing
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err == io.EOF {
		return []domain.Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.catalogPath, err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(strings.ToLower(h))] = i
	}
	for _, name := range catalogHeader {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("read %s: missing column %q", s.catalogPath, name)
		}
	}

	out := []domain.Product{}
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.catalogPath, err)
		}
		if len(row) < len(header) {
			return nil, fmt.Errorf("read %s line %d: want %d fields, got %d", s.catalogPath, line, len(header), len(row))
		}
		stock, err := strconv.Atoi(strings.TrimSpace(row[col["stock"]]))
		if err != nil {
			return nil, fmt.Errorf("read %s line %d: stock: %w", s.catalogPath, line, err)
		}
		price, err := strconv.Atoi(strings.TrimSpace(row[col["price"]]))
		if err != nil {
			return nil, fmt.Errorf("read %s line %d: price: %w", s.catalogPath, line, err)
		}
		out = append(out, domain.Product{
			Code:     row[col["code"]],
			Name:     row[col["name"]],
			Category: domain.Category(row[col["category"]]),
			Stock:    stock,
			Price:    price,
		})
	}
	return out, nil
}

// SaveCatalog writes a temp file next to the catalog and renames it over the
// old one, so a failed write leaves the previous catalog intact.
func (s *CSVStore) SaveCatalog(products []domain.Product) (err error) {
	dir := filepath.Dir(s.catalogPath)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := afero.TempFile(s.fs, dir, ".catalog-*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = s.fs.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.Write(catalogHeader); err != nil {
		return err
	}
	for _, p := range products {
		if err = w.Write([]string{
			p.Code, p.Name, string(p.Category), strconv.Itoa(p.Stock), strconv.Itoa(p.Price),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return s.fs.Rename(tmp.Name(), s.catalogPath)
}

func (s *CSVStore) AppendTransactions(txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.transactionPath), 0o755); err != nil {
		return err
	}
	f, err := s.fs.OpenFile(s.transactionPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	for _, t := range txns {
		row := []string{t.Code, strconv.Itoa(t.Quantity)}
		if t.Timestamped() {
			row = append(row, t.At.Format(domain.TimestampLayout))
		}
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadTransactions reads the whole sales log. A missing log is empty.
// Malformed rows are skipped.
func (s *CSVStore) ReadTransactions() ([]domain.Transaction, error) {
	f, err := s.fs.Open(s.transactionPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var out []domain.Transaction
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, err
		}
		if t, ok := parseTransactionRow(row); ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func parseTransactionRow(row []string) (domain.Transaction, bool) {
	if len(row) != 2 && len(row) != 3 {
		return domain.Transaction{}, false
	}
	code := strings.TrimSpace(row[0])
	qty, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if code == "" || err != nil {
		return domain.Transaction{}, false
	}
	t := domain.Transaction{Code: code, Quantity: qty}
	if len(row) == 3 {
		at, err := time.ParseInLocation(domain.TimestampLayout, strings.TrimSpace(row[2]), time.Local)
		if err != nil {
			return domain.Transaction{}, false
		}
		t.At = at
	}
	return t, true
}
