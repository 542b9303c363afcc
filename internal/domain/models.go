package domain

import (
	"strings"
	"time"
)

// TimestampLayout is the on-disk format of transaction timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

type Category string

const (
	CategorySkincare Category = "skincare"
	CategoryBodycare Category = "bodycare"
)

// Categories lists the accepted product categories in menu order.
var Categories = []Category{CategorySkincare, CategoryBodycare}

var prefixes = map[Category]string{
	CategorySkincare: "SK",
	CategoryBodycare: "BD",
}

// ParseCategory lower-cases and trims s and reports whether it names a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	_, ok := prefixes[c]
	return c, ok
}

// Prefix returns the two-letter code prefix, or "" for an unknown category.
func (c Category) Prefix() string { return prefixes[c] }

func (c Category) String() string { return string(c) }

type Product struct {
	Code     string   `db:"code"`
	Name     string   `db:"name"`
	Category Category `db:"category"`
	Stock    int      `db:"stock"`
	Price    int      `db:"price"` // smallest currency unit
}

// Transaction is one sold line item. At is zero for legacy rows that were
// logged without a timestamp.
type Transaction struct {
	Code     string
	Quantity int
	At       time.Time
}

func (t Transaction) Timestamped() bool { return !t.At.IsZero() }

type RestockRecord struct {
	Code     string
	Quantity int
}
