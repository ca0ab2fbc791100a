package model

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidCategory is returned for an empty category name.
var ErrInvalidCategory = errors.New("invalid category")

// Category is either one of the named spend categories or a free-form
// fixed-bill label. The zero value is not a valid category.
type Category struct {
	name  string
	fixed bool
}

// Spend categories.
var (
	Food          = Category{name: "Food & Drinks"}
	Transport     = Category{name: "Transport"}
	Shopping      = Category{name: "Shopping"}
	Entertainment = Category{name: "Entertainment"}
	Health        = Category{name: "Health"}
	OtherSpend    = Category{name: "Other"}
)

// SpendCategories is the closed set offered for day-to-day entries.
var SpendCategories = []Category{Food, Transport, Shopping, Entertainment, Health, OtherSpend}

// FixedBillLabels are the suggested labels for recurring bills. Any other
// label is accepted too.
var FixedBillLabels = []string{
	"Room Rent",
	"Electricity",
	"Internet/WiFi",
	"Water/Gas",
	"Streaming/Subs",
	"Insurance/EMI",
	"Other Fixed",
}

var titleCaser = cases.Title(language.English, cases.NoLower)

// FixedBill returns the fixed-bill category for label, title-cased.
func FixedBill(label string) Category {
	label = strings.Join(strings.Fields(label), " ")
	return Category{name: titleCaser.String(label), fixed: true}
}

// ParseCategory resolves s against the spend categories (case-insensitive)
// and falls back to a fixed-bill label.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Category{}, ErrInvalidCategory
	}
	for _, c := range SpendCategories {
		if strings.EqualFold(c.name, s) {
			return c, nil
		}
	}
	// short aliases for the CLI
	switch strings.ToLower(s) {
	case "food", "drinks":
		return Food, nil
	case "travel":
		return Transport, nil
	}
	return FixedBill(s), nil
}

// StoredCategory rebuilds a persisted category from its name and the entry's
// fixed flag. A fixed entry always yields a fixed-bill label, even when the
// label collides with a spend category name.
func StoredCategory(name string, isFixed bool) (Category, error) {
	c, err := ParseCategory(name)
	if err != nil {
		return Category{}, err
	}
	if isFixed && !c.fixed {
		return FixedBill(c.name), nil
	}
	return c, nil
}

// Name returns the display name.
func (c Category) Name() string { return c.name }

// IsFixedBill reports whether c is a fixed-bill label rather than a spend category.
func (c Category) IsFixedBill() bool { return c.fixed }

// IsZero reports whether c is the zero Category.
func (c Category) IsZero() bool { return c.name == "" }

func (c Category) String() string { return c.name }

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text carries no
// fixed flag; stores rebuild entries with StoredCategory.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
