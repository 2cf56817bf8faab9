// Package cart is the shopping cart domain: persisted products, the
// background writer that changes them, and the view-models shown per item.
package cart

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var ErrUnknownUnit = errors.New("unknown unit")

// Unit is the unit a product is sold by.
type Unit int

const (
	Kilogram Unit = iota
	Liter
)

func (u Unit) String() string {
	switch u {
	case Kilogram:
		return "kg"
	case Liter:
		return "l"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// ParseUnit maps a stored unit code back to its Unit.
func ParseUnit(code string) (Unit, error) {
	switch code {
	case "kg":
		return Kilogram, nil
	case "l":
		return Liter, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, code)
}

// Product is one cart row. Products are values: a change is a whole new
// Product written over the old one by ID.
type Product struct {
	ID       uuid.UUID
	Material string // category name
	Color    string
	Amount   int // cents per unit
	Unit     Unit
	Quantity int
}

// NewProduct returns a product with a fresh ID. Labels are stored in NFC so
// they compare equal to the configured category names.
func NewProduct(material, color string, amount int, unit Unit, quantity int) Product {
	return Product{
		ID:       uuid.New(),
		Material: norm.NFC.String(material),
		Color:    norm.NFC.String(color),
		Amount:   amount,
		Unit:     unit,
		Quantity: quantity,
	}
}

// SeedProducts is the cart the demo starts with.
func SeedProducts() []Product {
	return []Product{
		NewProduct("Car paint", "Fiery Red", 1_50, Liter, 3),
		NewProduct("Wood", "N/A", 10_00, Kilogram, 2),
		NewProduct("Carbon fiber", "N/A", 1_00, Kilogram, 1),
		NewProduct("Lacquered wood", "N/A", 12_00, Kilogram, 1),
	}
}
