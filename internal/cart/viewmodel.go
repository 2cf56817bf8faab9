package cart

import (
	"cart3d/internal/palette"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Persister accepts fire-and-forget writes. *Writer implements it.
type Persister interface {
	Update(p Product) bool
	Delete(p Product) bool
}

// ViewModel turns the three cart intents into writes. The new state comes
// back through the store's observers, never from these calls.
type ViewModel struct {
	out Persister
}

func NewViewModel(out Persister) *ViewModel {
	return &ViewModel{out: out}
}

func (vm *ViewModel) Increase(p Product) {
	vm.out.Update(Increased(p))
}

// Decrease lowers the quantity by one, removing the product instead of
// letting the quantity reach zero.
func (vm *ViewModel) Decrease(p Product) {
	if next, keep := Decreased(p); keep {
		vm.out.Update(next)
		return
	}
	vm.out.Delete(p)
}

func (vm *ViewModel) CycleColor(p Product) {
	vm.out.Update(NextColor(p))
}

func Increased(p Product) Product {
	p.Quantity++
	return p
}

// Decreased returns p with one less unit, and false when p should be
// removed instead.
func Decreased(p Product) (Product, bool) {
	if p.Quantity <= 1 {
		return p, false
	}
	p.Quantity--
	return p, true
}

func NextColor(p Product) Product {
	p.Color = palette.Next(p.Color)
	return p
}

// Item is what one cart row shows.
type Item struct {
	Product Product
	Label   string // "3× Car paint"
	Amount  string // "$1.50/l"
	Swatch  bool
	Color   palette.RGB
}

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatAmount renders the unit price, e.g. "$12.00/kg".
func FormatAmount(p Product) string {
	return printer.Sprintf("$%.2f/%s", float64(p.Amount)/100, p.Unit)
}

// Items builds one item per product, in order.
func Items(products []Product) []Item {
	items := make([]Item, len(products))
	for i, p := range products {
		items[i] = Item{
			Product: p,
			Label:   printer.Sprintf("%d× %s", p.Quantity, p.Material),
			Amount:  FormatAmount(p),
			Swatch:  palette.IsProductColor(p.Color),
			Color:   palette.Lookup(p.Color),
		}
	}
	return items
}

// CheckoutLabel counts every unit in the cart, e.g. "7 items".
func CheckoutLabel(products []Product) string {
	total := 0
	for _, p := range products {
		total += p.Quantity
	}
	return printer.Sprintf("%d items", total)
}
