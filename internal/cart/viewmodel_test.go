package cart

import (
	"fmt"
	"strings"
	"testing"

	"cart3d/internal/palette"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPersister struct {
	updates []Product
	deletes []Product
}

func (r *recordingPersister) Update(p Product) bool {
	r.updates = append(r.updates, p)
	return true
}

func (r *recordingPersister) Delete(p Product) bool {
	r.deletes = append(r.deletes, p)
	return true
}

func TestDecreaseQuantityOneRemoves(t *testing.T) {
	out := &recordingPersister{}
	vm := NewViewModel(out)
	p := NewProduct("Wood", "N/A", 10_00, Kilogram, 1)

	vm.Decrease(p)

	assert.Empty(t, out.updates)
	require.Len(t, out.deletes, 1)
	assert.Equal(t, p.ID, out.deletes[0].ID)
}

func TestDecreaseQuantityManyKeeps(t *testing.T) {
	for _, n := range []int{2, 3, 10} {
		out := &recordingPersister{}
		vm := NewViewModel(out)
		p := NewProduct("Wood", "N/A", 10_00, Kilogram, n)

		vm.Decrease(p)

		assert.Empty(t, out.deletes)
		require.Len(t, out.updates, 1)
		assert.Equal(t, n-1, out.updates[0].Quantity)
		assert.Equal(t, p.ID, out.updates[0].ID)
	}
}

func TestIncrease(t *testing.T) {
	out := &recordingPersister{}
	vm := NewViewModel(out)
	p := NewProduct("Car paint", "Fiery Red", 1_50, Liter, 3)

	vm.Increase(p)

	require.Len(t, out.updates, 1)
	assert.Equal(t, 4, out.updates[0].Quantity)
	assert.Equal(t, 3, p.Quantity, "the caller's value is not modified")
}

func TestCycleColor(t *testing.T) {
	out := &recordingPersister{}
	vm := NewViewModel(out)
	p := NewProduct("Car paint", "Fiery Red", 1_50, Liter, 3)

	vm.CycleColor(p)
	require.Len(t, out.updates, 1)
	assert.Equal(t, "Deep Blue", out.updates[0].Color)

	for _, label := range palette.Labels() {
		q := p
		q.Color = label
		for range 4 {
			q = NextColor(q)
		}
		assert.Equal(t, label, q.Color)
	}

	q := NextColor(NewProduct("Wood", "N/A", 10_00, Kilogram, 1))
	assert.Equal(t, "N/A", q.Color)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$1.50/l", FormatAmount(Product{Amount: 150, Unit: Liter}))
	assert.Equal(t, "$0.05/kg", FormatAmount(Product{Amount: 5, Unit: Kilogram}))
	assert.Equal(t, "$1,234.56/kg", FormatAmount(Product{Amount: 123456, Unit: Kilogram}))
}

func TestItemsSwatch(t *testing.T) {
	items := Items([]Product{
		NewProduct("Car paint", "Deep Blue", 1_50, Liter, 1),
		NewProduct("Wood", "N/A", 10_00, Kilogram, 1),
	})
	require.Len(t, items, 2)
	assert.True(t, items[0].Swatch)
	assert.Equal(t, palette.Lookup("Deep Blue"), items[0].Color)
	assert.False(t, items[1].Swatch)
}

func TestSeedItemsGolden(t *testing.T) {
	products := SeedProducts()

	var b strings.Builder
	for _, it := range Items(products) {
		swatch := "-"
		if it.Swatch {
			swatch = "swatch " + it.Product.Color
		}
		fmt.Fprintf(&b, "%s | %s | %s\n", it.Label, it.Amount, swatch)
	}
	fmt.Fprintf(&b, "checkout: %s\n", CheckoutLabel(products))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "seed_items", []byte(b.String()))
}

func TestCheckoutLabelEmpty(t *testing.T) {
	assert.Equal(t, "0 items", CheckoutLabel(nil))
}
