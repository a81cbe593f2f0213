package cart

import (
	"math"
	"testing"

	"github.com/trendsight-boutique/internal/constants"

	"github.com/shopspring/decimal"
)

func shirt(quantity int) LineItemInput {
	return LineItemInput{
		ProductID: "p1",
		Name:      "Shirt",
		UnitPrice: decimal.NewFromInt(50),
		ImageRef:  "/img/shirt.jpg",
		Quantity:  quantity,
	}
}

func assertDerived(t *testing.T, c *Cart) {
	t.Helper()
	count := 0
	subtotal := decimal.Zero
	for _, line := range c.Lines() {
		count += line.Quantity
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	if c.Count() != count {
		t.Fatalf("count drift: got %d want %d", c.Count(), count)
	}
	if !c.Subtotal().Equal(subtotal) {
		t.Fatalf("subtotal drift: got %s want %s", c.Subtotal(), subtotal)
	}
}

func TestAddMergesSameVariant(t *testing.T) {
	c := New()
	quantities := []int{1, 4, 2, 7}
	want := 0
	for _, q := range quantities {
		in := shirt(q)
		in.Color = "red"
		in.Size = "M"
		c.Add(in)
		want += q
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", c.Len())
	}
	line, ok := c.Line(NewLineKey("p1", "red", "M"))
	if !ok {
		t.Fatalf("line not found")
	}
	if line.Quantity != want {
		t.Fatalf("quantity want %d got %d", want, line.Quantity)
	}
	assertDerived(t, c)
}

func TestAddKeepsVariantsDistinct(t *testing.T) {
	c := New()
	red := shirt(1)
	red.Color = "red"
	blue := shirt(1)
	blue.Color = "blue"
	c.Add(red)
	c.Add(blue)

	if c.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", c.Len())
	}
	lines := c.Lines()
	if lines[0].Color != "red" || lines[1].Color != "blue" {
		t.Fatalf("insertion order not preserved: %+v", lines)
	}
}

func TestAddNormalizesSelections(t *testing.T) {
	c := New()
	first := shirt(1)
	first.Color = " red "
	second := shirt(2)
	second.Color = "red"
	c.Add(first)
	c.Add(second)
	if c.Len() != 1 {
		t.Fatalf("trimmed selections should merge, got %d lines", c.Len())
	}
	if c.Count() != 3 {
		t.Fatalf("count want 3 got %d", c.Count())
	}
}

func TestKeyWithSeparatorCharactersDoesNotCollide(t *testing.T) {
	c := New()
	a := shirt(1)
	a.Color = "red|M"
	b := shirt(1)
	b.Color = "red"
	b.Size = "M"
	c.Add(a)
	c.Add(b)
	if c.Len() != 2 {
		t.Fatalf("expected 2 distinct lines, got %d", c.Len())
	}
}

func TestAddDoesNotOverwriteSnapshot(t *testing.T) {
	c := New()
	c.Add(shirt(1))
	stale := shirt(1)
	stale.Name = "Renamed"
	stale.UnitPrice = decimal.NewFromInt(1)
	c.Add(stale)

	line, _ := c.Line(NewLineKey("p1", "", ""))
	if line.Name != "Shirt" {
		t.Fatalf("name overwritten: %s", line.Name)
	}
	if !line.UnitPrice.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("price overwritten: %s", line.UnitPrice)
	}
	if line.Quantity != 2 {
		t.Fatalf("quantity want 2 got %d", line.Quantity)
	}
}

func TestAddClampsNonPositiveQuantity(t *testing.T) {
	c := New()
	c.Add(shirt(0))
	c.Add(shirt(-5))
	line, ok := c.Line(NewLineKey("p1", "", ""))
	if !ok {
		t.Fatalf("line not found")
	}
	if line.Quantity != 2 {
		t.Fatalf("quantity want 2 got %d", line.Quantity)
	}
}

func TestQuantityIsCappedWithoutOverflow(t *testing.T) {
	c := New()
	c.Add(shirt(math.MaxInt))
	c.Add(shirt(2))
	line, _ := c.Line(NewLineKey("p1", "", ""))
	if line.Quantity != constants.MaxCartLineQuantity {
		t.Fatalf("quantity want %d got %d", constants.MaxCartLineQuantity, line.Quantity)
	}

	other := shirt(math.MaxInt)
	other.ProductID = "p2"
	c.Add(other)
	if c.Count() != 2*constants.MaxCartLineQuantity {
		t.Fatalf("count want %d got %d", 2*constants.MaxCartLineQuantity, c.Count())
	}
	if !c.Subtotal().IsPositive() {
		t.Fatalf("subtotal must stay positive, got %s", c.Subtotal())
	}

	c.UpdateQuantity(NewLineKey("p2", "", ""), math.MaxInt)
	line, _ = c.Line(NewLineKey("p2", "", ""))
	if line.Quantity != constants.MaxCartLineQuantity {
		t.Fatalf("update must be capped, got %d", line.Quantity)
	}
	assertDerived(t, c)
}

func TestAddClampsNegativePrice(t *testing.T) {
	c := New()
	in := shirt(1)
	in.UnitPrice = decimal.NewFromInt(-10)
	c.Add(in)
	if !c.Subtotal().IsZero() {
		t.Fatalf("expected zero subtotal, got %s", c.Subtotal())
	}
}

func TestAddOpensCart(t *testing.T) {
	c := New()
	if c.IsOpen() {
		t.Fatalf("new cart should be closed")
	}
	c.Add(shirt(1))
	if !c.IsOpen() {
		t.Fatalf("add should open the cart")
	}
	c.Toggle()
	c.Add(shirt(1))
	if !c.IsOpen() {
		t.Fatalf("add should reopen the cart")
	}
}

func TestUpdateQuantityIsAbsolute(t *testing.T) {
	c := New()
	key := NewLineKey("p1", "", "")
	c.Add(shirt(3))

	c.UpdateQuantity(key, 5)
	line, _ := c.Line(key)
	if line.Quantity != 5 {
		t.Fatalf("update should set 5, got %d", line.Quantity)
	}

	c.UpdateQuantity(key, 3)
	c.Add(shirt(2))
	line, _ = c.Line(key)
	if line.Quantity != 5 {
		t.Fatalf("add should accumulate to 5, got %d", line.Quantity)
	}
}

func TestUpdateQuantityRemovesOnNonPositive(t *testing.T) {
	for _, q := range []int{0, -1} {
		c := New()
		key := NewLineKey("p1", "", "")
		c.Add(shirt(2))
		c.UpdateQuantity(key, q)
		if _, ok := c.Line(key); ok {
			t.Fatalf("quantity %d should remove the line", q)
		}
		if c.Len() != 0 || c.Count() != 0 {
			t.Fatalf("cart should be empty after removal with %d", q)
		}
	}
}

func TestUpdateQuantityUnknownKeyIsNoop(t *testing.T) {
	c := New()
	c.Add(shirt(1))
	c.UpdateQuantity(NewLineKey("missing", "", ""), 9)
	if c.Len() != 1 || c.Count() != 1 {
		t.Fatalf("unknown key should not change state")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	c := New()
	key := NewLineKey("p1", "", "")
	c.Add(shirt(1))
	other := shirt(1)
	other.ProductID = "p2"
	c.Add(other)

	c.Remove(key)
	c.Remove(key)
	c.Remove(NewLineKey("never", "", ""))

	if c.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", c.Len())
	}
	if c.Lines()[0].ProductID != "p2" {
		t.Fatalf("wrong line removed: %+v", c.Lines())
	}
}

func TestClearKeepsOpenState(t *testing.T) {
	c := New()
	c.Add(shirt(1))
	c.Clear()
	if !c.IsOpen() {
		t.Fatalf("clear must not close the cart")
	}
	c.Toggle()
	c.Clear()
	if c.IsOpen() {
		t.Fatalf("clear must not open the cart")
	}
}

func TestToggleDoesNotTouchLines(t *testing.T) {
	c := New()
	c.Add(shirt(2))
	c.Toggle()
	c.Toggle()
	if c.Count() != 2 {
		t.Fatalf("toggle changed lines")
	}
}

func TestDerivedValuesAfterMixedOperations(t *testing.T) {
	c := New()
	jeans := LineItemInput{ProductID: "p2", Name: "Jeans", UnitPrice: decimal.RequireFromString("189.99"), Quantity: 1, Size: "38"}
	c.Add(shirt(2))
	assertDerived(t, c)
	c.Add(jeans)
	assertDerived(t, c)
	c.UpdateQuantity(NewLineKey("p2", "", "38"), 4)
	assertDerived(t, c)
	c.Remove(NewLineKey("p1", "", ""))
	assertDerived(t, c)
	if !c.Subtotal().Equal(decimal.RequireFromString("759.96")) {
		t.Fatalf("subtotal want 759.96 got %s", c.Subtotal())
	}
	c.Clear()
	assertDerived(t, c)
}

func TestScenarioShirt(t *testing.T) {
	c := New()
	c.Add(shirt(1))
	c.Add(shirt(2))

	if c.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", c.Len())
	}
	key := c.Lines()[0].Key
	if c.Count() != 3 {
		t.Fatalf("count want 3 got %d", c.Count())
	}
	if !c.Subtotal().Equal(decimal.NewFromInt(150)) {
		t.Fatalf("subtotal want 150 got %s", c.Subtotal())
	}
	if !c.IsOpen() {
		t.Fatalf("cart should be open")
	}

	c.UpdateQuantity(key, 1)
	if !c.Subtotal().Equal(decimal.NewFromInt(50)) {
		t.Fatalf("subtotal want 50 got %s", c.Subtotal())
	}

	c.Clear()
	if c.Count() != 0 || !c.Subtotal().IsZero() {
		t.Fatalf("cart should be empty, count=%d subtotal=%s", c.Count(), c.Subtotal())
	}
	if !c.IsOpen() {
		t.Fatalf("cart should still be open")
	}
}

func TestLinesReturnsCopies(t *testing.T) {
	c := New()
	c.Add(shirt(1))
	lines := c.Lines()
	lines[0].Quantity = 99
	if c.Count() != 1 {
		t.Fatalf("mutating returned lines leaked into cart")
	}
}

func TestSnapshot(t *testing.T) {
	c := New()
	c.Add(shirt(2))
	snap := c.Snapshot()
	if snap.Count != 2 || !snap.Subtotal.Equal(decimal.NewFromInt(100)) || !snap.IsOpen || len(snap.Lines) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}
