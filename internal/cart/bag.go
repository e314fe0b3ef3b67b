package cart

// Outcome is the uniform result discipline for quantity-mutating operations:
// callers can always tell an applied mutation from a silently corrected one
// from a rejected one.
type Outcome int

const (
	Applied Outcome = iota
	Clamped
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Clamped:
		return "clamped"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

type Result struct {
	Outcome  Outcome `json:"outcome"`
	Quantity int     `json:"quantity"` // quantity after the mutation; 0 when no line remains
}

// Bag holds the cart lines plus the drawer visibility flag. It is a plain
// state container owned by whoever constructs it, not a process-wide
// singleton, so tests get a fresh instance each time.
type Bag struct {
	Lines  []Line `json:"lines"`
	IsOpen bool   `json:"is_open"`
}

// Add inserts a fully-resolved line or increments an existing one by 1.
// Invariant defended: 1 <= quantity <= stock for every line.
func (b *Bag) Add(item Line) Result {
	if item.Size == "" {
		item.Size = "Standard"
	}
	if item.Color == "" {
		item.Color = "Default"
	}

	if i := b.index(item.Key()); i >= 0 {
		line := &b.Lines[i]
		// The incoming payload carries the current stock count; refresh the
		// captured ceiling so a restock lifts the cap.
		line.Stock = item.Stock
		if line.Quantity >= line.Stock {
			return Result{Outcome: Rejected, Quantity: line.Quantity}
		}
		line.Quantity++
		return Result{Outcome: Applied, Quantity: line.Quantity}
	}

	if item.Stock <= 0 {
		return Result{Outcome: Rejected}
	}
	out := Applied
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.Quantity > item.Stock {
		item.Quantity = item.Stock
		out = Clamped
	}
	b.Lines = append(b.Lines, item)
	return Result{Outcome: out, Quantity: item.Quantity}
}

// Remove deletes the line matching (variant, size) unconditionally.
func (b *Bag) Remove(variantID, sizeID int64) Result {
	for i, l := range b.Lines {
		if l.VariantID == variantID && l.SizeID == sizeID {
			b.Lines = append(b.Lines[:i], b.Lines[i+1:]...)
			return Result{Outcome: Applied}
		}
	}
	return Result{Outcome: Rejected}
}

// SetQuantity clamps the requested quantity into [1, stock] before applying.
func (b *Bag) SetQuantity(variantID, sizeID int64, quantity int) Result {
	for i := range b.Lines {
		l := &b.Lines[i]
		if l.VariantID != variantID || l.SizeID != sizeID {
			continue
		}
		safe := quantity
		if safe < 1 {
			safe = 1
		}
		if safe > l.Stock {
			safe = l.Stock
		}
		l.Quantity = safe
		if safe != quantity {
			return Result{Outcome: Clamped, Quantity: safe}
		}
		return Result{Outcome: Applied, Quantity: safe}
	}
	return Result{Outcome: Rejected}
}

// Toggle flips the drawer visibility flag. Presentational state only.
func (b *Bag) Toggle() bool {
	b.IsOpen = !b.IsOpen
	return b.IsOpen
}

func (b *Bag) Clear() {
	b.Lines = nil
	b.IsOpen = false
}

func (b *Bag) Empty() bool { return len(b.Lines) == 0 }

func (b *Bag) Subtotal() int {
	total := 0
	for _, l := range b.Lines {
		qty := l.Quantity
		if qty < 1 {
			qty = 1
		}
		total += l.Price * qty
	}
	return total
}

func (b *Bag) HasProduct(productID int64) bool {
	for _, l := range b.Lines {
		if l.ProductID == productID {
			return true
		}
	}
	return false
}

func (b *Bag) index(k Key) int {
	for i, l := range b.Lines {
		if l.Key() == k {
			return i
		}
	}
	return -1
}
