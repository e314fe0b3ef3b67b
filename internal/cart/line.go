package cart

// Key identifies one purchasable configuration in the bag. SizeID 0 means
// the product has no size variants ("Standard").
type Key struct {
	ProductID int64
	VariantID int64
	SizeID    int64
}

type Line struct {
	ProductID int64  `json:"product_id"`
	VariantID int64  `json:"variant_id"`
	SizeID    int64  `json:"size_id,omitempty"`
	Name      string `json:"name"`
	Price     int    `json:"price"` // rupees, already resolved for the chosen size
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	Stock     int    `json:"stock"` // ceiling captured at time of add
}

func (l Line) Key() Key {
	return Key{ProductID: l.ProductID, VariantID: l.VariantID, SizeID: l.SizeID}
}
