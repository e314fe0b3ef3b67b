package commerce

// Shapes of the upstream commerce API responses this service interprets.
// Catalog payloads (products, categories, banners) are proxied as raw JSON
// and never re-modeled here.

type CouponResult struct {
	Success        bool    `json:"success"`
	Message        string  `json:"message"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalTotal     float64 `json:"final_total"`
	CouponCode     string  `json:"coupon_code"`
}

type OrderItem struct {
	ProductID int64  `json:"product_id"`
	VariantID int64  `json:"variant_id"`
	SizeID    *int64 `json:"size_id"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type OrderRequest struct {
	FullName        string      `json:"full_name"`
	PhoneNumber     string      `json:"phone_number"` // +91 prefixed
	Address         string      `json:"address"`
	Pincode         string      `json:"pincode"`
	PaymentMethod   string      `json:"payment_method"` // "upi" | "cod"
	TotalAmount     int         `json:"total_amount"`
	ShippingCharges int         `json:"shipping_charges"`
	CouponCode      string      `json:"coupon_code,omitempty"`
	Items           []OrderItem `json:"items"`
}

type OrderResult struct {
	Success bool   `json:"success"`
	OrderID int64  `json:"order_id"`
	Message string `json:"message"`
}

type WheelSegment struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type SpinResult struct {
	Success      bool   `json:"success"`
	AlreadySpun  bool   `json:"already_spun"`
	CouponCode   string `json:"coupon_code"`
	DiscountText string `json:"discount_text"`
	Message      string `json:"message"`
}
