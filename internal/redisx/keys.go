package redisx

import "time"

// Session state namespaces are versioned by name so a schema change ships as
// a rename instead of a destructive migration.
const (
	// Cart lines + drawer flag per session: cart:v3:{session_id}
	KeyCart = "cart:v3:%s"

	// Wishlist product ids per session: wishlist:v1:{session_id}
	KeyWishlist = "wishlist:v1:%s"

	// Applied coupon per checkout session: coupon:v1:{session_id}
	KeyCoupon = "coupon:v1:%s"

	// Cached upstream catalog payloads: catalog:{path?query}
	KeyCatalog = "catalog:%s"

	// Spin-wheel segment config (single global entry)
	KeyWheelItems = "wheel:items"
)

var (
	TTLSession = 30 * 24 * time.Hour
	TTLCoupon  = 24 * time.Hour
	TTLCatalog = 5 * time.Minute
	TTLWheel   = time.Minute
)
