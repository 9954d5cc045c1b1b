package store

// Keys names the persisted slots of one storefront.
type Keys struct {
	Cart         string
	Subscribers  string
	Feedback     string
	Contacts     string
	CustomOrders string
	LastCheckout string
}

// NewKeys derives every slot key from prefix, e.g. "ccc" gives "ccc_cart".
func NewKeys(prefix string) Keys {
	return Keys{
		Cart:         prefix + "_cart",
		Subscribers:  prefix + "_subscribers",
		Feedback:     prefix + "_feedback",
		Contacts:     prefix + "_contacts",
		CustomOrders: prefix + "_custom_orders",
		LastCheckout: prefix + "_last_checkout",
	}
}
