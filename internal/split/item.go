package split

// LineItem is one purchasable row parsed from a receipt. Price is in cents.
// Identity is the ID, assigned when a parse is seeded into the ledger: two
// rows with the same name and price are still distinct items.
type LineItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"` // Price in cents
}
