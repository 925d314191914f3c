package model

// PurchaseOrder is a buyer's request to purchase a quantity of a drug from
// the seller directly above it in the hierarchy. One order exists per
// (buyer, drug) pair; a later order for the same pair replaces it.
type PurchaseOrder struct {
	PoID     string `json:"poID"`
	DrugName string `json:"drugName"`
	Quantity int    `json:"quantity"`
	Buyer    string `json:"buyer"`
	Seller   string `json:"seller"`
}
