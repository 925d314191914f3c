package model

import "time"

// DrugUnit is a single serialized drug package. Custody moves only through
// the shipment and retail handlers; ShipmentLog is append-only.
type DrugUnit struct {
	ProductID         string  `json:"productID"`
	Name              string  `json:"name"`
	Manufacturer      string  `json:"manufacturer"`
	ManufacturingDate string  `json:"manufacturingDate"`
	ExpiryDate        string  `json:"expiryDate"`
	Owner             Custody `json:"owner"`
	// ShipmentLog holds a snapshot of every shipment the unit passed
	// through, in transit order.
	ShipmentLog []Shipment `json:"shipment"`
}

// DrugRevision is one historical value of a drug unit key, as recorded by
// the ledger's per-key version log.
type DrugRevision struct {
	TxID      string    `json:"txId"`
	Timestamp time.Time `json:"timestamp"`
	IsDelete  bool      `json:"isDelete"`
	Unit      *DrugUnit `json:"unit,omitempty"`
}
