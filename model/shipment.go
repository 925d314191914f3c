package model

// ShipmentStatus tracks the shipment state machine: a shipment is created
// in transit and finalized as delivered.
type ShipmentStatus string

const (
	StatusInTransit ShipmentStatus = "in-transit"
	StatusDelivered ShipmentStatus = "delivered"
)

// Shipment is a batch transfer of drug units from the seller named on a
// purchase order to the buyer, via a transporter. Keyed by
// (buyerCRN, drugName), so at most one shipment is live per pair.
type Shipment struct {
	ShipmentID string `json:"shipmentID"`
	// Creator is the seller key copied from the purchase order.
	Creator string `json:"creator"`
	// Assets lists the drug unit keys (drugName-serialNo) in the consignment.
	Assets      []string       `json:"assets"`
	Transporter string         `json:"transporter"`
	Status      ShipmentStatus `json:"status"`
}
