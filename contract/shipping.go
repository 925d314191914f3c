package contract

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"pharmanet/model"
)

// ShippingContract drives the per-(buyer, drug) shipment state machine:
// absent -> in-transit -> delivered. Custody of every unit in the
// consignment moves with the shipment.
type ShippingContract struct {
	contractapi.Contract
}

// NewShippingContract builds the shipment contract.
func NewShippingContract() *ShippingContract {
	c := &ShippingContract{}
	c.Name = shipmentNamespace
	return c
}

// shipmentEvent is the payload emitted on shipment transitions.
type shipmentEvent struct {
	ShipmentID string `json:"shipmentID"`
	DrugName   string `json:"drugName"`
	BuyerCRN   string `json:"buyerCRN"`
	Status     string `json:"status"`
	Units      int    `json:"units"`
}

// CreateShipment assembles the consignment for the live purchase order of
// (buyerCRN, drugName) and hands custody of every listed unit to the
// transporter. Every unit is read and checked before anything is written,
// so a missing asset leaves the ledger untouched.
func (c *ShippingContract) CreateShipment(ctx contractapi.TransactionContextInterface, buyerCRN, drugName, assetKeys, transporterCRN string) (*model.Shipment, error) {
	if err := requireString(buyerCRN, "buyerCRN"); err != nil {
		return nil, err
	}
	if err := requireString(drugName, "drugName"); err != nil {
		return nil, err
	}
	if err := requireString(transporterCRN, "transporterCRN"); err != nil {
		return nil, err
	}
	assets, err := parseAssetList(assetKeys)
	if err != nil {
		return nil, err
	}

	po, err := findOrder(ctx, buyerCRN, drugName)
	if err != nil {
		return nil, err
	}
	transporter, _, err := findCompany(ctx, transporterCRN, model.RoleTransporter)
	if err != nil {
		return nil, fmt.Errorf("resolving transporter: %w", err)
	}
	if len(assets) != po.Quantity {
		return nil, fmt.Errorf("%w: purchase order wants %d units, asset list has %d",
			ErrQuantityMismatch, po.Quantity, len(assets))
	}

	// Validate every asset before the first write.
	keys, units, err := c.loadUnits(ctx, assets)
	if err != nil {
		return nil, err
	}

	shipKey, err := shipmentKey(ctx, buyerCRN, drugName)
	if err != nil {
		return nil, err
	}
	transporterKey, err := companyKey(ctx, model.RoleTransporter, transporter.Name+"-"+transporterCRN)
	if err != nil {
		return nil, err
	}
	shipment := &model.Shipment{
		ShipmentID:  shipKey,
		Creator:     po.Seller,
		Assets:      assets,
		Transporter: transporterKey,
		Status:      model.StatusInTransit,
	}

	for i, unit := range units {
		unit.Owner = model.RoleCustody(model.RoleTransporter)
		unit.ShipmentLog = append(unit.ShipmentLog, *shipment)
		if err := writeJSON(ctx, keys[i], unit); err != nil {
			return nil, err
		}
	}
	if err := writeJSON(ctx, shipKey, shipment); err != nil {
		return nil, err
	}

	c.emit(ctx, "ShipmentCreated", shipment, drugName, buyerCRN)
	logger.Infof("shipment created: %d x %s to %s via %s", len(assets), drugName, buyerCRN, transporterCRN)
	return shipment, nil
}

// UpdateShipment finalizes delivery: custody of every unit in the
// consignment passes to the buyer and the shipment is marked delivered.
// Returns the updated units.
func (c *ShippingContract) UpdateShipment(ctx contractapi.TransactionContextInterface, buyerCRN, drugName, transporterCRN string) ([]*model.DrugUnit, error) {
	if err := requireString(buyerCRN, "buyerCRN"); err != nil {
		return nil, err
	}
	if err := requireString(drugName, "drugName"); err != nil {
		return nil, err
	}
	if err := requireString(transporterCRN, "transporterCRN"); err != nil {
		return nil, err
	}

	// The buyer is whichever org holds the CRN, distributor namespace
	// probed before retailer.
	if _, _, err := findCompany(ctx, buyerCRN, model.RoleDistributor, model.RoleRetailer); err != nil {
		return nil, fmt.Errorf("resolving buyer: %w", err)
	}
	if _, _, err := findCompany(ctx, transporterCRN, model.RoleTransporter); err != nil {
		return nil, fmt.Errorf("resolving transporter: %w", err)
	}

	shipKey, err := shipmentKey(ctx, buyerCRN, drugName)
	if err != nil {
		return nil, err
	}
	var shipment model.Shipment
	found, err := readJSON(ctx, shipKey, &shipment)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: no shipment for buyer %s and drug %s", ErrNotFound, buyerCRN, drugName)
	}
	if shipment.Status == model.StatusDelivered {
		return nil, fmt.Errorf("%w: shipment for buyer %s and drug %s is already delivered", ErrInvalidArgument, buyerCRN, drugName)
	}

	keys, units, err := c.loadUnits(ctx, shipment.Assets)
	if err != nil {
		return nil, err
	}

	shipment.Transporter = transporterCRN
	shipment.Status = model.StatusDelivered

	for i, unit := range units {
		unit.Owner = model.HolderCustody(buyerCRN)
		unit.ShipmentLog = append(unit.ShipmentLog, shipment)
		if err := writeJSON(ctx, keys[i], unit); err != nil {
			return nil, err
		}
	}
	if err := writeJSON(ctx, shipKey, &shipment); err != nil {
		return nil, err
	}

	c.emit(ctx, "ShipmentDelivered", &shipment, drugName, buyerCRN)
	logger.Infof("shipment delivered: %d x %s to %s", len(units), drugName, buyerCRN)
	return units, nil
}

// loadUnits reads every drug unit named in assets. No unit is written here;
// one missing asset fails the whole batch.
func (c *ShippingContract) loadUnits(ctx contractapi.TransactionContextInterface, assets []string) ([]string, []*model.DrugUnit, error) {
	keys := make([]string, len(assets))
	units := make([]*model.DrugUnit, len(assets))
	for i, asset := range assets {
		key, err := assetKey(ctx, asset)
		if err != nil {
			return nil, nil, err
		}
		var unit model.DrugUnit
		found, err := readJSON(ctx, key, &unit)
		if err != nil {
			return nil, nil, err
		}
		if !found {
			return nil, nil, fmt.Errorf("%w: asset %s", ErrAssetNotFound, asset)
		}
		keys[i] = key
		units[i] = &unit
	}
	return keys, units, nil
}

func (c *ShippingContract) emit(ctx contractapi.TransactionContextInterface, name string, shipment *model.Shipment, drugName, buyerCRN string) {
	payload, err := json.Marshal(shipmentEvent{
		ShipmentID: shipment.ShipmentID,
		DrugName:   drugName,
		BuyerCRN:   buyerCRN,
		Status:     string(shipment.Status),
		Units:      len(shipment.Assets),
	})
	if err != nil {
		logger.Warningf("event %s: marshalling payload: %v", name, err)
		return
	}
	if err := ctx.GetStub().SetEvent(name, payload); err != nil {
		logger.Warningf("event %s: %v", name, err)
	}
}
