package contract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"pharmanet/model"
)

// DrugContract originates drug units and records their retail sale.
type DrugContract struct {
	contractapi.Contract
}

// NewDrugContract builds the drug asset contract.
func NewDrugContract() *DrugContract {
	c := &DrugContract{}
	c.Name = drugNamespace
	return c
}

// AddDrug registers one serialized drug unit for a registered manufacturer.
// The new unit starts in manufacturer custody with an empty shipment log.
func (c *DrugContract) AddDrug(ctx contractapi.TransactionContextInterface, drugName, serialNo, mfgDate, expDate, manufacturerCRN string) (*model.DrugUnit, error) {
	if err := requireString(drugName, "drugName"); err != nil {
		return nil, err
	}
	if err := requireString(serialNo, "serialNo"); err != nil {
		return nil, err
	}
	if err := requireString(manufacturerCRN, "manufacturerCRN"); err != nil {
		return nil, err
	}
	if err := parseDate(mfgDate, "mfgDate"); err != nil {
		return nil, err
	}
	if err := parseDate(expDate, "expDate"); err != nil {
		return nil, err
	}

	makerKey, err := companyKey(ctx, model.RoleManufacturer, manufacturerCRN)
	if err != nil {
		return nil, err
	}
	var maker model.Company
	found, err := readJSON(ctx, makerKey, &maker)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: no manufacturer registered for CRN %s", ErrNotFound, manufacturerCRN)
	}

	productKey, err := drugKey(ctx, drugName, serialNo)
	if err != nil {
		return nil, err
	}
	existing, err := readState(ctx, productKey)
	if err != nil {
		return nil, err
	}
	if strings.Contains(string(existing), drugName+"-"+serialNo) {
		return nil, fmt.Errorf("%w: %s with serial %s", ErrDuplicateAsset, drugName, serialNo)
	}

	unit := &model.DrugUnit{
		ProductID:         productKey,
		Name:              drugName,
		Manufacturer:      makerKey,
		ManufacturingDate: mfgDate,
		ExpiryDate:        expDate,
		Owner:             model.RoleCustody(model.RoleManufacturer),
		ShipmentLog:       []model.Shipment{},
	}
	if err := writeJSON(ctx, productKey, unit); err != nil {
		return nil, err
	}
	logger.Infof("drug added: %s serial %s by CRN %s", drugName, serialNo, manufacturerCRN)
	return unit, nil
}

// RetailDrug sells a unit to a consumer. Only the retailer currently
// holding the unit may sell it; the shipment log is left untouched.
func (c *DrugContract) RetailDrug(ctx contractapi.TransactionContextInterface, drugName, serialNo, retailerCRN, consumerID string) (*model.DrugUnit, error) {
	if err := requireString(drugName, "drugName"); err != nil {
		return nil, err
	}
	if err := requireString(serialNo, "serialNo"); err != nil {
		return nil, err
	}
	if err := requireString(retailerCRN, "retailerCRN"); err != nil {
		return nil, err
	}
	if err := requireString(consumerID, "consumerID"); err != nil {
		return nil, err
	}

	productKey, err := drugKey(ctx, drugName, serialNo)
	if err != nil {
		return nil, err
	}
	var unit model.DrugUnit
	found, err := readJSON(ctx, productKey, &unit)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s with serial %s", ErrAssetNotFound, drugName, serialNo)
	}
	if !unit.Owner.HeldBy(retailerCRN) {
		return nil, fmt.Errorf("%w: retailer %s does not hold %s serial %s (owner %s)",
			ErrNotOwner, retailerCRN, drugName, serialNo, unit.Owner)
	}

	unit.Owner = model.HolderCustody(consumerID)
	if err := writeJSON(ctx, productKey, &unit); err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(map[string]string{
		"productID":   unit.ProductID,
		"drugName":    drugName,
		"retailerCRN": retailerCRN,
	}); err == nil {
		if err := ctx.GetStub().SetEvent("DrugSold", payload); err != nil {
			logger.Warningf("event DrugSold: %v", err)
		}
	}
	logger.Infof("drug sold: %s serial %s by retailer %s", drugName, serialNo, retailerCRN)
	return &unit, nil
}
