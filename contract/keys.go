package contract

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"pharmanet/model"
)

// Composite key namespaces. Every entity type gets its own namespace so keys
// can never collide across types; purchase orders live beside, not inside,
// the buyer's organization namespace.
const (
	namespacePrefix   = "org.pharmanet."
	shipmentNamespace = namespacePrefix + "shipment"
	drugNamespace     = namespacePrefix + "drug"
)

func roleNamespace(r model.Role) string {
	return namespacePrefix + string(r)
}

func orderNamespace(buyer model.Role) string {
	return roleNamespace(buyer) + ".po"
}

// companyKey addresses an organization record by CRN within its role
// namespace.
func companyKey(ctx contractapi.TransactionContextInterface, r model.Role, crn string) (string, error) {
	return buildKey(ctx, roleNamespace(r), crn)
}

// orderKey addresses the single live purchase order for a (buyer, drug)
// pair.
func orderKey(ctx contractapi.TransactionContextInterface, buyer model.Role, buyerCRN, drugName string) (string, error) {
	return buildKey(ctx, orderNamespace(buyer), buyerCRN+"-"+drugName)
}

// shipmentKey addresses the single live shipment for a (buyer, drug) pair.
func shipmentKey(ctx contractapi.TransactionContextInterface, buyerCRN, drugName string) (string, error) {
	return buildKey(ctx, shipmentNamespace, buyerCRN+"-"+drugName)
}

// drugKey addresses one serialized drug unit.
func drugKey(ctx contractapi.TransactionContextInterface, drugName, serialNo string) (string, error) {
	return buildKey(ctx, drugNamespace, drugName+"-"+serialNo)
}

// assetKey addresses a drug unit by its already joined drugName-serialNo
// part, as carried in shipment asset lists.
func assetKey(ctx contractapi.TransactionContextInterface, asset string) (string, error) {
	return buildKey(ctx, drugNamespace, asset)
}

// buildKey is the one place composite keys are minted. The stub delimits the
// namespace and each part with U+0000, so distinct part sequences cannot
// collide within a namespace.
func buildKey(ctx contractapi.TransactionContextInterface, namespace string, parts ...string) (string, error) {
	key, err := ctx.GetStub().CreateCompositeKey(namespace, parts)
	if err != nil {
		return "", fmt.Errorf("building key in namespace %s: %w", namespace, err)
	}
	return key, nil
}
