package contract

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"pharmanet/model"
)

// OrderContract creates purchase orders between adjacent levels of the
// supply-chain hierarchy.
type OrderContract struct {
	contractapi.Contract
}

// NewOrderContract builds the purchase-order contract.
func NewOrderContract() *OrderContract {
	c := &OrderContract{}
	c.Name = namespacePrefix + "orders"
	return c
}

// CreatePurchaseOrder records the buyer's order for a quantity of a drug
// from the seller. The buyer must sit exactly one hierarchy rank below the
// seller; a second order for the same (buyer, drug) pair replaces the
// first.
func (c *OrderContract) CreatePurchaseOrder(ctx contractapi.TransactionContextInterface, buyerCRN, sellerCRN, drugName, quantity string) (*model.PurchaseOrder, error) {
	if err := requireString(buyerCRN, "buyerCRN"); err != nil {
		return nil, err
	}
	if err := requireString(sellerCRN, "sellerCRN"); err != nil {
		return nil, err
	}
	if err := requireString(drugName, "drugName"); err != nil {
		return nil, err
	}
	qty, err := parseQuantity(quantity)
	if err != nil {
		return nil, err
	}

	buyer, buyerRole, err := findCompany(ctx, buyerCRN, rankedBuyerRoles...)
	if err != nil {
		return nil, fmt.Errorf("resolving buyer: %w", err)
	}
	seller, sellerRole, err := findCompany(ctx, sellerCRN, rankedSellerRoles...)
	if err != nil {
		return nil, fmt.Errorf("resolving seller: %w", err)
	}

	buyerRank, _ := buyer.Role.Rank()
	sellerRank, _ := seller.Role.Rank()
	if buyerRank-sellerRank != 1 {
		return nil, fmt.Errorf("%w: %s (rank %d) cannot buy from %s (rank %d)",
			ErrHierarchyViolation, buyerRole, buyerRank, sellerRole, sellerRank)
	}

	poKey, err := orderKey(ctx, buyerRole, buyerCRN, drugName)
	if err != nil {
		return nil, err
	}
	buyerKey, err := companyKey(ctx, buyerRole, buyerCRN)
	if err != nil {
		return nil, err
	}
	sellerKey, err := companyKey(ctx, sellerRole, sellerCRN)
	if err != nil {
		return nil, err
	}

	po := &model.PurchaseOrder{
		PoID:     poKey,
		DrugName: drugName,
		Quantity: qty,
		Buyer:    buyerKey,
		Seller:   sellerKey,
	}
	if err := writeJSON(ctx, poKey, po); err != nil {
		return nil, err
	}
	logger.Infof("purchase order: %s buys %d x %s from %s", buyerCRN, qty, drugName, sellerCRN)
	return po, nil
}
