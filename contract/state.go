package contract

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"

	"pharmanet/model"
)

var logger = flogging.MustGetLogger("pharmanet.contract")

// readState fetches the raw value under key. A store error is wrapped as
// ErrStoreFailure; an absent key returns a nil slice and no error. The two
// outcomes are never conflated.
func readState(ctx contractapi.TransactionContextInterface, key string) ([]byte, error) {
	value, err := ctx.GetStub().GetState(key)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %v", ErrStoreFailure, key, err)
	}
	return value, nil
}

// readJSON unmarshals the record under key into out. found is false when
// the key has never been written.
func readJSON(ctx contractapi.TransactionContextInterface, key string, out interface{}) (found bool, err error) {
	value, err := readState(ctx, key)
	if err != nil {
		return false, err
	}
	if len(value) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(value, out); err != nil {
		return false, fmt.Errorf("%w: record %q holds malformed JSON: %v", ErrStoreFailure, key, err)
	}
	return true, nil
}

// writeJSON serializes v and writes it under key.
func writeJSON(ctx contractapi.TransactionContextInterface, key string, v interface{}) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshalling record %q: %w", key, err)
	}
	if err := ctx.GetStub().PutState(key, value); err != nil {
		return fmt.Errorf("%w: writing %q: %v", ErrStoreFailure, key, err)
	}
	return nil
}

// rankedBuyerRoles is the probe order used to resolve a buyer CRN when the
// caller does not name the role: distributor first, then the fallbacks. The
// distributor-first order follows the delivery flow of the network, where
// most buyers are distributors.
var rankedBuyerRoles = []model.Role{model.RoleDistributor, model.RoleRetailer, model.RoleManufacturer}

// rankedSellerRoles is the probe order for seller CRNs.
var rankedSellerRoles = []model.Role{model.RoleManufacturer, model.RoleDistributor, model.RoleRetailer}

// findCompany probes the given role namespaces in order and returns the
// first organization registered under crn. A CRN registered under more than
// one role resolves to the earliest probed namespace.
func findCompany(ctx contractapi.TransactionContextInterface, crn string, roles ...model.Role) (*model.Company, model.Role, error) {
	for _, role := range roles {
		key, err := companyKey(ctx, role, crn)
		if err != nil {
			return nil, "", err
		}
		var company model.Company
		found, err := readJSON(ctx, key, &company)
		if err != nil {
			return nil, "", err
		}
		if found {
			return &company, role, nil
		}
	}
	return nil, "", fmt.Errorf("%w: no organisation registered for CRN %s", ErrNotFound, crn)
}

// findOrder probes the buyer-role order namespaces for the live purchase
// order of a (buyer, drug) pair.
func findOrder(ctx contractapi.TransactionContextInterface, buyerCRN, drugName string) (*model.PurchaseOrder, error) {
	for _, role := range rankedBuyerRoles {
		key, err := orderKey(ctx, role, buyerCRN, drugName)
		if err != nil {
			return nil, err
		}
		var po model.PurchaseOrder
		found, err := readJSON(ctx, key, &po)
		if err != nil {
			return nil, err
		}
		if found {
			return &po, nil
		}
	}
	return nil, fmt.Errorf("%w: no purchase order for buyer %s and drug %s", ErrNotFound, buyerCRN, drugName)
}
