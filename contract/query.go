package contract

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"pharmanet/model"
)

// QueryContract exposes the read-only views over drug units: the full
// version history of a unit and its current state.
type QueryContract struct {
	contractapi.Contract
}

// NewQueryContract builds the query contract.
func NewQueryContract() *QueryContract {
	c := &QueryContract{}
	c.Name = namespacePrefix + "query"
	return c
}

// ViewHistory returns every value ever written under the drug unit key,
// oldest first, each carrying the transaction ID and commit timestamp
// recorded by the ledger. A key that was never written yields an empty
// list.
func (c *QueryContract) ViewHistory(ctx contractapi.TransactionContextInterface, drugName, serialNo string) ([]model.DrugRevision, error) {
	if err := requireString(drugName, "drugName"); err != nil {
		return nil, err
	}
	if err := requireString(serialNo, "serialNo"); err != nil {
		return nil, err
	}

	key, err := drugKey(ctx, drugName, serialNo)
	if err != nil {
		return nil, err
	}
	iter, err := ctx.GetStub().GetHistoryForKey(key)
	if err != nil {
		return nil, fmt.Errorf("%w: history of %q: %v", ErrStoreFailure, key, err)
	}
	defer iter.Close()

	revisions := []model.DrugRevision{}
	for iter.HasNext() {
		mod, err := iter.Next()
		if err != nil {
			return nil, fmt.Errorf("%w: iterating history of %q: %v", ErrStoreFailure, key, err)
		}
		rev := model.DrugRevision{
			TxID:     mod.TxId,
			IsDelete: mod.IsDelete,
		}
		if mod.Timestamp != nil {
			rev.Timestamp = mod.Timestamp.AsTime()
		}
		if len(mod.Value) > 0 {
			var unit model.DrugUnit
			if err := json.Unmarshal(mod.Value, &unit); err != nil {
				logger.Warningf("history of %q: revision %s holds malformed JSON: %v", key, mod.TxId, err)
			} else {
				rev.Unit = &unit
			}
		}
		revisions = append(revisions, rev)
	}
	return revisions, nil
}

// ViewDrugCurrentState returns the latest value of the drug unit. The
// record must exist and carry the requested drug name.
func (c *QueryContract) ViewDrugCurrentState(ctx contractapi.TransactionContextInterface, drugName, serialNo string) (*model.DrugUnit, error) {
	if err := requireString(drugName, "drugName"); err != nil {
		return nil, err
	}
	if err := requireString(serialNo, "serialNo"); err != nil {
		return nil, err
	}

	key, err := drugKey(ctx, drugName, serialNo)
	if err != nil {
		return nil, err
	}
	var unit model.DrugUnit
	found, err := readJSON(ctx, key, &unit)
	if err != nil {
		return nil, err
	}
	if !found || unit.Name != drugName {
		return nil, fmt.Errorf("%w: %s with serial %s", ErrAssetNotFound, drugName, serialNo)
	}
	return &unit, nil
}
