package contract

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"

	"pharmanet/model"
)

// ledgerStub wraps shimtest.MockStub with a per-key mutation log so that
// GetHistoryForKey behaves like a real peer's history index.
type ledgerStub struct {
	*shimtest.MockStub
	history map[string][]*queryresult.KeyModification
	writes  int
}

func newLedgerStub() *ledgerStub {
	return &ledgerStub{
		MockStub: shimtest.NewMockStub("pharmanet", nil),
		history:  map[string][]*queryresult.KeyModification{},
	}
}

func (s *ledgerStub) PutState(key string, value []byte) error {
	if err := s.MockStub.PutState(key, value); err != nil {
		return err
	}
	s.writes++
	stored := make([]byte, len(value))
	copy(stored, value)
	s.history[key] = append(s.history[key], &queryresult.KeyModification{
		TxId:      s.TxID,
		Value:     stored,
		Timestamp: timestamppb.New(time.Unix(1700000000+int64(s.writes), 0)),
	})
	return nil
}

func (s *ledgerStub) GetHistoryForKey(key string) (shim.HistoryQueryIteratorInterface, error) {
	return &historyIterator{mods: s.history[key]}, nil
}

type historyIterator struct {
	mods []*queryresult.KeyModification
	next int
}

func (it *historyIterator) HasNext() bool { return it.next < len(it.mods) }

func (it *historyIterator) Next() (*queryresult.KeyModification, error) {
	if !it.HasNext() {
		return nil, fmt.Errorf("no more history entries")
	}
	mod := it.mods[it.next]
	it.next++
	return mod, nil
}

func (it *historyIterator) Close() error { return nil }

// fixture bundles a stub, a transaction context, and typed wrappers around
// every transaction so tests read like scenarios.
type fixture struct {
	t    *testing.T
	stub *ledgerStub
	ctx  *contractapi.TransactionContext
	txn  int
}

func newFixture(t *testing.T) *fixture {
	stub := newLedgerStub()
	ctx := &contractapi.TransactionContext{}
	ctx.SetStub(stub)
	return &fixture{t: t, stub: stub, ctx: ctx}
}

// tx runs fn inside a mock transaction, like the peer would.
func (f *fixture) tx(fn func()) {
	f.txn++
	id := fmt.Sprintf("tx%04d", f.txn)
	f.stub.MockTransactionStart(id)
	defer f.stub.MockTransactionEnd(id)
	fn()
}

func (f *fixture) register(role model.Role, crn, name, location string) (company *model.Company, err error) {
	f.tx(func() {
		company, err = NewRegistryContract(role).RegisterOrganization(f.ctx, string(role), crn, name, location)
	})
	return company, err
}

// seedNetwork registers one organization of every role.
func (f *fixture) seedNetwork() {
	f.t.Helper()
	for _, org := range []struct {
		role model.Role
		crn  string
		name string
	}{
		{model.RoleManufacturer, "MAN001", "Sun Pharma"},
		{model.RoleDistributor, "DIST001", "VG Pharma"},
		{model.RoleRetailer, "RET001", "upgrad"},
		{model.RoleTransporter, "TRA001", "FedEx"},
	} {
		_, err := f.register(org.role, org.crn, org.name, "Mumbai")
		require.NoError(f.t, err)
	}
}

func (f *fixture) createPO(buyerCRN, sellerCRN, drugName, quantity string) (po *model.PurchaseOrder, err error) {
	f.tx(func() {
		po, err = NewOrderContract().CreatePurchaseOrder(f.ctx, buyerCRN, sellerCRN, drugName, quantity)
	})
	return po, err
}

func (f *fixture) addDrug(drugName, serialNo, mfgDate, expDate, crn string) (unit *model.DrugUnit, err error) {
	f.tx(func() {
		unit, err = NewDrugContract().AddDrug(f.ctx, drugName, serialNo, mfgDate, expDate, crn)
	})
	return unit, err
}

func (f *fixture) createShipment(buyerCRN, drugName string, assets []string, transporterCRN string) (shipment *model.Shipment, err error) {
	list, merr := json.Marshal(assets)
	require.NoError(f.t, merr)
	f.tx(func() {
		shipment, err = NewShippingContract().CreateShipment(f.ctx, buyerCRN, drugName, string(list), transporterCRN)
	})
	return shipment, err
}

func (f *fixture) updateShipment(buyerCRN, drugName, transporterCRN string) (units []*model.DrugUnit, err error) {
	f.tx(func() {
		units, err = NewShippingContract().UpdateShipment(f.ctx, buyerCRN, drugName, transporterCRN)
	})
	return units, err
}

func (f *fixture) retailDrug(drugName, serialNo, retailerCRN, consumerID string) (unit *model.DrugUnit, err error) {
	f.tx(func() {
		unit, err = NewDrugContract().RetailDrug(f.ctx, drugName, serialNo, retailerCRN, consumerID)
	})
	return unit, err
}

func (f *fixture) viewState(drugName, serialNo string) (unit *model.DrugUnit, err error) {
	f.tx(func() {
		unit, err = NewQueryContract().ViewDrugCurrentState(f.ctx, drugName, serialNo)
	})
	return unit, err
}

func (f *fixture) viewHistory(drugName, serialNo string) (revs []model.DrugRevision, err error) {
	f.tx(func() {
		revs, err = NewQueryContract().ViewHistory(f.ctx, drugName, serialNo)
	})
	return revs, err
}

// rawState reads the stored bytes under a company CRN key, bypassing the
// handlers, for before/after comparisons.
func (f *fixture) rawCompanyState(role model.Role, crn string) []byte {
	f.t.Helper()
	key, err := companyKey(f.ctx, role, crn)
	require.NoError(f.t, err)
	value, err := f.stub.GetState(key)
	require.NoError(f.t, err)
	return value
}

func (f *fixture) rawDrugState(drugName, serialNo string) []byte {
	f.t.Helper()
	key, err := drugKey(f.ctx, drugName, serialNo)
	require.NoError(f.t, err)
	value, err := f.stub.GetState(key)
	require.NoError(f.t, err)
	return value
}

func (f *fixture) rawShipmentState(buyerCRN, drugName string) []byte {
	f.t.Helper()
	key, err := shipmentKey(f.ctx, buyerCRN, drugName)
	require.NoError(f.t, err)
	value, err := f.stub.GetState(key)
	require.NoError(f.t, err)
	return value
}
