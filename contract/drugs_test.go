package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmanet/model"
)

func TestAddDrug(t *testing.T) {
	f := newFixture(t)
	f.seedNetwork()

	unit, err := f.addDrug("ASPIRIN", "001", "2024-01-01", "2026-01-01", "MAN001")
	require.NoError(t, err)
	assert.Equal(t, "ASPIRIN", unit.Name)
	assert.Equal(t, "2024-01-01", unit.ManufacturingDate)
	assert.Equal(t, "2026-01-01", unit.ExpiryDate)
	assert.True(t, unit.Owner.HeldByRole(model.RoleManufacturer))
	assert.NotNil(t, unit.ShipmentLog)
	assert.Empty(t, unit.ShipmentLog)
}

func TestAddDrugUnregisteredManufacturer(t *testing.T) {
	f := newFixture(t)
	_, err := f.addDrug("ASPIRIN", "001", "2024-01-01", "2026-01-01", "NOBODY")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddDrugDuplicate(t *testing.T) {
	f := newFixture(t)
	f.seedNetwork()
	_, err := f.addDrug("ASPIRIN", "001", "2024-01-01", "2026-01-01", "MAN001")
	require.NoError(t, err)
	_, err = f.addDrug("ASPIRIN", "001", "2024-06-01", "2026-06-01", "MAN001")
	require.ErrorIs(t, err, ErrDuplicateAsset)
}

func TestAddDrugBadDates(t *testing.T) {
	f := newFixture(t)
	f.seedNetwork()
	_, err := f.addDrug("ASPIRIN", "001", "01/01/2024", "2026-01-01", "MAN001")
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = f.addDrug("ASPIRIN", "001", "2024-01-01", "someday", "MAN001")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRetailDrug(t *testing.T) {
	f := newFixture(t)
	f.seedNetwork()
	assets := seedDrugs(t, f, 1)

	_, err := f.createPO("RET001", "DIST001", "ASPIRIN", "1")
	require.NoError(t, err)
	_, err = f.createShipment("RET001", "ASPIRIN", assets, "TRA001")
	require.NoError(t, err)
	_, err = f.updateShipment("RET001", "ASPIRIN", "TRA001")
	require.NoError(t, err)

	unit, err := f.retailDrug("ASPIRIN", "001", "RET001", "AADHAAR-42")
	require.NoError(t, err)
	assert.True(t, unit.Owner.HeldBy("AADHAAR-42"))
	// The sale changes custody only; the shipment log stays as delivered.
	assert.Len(t, unit.ShipmentLog, 2)
}

func TestRetailDrugNotOwner(t *testing.T) {
	f := newFixture(t)
	f.seedNetwork()
	seedDrugs(t, f, 1)

	// Unit is still in manufacturer custody, not held by the retailer.
	_, err := f.retailDrug("ASPIRIN", "001", "RET001", "AADHAAR-42")
	require.ErrorIs(t, err, ErrNotOwner)
}

func TestRetailDrugWrongRetailer(t *testing.T) {
	f := newFixture(t)
	f.seedNetwork()
	_, err := f.register(model.RoleRetailer, "RET002", "MediMart", "Pune")
	require.NoError(t, err)
	assets := seedDrugs(t, f, 1)

	_, err = f.createPO("RET001", "DIST001", "ASPIRIN", "1")
	require.NoError(t, err)
	_, err = f.createShipment("RET001", "ASPIRIN", assets, "TRA001")
	require.NoError(t, err)
	_, err = f.updateShipment("RET001", "ASPIRIN", "TRA001")
	require.NoError(t, err)

	// RET002 never received the unit.
	_, err = f.retailDrug("ASPIRIN", "001", "RET002", "AADHAAR-42")
	require.ErrorIs(t, err, ErrNotOwner)
}

func TestRetailDrugMissing(t *testing.T) {
	f := newFixture(t)
	f.seedNetwork()
	_, err := f.retailDrug("ASPIRIN", "404", "RET001", "AADHAAR-42")
	require.ErrorIs(t, err, ErrAssetNotFound)
}
