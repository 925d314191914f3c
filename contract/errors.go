package contract

import "errors"

// Failure classes surfaced by the transaction handlers. Handlers wrap these
// with fmt.Errorf("...: %w", ...) so callers can match with errors.Is while
// still seeing a human-readable message.
var (
	// ErrInvalidRole rejects an unsupported role, or a role that does not
	// match the registry contract it was submitted to.
	ErrInvalidRole = errors.New("invalid organisation role")

	// ErrDuplicateRegistration rejects re-registration of a CRN-name pair.
	ErrDuplicateRegistration = errors.New("organisation already registered")

	// ErrNotFound covers a missing organization, purchase order, or
	// shipment record.
	ErrNotFound = errors.New("record not found")

	// ErrHierarchyViolation rejects a purchase order whose buyer is not
	// ranked directly below its seller.
	ErrHierarchyViolation = errors.New("hierarchy validation failed")

	// ErrQuantityMismatch rejects a shipment whose asset list length does
	// not equal the purchase order quantity.
	ErrQuantityMismatch = errors.New("asset list does not match purchase order quantity")

	// ErrAssetNotFound covers a missing drug unit.
	ErrAssetNotFound = errors.New("drug asset not found")

	// ErrDuplicateAsset rejects re-registration of a drugName-serialNo pair.
	ErrDuplicateAsset = errors.New("drug asset already registered")

	// ErrNotOwner rejects a retail sale by a party that does not hold the
	// unit.
	ErrNotOwner = errors.New("caller does not own the drug asset")

	// ErrStoreFailure marks an error raised by the ledger store itself.
	// It is never used for a key that is merely absent.
	ErrStoreFailure = errors.New("ledger store failure")

	// ErrInvalidArgument rejects malformed input before any ledger read.
	ErrInvalidArgument = errors.New("invalid argument")
)
