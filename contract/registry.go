package contract

import (
	"fmt"
	"strings"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"pharmanet/model"
)

// RegistryContract registers organizations for exactly one role namespace.
// The chaincode ships one instance per role, named after the namespace, so
// the role argument doubles as a cross-check that the caller invoked the
// contract it meant to.
type RegistryContract struct {
	contractapi.Contract
	role model.Role
}

// NewRegistryContract builds the registry contract for one role namespace.
func NewRegistryContract(r model.Role) *RegistryContract {
	c := &RegistryContract{role: r}
	c.Name = roleNamespace(r)
	return c
}

// RegisterOrganization records a new organization under its CRN. A CRN-name
// pair already present in the role namespace is rejected; the stored record
// carries the refined CRN-name company key and the fixed hierarchy rank of
// the role.
func (c *RegistryContract) RegisterOrganization(ctx contractapi.TransactionContextInterface, role, crn, name, location string) (*model.Company, error) {
	if err := requireString(role, "role"); err != nil {
		return nil, err
	}
	if err := requireString(crn, "companyCRN"); err != nil {
		return nil, err
	}
	if err := requireString(name, "companyName"); err != nil {
		return nil, err
	}
	if err := requireString(location, "location"); err != nil {
		return nil, err
	}

	declared, err := model.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRole, err)
	}
	if declared != c.role {
		return nil, fmt.Errorf("%w: only %s registrations are accepted here, got %s", ErrInvalidRole, c.role, declared)
	}

	key, err := companyKey(ctx, c.role, crn)
	if err != nil {
		return nil, err
	}
	existing, err := readState(ctx, key)
	if err != nil {
		return nil, err
	}
	if strings.Contains(string(existing), crn+"-"+name) {
		return nil, fmt.Errorf("%w: %s %s with CRN %s", ErrDuplicateRegistration, c.role, name, crn)
	}

	refined, err := companyKey(ctx, c.role, crn+"-"+name)
	if err != nil {
		return nil, err
	}
	rank, _ := c.role.Rank()
	company := &model.Company{
		CompanyID:    refined,
		Name:         name,
		Location:     location,
		Role:         c.role,
		HierarchyKey: rank,
	}
	if err := writeJSON(ctx, key, company); err != nil {
		return nil, err
	}
	logger.Infof("registered %s %s (CRN %s) at %s", c.role, name, crn, location)
	return company, nil
}
