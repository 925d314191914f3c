package model

import "fmt"

// Role is the closed set of organization roles on the network.
type Role string

const (
	RoleManufacturer Role = "manufacturer"
	RoleDistributor  Role = "distributor"
	RoleRetailer     Role = "retailer"
	RoleTransporter  Role = "transporter"
)

// hierarchy encodes buyer/seller adjacency: a buyer may only purchase from
// the role ranked directly above it. Transporters carry no rank.
var hierarchy = map[Role]int{
	RoleManufacturer: 1,
	RoleDistributor:  2,
	RoleRetailer:     3,
}

// ParseRole maps a caller-supplied role string onto the closed enum.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleManufacturer, RoleDistributor, RoleRetailer, RoleTransporter:
		return r, nil
	}
	return "", fmt.Errorf("unsupported organisation role %q", s)
}

// Rank returns the hierarchy rank of the role. ok is false for roles that
// take no part in the purchase hierarchy (transporter).
func (r Role) Rank() (rank int, ok bool) {
	rank, ok = hierarchy[r]
	return rank, ok
}

// Company is an organization record stored under its CRN key.
type Company struct {
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Role      Role   `json:"organisationRole"`
	// HierarchyKey is 0 for transporters, which never buy or sell.
	HierarchyKey int `json:"hierarchyKey,omitempty"`
}
