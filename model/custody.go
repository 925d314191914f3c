package model

import "encoding/json"

// Custody is the "owner" tag on a drug unit. The value domain is closed per
// lifecycle stage: the unit is either held in a role capacity (manufacturer
// before shipping, transporter in transit) or by a concrete party identified
// by CRN or consumer ID. On the ledger it serializes as the plain owner
// string the rest of the network expects.
type Custody struct {
	role   Role
	holder string
}

// RoleCustody tags a unit as held in a role capacity.
func RoleCustody(r Role) Custody { return Custody{role: r} }

// HolderCustody tags a unit as held by a concrete party (buyer CRN or
// consumer ID).
func HolderCustody(id string) Custody { return Custody{holder: id} }

// HeldByRole reports whether the unit is held in the given role capacity.
func (c Custody) HeldByRole(r Role) bool { return c.holder == "" && c.role == r }

// HeldBy reports whether the unit is held by the given party.
func (c Custody) HeldBy(id string) bool { return c.holder != "" && c.holder == id }

func (c Custody) String() string {
	if c.holder != "" {
		return c.holder
	}
	return string(c.role)
}

func (c Custody) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Custody) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch Role(s) {
	case RoleManufacturer, RoleTransporter:
		*c = Custody{role: Role(s)}
	default:
		*c = Custody{holder: s}
	}
	return nil
}
