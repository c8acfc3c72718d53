package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of account categories.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleSeller   Role = "SELLER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole converts a raw value into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.bit() != 0
}

func (r Role) bit() RoleSet {
	switch r {
	case RoleCustomer:
		return 1 << 0
	case RoleSeller:
		return 1 << 1
	case RoleAdmin:
		return 1 << 2
	}
	return 0
}

// RoleSet is a combination of roles allowed to invoke an operation.
// The zero value is the empty set, which admits any authenticated role.
type RoleSet uint8

// RolesOf builds a RoleSet from the given roles; unknown roles are ignored.
func RolesOf(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s |= r.bit()
	}
	return s
}

// Empty reports whether no role has been added to the set.
func (s RoleSet) Empty() bool {
	return s == 0
}

// Contains reports whether r is a member of the set.
func (s RoleSet) Contains(r Role) bool {
	b := r.bit()
	return b != 0 && s&b != 0
}

// Admits reports whether a caller with role r may pass a gate guarded by s.
func (s RoleSet) Admits(r Role) bool {
	return s.Empty() || s.Contains(r)
}
