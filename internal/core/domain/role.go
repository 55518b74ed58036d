package domain

import "fmt"

// Role is the closed set of actor roles in the ordering system. It is
// persisted as a small integer code; unknown codes are a domain error,
// never silently mapped to a default.
type Role int

const (
	RoleAdmin Role = iota
	RolePharmacyStaff
	RoleHospitalStaff
)

// Code returns the integer representation stored in the users table.
func (r Role) Code() int64 {
	return int64(r)
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RolePharmacyStaff:
		return "pharmacy_staff"
	case RoleHospitalStaff:
		return "hospital_staff"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// RoleFromCode converts a persisted role code back to a Role.
func RoleFromCode(code int64) (Role, error) {
	switch code {
	case 0:
		return RoleAdmin, nil
	case 1:
		return RolePharmacyStaff, nil
	case 2:
		return RoleHospitalStaff, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownRole, code)
	}
}

// ParseRole converts the string form carried in auth claims back to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "admin":
		return RoleAdmin, nil
	case "pharmacy_staff":
		return RolePharmacyStaff, nil
	case "hospital_staff":
		return RoleHospitalStaff, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}
