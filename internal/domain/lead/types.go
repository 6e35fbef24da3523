package lead

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleEmployee   Role = "Employee"
	RoleSpeaker    Role = "Speaker"
	RoleConsultant Role = "Consultant"
	RoleOther      Role = "Other"
)

func NewRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleEmployee, RoleSpeaker, RoleConsultant, RoleOther:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string { return string(r) }

// Label is the French wording used in the recruiting emails.
func (r Role) Label() string {
	switch r {
	case RoleEmployee:
		return "Employé"
	case RoleSpeaker:
		return "Intervenant"
	case RoleConsultant:
		return "Consultant"
	default:
		return "Autre"
	}
}
