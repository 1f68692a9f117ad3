package authdomain

// Capability is the access level carried by a caller identity.
type Capability string

const (
	CapabilityParticipant   Capability = "participant"
	CapabilityAdministrator Capability = "administrator"
)

// IsValid checks if the capability is a valid value.
func (c Capability) IsValid() bool {
	switch c {
	case CapabilityParticipant, CapabilityAdministrator:
		return true
	default:
		return false
	}
}

// Satisfies reports whether c grants at least the required level.
// Administrators satisfy participant routes.
func (c Capability) Satisfies(required Capability) bool {
	return c.IsValid() && c.rank() >= required.rank()
}

func (c Capability) rank() int {
	switch c {
	case CapabilityAdministrator:
		return 2
	case CapabilityParticipant:
		return 1
	default:
		return 0
	}
}

// String returns the string representation of the capability.
func (c Capability) String() string {
	return string(c)
}
