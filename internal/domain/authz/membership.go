package authz

import "github.com/google/uuid"

// Membership is the caller's resolved relationship to a single project.
// It is computed fresh for every request and never cached or persisted:
// entitlements can change between calls.
//
// The flags are not mutually exclusive. Inconsistent data can make a caller
// both owner and member at once, so policy predicates treat the flags as
// independent ORs rather than an enumeration.
type Membership struct {
	IsOwner  bool `json:"is_owner"`
	IsClient bool `json:"is_client"`
	IsMember bool `json:"is_member"`
}

// Any reports whether the caller has at least one relationship.
func (m Membership) Any() bool {
	return m.IsOwner || m.IsClient || m.IsMember
}

// Projection is the narrow ownership/client/member slice of a project that
// membership resolution needs. It is deliberately smaller than the full
// aggregate used for analytics.
type Projection struct {
	OwnerID   string
	ClientID  string
	MemberIDs []string
}

// MembershipOf derives a caller's membership from a projection. Members
// match by stable identity, never by display name.
func MembershipOf(callerID string, p Projection) Membership {
	m := Membership{
		IsOwner:  callerID == p.OwnerID,
		IsClient: callerID == p.ClientID,
	}
	for _, id := range p.MemberIDs {
		if id == callerID {
			m.IsMember = true
			break
		}
	}
	return m
}

// ValidID reports whether id is a canonical storage identifier.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}
