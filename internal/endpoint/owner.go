package endpoint

import "github.com/google/uuid"

// Owner identifies the registrant of a group of listeners. Owners are only
// compared, never inspected. The zero Owner is valid but shared by everyone
// who uses it.
type Owner struct {
	id uuid.UUID
}

// NewOwner returns a fresh owner distinct from every other.
func NewOwner() Owner {
	return Owner{id: uuid.New()}
}

// IsZero reports whether o is the zero Owner.
func (o Owner) IsZero() bool {
	return o.id == uuid.Nil
}

// String returns the owner's identifier.
func (o Owner) String() string {
	return o.id.String()
}
