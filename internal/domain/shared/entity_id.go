package shared

// EntityID is an opaque on-chain account key (base58 text).
// All lookup maps key on EntityID so conversions stay at the adapter edge.
type EntityID string

func NewEntityID(key string) (EntityID, error) {
	if key == "" {
		return "", NewValidationError("entity_id", "cannot be empty")
	}
	return EntityID(key), nil
}

func (id EntityID) String() string {
	return string(id)
}

func (id EntityID) IsZero() bool {
	return id == ""
}

func (id EntityID) Equals(other EntityID) bool {
	return id == other
}

// Short returns the first characters of the key for log lines
func (id EntityID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}
