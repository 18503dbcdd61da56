package world

import (
	"fmt"

	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
)

// StructuralInconsistencyError reports collections that contradict each
// other, e.g. a resource pointing at a mine item that does not exist
type StructuralInconsistencyError struct {
	*shared.DomainError
	Resource shared.EntityID
	MineItem shared.EntityID
}

func NewStructuralInconsistencyError(resource, mineItem shared.EntityID) *StructuralInconsistencyError {
	return &StructuralInconsistencyError{
		DomainError: shared.NewDomainError(fmt.Sprintf(
			"world map inconsistent: resource %s references unknown mine item %s", resource, mineItem,
		)),
		Resource: resource,
		MineItem: mineItem,
	}
}
