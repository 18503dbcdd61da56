package worldmap

import (
	"context"
	"fmt"

	"github.com/andrescamacho/basedbot-go/internal/application/mediator"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
)

// ListMineablesQuery asks what is mineable at a sector
type ListMineablesQuery struct {
	Coordinates shared.Coordinates
}

// ListMineablesResponse carries the mineables found
type ListMineablesResponse struct {
	Coordinates shared.Coordinates
	Mineables   []world.Mineable
}

// ListMineablesHandler loads a fresh world map and resolves the query
type ListMineablesHandler struct {
	service *Service
}

func NewListMineablesHandler(service *Service) *ListMineablesHandler {
	return &ListMineablesHandler{service: service}
}

func (h *ListMineablesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListMineablesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	worldMap, err := h.service.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &ListMineablesResponse{
		Coordinates: query.Coordinates,
		Mineables:   MineablesAt(ctx, worldMap, query.Coordinates),
	}, nil
}
