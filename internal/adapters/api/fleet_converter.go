package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
)

// convertFleetDTO converts a gateway fleet into a domain snapshot
func convertFleetDTO(dto *FleetDTO) (*fleet.FleetInfo, error) {
	state, err := convertFleetState(dto.State)
	if err != nil {
		return nil, fmt.Errorf("fleet %s: %w", dto.Name, err)
	}

	cargo := make(map[shared.EntityID]int, len(dto.Cargo))
	for mint, units := range dto.Cargo {
		cargo[shared.EntityID(mint)] = units
	}

	return fleet.NewFleetInfo(
		shared.EntityID(dto.Key),
		dto.Name,
		shared.CoordinatesFromSector(dto.Location),
		state,
		fleet.CargoLevels{Cargo: cargo, Fuel: dto.Fuel, Ammo: dto.Ammo},
		fleet.CargoStats{
			CargoCapacity: dto.CargoStats.CargoCapacity,
			FuelCapacity:  dto.CargoStats.FuelCapacity,
			AmmoCapacity:  dto.CargoStats.AmmoCapacity,
		},
		fleet.Holds{
			CargoHold: shared.EntityID(dto.CargoHold),
			FuelTank:  shared.EntityID(dto.FuelTank),
			AmmoBank:  shared.EntityID(dto.AmmoBank),
		},
	)
}

// convertFleetState decodes the state union. Variant names this build does
// not model become fleet.Unknown rather than an error.
func convertFleetState(dto FleetStateDTO) (fleet.State, error) {
	switch fleet.StateType(dto.Type) {
	case fleet.StateIdle:
		var d idleStateDTO
		if err := decodeState(dto, &d); err != nil {
			return nil, err
		}
		return fleet.Idle{Sector: shared.CoordinatesFromSector(d.Sector)}, nil

	case fleet.StateStarbaseLoadingBay:
		var d loadingBayStateDTO
		if err := decodeState(dto, &d); err != nil {
			return nil, err
		}
		return fleet.StarbaseLoadingBay{Starbase: shared.EntityID(d.Starbase)}, nil

	case fleet.StateMoveWarp:
		var d warpStateDTO
		if err := decodeState(dto, &d); err != nil {
			return nil, err
		}
		return fleet.MoveWarp{
			FromSector: shared.CoordinatesFromSector(d.FromSector),
			ToSector:   shared.CoordinatesFromSector(d.ToSector),
			WarpFinish: unixTime(d.WarpFinish),
		}, nil

	case fleet.StateMoveSubwarp:
		var d subwarpStateDTO
		if err := decodeState(dto, &d); err != nil {
			return nil, err
		}
		return fleet.MoveSubwarp{
			FromSector:  shared.CoordinatesFromSector(d.FromSector),
			ToSector:    shared.CoordinatesFromSector(d.ToSector),
			ArrivalTime: unixTime(d.ArrivalTime),
		}, nil

	case fleet.StateMineAsteroid:
		var d mineStateDTO
		if err := decodeState(dto, &d); err != nil {
			return nil, err
		}
		return fleet.MineAsteroid{
			Asteroid: shared.EntityID(d.Asteroid),
			Resource: shared.EntityID(d.Resource),
			Start:    unixTime(d.Start),
		}, nil

	case fleet.StateRespawn:
		var d respawnStateDTO
		if err := decodeState(dto, &d); err != nil {
			return nil, err
		}
		return fleet.Respawn{
			Sector:          shared.CoordinatesFromSector(d.Sector),
			ETA:             unixTime(d.ETA),
			DestructionTime: unixTime(d.DestructionTime),
		}, nil

	case "":
		return nil, fmt.Errorf("fleet state has no type")

	default:
		return fleet.Unknown{Name: dto.Type}, nil
	}
}

func decodeState(dto FleetStateDTO, target interface{}) error {
	if len(dto.Data) == 0 {
		return fmt.Errorf("fleet state %s has no data", dto.Type)
	}
	if err := json.Unmarshal(dto.Data, target); err != nil {
		return fmt.Errorf("failed to decode %s state: %w", dto.Type, err)
	}
	return nil
}

func unixTime(seconds int64) time.Time {
	return time.Unix(seconds, 0).UTC()
}
