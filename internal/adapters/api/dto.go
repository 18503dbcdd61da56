package api

import "encoding/json"

// Gateway wire types. Sectors are [x, y] pairs and timestamps are unix
// seconds, the way the game accounts store them.

type StarbaseDTO struct {
	Key    string   `json:"key"`
	Name   string   `json:"name"`
	Sector [2]int64 `json:"sector"`
}

type PlanetDTO struct {
	Key    string   `json:"key"`
	Name   string   `json:"name"`
	Sector [2]int64 `json:"sector"`
}

type MineItemDTO struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Mint string `json:"mint"`
}

type ResourceDTO struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	MineItem string `json:"mine_item"`
}

type GameDTO struct {
	Key   string `json:"key"`
	Mints struct {
		Food string `json:"food"`
		Fuel string `json:"fuel"`
		Ammo string `json:"ammo"`
	} `json:"mints"`
}

type PlayerDTO struct {
	ProfileKey string `json:"profile_key"`
	FactionKey string `json:"faction_key"`
	Name       string `json:"name"`
	KeyIndex   int    `json:"key_index"`
}

type StarbasePlayerDTO struct {
	Key      string `json:"key"`
	Starbase string `json:"starbase"`
	Profile  string `json:"profile"`
}

type BalanceDTO struct {
	Owner  string `json:"owner"`
	Mint   string `json:"mint"`
	Amount int    `json:"amount"`
}

// FleetStateDTO is a tagged union: Type names the variant and Data holds
// its fields
type FleetStateDTO struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type idleStateDTO struct {
	Sector [2]int64 `json:"sector"`
}

type loadingBayStateDTO struct {
	Starbase string `json:"starbase"`
}

type warpStateDTO struct {
	FromSector [2]int64 `json:"from_sector"`
	ToSector   [2]int64 `json:"to_sector"`
	WarpFinish int64    `json:"warp_finish"`
}

type subwarpStateDTO struct {
	FromSector  [2]int64 `json:"from_sector"`
	ToSector    [2]int64 `json:"to_sector"`
	ArrivalTime int64    `json:"arrival_time"`
}

type mineStateDTO struct {
	Asteroid string `json:"asteroid"`
	Resource string `json:"resource"`
	Start    int64  `json:"start"`
}

type respawnStateDTO struct {
	Sector          [2]int64 `json:"sector"`
	ETA             int64    `json:"eta"`
	DestructionTime int64    `json:"destruction_time"`
}

type FleetDTO struct {
	Key        string         `json:"key"`
	Name       string         `json:"name"`
	Location   [2]int64       `json:"location"`
	State      FleetStateDTO  `json:"state"`
	Cargo      map[string]int `json:"cargo"`
	Fuel       int            `json:"fuel"`
	Ammo       int            `json:"ammo"`
	CargoStats CargoStatsDTO  `json:"cargo_stats"`
	CargoHold  string         `json:"cargo_hold"`
	FuelTank   string         `json:"fuel_tank"`
	AmmoBank   string         `json:"ammo_bank"`
}

type CargoStatsDTO struct {
	CargoCapacity int `json:"cargo_capacity"`
	FuelCapacity  int `json:"fuel_capacity"`
	AmmoCapacity  int `json:"ammo_capacity"`
}

// Action request bodies

type sectorRequest struct {
	Profile string   `json:"profile"`
	Sector  [2]int64 `json:"sector"`
}

type moveRequest struct {
	Profile string   `json:"profile"`
	Target  [2]int64 `json:"target"`
	Mode    string   `json:"mode"`
}

type cargoRequest struct {
	Profile string `json:"profile"`
	Mint    string `json:"mint"`
	Amount  int    `json:"amount"`
}

type startMiningRequest struct {
	Profile        string `json:"profile"`
	Starbase       string `json:"starbase"`
	StarbasePlayer string `json:"starbase_player"`
	Planet         string `json:"planet"`
	Resource       string `json:"resource"`
	MineItem       string `json:"mine_item"`
}

// ActionResultDTO is the gateway's confirmation of a submitted transaction
type ActionResultDTO struct {
	Signature string `json:"signature"`
}
