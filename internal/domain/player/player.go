package player

import "github.com/andrescamacho/basedbot-go/internal/domain/shared"

// Player represents the SAGE profile the bot acts for
type Player struct {
	ProfileKey shared.EntityID
	FactionKey shared.EntityID
	Name       string
	KeyIndex   int
}

// NewPlayer creates a new player
func NewPlayer(profileKey, factionKey shared.EntityID, name string, keyIndex int) *Player {
	return &Player{
		ProfileKey: profileKey,
		FactionKey: factionKey,
		Name:       name,
		KeyIndex:   keyIndex,
	}
}

// GameMints are the token mints the game treats specially
type GameMints struct {
	Food shared.EntityID
	Fuel shared.EntityID
	Ammo shared.EntityID
}

// IsConsumable reports whether mint is fuel or ammo. Those are never moved
// as route cargo.
func (m GameMints) IsConsumable(mint shared.EntityID) bool {
	return mint == m.Fuel || mint == m.Ammo
}

// Game is the SAGE game account context
type Game struct {
	Key   shared.EntityID
	Mints GameMints
}

// StarbasePlayer is the per-starbase operating context several actions need
type StarbasePlayer struct {
	Key      shared.EntityID
	Starbase shared.EntityID
	Profile  shared.EntityID
}
