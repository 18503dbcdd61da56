package player

import (
	"context"

	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
)

// StarbasePlayerResolver resolves a player's operating context at a starbase
type StarbasePlayerResolver interface {
	StarbasePlayer(ctx context.Context, p *Player, starbase shared.EntityID) (*StarbasePlayer, error)
}

// GameReader loads the game account and the bot's player profile
type GameReader interface {
	GetGame(ctx context.Context) (*Game, error)
	GetPlayer(ctx context.Context, profileKey string) (*Player, error)
}
