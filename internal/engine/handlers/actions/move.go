package actions

import (
	"github.com/Lilllllly06/TemporalMaze/internal/engine/handlers"
	"github.com/Lilllllly06/TemporalMaze/pkg/api"
)

func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	// Шаг не применяется здесь: он ставится в очередь и резолвится на тике,
	// чтобы кулдаун движения действовал одинаково для любого источника команд.
	ctx.Session.QueueStep(p.Dx, p.Dy)
	return handlers.EmptyResult(), nil
}
