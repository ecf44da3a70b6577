package actions

import (
	"errors"

	"github.com/Lilllllly06/TemporalMaze/internal/engine/handlers"
)

func HandleNextLevel(ctx handlers.Context) (handlers.Result, error) {
	err := ctx.Session.AdvanceLevel()
	switch {
	case err == nil:
		return handlers.Result{Msg: "Новый уровень. Часы снова тикают.", MsgType: "INFO"}, nil
	case errors.Is(err, handlers.ErrLevelNotDone):
		return handlers.Result{Msg: "Сначала доберитесь до выхода.", MsgType: "ERROR"}, nil
	case errors.Is(err, handlers.ErrNoMoreLevels):
		return handlers.Result{Msg: "Это был последний уровень. Лабиринт пройден.", MsgType: "STORY"}, nil
	default:
		return handlers.Result{}, err
	}
}
