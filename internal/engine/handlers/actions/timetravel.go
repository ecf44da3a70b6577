package actions

import (
	"errors"

	"github.com/Lilllllly06/TemporalMaze/internal/engine/handlers"
	"github.com/Lilllllly06/TemporalMaze/internal/systems"
	"github.com/Lilllllly06/TemporalMaze/pkg/api"
)

func HandleTimeTravel(ctx handlers.Context, p api.TimeTravelPayload) (handlers.Result, error) {
	err := ctx.Session.SpawnClone(p.Steps)
	if err == nil {
		return handlers.Result{
			Msg:     "Время откатывается. Ваше прошлое \"я\" повторяет пройденный путь.",
			MsgType: "INFO",
		}, nil
	}

	// Отказ в прыжке - не протокольная ошибка, а игровой исход:
	// сообщаем игроку человеческим текстом и не рвем соединение.
	switch {
	case errors.Is(err, systems.ErrNoEnergy):
		return handlers.Result{Msg: "Недостаточно темпоральной энергии.", MsgType: "ERROR"}, nil
	case errors.Is(err, systems.ErrCloneLimit):
		return handlers.Result{Msg: "Слишком много клонов. Дождитесь, пока один исчезнет.", MsgType: "ERROR"}, nil
	case errors.Is(err, systems.ErrInvalidStepCount):
		return handlers.Result{Msg: "Так далеко назад не отмотать.", MsgType: "ERROR"}, nil
	case errors.Is(err, systems.ErrNoHistory):
		return handlers.Result{Msg: "След еще слишком короткий для прыжка.", MsgType: "ERROR"}, nil
	default:
		return handlers.Result{}, err
	}
}
