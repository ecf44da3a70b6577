package actions

import "github.com/Lilllllly06/TemporalMaze/internal/engine/handlers"

func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     "Добро пожаловать в TemporalMaze. Стрелки - шаг, T - прыжок назад во времени.",
		MsgType: "INFO",
	}, nil
}
