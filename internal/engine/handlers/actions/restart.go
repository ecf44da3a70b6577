package actions

import "github.com/Lilllllly06/TemporalMaze/internal/engine/handlers"

func HandleRestart(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Session.Restart(); err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{
		Msg:     "Петля сброшена. Уровень начинается заново.",
		MsgType: "INFO",
	}, nil
}
