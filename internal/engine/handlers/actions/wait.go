package actions

import "github.com/Lilllllly06/TemporalMaze/internal/engine/handlers"

func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	// Намеренно ничего не делает: симуляция тикает сама, а WAIT дает игроку
	// явный способ "пропустить" время, не двигаясь (охранники продолжают патруль).
	return handlers.Result{
		Msg:     "Вы замираете и слушаете шаги охраны.",
		MsgType: "INFO",
	}, nil
}
