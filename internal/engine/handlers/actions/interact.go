package actions

import (
	"github.com/Lilllllly06/TemporalMaze/internal/domain"
	"github.com/Lilllllly06/TemporalMaze/internal/engine/handlers"
)

// смещения осмотра: своя клетка, потом четыре соседних
var interactOffsets = [5][2]int{{0, 0}, {0, -1}, {0, 1}, {-1, 0}, {1, 0}}

func HandleInteract(ctx handlers.Context) (handlers.Result, error) {
	// Переключатели и порталы срабатывают от самого движения, поэтому
	// осматриваем только то, что требует явного действия - терминалы.
	for _, off := range interactOffsets {
		pos := domain.Position{X: ctx.Player.Pos.X + off[0], Y: ctx.Player.Pos.Y + off[1]}
		if msg, ok := ctx.World.TerminalMessage(pos); ok {
			return handlers.Result{Msg: msg, MsgType: "STORY"}, nil
		}
	}

	return handlers.Result{
		Msg:     "Здесь не с чем взаимодействовать.",
		MsgType: "INFO",
	}, nil
}
