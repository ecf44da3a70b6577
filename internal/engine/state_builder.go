package engine

import (
	"github.com/Lilllllly06/TemporalMaze/internal/domain"
	"github.com/Lilllllly06/TemporalMaze/pkg/api"
)

// BuildState снимает полный слепок сессии для клиента и опустошает журнал.
// Снимок самодостаточен: двери приходят уже открытыми или закрытыми,
// клиенту не нужно знать про граф переключателей.
func (s *GameSession) BuildState(msgType string) *api.ServerResponse {
	return s.buildState(msgType, true)
}

// PeekState - то же самое, но журнал остается на месте.
// Используется отладочными ручками, чтобы не красть логи у игрока.
func (s *GameSession) PeekState() *api.ServerResponse {
	return s.buildState("UPDATE", false)
}

func (s *GameSession) buildState(msgType string, drainLogs bool) *api.ServerResponse {
	w := s.World

	tiles := make([]api.TileView, 0, w.Width*w.Height)
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			pos := domain.Position{X: x, Y: y}
			t := w.TileAt(pos)
			tiles = append(tiles, api.TileView{
				X:        x,
				Y:        y,
				Kind:     t.String(),
				Glyph:    string(t.Glyph()),
				Walkable: w.IsWalkable(pos),
			})
		}
	}

	clones := make([]api.CloneView, 0, len(s.Clones))
	for _, c := range s.Clones {
		clones = append(clones, api.CloneView{
			Pos:     api.PositionView{X: c.Pos.X, Y: c.Pos.Y},
			Facing:  c.Facing.String(),
			Active:  c.Active(),
			PathLen: c.PathLen(),
		})
	}

	guards := make([]api.GuardView, 0, len(s.Guards))
	for _, g := range s.Guards {
		guards = append(guards, api.GuardView{
			Pos:    api.PositionView{X: g.Pos.X, Y: g.Pos.Y},
			Facing: g.Facing.String(),
			State:  g.State.String(),
		})
	}

	logs := s.logs
	if drainLogs {
		s.logs = nil
	}

	return &api.ServerResponse{
		Type: msgType,
		Tick: s.Tick,
		Grid: &api.GridMeta{Width: w.Width, Height: w.Height},
		Map:  tiles,
		Player: &api.PlayerView{
			Pos:        api.PositionView{X: s.Player.Pos.X, Y: s.Player.Pos.Y},
			Facing:     s.Player.Facing.String(),
			Energy:     s.Player.Energy,
			EnergyMax:  s.Player.EnergyMax,
			Keys:       s.Player.Keys,
			HistoryLen: s.Player.History.Len(),
		},
		Clones:         clones,
		Guards:         guards,
		LevelName:      s.levels[s.levelIndex].Name,
		LevelIndex:     s.levelIndex + 1,
		LevelCompleted: s.LevelCompleted,
		Captured:       s.Captured,
		Logs:           logs,
	}
}
