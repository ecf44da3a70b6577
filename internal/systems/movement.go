package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/Lilllllly06/TemporalMaze/internal/domain"
	"github.com/Lilllllly06/TemporalMaze/pkg/logger"
)

// StepKind - классифицированный исход одной попытки шага.
// Движение никогда не возвращает error: любой нелегальный шаг - это Blocked.
type StepKind uint8

const (
	StepBlocked StepKind = iota
	StepMoved
	StepMovedAndWon
	StepTeleported
)

var stepKindNames = map[StepKind]string{
	StepBlocked:     "BLOCKED",
	StepMoved:       "MOVED",
	StepMovedAndWon: "MOVED_AND_WON",
	StepTeleported:  "TELEPORTED",
}

// String реализует интерфейс Stringer
func (k StepKind) String() string {
	if s, ok := stepKindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// StepResult - результат резолвера шага
type StepResult struct {
	Kind   StepKind
	NewPos domain.Position // итоговая позиция (для Blocked и MovedAndWon - прежняя)

	// Message - текст терминала, если шаг привел на клетку терминала
	Message string

	// PickedUp выставляется при подборе предмета
	PickedUp   bool
	PickedKind domain.ItemKind

	// UsedKey выставляется, когда шаг потратил ключ на дверь
	UsedKey bool
}

// ResolveStep превращает запрошенное смещение на одну клетку в классифицированный
// исход и применяет все побочные эффекты (переключатели, порталы, предметы, ключи).
//
// ЕДИНСТВЕННЫЙ алгоритм движения для всех видов моверов: поведение различается
// только флагами Capabilities. Раньше логика игрока и клона жила двумя
// разъехавшимися копиями - отсюда требование держать её в одном месте.
func ResolveStep(mv *domain.Mover, dx, dy int, w *domain.World) StepResult {
	// Направление взгляда обновляется даже при заблокированном шаге
	if dx != 0 || dy != 0 {
		mv.Facing = domain.DirectionFromDelta(dx, dy)
	}

	from := mv.Pos
	target := from.Shift(dx, dy)
	res := StepResult{Kind: StepBlocked, NewPos: from}

	stepLogger := logger.Log.WithFields(logrus.Fields{
		"component": "movement_system",
		"from":      from,
		"target":    target,
	})

	if w.IsWalkable(target) {
		tile := w.TileAt(target)

		switch {
		case tile == domain.TileSwitch:
			w.ActivateSwitch(target)

		case tile == domain.TileExit && mv.Caps.CanWin:
			// Выход касаются, а не занимают: позиция не меняется
			stepLogger.Debug("Exit touched, level completed")
			res.Kind = StepMovedAndWon
			return res

		case tile.IsPortal():
			if paired, ok := w.PairedPortal(target); ok {
				// Сойти с переключателя нужно ДО телепортации
				releaseSwitchUnder(w, from)
				mv.Pos = paired
				if mv.History != nil {
					mv.History.Record(paired, mv.Facing) // след растет при прибытии телепорта
				}
				stepLogger.WithField("paired", paired).Debug("Teleported through portal")
				res.Kind = StepTeleported
				res.NewPos = paired
				return res
			}

		case tile.IsItem() && mv.Caps.CanCollect:
			kind, ok := w.Items[target]
			if ok {
				switch kind {
				case domain.ItemKey:
					mv.Keys++
				case domain.ItemPotion:
					mv.RestoreEnergy(1)
				}
				w.RemoveItem(target)
				res.PickedUp = true
				res.PickedKind = kind
			}

		case tile == domain.TileTerminal:
			if msg, ok := w.TerminalMessage(target); ok {
				res.Message = msg
			}
		}

		// Проверка схода с переключателя идет по ПРЕДШЕСТВУЮЩЕЙ позиции,
		// независимо от того, какая ветка сработала выше
		releaseSwitchUnder(w, from)

		mv.Pos = target
		res.Kind = StepMoved
		res.NewPos = target
		return res
	}

	// Закрытая ключевая дверь при наличии ключа открывается и пропускает
	if w.TileAt(target) == domain.TileDoorClosed && mv.Caps.CanUnlockDoors && mv.Keys > 0 {
		if door, ok := w.Doors[target]; ok && door.Lock == domain.LockKey {
			mv.Keys--
			w.OpenDoorWithKey(target)
			releaseSwitchUnder(w, from)
			mv.Pos = target
			stepLogger.Debug("Key door unlocked")
			res.Kind = StepMoved
			res.NewPos = target
			res.UsedKey = true
			return res
		}
	}

	stepLogger.Debug("Step blocked")
	return res
}

// releaseSwitchUnder отпускает переключатель, если мовер стоял на нем.
// Общий хелпер резолвера и реплея клонов.
func releaseSwitchUnder(w *domain.World, pos domain.Position) {
	if w.TileAt(pos) == domain.TileSwitch {
		w.DeactivateSwitch(pos)
	}
}

// pressSwitchUnder нажимает переключатель, если мовер встал на него
func pressSwitchUnder(w *domain.World, pos domain.Position) {
	if w.TileAt(pos) == domain.TileSwitch {
		w.ActivateSwitch(pos)
	}
}
