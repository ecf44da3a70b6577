package domain

import (
	"errors"
	"fmt"
)

// LevelData - запись данных уровня, которую поставляет внешний генератор
// или загрузчик файлов уровней. Ядро ее только валидирует и собирает из нее
// World; само оно уровней не придумывает.
//
// Переключатели, предметы и выход выводятся из глифов сетки ('S', 'K', 'P', 'E');
// двери, порталы, охранники и терминалы описываются явно и сверяются с сеткой.
type LevelData struct {
	Name   string
	Width  int
	Height int

	// Rows - строки ASCII-карты, по одному глифу на клетку
	Rows []string

	PlayerStart Position

	Doors     []DoorData
	Portals   []PortalPair
	Guards    []GuardData
	Terminals []TerminalData
}

// DoorData - описание одной двери в данных уровня
type DoorData struct {
	Pos      Position
	Lock     LockKind
	Required []Position // позиции переключателей; пусто для LockKey
}

// PortalPair - пара связанных порталов
type PortalPair struct {
	A Position
	B Position
}

// GuardData - стартовое описание охранника
type GuardData struct {
	Pos          Position
	Route        []Position // пустой маршрут означает производный прямоугольник
	ViewDistance int        // 0 означает значение по умолчанию
}

// TerminalData - терминал с сюжетным сообщением
type TerminalData struct {
	Pos     Position
	Message string
}

// ErrLevelData - общий признак структурной ошибки данных уровня.
// Такие ошибки валят загрузку целиком: молчаливое "исправление" на лету
// прячет баги дизайна уровней.
var ErrLevelData = errors.New("invalid level data")

func levelErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrLevelData, fmt.Sprintf(format, args...))
}

// BuildWorld валидирует данные уровня и собирает из них мир.
// Любая структурная дыра (несогласованные размеры, дверь со ссылкой на
// несуществующий переключатель, непарный портал) - ошибка загрузки.
func (ld *LevelData) BuildWorld() (*World, error) {
	if ld.Width <= 0 || ld.Height <= 0 {
		return nil, levelErr("non-positive dimensions %dx%d", ld.Width, ld.Height)
	}
	if len(ld.Rows) != ld.Height {
		return nil, levelErr("grid has %d rows, want %d", len(ld.Rows), ld.Height)
	}

	w := NewWorld(ld.Width, ld.Height)

	// 1. Сетка из глифов. Заодно собираем множества спецклеток для сверки.
	switchSet := make(map[Position]struct{})
	doorSet := make(map[Position]struct{})
	portalSet := make(map[Position]struct{})
	terminalSet := make(map[Position]struct{})

	for y, row := range ld.Rows {
		if len(row) != ld.Width {
			return nil, levelErr("row %d has width %d, want %d", y, len(row), ld.Width)
		}
		for x := 0; x < ld.Width; x++ {
			pos := Position{X: x, Y: y}
			tile, err := ParseTileGlyph(row[x])
			if err != nil {
				return nil, levelErr("at (%d,%d): %v", x, y, err)
			}
			w.SetTile(pos, tile)

			switch {
			case tile == TileSwitch:
				switchSet[pos] = struct{}{}
				w.SwitchToDoors[pos] = nil
			case tile.IsDoor():
				doorSet[pos] = struct{}{}
			case tile.IsPortal():
				portalSet[pos] = struct{}{}
			case tile == TileItemKey:
				w.Items[pos] = ItemKey
			case tile == TileItemPotion:
				w.Items[pos] = ItemPotion
			case tile == TileTerminal:
				terminalSet[pos] = struct{}{}
			}
		}
	}

	// 2. Двери: каждая запись должна стоять на дверном глифе, и наоборот.
	for _, dd := range ld.Doors {
		if _, ok := doorSet[dd.Pos]; !ok {
			return nil, levelErr("door at (%d,%d) has no door tile", dd.Pos.X, dd.Pos.Y)
		}
		if _, dup := w.Doors[dd.Pos]; dup {
			return nil, levelErr("duplicate door at (%d,%d)", dd.Pos.X, dd.Pos.Y)
		}

		spec := &DoorSpec{Lock: dd.Lock, Required: make(map[Position]struct{}, len(dd.Required))}
		switch dd.Lock {
		case LockSwitch:
			// Пустое множество требований тривиально является подмножеством
			// чего угодно: такая дверь была бы "всегда открыта". Запрещаем -
			// дверь без переключателей обязана быть ключевой.
			if len(dd.Required) == 0 {
				return nil, levelErr("switch-locked door at (%d,%d) requires no switches; declare it key-locked", dd.Pos.X, dd.Pos.Y)
			}
			for _, req := range dd.Required {
				if _, ok := switchSet[req]; !ok {
					return nil, levelErr("door at (%d,%d) requires unknown switch (%d,%d)", dd.Pos.X, dd.Pos.Y, req.X, req.Y)
				}
				spec.Required[req] = struct{}{}
				w.SwitchToDoors[req] = append(w.SwitchToDoors[req], dd.Pos)
			}
		case LockKey:
			if len(dd.Required) != 0 {
				return nil, levelErr("key-locked door at (%d,%d) must not list switches", dd.Pos.X, dd.Pos.Y)
			}
		default:
			return nil, levelErr("door at (%d,%d) has unknown lock kind", dd.Pos.X, dd.Pos.Y)
		}

		w.Doors[dd.Pos] = spec
		w.SetTile(dd.Pos, TileDoorClosed)
	}
	for pos := range doorSet {
		if _, ok := w.Doors[pos]; !ok {
			return nil, levelErr("door tile at (%d,%d) has no door record", pos.X, pos.Y)
		}
	}

	// 3. Порталы: строго симметричные непересекающиеся пары.
	for _, pp := range ld.Portals {
		if pp.A == pp.B {
			return nil, levelErr("portal at (%d,%d) pairs with itself", pp.A.X, pp.A.Y)
		}
		for _, pos := range []Position{pp.A, pp.B} {
			if _, ok := portalSet[pos]; !ok {
				return nil, levelErr("portal at (%d,%d) has no portal tile", pos.X, pos.Y)
			}
			if _, dup := w.Portals[pos]; dup {
				return nil, levelErr("portal at (%d,%d) is in two pairs", pos.X, pos.Y)
			}
		}
		w.Portals[pp.A] = pp.B
		w.Portals[pp.B] = pp.A
	}
	for pos := range portalSet {
		if _, ok := w.Portals[pos]; !ok {
			return nil, levelErr("portal tile at (%d,%d) is unpaired", pos.X, pos.Y)
		}
	}

	// 4. Терминалы.
	for _, td := range ld.Terminals {
		if _, ok := terminalSet[td.Pos]; !ok {
			return nil, levelErr("terminal at (%d,%d) has no terminal tile", td.Pos.X, td.Pos.Y)
		}
		w.Terminals[td.Pos] = td.Message
	}

	// 5. Стартовые позиции обязаны быть проходимыми уже на загрузке.
	if !w.IsWalkable(ld.PlayerStart) {
		return nil, levelErr("player start (%d,%d) is not walkable", ld.PlayerStart.X, ld.PlayerStart.Y)
	}
	for _, gd := range ld.Guards {
		if !w.IsWalkable(gd.Pos) {
			return nil, levelErr("guard start (%d,%d) is not walkable", gd.Pos.X, gd.Pos.Y)
		}
		for _, wp := range gd.Route {
			if !w.InBounds(wp) {
				return nil, levelErr("guard waypoint (%d,%d) is out of bounds", wp.X, wp.Y)
			}
		}
	}

	return w, nil
}
