package domain

import "fmt"

// Tile - закрытый перечислимый тип клетки. Дверь хранится прямо в сетке
// двумя состояниями (Closed/Open), чтобы рендереру не нужно было лезть в DoorSpec.
type Tile uint8

const (
	TileWall Tile = iota
	TileFloor
	TileSwitch
	TileDoorClosed
	TileDoorOpen
	TileExit
	TilePortalA
	TilePortalB
	TileItemKey
	TileItemPotion
	TileTerminal
)

// Глифы ASCII-карт уровней. Формат унаследован от текстовых карт:
// стены '#', пол '.', и по букве на каждый спецтайл.
var tileGlyphs = map[Tile]byte{
	TileWall:       '#',
	TileFloor:      '.',
	TileSwitch:     'S',
	TileDoorClosed: 'D',
	TileDoorOpen:   'O',
	TileExit:       'E',
	TilePortalA:    'A',
	TilePortalB:    'B',
	TileItemKey:    'K',
	TileItemPotion: 'P',
	TileTerminal:   'T',
}

var glyphTiles = func() map[byte]Tile {
	m := make(map[byte]Tile, len(tileGlyphs))
	for t, g := range tileGlyphs {
		m[g] = t
	}
	return m
}()

// ParseTileGlyph конвертирует символ карты в тип клетки
func ParseTileGlyph(g byte) (Tile, error) {
	if t, ok := glyphTiles[g]; ok {
		return t, nil
	}
	return TileWall, fmt.Errorf("unknown map glyph %q", string(g))
}

// Glyph возвращает символ клетки для ASCII-представления
func (t Tile) Glyph() byte {
	if g, ok := tileGlyphs[t]; ok {
		return g
	}
	return '?'
}

// IsDoor - true для закрытой и открытой двери
func (t Tile) IsDoor() bool {
	return t == TileDoorClosed || t == TileDoorOpen
}

// IsPortal - true для обеих половин портальной пары
func (t Tile) IsPortal() bool {
	return t == TilePortalA || t == TilePortalB
}

// IsItem - true для клетки с предметом
func (t Tile) IsItem() bool {
	return t == TileItemKey || t == TileItemPotion
}

var tileNames = map[Tile]string{
	TileWall:       "WALL",
	TileFloor:      "FLOOR",
	TileSwitch:     "SWITCH",
	TileDoorClosed: "DOOR_CLOSED",
	TileDoorOpen:   "DOOR_OPEN",
	TileExit:       "EXIT",
	TilePortalA:    "PORTAL_A",
	TilePortalB:    "PORTAL_B",
	TileItemKey:    "ITEM_KEY",
	TileItemPotion: "ITEM_POTION",
	TileTerminal:   "TERMINAL",
}

// String реализует интерфейс Stringer (для fmt.Printf и логов)
func (t Tile) String() string {
	if s, ok := tileNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}
