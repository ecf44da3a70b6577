package domain

// ItemKind - вид подбираемого предмета
type ItemKind uint8

const (
	ItemKey ItemKind = iota
	ItemPotion
)

// String реализует интерфейс Stringer
func (k ItemKind) String() string {
	if k == ItemKey {
		return "key"
	}
	return "potion"
}

// World - единственный источник правды о проходимости и занятости клеток.
// Владеет сеткой тайлов и реестрами дверей/переключателей/порталов/предметов.
// Принадлежит сессии эксклюзивно на время одного уровня и заменяется целиком
// при переходе на следующий.
type World struct {
	Width  int
	Height int

	// Tiles - плотная сетка, индекс Y*Width+X
	Tiles []Tile

	// Doors: позиция двери -> её спецификация
	Doors map[Position]*DoorSpec

	// SwitchToDoors: производный граф "переключатель -> двери, на которые он влияет".
	// Каждый переключатель уровня имеет запись, даже если список пуст.
	SwitchToDoors map[Position][]Position

	// Activated - множество активных переключателей
	Activated map[Position]struct{}

	// Portals - всегда симметричная пара: Portals[a]==b <=> Portals[b]==a
	Portals map[Position]Position

	Items     map[Position]ItemKind
	Terminals map[Position]string

	ExitPos Position
	HasExit bool
}

// NewWorld создает пустой мир заданных размеров, залитый полом
func NewWorld(width, height int) *World {
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = TileFloor
	}
	return &World{
		Width:         width,
		Height:        height,
		Tiles:         tiles,
		Doors:         make(map[Position]*DoorSpec),
		SwitchToDoors: make(map[Position][]Position),
		Activated:     make(map[Position]struct{}),
		Portals:       make(map[Position]Position),
		Items:         make(map[Position]ItemKind),
		Terminals:     make(map[Position]string),
	}
}

// Index возвращает индекс клетки в плотной сетке
func (w *World) Index(pos Position) int {
	return pos.Y*w.Width + pos.X
}

// InBounds - true, если позиция лежит внутри сетки
func (w *World) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < w.Width && pos.Y >= 0 && pos.Y < w.Height
}

// TileAt возвращает тайл в позиции. Всё за границами карты считается стеной.
func (w *World) TileAt(pos Position) Tile {
	if !w.InBounds(pos) {
		return TileWall
	}
	return w.Tiles[w.Index(pos)]
}

// SetTile ставит тайл и поддерживает ExitPos в актуальном состоянии
func (w *World) SetTile(pos Position, t Tile) {
	if !w.InBounds(pos) {
		return
	}
	w.Tiles[w.Index(pos)] = t
	if t == TileExit {
		w.ExitPos = pos
		w.HasExit = true
	}
}

// IsWalkable решает легальность шага на клетку.
// Дверь проходима только если открыта; состояние берется из DoorSpec.
func (w *World) IsWalkable(pos Position) bool {
	switch w.TileAt(pos) {
	case TileFloor, TileSwitch, TileExit, TilePortalA, TilePortalB,
		TileItemKey, TileItemPotion, TileTerminal:
		return true
	case TileDoorClosed, TileDoorOpen:
		door, ok := w.Doors[pos]
		return ok && door.IsOpen
	default:
		return false
	}
}

// IsTransparent решает, пропускает ли клетка взгляд охранника.
// Открытая дверь прозрачна. Используется ТОЛЬКО для линии видимости,
// никогда для легальности движения.
func (w *World) IsTransparent(pos Position) bool {
	t := w.TileAt(pos)
	return t != TileWall && t != TileDoorClosed
}

// IsSwitchActive - true, если переключатель в позиции активен
func (w *World) IsSwitchActive(pos Position) bool {
	_, ok := w.Activated[pos]
	return ok
}

// ActivateSwitch активирует переключатель и синхронно пересчитывает
// все зависящие от него двери. Идемпотентна.
func (w *World) ActivateSwitch(pos Position) {
	doors, ok := w.SwitchToDoors[pos]
	if !ok {
		return // незарегистрированный переключатель: дыра в данных уровня ловится на загрузке
	}
	if w.IsSwitchActive(pos) {
		return
	}
	w.Activated[pos] = struct{}{}
	w.recomputeDoors(doors)
}

// DeactivateSwitch - симметричная операция к ActivateSwitch
func (w *World) DeactivateSwitch(pos Position) {
	doors, ok := w.SwitchToDoors[pos]
	if !ok {
		return
	}
	if !w.IsSwitchActive(pos) {
		return
	}
	delete(w.Activated, pos)
	w.recomputeDoors(doors)
}

// recomputeDoors пересчитывает IsOpen = (Required ⊆ Activated) для каждой
// двери из списка и обновляет тайл. Ключевые двери переключателями не трогаются.
func (w *World) recomputeDoors(doors []Position) {
	for _, doorPos := range doors {
		door, ok := w.Doors[doorPos]
		if !ok || door.Lock != LockSwitch {
			continue
		}
		open := true
		for req := range door.Required {
			if !w.IsSwitchActive(req) {
				open = false
				break
			}
		}
		if door.IsOpen == open {
			continue
		}
		door.IsOpen = open
		if open {
			w.SetTile(doorPos, TileDoorOpen)
		} else {
			w.SetTile(doorPos, TileDoorClosed)
		}
	}
}

// OpenDoorWithKey безусловно открывает ключевую дверь.
// Переход односторонний: обратно такая дверь не закрывается никогда,
// независимо от состояния переключателей.
func (w *World) OpenDoorWithKey(pos Position) bool {
	door, ok := w.Doors[pos]
	if !ok || door.Lock != LockKey {
		return false
	}
	door.IsOpen = true
	w.SetTile(pos, TileDoorOpen)
	return true
}

// PairedPortal возвращает вторую половину портальной пары за O(1)
func (w *World) PairedPortal(pos Position) (Position, bool) {
	paired, ok := w.Portals[pos]
	return paired, ok
}

// RemoveItem удаляет предмет и возвращает клетке пол
func (w *World) RemoveItem(pos Position) {
	delete(w.Items, pos)
	if w.TileAt(pos).IsItem() {
		w.SetTile(pos, TileFloor)
	}
}

// TerminalMessage возвращает сообщение терминала, ничего не мутируя
func (w *World) TerminalMessage(pos Position) (string, bool) {
	msg, ok := w.Terminals[pos]
	return msg, ok
}
