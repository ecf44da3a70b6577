package domain

import "math"

// Position - координата клетки на сетке уровня.
// Сравнивается и хэшируется по значению, поэтому используется как ключ в мапах.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shift возвращает новую позицию со смещением (не меняя текущую,
// т.к. Go передает структуры по значению, если не указатель)
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// DistanceTo возвращает точное расстояние до другой точки (float)
func (p Position) DistanceTo(other Position) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// DirectionTo возвращает единичные знаки смещения к другой точке
func (p Position) DirectionTo(other Position) (sx, sy int) {
	if other.X > p.X {
		sx = 1
	} else if other.X < p.X {
		sx = -1
	}
	if other.Y > p.Y {
		sy = 1
	} else if other.Y < p.Y {
		sy = -1
	}
	return sx, sy
}

// SameRowOrColumn - true, если точки лежат строго на одной оси.
// Используется охранниками: диагональ не просматривается.
func (p Position) SameRowOrColumn(other Position) bool {
	return p.X == other.X || p.Y == other.Y
}

// Direction - направление взгляда сущности
type Direction uint8

const (
	DirDown Direction = iota
	DirUp
	DirLeft
	DirRight
)

var directionNames = map[Direction]string{
	DirDown:  "down",
	DirUp:    "up",
	DirLeft:  "left",
	DirRight: "right",
}

// DirectionFromDelta выводит направление взгляда из вектора шага.
// При диагонали приоритет у горизонтали (так рисовался спрайт в оригинале).
func DirectionFromDelta(dx, dy int) Direction {
	switch {
	case dx > 0:
		return DirRight
	case dx < 0:
		return DirLeft
	case dy < 0:
		return DirUp
	default:
		return DirDown
	}
}

// String реализует интерфейс Stringer (для fmt.Printf и JSON-вьюх)
func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return "down"
}
