package systems

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/Lilllllly06/TemporalMaze/internal/domain"
	"github.com/Lilllllly06/TemporalMaze/pkg/logger"
)

// GuardState - состояние конечного автомата охранника
type GuardState uint8

const (
	GuardPatrolling GuardState = iota
	GuardAlerted
	GuardChasing
)

var guardStateNames = map[GuardState]string{
	GuardPatrolling: "PATROLLING",
	GuardAlerted:    "ALERTED",
	GuardChasing:    "CHASING",
}

// String реализует интерфейс Stringer
func (s GuardState) String() string {
	if name, ok := guardStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// DefaultViewDistance - радиус обзора охранника без явной настройки
const DefaultViewDistance = 5

// Guard - патрульный. Живет весь уровень, терминального состояния нет:
// Patrolling -> Alerted -> {Chasing | Patrolling}, Chasing <-> Patrolling.
type Guard struct {
	Pos    domain.Position
	Facing domain.Direction
	State  GuardState

	// Route - замкнутый маршрут патруля; уровень без маршрута получает
	// производный прямоугольник вокруг стартовой точки
	Route      []domain.Position
	routeIndex int

	waitRemaining  float64
	alertRemaining float64

	patrolWait    float64 // секунды ожидания на точке маршрута
	alertDuration float64

	ViewDistance int

	target    domain.Position
	hasTarget bool
}

// NewGuard создает охранника из данных уровня
func NewGuard(spec domain.GuardData, alertDuration, patrolWait float64) *Guard {
	route := spec.Route
	if len(route) == 0 {
		// Прямоугольник 4x4 по часовой стрелке от стартовой точки
		route = []domain.Position{
			spec.Pos,
			spec.Pos.Shift(4, 0),
			spec.Pos.Shift(4, 4),
			spec.Pos.Shift(0, 4),
		}
	}
	view := spec.ViewDistance
	if view <= 0 {
		view = DefaultViewDistance
	}
	return &Guard{
		Pos:           spec.Pos,
		Facing:        domain.DirDown,
		State:         GuardPatrolling,
		Route:         route,
		patrolWait:    patrolWait,
		alertDuration: alertDuration,
		ViewDistance:  view,
	}
}

// GuardEvents - что случилось за тик, для лога сессии и терминальных условий
type GuardEvents struct {
	BecameAlerted bool
	Captured      bool
}

// Update продвигает автомат охранника на один тик.
// playerPos - позиция ЖИВОГО игрока; клоны охранников не интересуют.
func (g *Guard) Update(w *domain.World, playerPos domain.Position, dt float64) GuardEvents {
	var ev GuardEvents

	switch g.State {
	case GuardPatrolling:
		// Ожидание на точке маршрута съедает весь тик
		if g.waitRemaining > 0 {
			g.waitRemaining -= dt
			return ev
		}

		waypoint := g.Route[g.routeIndex]
		if g.Pos == waypoint {
			g.routeIndex = (g.routeIndex + 1) % len(g.Route)
			g.waitRemaining = g.patrolWait
			return ev
		}

		g.moveToward(waypoint, w)

		if CanSee(w, g.Pos, g.ViewDistance, playerPos) {
			g.Alert(playerPos)
			ev.BecameAlerted = true
		}

	case GuardAlerted:
		g.alertRemaining -= dt
		if g.alertRemaining <= 0 {
			if CanSee(w, g.Pos, g.ViewDistance, playerPos) {
				g.setState(GuardChasing)
				g.target = playerPos
				g.hasTarget = true
			} else {
				g.setState(GuardPatrolling)
			}
		}

	case GuardChasing:
		if !g.hasTarget {
			g.setState(GuardPatrolling)
			break
		}

		g.moveToward(g.target, w)

		if CanSee(w, g.Pos, g.ViewDistance, playerPos) {
			// Цель видна: каждый тик освежаем её живую позицию
			g.target = playerPos
		} else if g.Pos == g.target {
			// Дошли до устаревшей точки, игрока не видно
			g.hasTarget = false
			g.setState(GuardPatrolling)
		}

		if g.Pos == playerPos {
			ev.Captured = true
		}
	}

	return ev
}

// Alert переводит охранника в состояние тревоги с таймером
func (g *Guard) Alert(target domain.Position) {
	g.setState(GuardAlerted)
	g.alertRemaining = g.alertDuration
	g.target = target
	g.hasTarget = true
}

func (g *Guard) setState(next GuardState) {
	if g.State == next {
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "guard_ai",
		"pos":       g.Pos,
		"from":      g.State,
		"to":        next,
	}).Debug("Guard state transition")
	g.State = next
}

// moveToward делает один шаг к цели: сперва ось с большей |дельтой|,
// потом вторая ось, диагональ - последняя попытка. Если все три клетки
// непроходимы, охранник стоит этот тик на месте.
func (g *Guard) moveToward(target domain.Position, w *domain.World) {
	sx, sy := g.Pos.DirectionTo(target)
	if sx == 0 && sy == 0 {
		return
	}

	dxAbs := math.Abs(float64(target.X - g.Pos.X))
	dyAbs := math.Abs(float64(target.Y - g.Pos.Y))

	if dxAbs > dyAbs {
		if g.tryStep(sx, 0, w) || g.tryStep(0, sy, w) {
			return
		}
	} else {
		if g.tryStep(0, sy, w) || g.tryStep(sx, 0, w) {
			return
		}
	}

	g.tryStep(sx, sy, w)
}

func (g *Guard) tryStep(dx, dy int, w *domain.World) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	next := g.Pos.Shift(dx, dy)
	if !w.IsWalkable(next) {
		return false
	}
	g.Facing = domain.DirectionFromDelta(dx, dy)
	g.Pos = next
	return true
}
