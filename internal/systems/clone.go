package systems

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Lilllllly06/TemporalMaze/internal/domain"
	"github.com/Lilllllly06/TemporalMaze/pkg/logger"
)

// Ошибки создания клона. Все они восстановимые: вызывающая сторона
// показывает сообщение и дает попробовать снова. При любой из них
// ни энергия, ни состояние мира не меняются.
var (
	ErrNoEnergy         = errors.New("no temporal energy")
	ErrInvalidStepCount = errors.New("invalid step count")
	ErrNoHistory        = errors.New("no history to replay")
	ErrCloneLimit       = errors.New("too many active clones")
)

// TimeClone - мовер-реплей. Владеет неизменяемым снимком префикса следа
// игрока и курсором; каждый тик делает ровно один шаг по снимку.
// Клон не выигрывает, не подбирает предметы, не открывает ключевые двери
// и не порождает новых клонов.
type TimeClone struct {
	Pos    domain.Position
	Facing domain.Direction

	path   []domain.HistoryEntry
	cursor int
	active bool
}

// NewClone создает клона, который реплеит весь след игрока КРОМЕ последних
// steps записей: path = history[0 .. len-steps). "Вернуться на N шагов назад"
// означает, что последние N позиций клон уже не повторит.
//
// Порядок проверок: энергия, диапазон steps, непустой срез. На любой ошибке
// состояние не мутируется; энергия тратится ровно одна и только при успехе.
func NewClone(mv *domain.Mover, steps int) (*TimeClone, error) {
	if mv.Energy <= 0 {
		return nil, ErrNoEnergy
	}
	histLen := mv.History.Len()
	if steps < 1 || steps >= histLen {
		return nil, ErrInvalidStepCount
	}
	path := mv.History.Prefix(histLen - steps)
	if len(path) == 0 {
		return nil, ErrNoHistory
	}

	mv.Energy--

	logger.Log.WithFields(logrus.Fields{
		"component":  "time_travel",
		"steps_back": steps,
		"path_len":   len(path),
		"start":      path[0].Pos,
	}).Info("Time clone created")

	return &TimeClone{
		Pos:    path[0].Pos,
		Facing: path[0].Facing,
		path:   path,
		active: true,
	}, nil
}

// Update делает один шаг реплея. Возвращает false, когда клон исчерпал путь.
// Побочные эффекты клона - только переключатели: сойти со старой клетки,
// нажать на новой. Это тот же переход, что делает резолвер для игрока,
// поэтому реплей тайл-в-тайл повторяет историю активаций живого прохода.
func (c *TimeClone) Update(w *domain.World) bool {
	if !c.active || c.cursor >= len(c.path) {
		c.active = false
		return false
	}

	next := c.path[c.cursor]

	releaseSwitchUnder(w, c.Pos)
	c.Pos = next.Pos
	c.Facing = next.Facing
	pressSwitchUnder(w, c.Pos)

	c.cursor++
	if c.cursor == len(c.path) {
		// Эффект переключателя финальной клетки уже применен выше
		c.active = false
	}
	return c.active
}

// Active - true, пока клон не исчерпал свой путь
func (c *TimeClone) Active() bool {
	return c.active
}

// PathLen возвращает длину снимка (для UI и тестов)
func (c *TimeClone) PathLen() int {
	return len(c.path)
}
