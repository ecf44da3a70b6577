package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Lilllllly06/TemporalMaze/internal/domain"
	"github.com/Lilllllly06/TemporalMaze/internal/engine/handlers"
	"github.com/Lilllllly06/TemporalMaze/internal/systems"
	"github.com/Lilllllly06/TemporalMaze/pkg/api"
)

// Реэкспорт ошибок контракта, чтобы внешний код не зависел от handlers.
var (
	ErrLevelNotDone = handlers.ErrLevelNotDone
	ErrNoMoreLevels = handlers.ErrNoMoreLevels
)

// GameSession - одна партия одного игрока: мир текущего уровня, живой
// игрок, его клоны и охранники. Сессия однопоточна: все мутации происходят
// в цикле сервиса, внешний мир общается с ней только командами и снимками.
type GameSession struct {
	ID string

	cfg Config

	levels     []*domain.LevelData
	levelIndex int

	World  *domain.World
	Player *domain.Mover

	// Clones хранятся в порядке создания; порядок обновления важен,
	// потому что клоны двигают переключатели друг за другом.
	Clones []*systems.TimeClone
	Guards []*systems.Guard

	Tick           uint64
	LevelCompleted bool
	Captured       bool

	// отложенный шаг игрока; применяется на тике с учетом кулдауна
	pendingDx  int
	pendingDy  int
	hasPending bool
	cooldown   float64

	logs []api.LogEntry
}

// NewSession создает сессию и загружает первый уровень набора.
func NewSession(cfg Config, levels []*domain.LevelData) (*GameSession, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("engine: no levels to play")
	}

	s := &GameSession{
		ID:     uuid.NewString(),
		cfg:    cfg,
		levels: levels,
	}
	if err := s.loadLevel(0); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"component": "session",
		"session":   s.ID,
		"levels":    len(levels),
	}).Info("Session created")

	return s, nil
}

// loadLevel собирает мир уровня i и сбрасывает все живое состояние.
func (s *GameSession) loadLevel(i int) error {
	ld := s.levels[i]
	world, err := ld.BuildWorld()
	if err != nil {
		return fmt.Errorf("engine: load level %d (%s): %w", i, ld.Name, err)
	}

	s.World = world
	s.Player = domain.NewPlayer(ld.PlayerStart, s.cfg.StartEnergy, s.cfg.HistoryCap)
	s.Clones = nil
	s.Guards = nil
	for _, g := range ld.Guards {
		s.Guards = append(s.Guards, systems.NewGuard(g, s.cfg.AlertDuration.Seconds(), s.cfg.PatrolWait.Seconds()))
	}

	s.levelIndex = i
	s.LevelCompleted = false
	s.Captured = false
	s.hasPending = false
	s.cooldown = 0

	return nil
}

// --- SessionControl (команды) ---

// QueueStep запоминает запрошенный шаг. Повторная команда до тика
// перезаписывает предыдущую: применяется последнее намерение игрока.
func (s *GameSession) QueueStep(dx, dy int) {
	if s.roundOver() {
		return
	}
	s.pendingDx, s.pendingDy = dx, dy
	s.hasPending = true
}

// SpawnClone создает клона по текущему следу игрока.
// Лимит одновременных клонов проверяется ДО траты энергии.
func (s *GameSession) SpawnClone(steps int) error {
	if s.roundOver() {
		return systems.ErrNoHistory
	}
	if len(s.Clones) >= s.cfg.MaxClones {
		return systems.ErrCloneLimit
	}

	clone, err := systems.NewClone(s.Player, steps)
	if err != nil {
		return err
	}
	s.Clones = append(s.Clones, clone)

	logrus.WithFields(logrus.Fields{
		"component": "session",
		"session":   s.ID,
		"clones":    len(s.Clones),
		"path_len":  clone.PathLen(),
	}).Info("Clone spawned")

	return nil
}

// Restart перезапускает текущий уровень.
func (s *GameSession) Restart() error {
	return s.loadLevel(s.levelIndex)
}

// AdvanceLevel переходит к следующему уровню. Разрешен только после
// достижения выхода на текущем.
func (s *GameSession) AdvanceLevel() error {
	if !s.LevelCompleted {
		return ErrLevelNotDone
	}
	if s.levelIndex+1 >= len(s.levels) {
		return ErrNoMoreLevels
	}
	return s.loadLevel(s.levelIndex + 1)
}

// --- Тик симуляции ---

// Advance продвигает симуляцию на dt секунд в фиксированном порядке:
// шаг игрока, клоны в порядке создания, охранники. Порядок зафиксирован,
// чтобы реплей одного и того же следа всегда давал один и тот же мир.
func (s *GameSession) Advance(dt float64) {
	s.Tick++
	if s.roundOver() {
		// Мир заморожен до RESTART / NEXT_LEVEL.
		return
	}

	s.advancePlayer(dt)

	// Победа или поимка на шаге игрока замораживают остальной тик.
	if !s.roundOver() {
		s.advanceClones()
		s.advanceGuards(dt)
	}
}

func (s *GameSession) advancePlayer(dt float64) {
	if s.cooldown > 0 {
		s.cooldown -= dt
	}
	if !s.hasPending || s.cooldown > 0 {
		return
	}
	s.hasPending = false
	s.cooldown = s.cfg.MoveCooldown.Seconds()

	// След пишется ДО исхода шага: клон должен повторить и те позиции,
	// где игрок стоял, упираясь в стену.
	s.Player.History.Record(s.Player.Pos, s.Player.Facing)

	res := systems.ResolveStep(s.Player, s.pendingDx, s.pendingDy, s.World)

	if res.Message != "" {
		s.AddLog(res.Message, "STORY")
	}
	if res.PickedUp {
		switch res.PickedKind {
		case domain.ItemKey:
			s.AddLog("Подобран ключ.", "INFO")
		case domain.ItemPotion:
			s.AddLog("Фляга энергии восстанавливает заряд времени.", "INFO")
		}
	}
	if res.UsedKey {
		s.AddLog("Ключ подошел. Дверь открыта.", "INFO")
	}

	switch res.Kind {
	case systems.StepMovedAndWon:
		s.LevelCompleted = true
		s.AddLog("Выход достигнут. Петля замкнулась.", "STORY")
	case systems.StepTeleported:
		s.AddLog("Портал выплевывает вас в другом конце лабиринта.", "INFO")
	}
}

func (s *GameSession) advanceClones() {
	alive := s.Clones[:0]
	for _, c := range s.Clones {
		if c.Update(s.World) {
			alive = append(alive, c)
			continue
		}
		// Истекший клон отпускает переключатель, на котором закончил путь:
		// переключатель активен, только пока на нем кто-то стоит.
		s.World.DeactivateSwitch(c.Pos)
		s.AddLog("Клон догнал собственное настоящее и растворился.", "INFO")
	}
	// Хвост среза зануляем, чтобы не держать исчезнувших клонов в памяти.
	for i := len(alive); i < len(s.Clones); i++ {
		s.Clones[i] = nil
	}
	s.Clones = alive
}

func (s *GameSession) advanceGuards(dt float64) {
	for _, g := range s.Guards {
		ev := g.Update(s.World, s.Player.Pos, dt)
		if ev.BecameAlerted {
			s.AddLog("Охранник что-то заметил!", "ALERT")
		}
		if ev.Captured && !s.Captured {
			s.Captured = true
			s.AddLog("Охранник схватил вас. Петля оборвана.", "ALERT")
		}
	}
	if s.Captured {
		return
	}

	// Игрок сам наткнулся на охранника: тот поднимает тревогу немедленно,
	// а поимка случится на его следующем ходу, если игрок не отпрыгнет.
	for _, g := range s.Guards {
		if g.Pos == s.Player.Pos && g.State != systems.GuardChasing {
			g.Alert(s.Player.Pos)
			s.AddLog("Вы столкнулись с охранником лицом к лицу!", "ALERT")
		}
	}
}

func (s *GameSession) roundOver() bool {
	return s.LevelCompleted || s.Captured
}

// AddLog добавляет запись в журнал сессии. Записи копятся до ближайшего
// снимка и уходят клиенту одной пачкой.
func (s *GameSession) AddLog(text, logType string) {
	s.logs = append(s.logs, api.LogEntry{
		ID:        uuid.NewString(),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
}
