package agent

import (
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Lilllllly06/TemporalMaze/internal/engine"
	"github.com/Lilllllly06/TemporalMaze/pkg/api"
)

// Bot - "игрок-компьютер" (Headless Agent). Это пример ВНЕШНЕГО клиента:
// он создает собственную партию, получает те же снимки, что и браузерный
// клиент, и шлет обратно обычные команды. Используется для прогонов
// записанных решений уровней без фронтенда (smoke-тесты кампании).
//
// Жизненный цикл:
//  1. NewBot -> создание сессии и регистрация в хабе (личный Inbox).
//  2. Run -> запускается в горутине, отправляет сценарий шаг за шагом.
//  3. Снимки из Inbox двигают сценарий: поимка прерывает прогон,
//     достижение выхода переключает уровень.
type Bot struct {
	Service   *engine.GameService
	SessionID string
	Inbox     chan api.ServerResponse

	script []api.ClientCommand
	pace   time.Duration
}

// Step - один шаг сценария в человекочитаемой форме.
type Step struct {
	Action string
	Dx, Dy int // для MOVE
	Steps  int // для TIME_TRAVEL
}

// NewBot создает партию для агента и подписывает его на снимки.
func NewBot(service *engine.GameService, script []Step, pace time.Duration) (*Bot, error) {
	sess, err := service.CreateSession()
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"component": "agent",
		"session":   sess.ID,
		"steps":     len(script),
	}).Info("Creating headless agent")

	return &Bot{
		Service:   service,
		SessionID: sess.ID,
		Inbox:     service.Hub.Register(sess.ID),
		script:    compile(sess.ID, script),
		pace:      pace,
	}, nil
}

// compile превращает шаги сценария в готовые команды протокола.
func compile(token string, script []Step) []api.ClientCommand {
	out := make([]api.ClientCommand, 0, len(script))
	for _, st := range script {
		cmd := api.ClientCommand{Token: token, Action: st.Action}
		switch st.Action {
		case "MOVE":
			cmd.Payload, _ = json.Marshal(api.DirectionPayload{Dx: st.Dx, Dy: st.Dy})
		case "TIME_TRAVEL":
			cmd.Payload, _ = json.Marshal(api.TimeTravelPayload{Steps: st.Steps})
		}
		out = append(out, cmd)
	}
	return out
}

// Run прогоняет сценарий. Должен быть запущен в горутине.
// Возвращает true, если агент дошел до конца сценария непойманным.
func (b *Bot) Run() bool {
	defer func() {
		b.Service.Hub.Unregister(b.SessionID)
		b.Service.CloseSession(b.SessionID)
		logrus.WithField("session", b.SessionID).Info("Agent shut down")
	}()

	b.Service.ProcessCommand(api.ClientCommand{Token: b.SessionID, Action: "INIT"})

	ticker := time.NewTicker(b.pace)
	defer ticker.Stop()

	next := 0
	for {
		select {
		case state, ok := <-b.Inbox:
			if !ok {
				return false
			}
			if state.Captured {
				logrus.WithFields(logrus.Fields{
					"component": "agent",
					"session":   b.SessionID,
					"tick":      state.Tick,
				}).Warn("Agent captured by a guard")
				return false
			}
			if state.LevelCompleted {
				// Сценарий пишется сквозным: NEXT_LEVEL стоит в нем явно,
				// здесь только фиксируем факт.
				logrus.WithFields(logrus.Fields{
					"component": "agent",
					"session":   b.SessionID,
					"level":     state.LevelName,
				}).Info("Level completed")
			}

		case <-ticker.C:
			if next >= len(b.script) {
				return true
			}
			b.Service.ProcessCommand(b.script[next])
			next++
		}
	}
}
