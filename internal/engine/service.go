package engine

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Lilllllly06/TemporalMaze/internal/domain"
	"github.com/Lilllllly06/TemporalMaze/internal/engine/handlers"
	"github.com/Lilllllly06/TemporalMaze/internal/engine/handlers/actions"
	"github.com/Lilllllly06/TemporalMaze/internal/network"
	"github.com/Lilllllly06/TemporalMaze/pkg/api"
)

// GameService владеет всеми активными сессиями и раздает их снимки через
// Hub. Каждая сессия крутится в своей горутине: команды и тики сериализуются
// через один select, поэтому внутри сессии нет ни одного мьютекса.
type GameService struct {
	cfg    Config
	levels []*domain.LevelData

	Hub *network.Broadcaster

	handlers map[domain.ActionType]handlers.HandlerFunc

	mu       sync.RWMutex
	sessions map[string]*sessionRuntime
}

type sessionRuntime struct {
	session *GameSession
	cmds    chan internalCommand
	done    chan struct{}
	once    sync.Once
}

type internalCommand struct {
	action  domain.ActionType
	payload []byte
}

func NewService(cfg Config, levels []*domain.LevelData) *GameService {
	s := &GameService{
		cfg:      cfg,
		levels:   levels,
		Hub:      network.NewBroadcaster(),
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
		sessions: make(map[string]*sessionRuntime),
	}
	s.registerHandlers()
	return s
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.ActionWait] = handlers.WithEmptyPayload(actions.HandleWait)
	s.handlers[domain.ActionTimeTravel] = handlers.WithPayload(actions.HandleTimeTravel)
	s.handlers[domain.ActionInteract] = handlers.WithEmptyPayload(actions.HandleInteract)
	s.handlers[domain.ActionRestart] = handlers.WithEmptyPayload(actions.HandleRestart)
	s.handlers[domain.ActionNextLevel] = handlers.WithEmptyPayload(actions.HandleNextLevel)
}

// CreateSession создает новую партию и запускает ее цикл.
func (s *GameService) CreateSession() (*GameSession, error) {
	sess, err := NewSession(s.cfg, s.levels)
	if err != nil {
		return nil, err
	}

	rt := &sessionRuntime{
		session: sess,
		cmds:    make(chan internalCommand, 64),
		done:    make(chan struct{}),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = rt
	s.mu.Unlock()

	go s.runSession(rt)
	return sess, nil
}

// CloseSession останавливает цикл сессии и выбрасывает ее из реестра.
func (s *GameService) CloseSession(id string) {
	s.mu.Lock()
	rt, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		rt.once.Do(func() { close(rt.done) })
		s.Hub.Unregister(id)
	}
}

// SessionCount возвращает число активных сессий (для health/debug).
func (s *GameService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Snapshot возвращает слепок сессии вне ее цикла. Только для отладочных
// ручек: гонки с циклом здесь осознанно допустимы.
func (s *GameService) Snapshot(id string) (*api.ServerResponse, bool) {
	s.mu.RLock()
	rt, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return rt.session.PeekState(), true
}

// ProcessCommand принимает команду от внешнего мира (WebSocket).
// Token сообщения - это ID сессии, его сопоставляет транспортный слой.
func (s *GameService) ProcessCommand(cmd api.ClientCommand) {
	actionType := domain.ParseAction(cmd.Action)
	if actionType == domain.ActionUnknown {
		logrus.WithFields(logrus.Fields{
			"component": "service",
			"action":    cmd.Action,
		}).Warn("Unknown action")
		return
	}

	s.mu.RLock()
	rt, ok := s.sessions[cmd.Token]
	s.mu.RUnlock()
	if !ok {
		logrus.WithFields(logrus.Fields{
			"component": "service",
			"token":     cmd.Token,
		}).Warn("Command for unknown session")
		return
	}

	select {
	case rt.cmds <- internalCommand{action: actionType, payload: cmd.Payload}:
	default:
		// Клиент зафлудил канал; команда дешевле, чем блокировка цикла.
		logrus.WithField("session", cmd.Token).Warn("Command channel full, dropping")
	}
}

// --- SESSION LOOP ---

func (s *GameService) runSession(rt *sessionRuntime) {
	sess := rt.session

	logrus.WithFields(logrus.Fields{
		"component": "service",
		"session":   sess.ID,
	}).Info("Session loop started")

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-rt.done:
			logrus.WithField("session", sess.ID).Info("Session loop stopped")
			return

		case cmd := <-rt.cmds:
			s.executeCommand(sess, cmd)
			// Ответ на команду уходит сразу, не дожидаясь тика.
			s.publish(sess, responseType(cmd.action))

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			sess.Advance(dt)
			s.publish(sess, "UPDATE")
		}
	}
}

func (s *GameService) executeCommand(sess *GameSession, cmd internalCommand) {
	handler, ok := s.handlers[cmd.action]
	if !ok {
		return
	}

	ctx := handlers.Context{
		World:   sess.World,
		Player:  sess.Player,
		Session: sess,
	}

	result, err := handler(ctx, cmd.payload)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"component": "service",
			"session":   sess.ID,
			"action":    cmd.action.String(),
		}).WithError(err).Warn("Command rejected")
		sess.AddLog("Команда отклонена сервером.", "ERROR")
		return
	}

	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = "INFO"
		}
		sess.AddLog(result.Msg, msgType)
	}
}

func (s *GameService) publish(sess *GameSession, msgType string) {
	state := sess.BuildState(msgType)
	s.Hub.SendTo(sess.ID, *state)
}

func responseType(action domain.ActionType) string {
	if action == domain.ActionInit {
		return "INIT"
	}
	return "UPDATE"
}
