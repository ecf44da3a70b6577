package handlers

import (
	"encoding/json"
	"errors"

	"github.com/Lilllllly06/TemporalMaze/internal/domain"
)

// Ошибки контракта SessionControl.
var (
	ErrLevelNotDone = errors.New("level is not completed yet")
	ErrNoMoreLevels = errors.New("no more levels")
)

// SessionControl описывает операции сессии, доступные хендлерам команд.
// GameSession неявно реализует этот интерфейс.
type SessionControl interface {
	// QueueStep запоминает запрошенный шаг; применится на ближайшем тике,
	// когда истечет кулдаун движения.
	QueueStep(dx, dy int)

	// SpawnClone создает временного клона, который реплеит след игрока
	// кроме последних steps записей.
	SpawnClone(steps int) error

	// Restart перезапускает текущий уровень с чистого листа.
	Restart() error

	// AdvanceLevel переходит к следующему уровню после достижения выхода.
	AdvanceLevel() error
}

// Context передает хендлеру состояние сессии.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	World   *domain.World
	Player  *domain.Mover
	Session SessionControl
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в журнал сессии напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, STORY, ALERT, ERROR)
}

// HandlerFunc - это контракт для любой команды (MOVE, TIME_TRAVEL, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
