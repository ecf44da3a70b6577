package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту:
// полный снимок состояния сессии на конец тика. Рендерер опрашивает его
// и ничего не вычисляет сам - вся логика остается на сервере.
type ServerResponse struct {
	// Type тип сообщения: "INIT" при первой отрисовке, дальше "UPDATE".
	Type string `json:"type"`

	// Tick номер тика симуляции, с которого снят снимок.
	Tick uint64 `json:"tick"`

	// Grid метаданные о размере карты текущего уровня.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map срез всех тайлов уровня. Двери приходят уже в актуальном
	// состоянии (открыта/закрыта), клиенту не нужно знать про переключатели.
	Map []TileView `json:"map,omitempty"`

	// Player состояние живого игрока.
	Player *PlayerView `json:"player,omitempty"`

	// Clones активные временные клоны в порядке создания.
	Clones []CloneView `json:"clones"`

	// Guards все охранники уровня с их состояниями.
	Guards []GuardView `json:"guards"`

	// LevelName имя текущего уровня.
	LevelName string `json:"levelName,omitempty"`

	// LevelIndex номер текущего уровня, с единицы.
	LevelIndex int `json:"levelIndex,omitempty"`

	// LevelCompleted поднимается, когда игрок коснулся выхода.
	LevelCompleted bool `json:"levelCompleted"`

	// Captured поднимается, когда охранник поймал игрока.
	Captured bool `json:"captured"`

	// Logs новые записи журнала с прошлого снимка.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит размеры карты, чтобы клиент подготовил сетку рендеринга.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Kind символическое имя тайла (FLOOR, WALL, DOOR_CLOSED, ...).
	Kind string `json:"kind"`

	// Glyph односимвольное ASCII-представление для текстового рендера.
	Glyph string `json:"glyph"`

	// Walkable подсказка клиенту для подсветки доступных клеток.
	Walkable bool `json:"walkable"`
}

// PlayerView это DTO живого игрока.
type PlayerView struct {
	Pos    PositionView `json:"pos"`
	Facing string       `json:"facing"`

	Energy    int `json:"energy"`
	EnergyMax int `json:"energyMax"`
	Keys      int `json:"keys"`

	// HistoryLen текущая длина следа. Клиент показывает её рядом с
	// вводом "на сколько шагов назад", чтобы игрок знал допустимый диапазон.
	HistoryLen int `json:"historyLen"`
}

// CloneView это DTO временного клона.
type CloneView struct {
	Pos    PositionView `json:"pos"`
	Facing string       `json:"facing"`
	Active bool         `json:"active"`

	// PathLen полная длина реплея клона.
	PathLen int `json:"pathLen"`
}

// GuardView это DTO охранника.
type GuardView struct {
	Pos    PositionView `json:"pos"`
	Facing string       `json:"facing"`

	// State текстовое состояние автомата: PATROLLING, ALERTED, CHASING.
	State string `json:"state"`
}

// PositionView - координата в DTO.
type PositionView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// LogEntry представляет одну запись в журнале сессии.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, STORY, ALERT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token идентификатор сессии. Пустой в первом сообщении - сервер
	// выдает новый.
	Token string `json:"token,omitempty"`

	// Action название действия: INIT, MOVE, WAIT, TIME_TRAVEL, INTERACT,
	// RESTART, NEXT_LEVEL.
	Action string `json:"action"`

	// Payload JSON-объект с данными действия; структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// DirectionPayload используется для MOVE.
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// TimeTravelPayload используется для TIME_TRAVEL.
type TimeTravelPayload struct {
	// Steps на сколько записей следа вернуться назад. Клон реплеит весь
	// след КРОМЕ последних Steps записей.
	Steps int `json:"steps"`
}
