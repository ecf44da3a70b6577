package domain

import "strings"

// ActionType - внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove
	ActionWait
	ActionTimeTravel
	ActionInteract
	ActionRestart
	ActionNextLevel
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":        ActionInit,
	"MOVE":        ActionMove,
	"WAIT":        ActionWait,
	"TIME_TRAVEL": ActionTimeTravel,
	"INTERACT":    ActionInteract,
	"RESTART":     ActionRestart,
	"NEXT_LEVEL":  ActionNextLevel,
}

// Маппинг для логов Domain -> String
var actionCmdToString = func() map[ActionType]string {
	m := make(map[ActionType]string, len(actionStringToCmd))
	for s, a := range actionStringToCmd {
		m[a] = s
	}
	return m
}()

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Нечувствительно к регистру для надежности
	if val, ok := actionStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
