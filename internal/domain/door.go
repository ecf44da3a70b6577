package domain

import "strings"

// LockKind - способ запирания двери
type LockKind uint8

const (
	// LockSwitch: дверь открыта ровно тогда, когда активны ВСЕ её переключатели.
	// Пересчитывается синхронно при каждой мутации переключателя.
	LockSwitch LockKind = iota
	// LockKey: дверь открывается ключом один раз и навсегда.
	LockKey
)

var lockNames = map[LockKind]string{
	LockSwitch: "switch",
	LockKey:    "key",
}

var namesLock = map[string]LockKind{
	"switch": LockSwitch,
	"key":    LockKey,
}

// ParseLockKind конвертирует строку из файла уровня в LockKind
func ParseLockKind(s string) (LockKind, bool) {
	k, ok := namesLock[strings.ToLower(s)]
	return k, ok
}

// String реализует интерфейс Stringer
func (k LockKind) String() string {
	if s, ok := lockNames[k]; ok {
		return s
	}
	return "unknown"
}

// DoorSpec - состояние одной двери.
// Инвариант для LockSwitch: IsOpen == (Required ⊆ активные переключатели)
// сразу после каждой мутации переключателя, никогда лениво.
type DoorSpec struct {
	// Required - набор позиций переключателей, которые должны быть активны
	// одновременно. Для LockKey всегда пуст.
	Required map[Position]struct{}
	IsOpen   bool
	Lock     LockKind
}

// RequiresSwitch - true, если дверь зависит от данного переключателя
func (d *DoorSpec) RequiresSwitch(pos Position) bool {
	_, ok := d.Required[pos]
	return ok
}
