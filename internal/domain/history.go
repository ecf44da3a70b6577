package domain

// HistoryEntry - один зафиксированный момент следа игрока
type HistoryEntry struct {
	Pos    Position  `json:"pos"`
	Facing Direction `json:"facing"`
}

// HistoryLog - ограниченный след прошлых позиций живого игрока.
// FIFO с вытеснением самой старой записи при переполнении.
// Две подряд идущие записи никогда не имеют одинаковую позицию.
type HistoryLog struct {
	entries  []HistoryEntry
	capacity int
}

// NewHistoryLog создает пустой лог с заданной вместимостью
func NewHistoryLog(capacity int) *HistoryLog {
	if capacity < 1 {
		capacity = 1
	}
	return &HistoryLog{
		entries:  make([]HistoryEntry, 0, capacity),
		capacity: capacity,
	}
}

// Record фиксирует позицию и направление взгляда.
// Запись с позицией, совпадающей с последней, молча отбрасывается -
// это защита от дублей при заблокированных шагах.
func (h *HistoryLog) Record(pos Position, facing Direction) {
	if n := len(h.entries); n > 0 && h.entries[n-1].Pos == pos {
		return
	}
	h.entries = append(h.entries, HistoryEntry{Pos: pos, Facing: facing})
	if len(h.entries) > h.capacity {
		// Вытесняем индекс 0 (самую старую запись)
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:h.capacity]
	}
}

// Len возвращает текущую длину следа
func (h *HistoryLog) Len() int {
	return len(h.entries)
}

// Prefix возвращает НЕЗАВИСИМУЮ копию первых n записей.
// Клон владеет своим снимком: дальнейший рост лога его не трогает.
func (h *HistoryLog) Prefix(n int) []HistoryEntry {
	if n < 0 {
		n = 0
	}
	if n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]HistoryEntry, n)
	copy(out, h.entries[:n])
	return out
}

// Reset очищает след (смена уровня)
func (h *HistoryLog) Reset() {
	h.entries = h.entries[:0]
}
