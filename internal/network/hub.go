package network

import (
	"sync"

	"github.com/Lilllllly06/TemporalMaze/pkg/api"
)

// Broadcaster занимается только доставкой снимков подписчикам.
// Ключ подписки - ID сессии: у каждой партии ровно один зритель (ее игрок),
// поэтому unicast здесь основной режим, а Broadcast оставлен для
// служебных объявлений (например, о перезапуске сервера).
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: SessionID -> Личный канал
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал для сессии.
// Повторная регистрация (переподключение клиента) закрывает старый канал.
func (b *Broadcaster) Register(sessionID string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[sessionID]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[sessionID] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[sessionID]; ok {
		close(ch)
		delete(b.subscribers, sessionID)
	}
}

// SendTo отправляет снимок конкретной сессии (Unicast)
func (b *Broadcaster) SendTo(sessionID string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[sessionID]; ok {
		select {
		case ch <- msg:
		default:
			// Медленный клиент; терять снимок безопасно, придет следующий.
		}
	}
}

// Broadcast отправляет всем подписчикам
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
