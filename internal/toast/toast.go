package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind distingue mensagens de sucesso e de falha.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message é uma mensagem efêmera de retorno ao usuário. Nunca é sincronizada.
type Message struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`

	expiresAt time.Time
}

// Queue guarda mensagens por usuário com expiração automática.
type Queue struct {
	mu       sync.Mutex
	store    map[string][]Message
	ttl      time.Duration
	lastScan time.Time
	now      func() time.Time
}

// NewQueue cria a fila com o TTL informado.
func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Queue{
		store: make(map[string][]Message),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Push enfileira uma mensagem para o usuário.
// Cada desfecho de mutação produz exatamente uma mensagem; operações em lote
// devem resumir o resultado em uma única chamada.
func (q *Queue) Push(userID string, kind Kind, text string) Message {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	msg := Message{
		ID:        uuid.NewString(),
		Kind:      kind,
		Text:      text,
		CreatedAt: now,
		expiresAt: now.Add(q.ttl),
	}
	q.store[userID] = append(q.store[userID], msg)
	q.sweepLocked(now)
	return msg
}

// Drain devolve e remove as mensagens ainda válidas do usuário.
func (q *Queue) Drain(userID string) []Message {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	pending := q.store[userID]
	delete(q.store, userID)

	out := make([]Message, 0, len(pending))
	for _, msg := range pending {
		if msg.expiresAt.After(now) {
			out = append(out, msg)
		}
	}
	return out
}

// sweepLocked descarta filas totalmente expiradas para conter crescimento.
func (q *Queue) sweepLocked(now time.Time) {
	if now.Sub(q.lastScan) < q.ttl {
		return
	}
	q.lastScan = now
	for user, msgs := range q.store {
		alive := msgs[:0]
		for _, msg := range msgs {
			if msg.expiresAt.After(now) {
				alive = append(alive, msg)
			}
		}
		if len(alive) == 0 {
			delete(q.store, user)
			continue
		}
		q.store[user] = alive
	}
}
