package realtime

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Collection identifica uma coleção espelhada localmente.
type Collection string

const (
	CollectionMoradores    Collection = "moradores"
	CollectionChamados     Collection = "chamados"
	CollectionReservas     Collection = "reservas"
	CollectionOcorrencias  Collection = "ocorrencias"
	CollectionVotacoes     Collection = "votacoes"
	CollectionAvisos       Collection = "avisos"
	CollectionNotificacoes Collection = "notificacoes"
	CollectionDocumentos   Collection = "documentos"
)

var (
	// ErrUnknownCollection indica coleção sem loader registrado.
	ErrUnknownCollection = errors.New("coleção desconhecida")
	// ErrHubStopped indica hub já encerrado.
	ErrHubStopped = errors.New("hub encerrado")
)

const channelPrefix = "realtime:"

// Entry é uma entidade do snapshot com sua chave.
type Entry struct {
	ID    string
	Value any
}

// Snapshot é o estado completo de uma coleção em um instante.
// Entries preserva a ordem definida pelo loader; ByID indexa por chave.
type Snapshot struct {
	Collection Collection
	Version    uint64
	Entries    []Entry
	ByID       map[string]any
}

// Loader carrega o snapshot completo de uma coleção, já na ordem de exibição.
type Loader func(ctx context.Context) ([]Entry, error)

// Subscription recebe snapshots de uma coleção. Consumidores lentos não
// bloqueiam o hub: apenas o snapshot mais recente fica pendente no canal.
type Subscription struct {
	C <-chan Snapshot

	ch        chan Snapshot
	hub       *Hub
	coll      Collection
	id        uint64
	closeOnce sync.Once
}

// Close encerra a assinatura. Seguro chamar mais de uma vez e durante entrega.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.hub.remove(s.coll, s.id)
	})
}

type collectionState struct {
	loader   Loader
	version  uint64
	snapshot *Snapshot
	subs     map[uint64]*Subscription
}

// Hub mantém o espelho local de cada coleção e distribui snapshots.
// O broker é injetado; o ciclo de vida é explícito via Start/Stop.
type Hub struct {
	broker Broker
	log    zerolog.Logger

	mu          sync.Mutex
	collections map[Collection]*collectionState
	nextSubID   uint64
	started     bool
	stopped     bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHub cria o hub com broker injetado.
func NewHub(broker Broker, log zerolog.Logger) *Hub {
	return &Hub{
		broker:      broker,
		log:         log,
		collections: make(map[Collection]*collectionState),
	}
}

// Register associa o loader de snapshot a uma coleção. Deve ocorrer antes de Start.
func (h *Hub) Register(coll Collection, loader Loader) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.collections[coll] = &collectionState{
		loader: loader,
		subs:   make(map[uint64]*Subscription),
	}
}

// Start carrega snapshots iniciais e abre a escuta de eventos de mudança.
func (h *Hub) Start(ctx context.Context) error {
	h.mu.Lock()
	if h.started || h.stopped {
		h.mu.Unlock()
		return ErrHubStopped
	}
	h.started = true
	channels := make([]string, 0, len(h.collections))
	colls := make([]Collection, 0, len(h.collections))
	for coll := range h.collections {
		channels = append(channels, channelPrefix+string(coll))
		colls = append(colls, coll)
	}
	h.mu.Unlock()

	sort.Slice(colls, func(i, j int) bool { return colls[i] < colls[j] })

	for _, coll := range colls {
		if err := h.Refresh(ctx, coll); err != nil {
			return err
		}
	}

	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	h.cancel = cancel

	h.wg.Add(1)
	go h.watch(watchCtx, channels)
	return nil
}

// Stop encerra a escuta e fecha todas as assinaturas. Idempotente.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	cancel := h.cancel
	for _, state := range h.collections {
		for _, sub := range state.subs {
			close(sub.ch)
		}
		state.subs = make(map[uint64]*Subscription)
	}
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	h.wg.Wait()
}

// watch consome eventos de mudança e recarrega a coleção afetada.
// Em caso de queda do canal, tenta reconectar com backoff limitado,
// mantendo o último snapshot conhecido no lugar.
func (h *Hub) watch(ctx context.Context, channels []string) {
	defer h.wg.Done()

	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		sub := h.broker.Subscribe(ctx, channels...)
		backoffTimer := func() bool {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(backoff):
				if backoff < maxBackoff {
					backoff *= 2
				}
				return true
			}
		}

	recv:
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case msg, ok := <-sub.Messages():
				if !ok {
					break recv
				}
				backoff = time.Second
				coll := Collection(msg.Channel[len(channelPrefix):])
				if err := h.Refresh(ctx, coll); err != nil {
					h.log.Warn().Err(err).Str("collection", string(coll)).Msg("falha ao recarregar snapshot")
				}
			}
		}

		_ = sub.Close()
		h.log.Warn().Msg("canal de eventos caiu; reconectando")
		if !backoffTimer() {
			return
		}
	}
}

// Publish anuncia que a coleção mudou; os espelhos recarregam na sequência.
func (h *Hub) Publish(ctx context.Context, coll Collection) {
	if err := h.broker.Publish(ctx, channelPrefix+string(coll), "changed"); err != nil {
		h.log.Warn().Err(err).Str("collection", string(coll)).Msg("falha ao publicar mudança")
	}
}

// Refresh recarrega o snapshot da coleção e notifica assinantes.
func (h *Hub) Refresh(ctx context.Context, coll Collection) error {
	h.mu.Lock()
	state, ok := h.collections[coll]
	h.mu.Unlock()
	if !ok {
		return ErrUnknownCollection
	}

	entries, err := state.loader(ctx)
	if err != nil {
		return err
	}

	byID := make(map[string]any, len(entries))
	for _, entry := range entries {
		byID[entry.ID] = entry.Value
	}

	// entrega sob o mutex: fechar e enviar no mesmo canal ficam serializados,
	// e deliver nunca bloqueia.
	h.mu.Lock()
	defer h.mu.Unlock()
	state.version++
	snapshot := &Snapshot{
		Collection: coll,
		Version:    state.version,
		Entries:    entries,
		ByID:       byID,
	}
	state.snapshot = snapshot
	for _, sub := range state.subs {
		deliver(sub.ch, *snapshot)
	}
	return nil
}

// deliver entrega com coalescência: se houver snapshot pendente não consumido,
// ele é descartado em favor do mais novo.
func deliver(ch chan Snapshot, snap Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Subscribe abre uma assinatura para a coleção. O snapshot corrente, quando
// existir, é entregue imediatamente.
func (h *Hub) Subscribe(coll Collection) (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return nil, ErrHubStopped
	}
	state, ok := h.collections[coll]
	if !ok {
		return nil, ErrUnknownCollection
	}

	h.nextSubID++
	ch := make(chan Snapshot, 1)
	sub := &Subscription{
		C:    ch,
		ch:   ch,
		hub:  h,
		coll: coll,
		id:   h.nextSubID,
	}
	state.subs[sub.id] = sub

	if state.snapshot != nil {
		ch <- *state.snapshot
	}
	return sub, nil
}

// Snapshot devolve o último snapshot conhecido da coleção, se houver.
func (h *Hub) Snapshot(coll Collection) (*Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	state, ok := h.collections[coll]
	if !ok || state.snapshot == nil {
		return nil, false
	}
	return state.snapshot, true
}

func (h *Hub) remove(coll Collection, id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	state, ok := h.collections[coll]
	if !ok {
		return
	}
	if sub, exists := state.subs[id]; exists {
		delete(state.subs, id)
		close(sub.ch)
	}
}
