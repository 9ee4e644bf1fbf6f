package realtime

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Message é um evento de mudança entregue pelo broker.
type Message struct {
	Channel string
	Payload string
}

// Subscriber entrega mensagens de um conjunto de canais até ser fechado.
type Subscriber interface {
	Messages() <-chan Message
	Close() error
}

// Broker abstrai o transporte de eventos de mudança (Redis pub/sub em produção).
type Broker interface {
	Publish(ctx context.Context, channel, payload string) error
	Subscribe(ctx context.Context, channels ...string) Subscriber
}

// RedisBroker implementa Broker sobre um cliente Redis.
type RedisBroker struct {
	client *redis.Client
}

// NewRedisBroker cria o broker de produção.
func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

// Publish emite o evento no canal informado.
func (b *RedisBroker) Publish(ctx context.Context, channel, payload string) error {
	return b.client.Publish(ctx, channel, payload).Err()
}

// Subscribe abre uma assinatura pub/sub para os canais.
func (b *RedisBroker) Subscribe(ctx context.Context, channels ...string) Subscriber {
	pubsub := b.client.Subscribe(ctx, channels...)
	sub := &redisSubscriber{
		pubsub: pubsub,
		out:    make(chan Message),
		done:   make(chan struct{}),
	}
	go sub.pump()
	return sub
}

type redisSubscriber struct {
	pubsub    *redis.PubSub
	out       chan Message
	done      chan struct{}
	closeOnce sync.Once
}

func (s *redisSubscriber) pump() {
	defer close(s.out)
	ch := s.pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			select {
			case s.out <- Message{Channel: msg.Channel, Payload: msg.Payload}:
			case <-s.done:
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *redisSubscriber) Messages() <-chan Message {
	return s.out
}

func (s *redisSubscriber) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}
