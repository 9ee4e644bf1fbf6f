package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrInvalidRefresh é retornado quando o token de refresh é inválido ou expirado.
	ErrInvalidRefresh = errors.New("refresh token inválido")
)

// RefreshSession guarda os dados necessários para renovar um acesso.
type RefreshSession struct {
	Subject string   `json:"subject"`
	Roles   []string `json:"roles"`
}

// RefreshStore persiste sessões de refresh no Redis com TTL.
type RefreshStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRefreshStore cria o armazenamento de sessões.
func NewRefreshStore(client *redis.Client, ttl time.Duration) *RefreshStore {
	return &RefreshStore{redis: client, ttl: ttl}
}

// Issue gera token aleatório, grava a sessão e devolve o token cru.
func (s *RefreshStore) Issue(ctx context.Context, session RefreshSession) (string, error) {
	raw, hashed, err := generateRefreshToken()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return "", err
	}

	if err := s.redis.Set(ctx, refreshKey(hashed), payload, s.ttl).Err(); err != nil {
		return "", err
	}

	// índice por sujeito para revogação em massa
	if err := s.redis.SAdd(ctx, subjectKey(session.Subject), hashed).Err(); err != nil {
		return "", err
	}
	_ = s.redis.Expire(ctx, subjectKey(session.Subject), s.ttl).Err()

	return raw, nil
}

// Consume valida o token, remove a sessão e devolve seus dados.
// A rotação é obrigatória: cada token só pode ser usado uma vez.
func (s *RefreshStore) Consume(ctx context.Context, raw string) (*RefreshSession, error) {
	hashed := hashRefreshToken(raw)

	payload, err := s.redis.Get(ctx, refreshKey(hashed)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	var session RefreshSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, ErrInvalidRefresh
	}

	_ = s.redis.Del(ctx, refreshKey(hashed)).Err()
	_ = s.redis.SRem(ctx, subjectKey(session.Subject), hashed).Err()

	return &session, nil
}

// Revoke invalida um token específico.
func (s *RefreshStore) Revoke(ctx context.Context, raw string) error {
	hashed := hashRefreshToken(raw)
	return s.redis.Del(ctx, refreshKey(hashed)).Err()
}

// RevokeAll invalida todas as sessões de um sujeito (logout global, exclusão de conta).
func (s *RefreshStore) RevokeAll(ctx context.Context, subject string) error {
	hashes, err := s.redis.SMembers(ctx, subjectKey(subject)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}

	keys := make([]string, 0, len(hashes)+1)
	for _, h := range hashes {
		keys = append(keys, refreshKey(h))
	}
	keys = append(keys, subjectKey(subject))
	return s.redis.Del(ctx, keys...).Err()
}

func generateRefreshToken() (raw string, hashed string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}

	raw = base64.RawURLEncoding.EncodeToString(buf)
	hashed = hashRefreshToken(raw)
	return raw, hashed, nil
}

func hashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func refreshKey(hash string) string {
	return fmt.Sprintf("refresh:%s", hash)
}

func subjectKey(subject string) string {
	return fmt.Sprintf("refresh:subject:%s", subject)
}
