package morador

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
	"github.com/tassiius1-pixel/condominio/internal/auth"
	"github.com/tassiius1-pixel/condominio/internal/policy"
	"github.com/tassiius1-pixel/condominio/internal/realtime"
	"github.com/tassiius1-pixel/condominio/internal/util"
)

type changePublisher interface {
	Publish(ctx context.Context, coll realtime.Collection)
}

type sessionRevoker interface {
	RevokeAll(ctx context.Context, subject string) error
}

// Service reúne regras de cadastro e administração de moradores.
type Service struct {
	repo         *Repository
	changes      changePublisher
	sessions     sessionRevoker
	tenantDomain string
	log          zerolog.Logger
}

// NewService cria uma nova instância do serviço.
func NewService(repo *Repository, changes changePublisher, sessions sessionRevoker, tenantDomain string, log zerolog.Logger) *Service {
	return &Service{repo: repo, changes: changes, sessions: sessions, tenantDomain: tenantDomain, log: log}
}

// EmailFor deriva o identificador de login a partir do username.
func (s *Service) EmailFor(username string) string {
	return fmt.Sprintf("%s@%s", strings.ToLower(strings.TrimSpace(username)), s.tenantDomain)
}

// Create cadastra um morador. O papel é sempre forçado ao menor privilégio;
// CPF, username e casa (quando não zero) precisam ser únicos.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Morador, error) {
	input.Nome = strings.TrimSpace(input.Nome)
	input.Username = strings.ToLower(strings.TrimSpace(input.Username))
	input.CPF = util.NormalizeCPF(input.CPF)

	if input.Nome == "" {
		return nil, apperr.New(apperr.CodeValidation, "nome obrigatório")
	}
	if input.Username == "" {
		return nil, apperr.New(apperr.CodeValidation, "nome de usuário obrigatório")
	}
	if err := util.ValidateCPF(input.CPF); err != nil {
		return nil, apperr.New(apperr.CodeValidation, "CPF inválido")
	}
	if err := util.ValidatePassword(input.Senha); err != nil {
		return nil, apperr.Wrap(apperr.CodeValidation, err, "senha fraca")
	}
	if input.Casa < 0 {
		return nil, apperr.New(apperr.CodeValidation, "casa inválida")
	}

	senhaHash, err := auth.Hash(input.Senha)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao gerar hash")
	}

	created, err := s.repo.Insert(ctx, input, s.EmailFor(input.Username), policy.RoleMorador, senhaHash)
	if err != nil {
		return nil, err
	}

	s.changes.Publish(ctx, realtime.CollectionMoradores)
	return created, nil
}

// List lista moradores.
func (s *Service) List(ctx context.Context) ([]Morador, error) {
	return s.repo.List(ctx)
}

// Get busca um morador.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Morador, error) {
	return s.repo.Get(ctx, id)
}

// Authenticate valida credenciais de login.
func (s *Service) Authenticate(ctx context.Context, username, senha string) (*Morador, error) {
	m, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperr.New(apperr.CodeAuth, "credenciais inválidas")
	}
	ok, err := auth.Verify(senha, m.SenhaHash)
	if err != nil || !ok {
		return nil, apperr.New(apperr.CodeAuth, "credenciais inválidas")
	}
	return m, nil
}

// UpdatePapel altera o papel. Restrito a ADMIN.
func (s *Service) UpdatePapel(ctx context.Context, actorPapel string, id uuid.UUID, papel string) (*Morador, error) {
	if !policy.Allowed(actorPapel, policy.ActionManageUsers) {
		return nil, apperr.New(apperr.CodeForbidden, "apenas o administrador altera papéis")
	}
	papel = policy.NormalizeRole(papel)
	if !policy.IsValidRole(papel) {
		return nil, apperr.New(apperr.CodeValidation, "papel inválido")
	}

	updated, err := s.repo.UpdatePapel(ctx, id, papel)
	if err != nil {
		return nil, err
	}

	s.changes.Publish(ctx, realtime.CollectionMoradores)
	return updated, nil
}

// Delete remove o perfil e, em seguida, revoga as sessões do morador.
// A revogação é melhor esforço: se falhar, o perfil já removido não é
// restaurado; a falha vira apenas um aviso no log.
func (s *Service) Delete(ctx context.Context, actorPapel string, id uuid.UUID) error {
	if !policy.Allowed(actorPapel, policy.ActionManageUsers) {
		return apperr.New(apperr.CodeForbidden, "apenas o administrador remove moradores")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.sessions.RevokeAll(ctx, id.String()); err != nil {
		s.log.Warn().Err(err).Str("morador_id", id.String()).
			Msg("perfil removido, mas a revogação de sessões falhou")
	}

	s.changes.Publish(ctx, realtime.CollectionMoradores)
	return nil
}

// SeedAdmin garante exatamente um ADMIN quando a base está vazia.
func (s *Service) SeedAdmin(ctx context.Context, nome, username, cpf, senha string) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if strings.TrimSpace(senha) == "" || strings.TrimSpace(cpf) == "" {
		return apperr.New(apperr.CodeValidation, "ADMIN inicial requer ADMIN_CPF e ADMIN_PASSWORD")
	}
	if err := util.ValidateCPF(cpf); err != nil {
		return apperr.New(apperr.CodeValidation, "ADMIN_CPF inválido")
	}

	senhaHash, err := auth.Hash(senha)
	if err != nil {
		return err
	}

	input := CreateInput{Nome: nome, Username: username, CPF: util.NormalizeCPF(cpf), Casa: 0}
	if _, err := s.repo.Insert(ctx, input, s.EmailFor(username), policy.RoleAdmin, senhaHash); err != nil {
		return err
	}

	s.log.Info().Str("username", username).Msg("ADMIN inicial criado")
	return nil
}
