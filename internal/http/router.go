package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/tassiius1-pixel/condominio/internal/auth"
	"github.com/tassiius1-pixel/condominio/internal/aviso"
	"github.com/tassiius1-pixel/condominio/internal/chamado"
	"github.com/tassiius1-pixel/condominio/internal/config"
	"github.com/tassiius1-pixel/condominio/internal/documento"
	httpmiddleware "github.com/tassiius1-pixel/condominio/internal/http/middleware"
	"github.com/tassiius1-pixel/condominio/internal/morador"
	"github.com/tassiius1-pixel/condominio/internal/notificacao"
	"github.com/tassiius1-pixel/condominio/internal/ocorrencia"
	"github.com/tassiius1-pixel/condominio/internal/push"
	"github.com/tassiius1-pixel/condominio/internal/realtime"
	"github.com/tassiius1-pixel/condominio/internal/reserva"
	"github.com/tassiius1-pixel/condominio/internal/storage"
	"github.com/tassiius1-pixel/condominio/internal/toast"
	"github.com/tassiius1-pixel/condominio/internal/votacao"
)

type Handler struct {
	cfg           *config.Config
	pool          *pgxpool.Pool
	redis         *redis.Client
	jwt           *auth.JWTManager
	refresh       *auth.RefreshStore
	hub           *realtime.Hub
	toasts        *toast.Queue
	storage       storage.Uploader
	moradores     *morador.Service
	chamados      *chamado.Service
	reservas      *reserva.Service
	ocorrencias   *ocorrencia.Service
	votacoes      *votacao.Service
	avisos        *aviso.Service
	documentos    *documento.Service
	notificacoes  *notificacao.Service
	publicLimiter *httpmiddleware.RateLimiter
	authLimiter   *httpmiddleware.RateLimiter
	devCookies    bool
}

// NewRouter monta serviços, registra os loaders do hub e devolve o roteador.
// O hub retornado deve ser parado junto com o servidor.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client) (http.Handler, *realtime.Hub, error) {
	devCookies := false
	for _, origin := range cfg.AllowOrigins {
		if strings.Contains(origin, "localhost") {
			devCookies = true
			break
		}
	}

	hubLogger := log.With().Str("component", "realtime").Logger()
	hub := realtime.NewHub(realtime.NewRedisBroker(redisClient), hubLogger)

	var uploader storage.Uploader = storage.NoopUploader{}
	switch cfg.Storage.Provider {
	case "", "noop":
		// mantém uploader padrão
	case "s3", "r2", "cloudflare-r2":
		s3Cfg := storage.S3Config{
			Endpoint:     cfg.Storage.S3Endpoint,
			Region:       cfg.Storage.S3Region,
			Bucket:       cfg.Storage.S3Bucket,
			AccessKey:    cfg.Storage.S3AccessKey,
			SecretKey:    cfg.Storage.S3SecretKey,
			PublicDomain: cfg.Storage.S3PublicURL,
		}
		var err error
		uploader, err = storage.NewS3Uploader(s3Cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("storage: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("storage: provedor %s não suportado", cfg.Storage.Provider)
	}

	var sender push.Sender = push.NoopSender{}
	if cfg.Push.WebhookURL != "" {
		sender = push.NewWebhookSender(cfg.Push.WebhookURL)
	}

	refreshStore := auth.NewRefreshStore(redisClient, cfg.JWTRefreshTTL)

	notificacaoRepo := notificacao.NewRepository(pool)
	notificacaoLogger := log.With().Str("component", "notificacao").Logger()
	notificacaoService := notificacao.NewService(notificacaoRepo, hub, sender, notificacaoLogger)

	moradorRepo := morador.NewRepository(pool)
	moradorLogger := log.With().Str("component", "morador").Logger()
	moradorService := morador.NewService(moradorRepo, hub, refreshStore, cfg.TenantDomain, moradorLogger)

	chamadoRepo := chamado.NewRepository(pool)
	chamadoService := chamado.NewService(chamadoRepo, hub, notificacaoService)

	reservaRepo := reserva.NewRepository(pool)
	reservaService := reserva.NewService(reservaRepo, hub, notificacaoService)

	ocorrenciaRepo := ocorrencia.NewRepository(pool)
	ocorrenciaService := ocorrencia.NewService(ocorrenciaRepo, hub)

	votacaoRepo := votacao.NewRepository(pool)
	votacaoService := votacao.NewService(votacaoRepo, hub, notificacaoService)

	avisoRepo := aviso.NewRepository(pool)
	avisoService := aviso.NewService(avisoRepo, hub, notificacaoService)

	documentoRepo := documento.NewRepository(pool)
	documentoService := documento.NewService(documentoRepo, hub)

	registerLoaders(hub, loaderDeps{
		moradores:    moradorService,
		chamados:     chamadoService,
		reservas:     reservaService,
		ocorrencias:  ocorrenciaService,
		votacoes:     votacaoService,
		avisos:       avisoService,
		documentos:   documentoService,
		notificacoes: notificacaoRepo,
	})

	h := &Handler{
		cfg:           cfg,
		pool:          pool,
		redis:         redisClient,
		jwt:           auth.NewJWTManager(cfg.JWTSecret, tokenAudience, cfg.JWTAccessTTL),
		refresh:       refreshStore,
		hub:           hub,
		toasts:        toast.NewQueue(2 * time.Minute),
		storage:       uploader,
		moradores:     moradorService,
		chamados:      chamadoService,
		reservas:      reservaService,
		ocorrencias:   ocorrenciaService,
		votacoes:      votacaoService,
		avisos:        avisoService,
		documentos:    documentoService,
		notificacoes:  notificacaoService,
		publicLimiter: httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst),
		authLimiter:   httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst),
		devCookies:    devCookies,
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))

	r.Group(func(public chi.Router) {
		public.Use(httpmiddleware.IPRateLimit(h.publicLimiter))

		public.Get("/health", h.Health)
		public.Get("/ready", h.Ready)
		public.Handle("/metrics", promhttp.Handler())

		public.Route("/auth", func(authRouter chi.Router) {
			authRouter.Post("/login", h.Login)
			authRouter.Post("/register", h.Register)
			authRouter.Post("/refresh", h.Refresh)
			authRouter.Post("/logout", h.Logout)
		})
	})

	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.Auth(h.jwt))
		private.Use(httpmiddleware.UserRateLimit(h.authLimiter))

		private.Get("/me", h.Me)
		private.Get("/realtime/{collection}", h.RealtimeStream)
		private.Get("/toasts", h.DrainToasts)
		private.Post("/uploads", h.Upload)

		private.Route("/moradores", func(r chi.Router) {
			r.Get("/", h.ListMoradores)
			r.Group(func(admin chi.Router) {
				admin.Use(httpmiddleware.RequireAdmin)
				admin.Post("/", h.CreateMorador)
				admin.Patch("/{id}/papel", h.UpdateMoradorPapel)
				admin.Delete("/{id}", h.DeleteMorador)
			})
		})

		private.Route("/chamados", func(r chi.Router) {
			r.Get("/", h.ListChamados)
			r.Post("/", h.CreateChamado)
			r.Get("/{id}", h.GetChamado)
			r.Post("/{id}/like", h.ToggleChamadoLike)
			r.Post("/{id}/comentarios", h.AddChamadoComment)
			r.Group(func(gestao chi.Router) {
				gestao.Use(httpmiddleware.RequireManagement)
				gestao.Patch("/{id}", h.UpdateChamado)
				gestao.Patch("/{id}/status", h.ChangeChamadoStatus)
				gestao.Delete("/{id}", h.DeleteChamado)
			})
		})

		private.Route("/reservas", func(r chi.Router) {
			r.Get("/", h.ListReservas)
			r.Post("/", h.CreateReserva)
			r.Delete("/{id}", h.CancelReserva)
		})

		private.Route("/ocorrencias", func(r chi.Router) {
			r.Get("/", h.ListOcorrencias)
			r.Post("/", h.CreateOcorrencia)
			r.Patch("/{id}", h.UpdateOcorrencia)
			r.Group(func(gestao chi.Router) {
				gestao.Use(httpmiddleware.RequireManagement)
				gestao.Post("/{id}/resposta", h.RespondOcorrencia)
				gestao.Post("/{id}/resolver", h.ResolveOcorrencia)
			})
			r.Group(func(admin chi.Router) {
				admin.Use(httpmiddleware.RequireAdmin)
				admin.Delete("/{id}", h.DeleteOcorrencia)
			})
		})

		private.Route("/votacoes", func(r chi.Router) {
			r.Get("/", h.ListVotacoes)
			r.Get("/{id}/resultado", h.VotacaoResultado)
			r.Post("/{id}/votos", h.CastVote)
			r.Group(func(gestao chi.Router) {
				gestao.Use(httpmiddleware.RequireManagement)
				gestao.Post("/", h.CreateVotacao)
				gestao.Delete("/{id}", h.DeleteVotacao)
			})
		})

		private.Route("/avisos", func(r chi.Router) {
			r.Get("/", h.ListAvisos)
			r.Post("/{id}/reacao", h.ToggleAvisoReacao)
			r.Group(func(gestao chi.Router) {
				gestao.Use(httpmiddleware.RequireManagement)
				gestao.Post("/", h.CreateAviso)
				gestao.Patch("/{id}", h.UpdateAviso)
				gestao.Delete("/{id}", h.DeleteAviso)
			})
		})

		private.Route("/documentos", func(r chi.Router) {
			r.Get("/", h.ListDocumentos)
			r.Group(func(gestao chi.Router) {
				gestao.Use(httpmiddleware.RequireManagement)
				gestao.Post("/", h.CreateDocumento)
				gestao.Post("/{id}/fixar", h.TogglePinDocumento)
				gestao.Delete("/{id}", h.DeleteDocumento)
			})
		})

		private.Route("/notificacoes", func(r chi.Router) {
			r.Get("/", h.ListNotificacoes)
			r.Get("/nao-lidas", h.UnreadNotificacoes)
			r.Post("/lidas", h.MarkNotificacoesRead)
			r.Delete("/{id}", h.DeleteNotificacao)
			r.Delete("/", h.DeleteAllNotificacoes)
		})
	})

	return r, hub, nil
}

// Health responde status simples.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready valida conexões com Postgres e Redis.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbErr := h.pool.Ping(ctx)
	redisErr := h.redis.Ping(ctx).Err()

	if dbErr != nil || redisErr != nil {
		WriteError(w, http.StatusServiceUnavailable, "INTERNAL", "dependências indisponíveis", map[string]any{
			"db":    errorString(dbErr),
			"redis": errorString(redisErr),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"ready": true})
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (h *Handler) subjectUUID(r *http.Request) (uuid.UUID, error) {
	subjectStr := httpmiddleware.GetSubject(r.Context())
	if strings.TrimSpace(subjectStr) == "" {
		return uuid.Nil, errors.New("subject ausente")
	}
	return uuid.Parse(subjectStr)
}

func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	return id, err == nil
}
