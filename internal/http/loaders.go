package http

import (
	"context"

	"github.com/tassiius1-pixel/condominio/internal/aviso"
	"github.com/tassiius1-pixel/condominio/internal/chamado"
	"github.com/tassiius1-pixel/condominio/internal/documento"
	"github.com/tassiius1-pixel/condominio/internal/morador"
	"github.com/tassiius1-pixel/condominio/internal/notificacao"
	"github.com/tassiius1-pixel/condominio/internal/ocorrencia"
	"github.com/tassiius1-pixel/condominio/internal/realtime"
	"github.com/tassiius1-pixel/condominio/internal/reserva"
	"github.com/tassiius1-pixel/condominio/internal/votacao"
)

type loaderDeps struct {
	moradores    *morador.Service
	chamados     *chamado.Service
	reservas     *reserva.Service
	ocorrencias  *ocorrencia.Service
	votacoes     *votacao.Service
	avisos       *aviso.Service
	documentos   *documento.Service
	notificacoes *notificacao.Repository
}

// registerLoaders liga cada coleção do hub à consulta que materializa seu
// snapshot completo, já na ordem que a interface exibe.
func registerLoaders(hub *realtime.Hub, deps loaderDeps) {
	hub.Register(realtime.CollectionMoradores, func(ctx context.Context) ([]realtime.Entry, error) {
		items, err := deps.moradores.List(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]realtime.Entry, 0, len(items))
		for _, it := range items {
			entries = append(entries, realtime.Entry{ID: it.ID.String(), Value: it})
		}
		return entries, nil
	})

	hub.Register(realtime.CollectionChamados, func(ctx context.Context) ([]realtime.Entry, error) {
		items, err := deps.chamados.List(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]realtime.Entry, 0, len(items))
		for _, it := range items {
			entries = append(entries, realtime.Entry{ID: it.ID.String(), Value: it})
		}
		return entries, nil
	})

	hub.Register(realtime.CollectionReservas, func(ctx context.Context) ([]realtime.Entry, error) {
		items, err := deps.reservas.List(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]realtime.Entry, 0, len(items))
		for _, it := range items {
			entries = append(entries, realtime.Entry{ID: it.ID.String(), Value: it})
		}
		return entries, nil
	})

	hub.Register(realtime.CollectionOcorrencias, func(ctx context.Context) ([]realtime.Entry, error) {
		items, err := deps.ocorrencias.List(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]realtime.Entry, 0, len(items))
		for _, it := range items {
			entries = append(entries, realtime.Entry{ID: it.ID.String(), Value: it})
		}
		return entries, nil
	})

	hub.Register(realtime.CollectionVotacoes, func(ctx context.Context) ([]realtime.Entry, error) {
		items, err := deps.votacoes.List(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]realtime.Entry, 0, len(items))
		for _, it := range items {
			entries = append(entries, realtime.Entry{ID: it.ID.String(), Value: it})
		}
		return entries, nil
	})

	hub.Register(realtime.CollectionAvisos, func(ctx context.Context) ([]realtime.Entry, error) {
		items, err := deps.avisos.List(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]realtime.Entry, 0, len(items))
		for _, it := range items {
			entries = append(entries, realtime.Entry{ID: it.ID.String(), Value: it})
		}
		return entries, nil
	})

	hub.Register(realtime.CollectionDocumentos, func(ctx context.Context) ([]realtime.Entry, error) {
		items, err := deps.documentos.List(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]realtime.Entry, 0, len(items))
		for _, it := range items {
			entries = append(entries, realtime.Entry{ID: it.ID.String(), Value: it})
		}
		return entries, nil
	})

	hub.Register(realtime.CollectionNotificacoes, func(ctx context.Context) ([]realtime.Entry, error) {
		items, err := deps.notificacoes.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]realtime.Entry, 0, len(items))
		for _, it := range items {
			entries = append(entries, realtime.Entry{ID: it.ID.String(), Value: it})
		}
		return entries, nil
	})
}
