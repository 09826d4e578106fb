package service_test

import (
	"context"
	"fmt"
	"testing"

	"kensai/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitirConClaveDeduplica(t *testing.T) {
	repo := newMemNotificacionRepo()
	svc := service.NewNotificacionService(repo)
	ctx := context.Background()

	assert.True(t, svc.EmitirConClave(ctx, "alerta-1", "primer aviso", nil))
	assert.False(t, svc.EmitirConClave(ctx, "alerta-1", "repetido", nil))

	avisos, err := svc.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, avisos, 1)
	assert.Equal(t, "primer aviso", avisos[0].Mensaje)
}

func TestBuzonSeRecortaALaRetencion(t *testing.T) {
	repo := newMemNotificacionRepo()
	svc := service.NewNotificacionService(repo)
	ctx := context.Background()

	for i := 0; i < service.RetencionNotificaciones+10; i++ {
		svc.Emitir(ctx, fmt.Sprintf("aviso %d", i), nil)
	}

	avisos, err := svc.Listar(ctx)
	require.NoError(t, err)
	assert.Len(t, avisos, service.RetencionNotificaciones)
	// Sobreviven los más recientes.
	assert.Equal(t, fmt.Sprintf("aviso %d", service.RetencionNotificaciones+9), avisos[len(avisos)-1].Mensaje)
}

func TestMarcarLeidas(t *testing.T) {
	repo := newMemNotificacionRepo()
	svc := service.NewNotificacionService(repo)
	ctx := context.Background()

	svc.EmitirConClave(ctx, "a", "uno", nil)
	svc.EmitirConClave(ctx, "b", "dos", nil)

	require.NoError(t, svc.MarcarLeida(ctx, "a"))
	avisos, err := svc.Listar(ctx)
	require.NoError(t, err)
	leidas := 0
	for _, a := range avisos {
		if a.Leida {
			leidas++
		}
	}
	assert.Equal(t, 1, leidas)

	require.NoError(t, svc.MarcarTodasLeidas(ctx))
	avisos, err = svc.Listar(ctx)
	require.NoError(t, err)
	for _, a := range avisos {
		assert.True(t, a.Leida)
	}

	require.NoError(t, svc.LimpiarTodas(ctx))
	avisos, err = svc.Listar(ctx)
	require.NoError(t, err)
	assert.Empty(t, avisos)
}
