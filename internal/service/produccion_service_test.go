package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"kensai/internal/dto"
	"kensai/internal/model"
	"kensai/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type produccionFixture struct {
	cots      *memCotizacionRepo
	tareas    *memTareaRepo
	avisos    *memNotificacionRepo
	svc       service.ProduccionService
	admin     service.Actor
	disenador service.Actor
	productor service.Actor
	ventas    service.Actor
}

func newProduccionFixture(t *testing.T) *produccionFixture {
	t.Helper()
	f := &produccionFixture{
		cots:   newMemCotizacionRepo(),
		tareas: newMemTareaRepo(),
		avisos: newMemNotificacionRepo(),
	}
	f.svc = service.NewProduccionService(f.tareas, f.cots, service.NewNotificacionService(f.avisos))
	f.admin = service.Actor{ID: uuid.New(), Nombre: "Admin", Rol: model.RolAdministrador}
	f.disenador = service.Actor{ID: uuid.New(), Nombre: "Diana Diseño", Rol: model.RolDisenador}
	f.productor = service.Actor{ID: uuid.New(), Nombre: "Pedro Taller", Rol: model.RolProductor}
	f.ventas = service.Actor{ID: uuid.New(), Nombre: "Vera Ventas", Rol: model.RolVentas}
	return f
}

// seed crea una cotización aceptada (total 1160, Contado) con su tarea en
// el estado dado, asignada al diseñador y productor del fixture.
func (f *produccionFixture) seed(t *testing.T, estado string) (*model.Cotizacion, *model.TareaProduccion) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	entrega := now.AddDate(0, 0, 7)

	cot := &model.Cotizacion{
		ID:            uuid.New(),
		Folio:         "COT-2026-001",
		Fecha:         now,
		Vence:         now.AddDate(0, 0, 15),
		ClienteID:     uuid.New(),
		TasaIVA:       dec("16"),
		Estado:        model.CotizacionAceptada,
		CondicionPago: model.PagoContado,
		Partidas: []model.Partida{
			{Descripcion: "Lona 2x1m", Cantidad: 2, Precio: dec("300")},
			{Descripcion: "Tarjetas", Cantidad: 4, Precio: dec("100")},
		},
		FechaAceptacion: &now,
	}
	require.NoError(t, f.cots.Create(ctx, nil, cot))

	tarea := &model.TareaProduccion{
		ID:           cot.ID,
		CotizacionID: cot.ID,
		Folio:        cot.Folio,
		ClienteID:    cot.ClienteID,
		TasaIVA:      cot.TasaIVA,
		Estado:       estado,
		DisenadorID:  &f.disenador.ID,
		ProductorID:  &f.productor.ID,
		FechaEntrega: &entrega,
		Partidas: []model.PartidaTarea{
			{Descripcion: "Lona 2x1m", Cantidad: 2, Precio: dec("300")},
			{Descripcion: "Tarjetas", Cantidad: 4, Precio: dec("100")},
		},
	}
	require.NoError(t, f.tareas.Create(ctx, nil, tarea))
	return cot, tarea
}

func (f *produccionFixture) pagar(t *testing.T, cot *model.Cotizacion, monto string) *model.Cotizacion {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.cots.AddPago(ctx, nil, &model.Pago{
		ID:           uuid.New(),
		CotizacionID: cot.ID,
		Monto:        dec(monto),
		Fecha:        time.Now(),
		Metodo:       model.MetodoEfectivo,
		Tipo:         model.PagoTipoAnticipo,
	}))
	actual, err := f.cots.FindByID(ctx, cot.ID)
	require.NoError(t, err)
	return actual
}

func (f *produccionFixture) cuentaAvisos(sub string) int {
	n := 0
	for _, m := range f.avisos.mensajes() {
		if strings.Contains(m, sub) {
			n++
		}
	}
	return n
}

// ── Reconciliación de anticipos ───────────────────────────────────────────────

func TestAnticipoAlcanzaUmbralArrancaProduccion(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	cot, tarea := f.seed(t, model.TareaPendientePago)

	// 580 = exactamente la mitad de 1160.
	f.svc.AplicarPagoRegistrado(ctx, f.pagar(t, cot, "580"), model.PagoTipoAnticipo)

	actual, err := f.tareas.FindByID(ctx, tarea.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TareaDisenoEspera, actual.Estado)
	assert.NotNil(t, actual.FechaAsignacionDiseno)
	assert.Equal(t, 1, f.cuentaAvisos("Producción iniciada"))
}

func TestAnticipoBajoUmbralNoMueve(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	cot, tarea := f.seed(t, model.TareaPendientePago)

	f.svc.AplicarPagoRegistrado(ctx, f.pagar(t, cot, "579.99"), model.PagoTipoAnticipo)

	actual, err := f.tareas.FindByID(ctx, tarea.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TareaPendientePago, actual.Estado)
	assert.Equal(t, 0, f.cuentaAvisos("Producción iniciada"))
}

func TestAnticipoDisparaUnaSolaVez(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	cot, tarea := f.seed(t, model.TareaPendientePago)

	f.svc.AplicarPagoRegistrado(ctx, f.pagar(t, cot, "580"), model.PagoTipoAnticipo)
	f.svc.AplicarPagoRegistrado(ctx, f.pagar(t, cot, "100"), model.PagoTipoAnticipo)

	actual, err := f.tareas.FindByID(ctx, tarea.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TareaDisenoEspera, actual.Estado)
	assert.Equal(t, 1, f.cuentaAvisos("Producción iniciada"))
}

func TestAnticipoSinAsignacionQuedaPendienteDeAsignar(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	cot, tarea := f.seed(t, model.TareaPendientePago)
	tarea.DisenadorID = nil
	tarea.FechaEntrega = nil
	require.NoError(t, f.tareas.Update(ctx, nil, tarea))

	f.svc.AplicarPagoRegistrado(ctx, f.pagar(t, cot, "600"), model.PagoTipoAnticipo)
	f.svc.AplicarPagoRegistrado(ctx, f.pagar(t, cot, "100"), model.PagoTipoAnticipo)

	actual, err := f.tareas.FindByID(ctx, tarea.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TareaPendienteAsignar, actual.Estado)
	assert.Equal(t, 1, f.cuentaAvisos("Producción iniciada"))
}

func TestFiniquitoSoloNotifica(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	cot, tarea := f.seed(t, model.TareaTaller1)

	f.svc.AplicarPagoRegistrado(ctx, f.pagar(t, cot, "1160"), model.PagoTipoFiniquito)

	actual, err := f.tareas.FindByID(ctx, tarea.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TareaTaller1, actual.Estado)
	assert.Equal(t, 1, f.cuentaAvisos("liquidada al 100%"))
}

// ── Fase de diseño ────────────────────────────────────────────────────────────

func TestFlujoDeDiseno(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	_, tarea := f.seed(t, model.TareaDisenoEspera)

	actual, err := f.svc.IniciarDiseno(ctx, f.disenador, tarea.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TareaDisenoProceso, actual.Estado)
	assert.NotNil(t, actual.FechaInicioDiseno)

	actual, err = f.svc.EntregarDiseno(ctx, f.disenador, tarea.ID, dto.EntregaDisenoRequest{
		ArchivoNombre: "propuesta-v1.pdf",
		ArchivoURL:    "https://archivos.kensai.mx/propuesta-v1.pdf",
		Comentarios:   "Primera propuesta",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TareaDisenoRevision, actual.Estado)
	assert.NotNil(t, actual.FechaEntregaDiseno)
	require.NotNil(t, actual.ArchivoNombre)
	assert.Equal(t, "propuesta-v1.pdf", *actual.ArchivoNombre)
}

func TestRechazoDelClienteRegresaAProceso(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	_, tarea := f.seed(t, model.TareaDisenoRevision)
	now := time.Now()
	tarea.FechaEntregaDiseno = &now
	require.NoError(t, f.tareas.Update(ctx, nil, tarea))

	actual, err := f.svc.DecisionCliente(ctx, f.ventas, tarea.ID, false)
	require.NoError(t, err)
	assert.Equal(t, model.TareaDisenoProceso, actual.Estado)
	assert.Nil(t, actual.FechaEntregaDiseno, "el rechazo limpia la entrega anterior")
	assert.Equal(t, 1, actual.Revisiones)
}

func TestAprobacionSellaDisenoYArrancaTaller(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	_, tarea := f.seed(t, model.TareaDisenoRevision)

	actual, err := f.svc.DecisionCliente(ctx, f.ventas, tarea.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.TareaTaller1, actual.Estado)
	assert.NotNil(t, actual.FechaAprobacionCliente)
	assert.NotNil(t, actual.FechaFinDiseno)
	assert.NotNil(t, actual.FechaInicioTaller)
}

// ── Permisos y fases ──────────────────────────────────────────────────────────

func TestDisenadorNoAsignadoNoPuedeIniciar(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	_, tarea := f.seed(t, model.TareaDisenoEspera)

	otro := service.Actor{ID: uuid.New(), Nombre: "Otro", Rol: model.RolDisenador}
	_, err := f.svc.IniciarDiseno(ctx, otro, tarea.ID)
	assert.ErrorIs(t, err, service.ErrAccionNoPermitida)
}

func TestSoloAdminAsigna(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	_, tarea := f.seed(t, model.TareaPendienteAsignar)

	_, err := f.svc.ActualizarAsignacion(ctx, f.ventas, tarea.ID, dto.AsignacionTareaRequest{})
	assert.ErrorIs(t, err, service.ErrAccionNoPermitida)
}

func TestTransicionFueraDeFaseFalla(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	_, tarea := f.seed(t, model.TareaPendientePago)

	_, err := f.svc.FinalizarTaller(ctx, f.admin, tarea.ID)
	assert.ErrorIs(t, err, service.ErrAccionNoPermitida)

	_, err = f.svc.DecisionCliente(ctx, f.admin, tarea.ID, true)
	assert.ErrorIs(t, err, service.ErrAccionNoPermitida)
}

func TestAsignacionCompletaSacaDeLaCola(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	_, tarea := f.seed(t, model.TareaPendienteAsignar)
	tarea.DisenadorID = nil
	tarea.FechaEntrega = nil
	require.NoError(t, f.tareas.Update(ctx, nil, tarea))

	entrega := time.Now().AddDate(0, 0, 5)
	actual, err := f.svc.ActualizarAsignacion(ctx, f.admin, tarea.ID, dto.AsignacionTareaRequest{
		DisenadorID:  &f.disenador.ID,
		FechaEntrega: &entrega,
	})
	require.NoError(t, err)
	assert.Equal(t, model.TareaDisenoEspera, actual.Estado)
	assert.NotNil(t, actual.FechaAsignacionDiseno)
}

// ── Entrega ───────────────────────────────────────────────────────────────────

func TestEntregaBloqueadaConSaldo(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	cot, tarea := f.seed(t, model.TareaListaParaEntregar)
	f.pagar(t, cot, "1000") // saldo 160

	_, err := f.svc.MarcarEntregada(ctx, f.ventas, tarea.ID)
	assert.ErrorIs(t, err, service.ErrSaldoPendiente)

	actual, errFind := f.tareas.FindByID(ctx, tarea.ID)
	require.NoError(t, errFind)
	assert.False(t, actual.Entregada)
}

func TestEntregaConSaldoDentroDeTolerancia(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	cot, tarea := f.seed(t, model.TareaListaParaEntregar)
	f.pagar(t, cot, "1159.95") // saldo 0.05

	actual, err := f.svc.MarcarEntregada(ctx, f.ventas, tarea.ID)
	require.NoError(t, err)
	assert.True(t, actual.Entregada)
	assert.NotNil(t, actual.FechaEntregaReal)
	require.NotNil(t, actual.EntregadaPorID)
	assert.Equal(t, f.ventas.ID, *actual.EntregadaPorID)
}

func TestEntregaSinCotizacionSeTrataComoNoPagada(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	entrega := time.Now()
	tarea := &model.TareaProduccion{
		ID:           uuid.New(),
		CotizacionID: uuid.New(), // no existe
		Folio:        "COT-2026-099",
		ClienteID:    uuid.New(),
		TasaIVA:      dec("16"),
		Estado:       model.TareaListaParaEntregar,
		FechaEntrega: &entrega,
	}
	require.NoError(t, f.tareas.Create(ctx, nil, tarea))

	_, err := f.svc.MarcarEntregada(ctx, f.admin, tarea.ID)
	assert.ErrorIs(t, err, service.ErrCotizacionHuerfana)
}

func TestTareaEntregadaNoSeMueve(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	_, tarea := f.seed(t, model.TareaListaParaEntregar)
	tarea.Entregada = true
	require.NoError(t, f.tareas.Update(ctx, nil, tarea))

	_, err := f.svc.MarcarEntregada(ctx, f.admin, tarea.ID)
	assert.ErrorIs(t, err, service.ErrTareaEntregada)
}

// ── Listado filtrado y chat ───────────────────────────────────────────────────

func TestListarFiltraPorRol(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	f.seed(t, model.TareaDisenoProceso)

	paraAdmin, err := f.svc.Listar(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, paraAdmin, 1)

	paraDisenador, err := f.svc.Listar(ctx, f.disenador)
	require.NoError(t, err)
	assert.Len(t, paraDisenador, 1)

	otro := service.Actor{ID: uuid.New(), Rol: model.RolDisenador}
	paraOtro, err := f.svc.Listar(ctx, otro)
	require.NoError(t, err)
	assert.Empty(t, paraOtro)
}

func TestChatEmiteNotificacionRecortada(t *testing.T) {
	f := newProduccionFixture(t)
	ctx := context.Background()
	_, tarea := f.seed(t, model.TareaDisenoProceso)

	msg, err := f.svc.AgregarMensaje(ctx, f.productor, tarea.ID, dto.MensajeChatRequest{
		Mensaje: "El material llega mañana temprano, arrancamos en cuanto esté el visto bueno",
	})
	require.NoError(t, err)
	assert.Equal(t, f.productor.ID, msg.RemitenteID)
	assert.Equal(t, 1, f.cuentaAvisos("Pedro Taller en COT-2026-001"))
}
