package service_test

import (
	"context"
	"testing"
	"time"

	"kensai/internal/dto"
	"kensai/internal/model"
	"kensai/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contabilidadFixture struct {
	cots     *memCotizacionRepo
	tareas   *memTareaRepo
	clientes *memClienteRepo
	avisos   *memNotificacionRepo
	svc      service.ContabilidadService
}

func newContabilidadFixture(t *testing.T) *contabilidadFixture {
	t.Helper()
	f := &contabilidadFixture{
		cots:     newMemCotizacionRepo(),
		tareas:   newMemTareaRepo(),
		clientes: newMemClienteRepo(),
		avisos:   newMemNotificacionRepo(),
	}
	produccion := service.NewProduccionService(f.tareas, f.cots, service.NewNotificacionService(f.avisos))
	f.svc = service.NewContabilidadService(f.cots, f.tareas, f.clientes, produccion)
	return f
}

// sembrar registra cliente, cotización aceptada (total 1160) y su tarea.
func (f *contabilidadFixture) sembrar(t *testing.T, condicion string, diasCredito int, estadoTarea string) (*model.Cliente, *model.Cotizacion, *model.TareaProduccion) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	cliente := &model.Cliente{
		ID:               uuid.New(),
		Nombre:           "Hotel Bahía",
		CondicionCredito: condicion,
		DiasCredito:      diasCredito,
		Activo:           true,
	}
	require.NoError(t, f.clientes.Create(ctx, cliente))

	cot := &model.Cotizacion{
		ID:              uuid.New(),
		Folio:           "COT-2026-007",
		Fecha:           now,
		Vence:           now.AddDate(0, 0, 15),
		ClienteID:       cliente.ID,
		TasaIVA:         dec("16"),
		Estado:          model.CotizacionAceptada,
		CondicionPago:   condicion,
		FechaAceptacion: &now,
		Partidas: []model.Partida{
			{Descripcion: "Lona 2x1m", Cantidad: 2, Precio: dec("300")},
			{Descripcion: "Tarjetas", Cantidad: 4, Precio: dec("100")},
		},
	}
	require.NoError(t, f.cots.Create(ctx, nil, cot))

	entrega := now.AddDate(0, 0, 7)
	disenador := uuid.New()
	tarea := &model.TareaProduccion{
		ID:           cot.ID,
		CotizacionID: cot.ID,
		Folio:        cot.Folio,
		ClienteID:    cliente.ID,
		TasaIVA:      cot.TasaIVA,
		Estado:       estadoTarea,
		DisenadorID:  &disenador,
		FechaEntrega: &entrega,
		Partidas: []model.PartidaTarea{
			{Descripcion: "Lona 2x1m", Cantidad: 2, Precio: dec("300")},
			{Descripcion: "Tarjetas", Cantidad: 4, Precio: dec("100")},
		},
	}
	require.NoError(t, f.tareas.Create(ctx, nil, tarea))
	return cliente, cot, tarea
}

func (f *contabilidadFixture) pagar(t *testing.T, cotID uuid.UUID, monto, tipo string) {
	t.Helper()
	_, err := f.svc.RegistrarPago(context.Background(), cotID, dto.RegistrarPagoRequest{
		Monto:  dec(monto),
		Metodo: model.MetodoTransferencia,
		Tipo:   tipo,
	})
	require.NoError(t, err)
}

// ── Registro de pagos ─────────────────────────────────────────────────────────

func TestRegistrarPagoValidaEntrada(t *testing.T) {
	f := newContabilidadFixture(t)
	ctx := context.Background()
	_, cot, _ := f.sembrar(t, model.PagoContado, 0, model.TareaPendientePago)

	_, err := f.svc.RegistrarPago(ctx, cot.ID, dto.RegistrarPagoRequest{
		Monto: dec("0"), Metodo: model.MetodoEfectivo, Tipo: model.PagoTipoAnticipo,
	})
	assert.ErrorIs(t, err, service.ErrMontoInvalido)

	_, err = f.svc.RegistrarPago(ctx, cot.ID, dto.RegistrarPagoRequest{
		Monto: dec("100"), Metodo: "Cheque", Tipo: model.PagoTipoAnticipo,
	})
	assert.ErrorContains(t, err, "método de pago inválido")

	_, err = f.svc.RegistrarPago(ctx, cot.ID, dto.RegistrarPagoRequest{
		Monto: dec("100"), Metodo: model.MetodoEfectivo, Tipo: "Apartado",
	})
	assert.ErrorContains(t, err, "tipo de pago inválido")
}

func TestRegistrarPagoSoloSobreAceptadas(t *testing.T) {
	f := newContabilidadFixture(t)
	ctx := context.Background()
	_, cot, _ := f.sembrar(t, model.PagoContado, 0, model.TareaPendientePago)
	cot.Estado = model.CotizacionPendiente
	require.NoError(t, f.cots.Update(ctx, nil, cot))

	_, err := f.svc.RegistrarPago(ctx, cot.ID, dto.RegistrarPagoRequest{
		Monto: dec("100"), Metodo: model.MetodoEfectivo, Tipo: model.PagoTipoAnticipo,
	})
	assert.ErrorIs(t, err, service.ErrCotizacionNoAceptada)
}

func TestRegistrarAnticipoArrancaProduccion(t *testing.T) {
	f := newContabilidadFixture(t)
	ctx := context.Background()
	_, cot, tarea := f.sembrar(t, model.PagoContado, 0, model.TareaPendientePago)

	f.pagar(t, cot.ID, "580", model.PagoTipoAnticipo)

	actual, err := f.tareas.FindByID(ctx, tarea.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TareaDisenoEspera, actual.Estado)

	guardada, err := f.cots.FindByID(ctx, cot.ID)
	require.NoError(t, err)
	require.Len(t, guardada.Pagos, 1)
	assert.True(t, guardada.Pagos[0].Monto.Equal(dec("580")))
}

// ── Monto sugerido ────────────────────────────────────────────────────────────

func TestMontoSugerido(t *testing.T) {
	f := newContabilidadFixture(t)
	ctx := context.Background()
	_, cot, _ := f.sembrar(t, model.PagoContado, 0, model.TareaPendientePago)

	// Anticipo: mitad del total, haya o no pagos previos.
	resp, err := f.svc.MontoSugerido(ctx, cot.ID, model.PagoTipoAnticipo)
	require.NoError(t, err)
	assert.True(t, resp.Monto.Equal(dec("580")))

	f.pagar(t, cot.ID, "580", model.PagoTipoAnticipo)

	// Finiquito: el saldo restante.
	resp, err = f.svc.MontoSugerido(ctx, cot.ID, model.PagoTipoFiniquito)
	require.NoError(t, err)
	assert.True(t, resp.Monto.Equal(dec("580")))
}

// ── Vistas de cobranza ────────────────────────────────────────────────────────

func TestAnticiposPendientesUsaUmbralDeReporte(t *testing.T) {
	f := newContabilidadFixture(t)
	ctx := context.Background()
	_, cot, _ := f.sembrar(t, model.PagoContado, 0, model.TareaPendientePago)

	items, err := f.svc.AnticiposPendientes(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "COT-2026-007", items[0].Folio)
	assert.Equal(t, "Hotel Bahía", items[0].ClienteNombre)
	assert.True(t, items[0].MinimoInicio.Equal(dec("580")))

	// 521.99 < 45% de 1160 (522): sigue apareciendo.
	f.pagar(t, cot.ID, "521.99", model.PagoTipoAnticipo)
	items, err = f.svc.AnticiposPendientes(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// Al tocar el 45% sale del reporte aunque producción no haya arrancado.
	f.pagar(t, cot.ID, "0.01", model.PagoTipoAnticipo)
	items, err = f.svc.AnticiposPendientes(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAnticiposPendientesIgnoraCredito(t *testing.T) {
	f := newContabilidadFixture(t)
	f.sembrar(t, model.CreditoCredito, 30, model.TareaPendientePago)

	items, err := f.svc.AnticiposPendientes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLiquidacionesEntrega(t *testing.T) {
	f := newContabilidadFixture(t)
	ctx := context.Background()
	_, cot, _ := f.sembrar(t, model.PagoContado, 0, model.TareaListaParaEntregar)
	f.pagar(t, cot.ID, "580", model.PagoTipoAnticipo)

	items, err := f.svc.LiquidacionesEntrega(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.TareaListaParaEntregar, items[0].Estado)
	assert.True(t, items[0].Saldo.Equal(dec("580")))

	// Con saldo dentro de la tolerancia desaparece de la lista.
	f.pagar(t, cot.ID, "579.95", model.PagoTipoFiniquito)
	items, err = f.svc.LiquidacionesEntrega(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCarteraCreditos(t *testing.T) {
	f := newContabilidadFixture(t)
	ctx := context.Background()

	// Cuenta al corriente: 30 días de crédito recién otorgados.
	f.sembrar(t, model.CreditoCredito, 30, model.TareaDisenoEspera)

	// Cuenta vencida: la fecha de la cotización quedó atrás del plazo.
	_, vencida, _ := f.sembrar(t, model.CreditoCredito, 15, model.TareaDisenoEspera)
	vencida.Folio = "COT-2026-008"
	vencida.Fecha = time.Now().AddDate(0, 0, -20)
	require.NoError(t, f.cots.Update(ctx, nil, vencida))

	items, err := f.svc.CarteraCreditos(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	porFolio := map[string]string{}
	for _, it := range items {
		porFolio[it.Folio] = it.Estatus
	}
	assert.Equal(t, service.CreditoPorVencer, porFolio["COT-2026-007"])
	assert.Equal(t, service.CreditoVencido, porFolio["COT-2026-008"])
}

func TestCarteraCreditosVenceHoyEsPorVencer(t *testing.T) {
	f := newContabilidadFixture(t)
	ctx := context.Background()
	now := time.Now()
	hoy := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Con 30 días de crédito esta cotización vence exactamente hoy. El
	// estatus se decide por día calendario, no por hora: aunque el reloj
	// ya rebasó la hora de creación, hoy todavía no es mora.
	_, venceHoy, _ := f.sembrar(t, model.CreditoCredito, 30, model.TareaDisenoEspera)
	venceHoy.Fecha = hoy.AddDate(0, 0, -30).Add(2 * time.Hour)
	require.NoError(t, f.cots.Update(ctx, nil, venceHoy))

	_, vencioAyer, _ := f.sembrar(t, model.CreditoCredito, 30, model.TareaDisenoEspera)
	vencioAyer.Folio = "COT-2026-009"
	vencioAyer.Fecha = hoy.AddDate(0, 0, -31)
	require.NoError(t, f.cots.Update(ctx, nil, vencioAyer))

	items, err := f.svc.CarteraCreditos(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	porFolio := map[string]string{}
	for _, it := range items {
		porFolio[it.Folio] = it.Estatus
	}
	assert.Equal(t, service.CreditoPorVencer, porFolio["COT-2026-007"])
	assert.Equal(t, service.CreditoVencido, porFolio["COT-2026-009"])
}

func TestCarteraCreditosIgnoraContadoYLiquidadas(t *testing.T) {
	f := newContabilidadFixture(t)
	ctx := context.Background()
	f.sembrar(t, model.PagoContado, 0, model.TareaDisenoEspera)

	_, pagada, _ := f.sembrar(t, model.CreditoCredito, 30, model.TareaDisenoEspera)
	f.pagar(t, pagada.ID, "1160", model.PagoTipoCredito)

	items, err := f.svc.CarteraCreditos(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestVentasPorPeriodo(t *testing.T) {
	f := newContabilidadFixture(t)
	ctx := context.Background()
	f.sembrar(t, model.PagoContado, 0, model.TareaPendientePago)

	// Aceptada hace un año: solo cuenta en el acumulado anual si cae
	// dentro del año en curso, nunca en el día.
	_, vieja, _ := f.sembrar(t, model.PagoContado, 0, model.TareaPendientePago)
	hace := time.Now().AddDate(-1, 0, 0)
	vieja.FechaAceptacion = &hace
	require.NoError(t, f.cots.Update(ctx, nil, vieja))

	resp, err := f.svc.VentasPorPeriodo(ctx, service.PeriodoDia)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Cotizaciones)
	assert.True(t, resp.Total.Equal(dec("1160")))

	_, err = f.svc.VentasPorPeriodo(ctx, "quincena")
	assert.ErrorContains(t, err, "periodo inválido")
}
