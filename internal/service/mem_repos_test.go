package service_test

import (
	"context"
	"sort"
	"sync"

	"kensai/internal/model"
	"kensai/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repositorios en memoria para probar los servicios sin Postgres. Imitan
// el contrato de los reales; DB() devuelve nil y runTx ejecuta directo.

// ── Cotizaciones ──────────────────────────────────────────────────────────────

type memCotizacionRepo struct {
	mu    sync.Mutex
	cots  map[uuid.UUID]*model.Cotizacion
	folio int64
}

var _ repository.CotizacionRepository = (*memCotizacionRepo)(nil)

func newMemCotizacionRepo() *memCotizacionRepo {
	return &memCotizacionRepo{cots: make(map[uuid.UUID]*model.Cotizacion)}
}

func (m *memCotizacionRepo) DB() *gorm.DB { return nil }

func (m *memCotizacionRepo) Create(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.cots[c.ID] = &cp
	return nil
}

func (m *memCotizacionRepo) Update(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cots[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	m.cots[c.ID] = &cp
	return nil
}

func (m *memCotizacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCotizacionRepo) List(ctx context.Context) ([]model.Cotizacion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Cotizacion, 0, len(m.cots))
	for _, c := range m.cots {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Folio < out[j].Folio })
	return out, nil
}

func (m *memCotizacionRepo) AddPago(ctx context.Context, tx *gorm.DB, p *model.Pago) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cots[p.CotizacionID]
	if !ok {
		return repository.ErrNotFound
	}
	c.Pagos = append(c.Pagos, *p)
	return nil
}

func (m *memCotizacionRepo) ReplacePartidas(ctx context.Context, tx *gorm.DB, cotizacionID uuid.UUID, partidas []model.Partida) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cots[cotizacionID]
	if !ok {
		return repository.ErrNotFound
	}
	c.Partidas = partidas
	return nil
}

func (m *memCotizacionRepo) NextFolio(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.folio++
	return m.folio, nil
}

// ── Tareas ────────────────────────────────────────────────────────────────────

type memTareaRepo struct {
	mu       sync.Mutex
	tareas   map[uuid.UUID]*model.TareaProduccion
	mensajes []model.MensajeChat
}

var _ repository.TareaRepository = (*memTareaRepo)(nil)

func newMemTareaRepo() *memTareaRepo {
	return &memTareaRepo{tareas: make(map[uuid.UUID]*model.TareaProduccion)}
}

func (m *memTareaRepo) DB() *gorm.DB { return nil }

func (m *memTareaRepo) Create(ctx context.Context, tx *gorm.DB, t *model.TareaProduccion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.tareas[t.ID] = &cp
	return nil
}

func (m *memTareaRepo) Update(ctx context.Context, tx *gorm.DB, t *model.TareaProduccion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tareas[t.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *t
	m.tareas[t.ID] = &cp
	return nil
}

func (m *memTareaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.TareaProduccion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tareas[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTareaRepo) FindByCotizacionID(ctx context.Context, cotizacionID uuid.UUID) (*model.TareaProduccion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tareas {
		if t.CotizacionID == cotizacionID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memTareaRepo) List(ctx context.Context) ([]model.TareaProduccion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.TareaProduccion, 0, len(m.tareas))
	for _, t := range m.tareas {
		out = append(out, *t)
	}
	return out, nil
}

func (m *memTareaRepo) ListNoEntregadas(ctx context.Context) ([]model.TareaProduccion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.TareaProduccion, 0, len(m.tareas))
	for _, t := range m.tareas {
		if !t.Entregada {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTareaRepo) AddMensaje(ctx context.Context, msg *model.MensajeChat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mensajes = append(m.mensajes, *msg)
	return nil
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type memClienteRepo struct {
	mu       sync.Mutex
	clientes map[uuid.UUID]*model.Cliente
}

var _ repository.ClienteRepository = (*memClienteRepo)(nil)

func newMemClienteRepo() *memClienteRepo {
	return &memClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (m *memClienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.clientes[c.ID] = &cp
	return nil
}

func (m *memClienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clientes[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	m.clientes[c.ID] = &cp
	return nil
}

func (m *memClienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clientes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memClienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Cliente, 0, len(m.clientes))
	for _, c := range m.clientes {
		if c.Activo {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memClienteRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clientes[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Activo = false
	return nil
}

// ── Notificaciones ────────────────────────────────────────────────────────────

type memNotificacionRepo struct {
	mu     sync.Mutex
	avisos []model.Notificacion
}

var _ repository.NotificacionRepository = (*memNotificacionRepo)(nil)

func newMemNotificacionRepo() *memNotificacionRepo {
	return &memNotificacionRepo{}
}

func (m *memNotificacionRepo) CreateIfAbsent(ctx context.Context, n *model.Notificacion) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.avisos {
		if a.ID == n.ID {
			return false, nil
		}
	}
	m.avisos = append(m.avisos, *n)
	return true, nil
}

func (m *memNotificacionRepo) List(ctx context.Context, limit int) ([]model.Notificacion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Notificacion, len(m.avisos))
	copy(out, m.avisos)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *memNotificacionRepo) MarkRead(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.avisos {
		if m.avisos[i].ID == id {
			m.avisos[i].Leida = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memNotificacionRepo) MarkAllRead(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.avisos {
		m.avisos[i].Leida = true
	}
	return nil
}

func (m *memNotificacionRepo) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.avisos = nil
	return nil
}

func (m *memNotificacionRepo) Trim(ctx context.Context, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if keep > 0 && len(m.avisos) > keep {
		m.avisos = m.avisos[len(m.avisos)-keep:]
	}
	return nil
}

func (m *memNotificacionRepo) mensajes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.avisos))
	for _, a := range m.avisos {
		out = append(out, a.Mensaje)
	}
	return out
}
