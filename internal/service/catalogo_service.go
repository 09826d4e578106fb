package service

import (
	"context"

	"kensai/internal/dto"
	"kensai/internal/model"
	"kensai/internal/repository"

	"github.com/google/uuid"
)

// CatalogoService administra los catálogos de clientes y productos.
// Las bajas son lógicas: los documentos históricos siguen apuntando a ellos.
type CatalogoService interface {
	CrearCliente(ctx context.Context, req dto.ClienteRequest) (*model.Cliente, error)
	ActualizarCliente(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*model.Cliente, error)
	ListarClientes(ctx context.Context) ([]model.Cliente, error)
	BajaCliente(ctx context.Context, id uuid.UUID) error

	CrearProducto(ctx context.Context, req dto.ProductoRequest) (*model.Producto, error)
	ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.ProductoRequest) (*model.Producto, error)
	ListarProductos(ctx context.Context) ([]model.Producto, error)
	BajaProducto(ctx context.Context, id uuid.UUID) error
}

type catalogoService struct {
	clientes  repository.ClienteRepository
	productos repository.ProductoRepository
}

func NewCatalogoService(clientes repository.ClienteRepository, productos repository.ProductoRepository) CatalogoService {
	return &catalogoService{clientes: clientes, productos: productos}
}

// ── Clientes ──────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearCliente(ctx context.Context, req dto.ClienteRequest) (*model.Cliente, error) {
	c := &model.Cliente{
		ID:               uuid.New(),
		Nombre:           req.Nombre,
		Email:            req.Email,
		Telefono:         req.Telefono,
		Direccion:        req.Direccion,
		CondicionCredito: model.CreditoContado,
		DiasCredito:      req.DiasCredito,
		Activo:           true,
	}
	if req.CondicionCredito != "" {
		c.CondicionCredito = req.CondicionCredito
	}
	if err := s.clientes.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogoService) ActualizarCliente(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*model.Cliente, error) {
	c, err := s.clientes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Nombre = req.Nombre
	c.Email = req.Email
	c.Telefono = req.Telefono
	c.Direccion = req.Direccion
	c.DiasCredito = req.DiasCredito
	if req.CondicionCredito != "" {
		c.CondicionCredito = req.CondicionCredito
	}
	if err := s.clientes.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogoService) ListarClientes(ctx context.Context) ([]model.Cliente, error) {
	return s.clientes.List(ctx)
}

func (s *catalogoService) BajaCliente(ctx context.Context, id uuid.UUID) error {
	return s.clientes.Deactivate(ctx, id)
}

// ── Productos ─────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearProducto(ctx context.Context, req dto.ProductoRequest) (*model.Producto, error) {
	p := &model.Producto{
		ID:          uuid.New(),
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Unidad:      req.Unidad,
		Activo:      true,
	}
	if p.Unidad == "" {
		p.Unidad = "pieza"
	}
	if err := s.productos.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogoService) ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.ProductoRequest) (*model.Producto, error) {
	p, err := s.productos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Nombre = req.Nombre
	p.Descripcion = req.Descripcion
	p.Precio = req.Precio
	if req.Unidad != "" {
		p.Unidad = req.Unidad
	}
	if err := s.productos.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogoService) ListarProductos(ctx context.Context) ([]model.Producto, error) {
	return s.productos.List(ctx)
}

func (s *catalogoService) BajaProducto(ctx context.Context, id uuid.UUID) error {
	return s.productos.Deactivate(ctx, id)
}
