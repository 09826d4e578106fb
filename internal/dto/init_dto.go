package dto

import "kensai/internal/model"

// InitResponse es la carga inicial completa que consume el frontend al
// arrancar: catálogos, documentos y buzón en una sola respuesta.
type InitResponse struct {
	Clientes       []model.Cliente         `json:"clientes"`
	Productos      []model.Producto        `json:"productos"`
	Colaboradores  []ColaboradorResponse   `json:"colaboradores"`
	Cotizaciones   []model.Cotizacion      `json:"cotizaciones"`
	Tareas         []model.TareaProduccion `json:"tareas"`
	Notificaciones []model.Notificacion    `json:"notificaciones"`
}
