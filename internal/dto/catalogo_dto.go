package dto

import "github.com/shopspring/decimal"

// ClienteRequest alta/edición de cliente.
type ClienteRequest struct {
	Nombre           string `json:"nombre" validate:"required,max=150"`
	Email            string `json:"email" validate:"omitempty,email"`
	Telefono         string `json:"telefono" validate:"max=40"`
	Direccion        string `json:"direccion" validate:"max=250"`
	CondicionCredito string `json:"condicion_credito" validate:"omitempty,oneof=Contado Credito"`
	DiasCredito      int    `json:"dias_credito" validate:"gte=0,lte=365"`
}

// ProductoRequest alta/edición de producto del catálogo.
type ProductoRequest struct {
	Nombre      string          `json:"nombre" validate:"required,max=150"`
	Descripcion string          `json:"descripcion" validate:"max=500"`
	Precio      decimal.Decimal `json:"precio" validate:"required"`
	Unidad      string          `json:"unidad" validate:"max=30"`
}

// SugerenciaRequest pide descripciones de partida a partir de una palabra clave.
type SugerenciaRequest struct {
	Keyword string `json:"keyword" form:"keyword" validate:"required,max=100"`
}

// SugerenciaResponse lista hasta tres descripciones sugeridas.
type SugerenciaResponse struct {
	Descripciones []string `json:"descripciones"`
}
