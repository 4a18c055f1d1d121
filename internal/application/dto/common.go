package dto

import "encoding/json"

// Optional campo opcional con bit de presencia a nivel JSON.
// Si la clave no viene en el payload, UnmarshalJSON no se invoca y Set queda
// en false. Si viene con null explícito, Set=true y Value=nil (borrado).
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON marca el campo como presente y decodifica el valor (o null).
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// PageRequest paginación para listados (página 1-indexada).
type PageRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

// Normalize acota página y tamaño a >= 1.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 1
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
