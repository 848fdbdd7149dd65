package dto

// PageRequest paginación opcional para listados. Limit 0 = todos los registros.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalize acota los valores: sin límite negativo, máximo 1000 por página.
func (p *PageRequest) Normalize() {
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Limit > 1000 {
		p.Limit = 1000
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP: result lleva el mensaje, code el tipo de error.
type ErrorResponse struct {
	Result string `json:"result"`
	Code   string `json:"code"`
}

// MessageResponse cuerpo de operaciones sin datos de salida (p. ej. eliminaciones).
type MessageResponse struct {
	Result string `json:"result"`
}
