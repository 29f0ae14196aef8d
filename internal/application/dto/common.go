package dto

// Result sobre de respuesta uniforme de la API: éxito, payload, mensaje
// legible y lista de errores. Ninguna operación lanza pánico a través de
// esta frontera.
type Result struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// OK construye un resultado exitoso.
func OK(data any, message string) Result {
	return Result{Success: true, Data: data, Message: message}
}

// Fail construye un resultado fallido.
func Fail(message string, errs ...string) Result {
	return Result{Success: false, Message: message, Errors: errs}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PagedResult listado paginado con total.
type PagedResult[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
