package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ConfirmResponse respuesta genérica de operaciones destructivas.
type ConfirmResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
