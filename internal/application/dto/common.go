package dto

// FieldDetail detalle de un campo que falló la validación de forma.
type FieldDetail struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP. Details solo se llena para errores de
// validación de forma (400).
type ErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []FieldDetail `json:"details,omitempty"`
}
