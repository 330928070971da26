package dto

// Envelope cuerpo común de todas las respuestas HTTP: {success, data?, message?}.
// Code, Count y Fields son opcionales y complementan el contrato base.
type Envelope struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Code    string            `json:"code,omitempty"`
	Count   *int              `json:"count,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// OK construye un envelope exitoso.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKList construye un envelope exitoso con el conteo de elementos.
func OKList(data interface{}, count int) Envelope {
	return Envelope{Success: true, Data: data, Count: &count}
}

// Fail construye un envelope de error.
func Fail(code, message string) Envelope {
	return Envelope{Success: false, Code: code, Message: message}
}
