// Package dto define los cuerpos de petición y respuesta de la API HTTP.
package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SignInRequest token de acceso emitido por Supabase Auth.
type SignInRequest struct {
	AccessToken string `json:"access_token"`
}

// SessionResponse dueño de la sesión activa.
type SessionResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
