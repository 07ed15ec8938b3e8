package domain

import "time"

// Mensaje de bienvenida sembrado al iniciar un store vacío.
const (
	WelcomeAuthor = "System"
	WelcomeBody   = "Welcome to the chat!"
)

// Message es una entrada del chat. Nunca se modifica después de creada.
type Message struct {
	ID        int64     `json:"id"`
	Author    string    `json:"username"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"timestamp"`
}
