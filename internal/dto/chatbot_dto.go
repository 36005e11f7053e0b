package dto

// ChatTurn is one prior exchange in a chatbot conversation, replayed so the
// model keeps context across requests.
type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// ChatbotAskRequest carries a student's question plus prior turns.
type ChatbotAskRequest struct {
	Message string     `json:"message" validate:"required,min=1"`
	History []ChatTurn `json:"history" validate:"omitempty,dive"`
}

// ChatbotResponse is the assistant's reply.
type ChatbotResponse struct {
	Reply string `json:"reply"`
}
