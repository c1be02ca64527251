package dto

import "time"

type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionId string `json:"session_id"`
}

type ChatResponse struct {
	Text         string `json:"text"`
	UsedFallback bool   `json:"used_fallback"`
	SessionId    string `json:"session_id"`
	Confidence   string `json:"confidence"`
}

type HistoryTurnResponse struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

type ChatHistoryResponse struct {
	SessionId string                `json:"session_id"`
	Turns     []HistoryTurnResponse `json:"turns"`
}
