package api

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Msg     string            `json:"msg" example:"Server error"`
	Details []ValidationError `json:"details,omitempty"`
}

type MessageResponse struct {
	Msg string `json:"msg" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Time   string `json:"time" example:"2026-05-01T08:00:00Z"`
}

func Error(msg string) ErrorResponse {
	return ErrorResponse{Msg: msg}
}

func Message(msg string) MessageResponse {
	return MessageResponse{Msg: msg}
}
