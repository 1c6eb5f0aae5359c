package dto

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code   int          `json:"code"`
	Detail string       `json:"detail"`
	Fields []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AppInfo struct {
	Message     string   `json:"message"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Endpoints   []string `json:"endpoints"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	App      string `json:"app"`
	Instance string `json:"instance"`
}
