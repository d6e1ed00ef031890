package dto

// HealthResponse reports process and store liveness
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
