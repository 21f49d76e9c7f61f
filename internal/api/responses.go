package api

type ErrorResponse struct {
	Error string `json:"error" example:"Class is full"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Session status updated"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	// Pending booking confirmations and payment receipts waiting on the
	// notification worker.
	NotifyQueueDepth int64 `json:"notify_queue_depth" example:"0"`
}
