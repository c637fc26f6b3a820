package dto

// GenerationRequest represents the API request to create a generation
type GenerationRequest struct {
	ChatID           int64          `json:"chatId" binding:"required"`
	Username         string         `json:"username"`
	Model            string         `json:"model" binding:"required"`
	Prompt           string         `json:"prompt"`
	Quantity         int            `json:"quantity"`
	GenerationType   string         `json:"generationType"`
	InputImages      []string       `json:"inputImages"`
	GenerationParams map[string]any `json:"generationParams"`
	Duration         *int           `json:"duration"`
	VideoResolution  string         `json:"videoResolution"`
	AspectRatio      string         `json:"aspectRatio"`
}

// GenerationResponse represents a generation request in API responses
type GenerationResponse struct {
	ID             uint64   `json:"id"`
	RunCode        string   `json:"runCode"`
	UserID         uint64   `json:"userId"`
	ChatID         int64    `json:"chatId"`
	Model          string   `json:"model"`
	Status         string   `json:"status"`
	Quantity       int      `json:"quantity"`
	Cost           string   `json:"cost"`
	CostUSD        string   `json:"costUsd"`
	ResultURLs     []string `json:"resultUrls,omitempty"`
	ErrorMessage   string   `json:"errorMessage,omitempty"`
	ProcessingTime float64  `json:"processingTime,omitempty"`
	CreatedAt      string   `json:"createdAt"`
}

// CompleteGenerationRequest represents the worker callback for a finished run
type CompleteGenerationRequest struct {
	ResultURLs []string `json:"resultUrls" binding:"required"`
	FileSizes  []int64  `json:"fileSizes"`
}

// FailGenerationRequest represents the worker callback for a failed run
type FailGenerationRequest struct {
	ErrorMessage string `json:"errorMessage" binding:"required"`
	Refund       *bool  `json:"refund"`
}

// CancelGenerationRequest represents a cancellation request
type CancelGenerationRequest struct {
	Refund *bool `json:"refund"`
}
