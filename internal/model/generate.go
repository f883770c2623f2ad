package model

import "time"

// GenerateRequest is the request body for video generation
type GenerateRequest struct {
	Prompt      string `json:"prompt" validate:"required,min=3,max=500"`
	TargetCount int    `json:"targetCount" validate:"omitempty,min=1,max=8"`
}

// GenerateResponse is the response for synchronous video generation
type GenerateResponse struct {
	Composition *Composition            `json:"composition"`
	Structure   *TemplateVideoStructure `json:"structure"`
	Analysis    *ContentAnalysis        `json:"analysis"`
	Planner     string                  `json:"planner"` // "ai" or "fallback"
	DurationMs  int64                   `json:"durationMs"`
}

// GenerateStartResponse is the response when queuing an async generation job
type GenerateStartResponse struct {
	JobID     string    `json:"jobId"`
	Status    JobStatus `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// GenerateStatusResponse reports the state of a generation job
type GenerateStatusResponse struct {
	JobID       string     `json:"jobId"`
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"`
	CurrentStep string     `json:"currentStep,omitempty"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// GenerateCancelResponse is the response for job cancellation
type GenerateCancelResponse struct {
	Success bool      `json:"success"`
	JobID   string    `json:"jobId"`
	Status  JobStatus `json:"status"`
}
