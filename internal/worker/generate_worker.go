package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"github.com/promoforge/api/internal/model"
	"github.com/promoforge/api/internal/service"
	"github.com/promoforge/api/internal/websocket"
	"github.com/promoforge/api/pkg/response"
)

// GenerateWorker processes video generation jobs
type GenerateWorker struct {
	jobService   *service.JobService
	videoService *service.VideoService
	hub          *websocket.Hub
}

// NewGenerateWorker creates a new generation worker
func NewGenerateWorker(jobService *service.JobService, videoService *service.VideoService, hub *websocket.Hub) *GenerateWorker {
	return &GenerateWorker{
		jobService:   jobService,
		videoService: videoService,
		hub:          hub,
	}
}

// ProcessTask handles generation task processing
func (w *GenerateWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var taskPayload struct {
		JobID   string          `json:"jobId"`
		Payload json.RawMessage `json:"payload"`
	}

	if err := json.Unmarshal(t.Payload(), &taskPayload); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	jobID := taskPayload.JobID
	log.Printf("Starting generation job: %s", jobID)

	var payload model.GenerateJobPayload
	if err := json.Unmarshal(taskPayload.Payload, &payload); err != nil {
		w.failJob(ctx, jobID, "Invalid payload")
		return fmt.Errorf("failed to unmarshal generation payload: %w", err)
	}

	if w.jobService.IsCanceled(ctx, jobID) {
		log.Printf("Generation job %s canceled before start", jobID)
		return nil
	}

	w.updateProgress(ctx, jobID, 10, "Analyzing prompt...")

	req := &model.GenerateRequest{
		Prompt:      payload.Prompt,
		TargetCount: payload.TargetCount,
	}

	w.updateProgress(ctx, jobID, 30, "Planning video structure...")

	result, err := w.videoService.Generate(ctx, req)
	if err != nil {
		w.failJob(ctx, jobID, fmt.Sprintf("Generation failed: %v", err))
		return err
	}

	w.updateProgress(ctx, jobID, 90, "Assembling composition...")

	if w.jobService.IsCanceled(ctx, jobID) {
		log.Printf("Generation job %s canceled, discarding result", jobID)
		return nil
	}

	if err := w.jobService.CompleteJob(ctx, jobID, result); err != nil {
		w.failJob(ctx, jobID, "Failed to save result")
		return err
	}

	w.hub.BroadcastComplete(jobID, result)
	log.Printf("Generation job %s completed (%s planner)", jobID, result.Planner)
	return nil
}

func (w *GenerateWorker) updateProgress(ctx context.Context, jobID string, progress int, step string) {
	if err := w.jobService.UpdateJobProgress(ctx, jobID, progress, step); err != nil {
		log.Printf("Failed to update progress: %v", err)
	}
	w.hub.BroadcastProgress(jobID, progress, model.JobStatusRunning, step)
}

func (w *GenerateWorker) failJob(ctx context.Context, jobID, errMsg string) {
	if err := w.jobService.FailJob(ctx, jobID, errMsg); err != nil {
		log.Printf("Failed to mark job as failed: %v", err)
	}
	w.hub.BroadcastError(jobID, response.CodeJobFailed, errMsg)
}
