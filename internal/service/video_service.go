package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/promoforge/api/internal/catalog"
	"github.com/promoforge/api/internal/client"
	"github.com/promoforge/api/internal/config"
	"github.com/promoforge/api/internal/model"
)

// VideoService runs the full generation pipeline: plan, validate,
// materialize, assemble. External failures degrade inside the planner and
// synthesizer; only a logic failure in materialization surfaces, phrased
// for the user as a retryable generation failure.
type VideoService struct {
	catalog   *catalog.Catalog
	director  *DirectorService
	validator *StructureValidator
	senso     client.KnowledgeRetriever
	video     config.VideoConfig
}

func NewVideoService(cat *catalog.Catalog, director *DirectorService, senso client.KnowledgeRetriever, video config.VideoConfig) *VideoService {
	return &VideoService{
		catalog:   cat,
		director:  director,
		validator: NewStructureValidator(cat, video.DurationBudget),
		senso:     senso,
		video:     video,
	}
}

// Generate turns a prompt into a composition description.
func (s *VideoService) Generate(ctx context.Context, req *model.GenerateRequest) (*model.GenerateResponse, error) {
	start := time.Now()

	// Taxonomy sync is best-effort; retrieval works without it, just
	// with weaker categorization.
	if s.senso != nil && s.senso.IsConfigured() {
		if syncer, ok := s.senso.(taxonomySyncer); ok {
			if err := syncer.SyncTaxonomy(ctx); err != nil {
				log.Printf("Taxonomy sync failed, continuing anyway: %v", err)
			}
		}
	}

	structure, planner := s.director.PlanVideo(ctx, req.Prompt, req.TargetCount)
	structure = s.validator.Validate(structure)

	sources := make([]model.SceneSource, 0, len(structure.Scenes))
	for i := range structure.Scenes {
		source, err := MaterializeScene(s.catalog, &structure.Scenes[i], i)
		if err != nil {
			// Validation guarantees catalog membership; reaching this
			// means a pipeline bug, not bad input.
			return nil, fmt.Errorf("video generation failed, please try again: %w", err)
		}
		sources = append(sources, source)
	}

	composition := AssembleComposition(s.video, structure, sources)
	analysis := AnalyzeContent(req.Prompt)

	return &model.GenerateResponse{
		Composition: composition,
		Structure:   structure,
		Analysis:    analysis,
		Planner:     planner,
		DurationMs:  time.Since(start).Milliseconds(),
	}, nil
}

type taxonomySyncer interface {
	SyncTaxonomy(ctx context.Context) error
}
