// Package site chains text extraction, annotation and rendering into one use case.
package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/annotator"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/extractor"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/portfolio"
)

// Extractor reads text from uploaded documents.
type Extractor interface {
	Extract(data []byte) (extractor.Document, error)
}

// Renderer writes and locates generated sites.
type Renderer interface {
	Render(ctx context.Context, in portfolio.Input) (portfolio.Site, error)
	Find(jobID string) (portfolio.Site, error)
	Remove(jobID string) error
}

// Request is one upload to turn into a portfolio.
type Request struct {
	Filename     string
	Data         []byte
	Theme        string
	PrimaryColor string
	OwnerID      uuid.UUID
}

// UseCase describes portfolio generation and job history.
type UseCase interface {
	Generate(ctx context.Context, req Request) (Job, error)
	Get(ctx context.Context, id string) (Job, error)
	GetForOwner(ctx context.Context, ownerID uuid.UUID, id string) (Job, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Job, error)
	Delete(ctx context.Context, ownerID uuid.UUID, id string) error
	Site(jobID string) (portfolio.Site, error)
}

type service struct {
	extractor Extractor
	annotator annotator.UseCase
	renderer  Renderer
	repo      Repository
	now       func() time.Time
}

// NewService wires the pipeline stages; repo may be nil to skip history.
func NewService(ex Extractor, an annotator.UseCase, r Renderer, repo Repository) UseCase {
	return &service{
		extractor: ex,
		annotator: an,
		renderer:  r,
		repo:      repo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Generate(ctx context.Context, req Request) (Job, error) {
	doc, err := s.extractor.Extract(req.Data)
	if err != nil {
		return Job{}, err
	}
	slog.DebugContext(ctx, "resume text extracted",
		"filename", req.Filename,
		"pages", doc.PageCount,
		"words", doc.WordCount)

	ann, err := s.annotator.Annotate(ctx, doc.Text)
	if err != nil {
		return Job{}, fmt.Errorf("%w: %w", ErrAnnotation, err)
	}

	jobID, err := portfolio.NewJobID()
	if err != nil {
		return Job{}, fmt.Errorf("generate job id: %w", err)
	}
	color := req.PrimaryColor
	if color == "" {
		color = portfolio.DefaultColor
	}
	if _, err := s.renderer.Render(ctx, portfolio.Input{
		JobID:        jobID,
		Theme:        req.Theme,
		PrimaryColor: color,
		Bio:          ann.Bio,
		Skills:       ann.Skills,
	}); err != nil {
		return Job{}, err
	}

	job := Job{
		ID:           jobID,
		OwnerID:      req.OwnerID,
		Filename:     req.Filename,
		Theme:        req.Theme,
		PrimaryColor: color,
		Bio:          ann.Bio,
		Skills:       ann.Skills,
		PageCount:    doc.PageCount,
		CreatedAt:    s.now(),
	}
	// History is best-effort: the site is already on disk and downloadable.
	if s.repo != nil {
		if err := s.repo.Create(ctx, job); err != nil {
			slog.WarnContext(ctx, "failed to record job", "job_id", jobID, "error", err)
		}
	}
	return job, nil
}

func (s *service) Get(ctx context.Context, id string) (Job, error) {
	if s.repo == nil {
		return Job{}, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *service) GetForOwner(ctx context.Context, ownerID uuid.UUID, id string) (Job, error) {
	j, err := s.Get(ctx, id)
	if err != nil {
		return Job{}, err
	}
	if j.OwnerID != ownerID {
		return Job{}, ErrNotFound
	}
	return j, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Job, error) {
	if s.repo == nil {
		return []Job{}, nil
	}
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *service) Delete(ctx context.Context, ownerID uuid.UUID, id string) error {
	if s.repo == nil {
		return ErrNotFound
	}
	j, err := s.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return err
	}
	// Files go first so a failed removal leaves the record for a retry.
	if err := s.renderer.Remove(j.ID); err != nil && !errors.Is(err, portfolio.ErrInvalidJobID) {
		return fmt.Errorf("remove site files: %w", err)
	}
	_, err = s.repo.DeleteForOwner(ctx, ownerID, id)
	return err
}

func (s *service) Site(jobID string) (portfolio.Site, error) {
	return s.renderer.Find(jobID)
}
