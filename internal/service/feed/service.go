package feed

import (
	"context"
	"strings"
	"time"

	"alumnimart/internal/domain"
	feedrepo "alumnimart/internal/repository/feed"
)

// Service manages the school events/opportunities feed.
type Service struct {
	repo feedrepo.Repository
}

func New(repo feedrepo.Repository) *Service {
	return &Service{repo: repo}
}

// PostInput carries the feed post fields.
type PostInput struct {
	SchoolID string     `json:"schoolId"`
	Kind     string     `json:"kind"`
	Title    string     `json:"title"`
	Body     string     `json:"body"`
	StartsAt *time.Time `json:"startsAt"`
}

func (s *Service) Create(ctx context.Context, actor domain.User, in PostInput) (*domain.FeedPost, error) {
	schoolID := strings.TrimSpace(in.SchoolID)
	if schoolID == "" {
		return nil, domain.Validationf("schoolId is required")
	}
	if in.Kind != domain.FeedEvent && in.Kind != domain.FeedOpportunity {
		return nil, domain.Validationf("kind must be %q or %q", domain.FeedEvent, domain.FeedOpportunity)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.Validationf("title is required")
	}
	if !actor.IsAdmin(&schoolID) {
		return nil, domain.ErrForbidden
	}
	return s.repo.Create(ctx, domain.FeedPost{
		SchoolID:  schoolID,
		Kind:      in.Kind,
		Title:     strings.TrimSpace(in.Title),
		Body:      in.Body,
		StartsAt:  in.StartsAt,
		CreatedBy: actor.ID,
	})
}

func (s *Service) List(ctx context.Context, schoolID, kind string) ([]domain.FeedPost, error) {
	if kind != "" && kind != domain.FeedEvent && kind != domain.FeedOpportunity {
		return nil, domain.Validationf("unknown feed kind %q", kind)
	}
	return s.repo.ListBySchool(ctx, schoolID, kind)
}

func (s *Service) Delete(ctx context.Context, actor domain.User, id string) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin(&post.SchoolID) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
