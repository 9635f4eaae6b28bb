package categories

import (
	"context"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name string, ownerID int64) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return s.repo.Create(ctx, name, ownerID)
}

func (s *Service) List(ctx context.Context, viewerID int64) ([]Category, error) {
	return s.repo.ListVisible(ctx, viewerID)
}

func (s *Service) Delete(ctx context.Context, id, viewerID int64) error {
	return s.repo.DeleteVisible(ctx, id, viewerID)
}
