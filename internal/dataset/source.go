package dataset

import (
	"context"
	"fmt"

	"github.com/wonny/rostercast/internal/contracts"
)

// Source produces a Dataset for a season
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
	Describe() string
}

// FileSource reads a JSON dataset file
type FileSource struct {
	Path   string
	Season string
}

// NewFileSource creates a file-backed source
func NewFileSource(path, season string) *FileSource {
	return &FileSource{Path: path, Season: season}
}

// Load implements Source
func (s *FileSource) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(s.Path, s.Season)
}

// Describe implements Source
func (s *FileSource) Describe() string {
	return "file:" + s.Path
}

// seasonLoader is the subset of Repository a RepositorySource needs
type seasonLoader interface {
	LoadSeason(ctx context.Context, season string) ([]contracts.PlayerSeason, error)
}

// RepositorySource reads a season from PostgreSQL
type RepositorySource struct {
	repo   seasonLoader
	season string
}

// NewRepositorySource creates a database-backed source
func NewRepositorySource(repo seasonLoader, season string) *RepositorySource {
	return &RepositorySource{repo: repo, season: season}
}

// Load implements Source
func (s *RepositorySource) Load(ctx context.Context) (*Dataset, error) {
	rows, err := s.repo.LoadSeason(ctx, s.season)
	if err != nil {
		return nil, fmt.Errorf("load season %s: %w", s.season, err)
	}
	return New(s.season, rows)
}

// Describe implements Source
func (s *RepositorySource) Describe() string {
	return "postgres:" + s.season
}
