package service

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/superstudio/showcase-api/internal/models"
	appErrors "github.com/superstudio/showcase-api/pkg/errors"
	"github.com/superstudio/showcase-api/pkg/storage"
)

const (
	cacheKeyProjects = "catalog:projects"
	cacheKeyStudios  = "catalog:studios"
	cacheKeyFilters  = "catalog:filters"
)

type catalogRepository interface {
	ListProjects(ctx context.Context) ([]models.StoredProject, error)
	ListStudios(ctx context.Context) ([]models.StoredStudio, error)
	ListSchools(ctx context.Context) ([]models.School, error)
	ListDemands(ctx context.Context) ([]models.Demand, error)
}

// CatalogService serves the public read endpoints: projects joined to their
// studios, studios joined to their institutions and demands, and the
// aggregated filter options.
type CatalogService struct {
	repo   catalogRepository
	cache  *CacheService
	images *storage.ImageURLBuilder
	logger *zap.Logger
}

// NewCatalogService constructs a CatalogService instance.
func NewCatalogService(repo catalogRepository, cache *CacheService, images *storage.ImageURLBuilder, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, cache: cache, images: images, logger: logger}
}

// Projects returns all published projects with their studio references
// resolved and display URLs attached.
func (s *CatalogService) Projects(ctx context.Context) ([]models.Project, error) {
	var cached []models.Project
	if hit, _ := s.cache.Get(ctx, cacheKeyProjects, &cached); hit {
		return cached, nil
	}

	stored, studios, err := s.loadProjectSources(ctx)
	if err != nil {
		return nil, err
	}

	projects := make([]models.Project, 0, len(stored))
	for _, p := range stored {
		project := models.Project{
			ID:          p.ID,
			Title:       p.Title,
			Slug:        p.Slug,
			PosterImage: p.PosterImage,
			AllTags:     p.AllTags,
			AllStudents: p.AllStudents,
			Description: p.Description,
			Media:       p.Media,
		}
		if p.HomeStudio != nil {
			if studio, ok := studios[p.HomeStudio.Ref]; ok {
				project.HomeStudio = studio
			}
		}
		s.decorateProject(&project)
		projects = append(projects, project)
	}

	if err := s.cache.Set(ctx, cacheKeyProjects, projects, 0); err != nil {
		s.logger.Warn("failed to cache projects", zap.Error(err))
	}
	return projects, nil
}

// Studios returns all studios with institutions and demands resolved.
func (s *CatalogService) Studios(ctx context.Context) ([]models.Studio, error) {
	var cached []models.Studio
	if hit, _ := s.cache.Get(ctx, cacheKeyStudios, &cached); hit {
		return cached, nil
	}

	resolved, err := s.loadStudios(ctx)
	if err != nil {
		return nil, err
	}

	studios := make([]models.Studio, 0, len(resolved))
	ids := make([]string, 0, len(resolved))
	for id := range resolved {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		studios = append(studios, *resolved[id])
	}

	if err := s.cache.Set(ctx, cacheKeyStudios, studios, 0); err != nil {
		s.logger.Warn("failed to cache studios", zap.Error(err))
	}
	return studios, nil
}

// Filters aggregates the distinct tags across all projects plus the full
// institution and demand lists.
func (s *CatalogService) Filters(ctx context.Context) (*models.Filters, error) {
	var cached models.Filters
	if hit, _ := s.cache.Get(ctx, cacheKeyFilters, &cached); hit {
		return &cached, nil
	}

	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to load projects")
	}
	schools, err := s.repo.ListSchools(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to load schools")
	}
	demands, err := s.repo.ListDemands(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to load demands")
	}

	filters := &models.Filters{
		Tags:         collectTags(projects),
		Institutions: schools,
		Demands:      demands,
	}

	if err := s.cache.Set(ctx, cacheKeyFilters, filters, 0); err != nil {
		s.logger.Warn("failed to cache filters", zap.Error(err))
	}
	return filters, nil
}

// InvalidateCatalog drops all cached catalog payloads.
func (s *CatalogService) InvalidateCatalog(ctx context.Context) error {
	return s.cache.Invalidate(ctx, cacheKeyProjects, cacheKeyStudios, cacheKeyFilters)
}

func (s *CatalogService) loadProjectSources(ctx context.Context) ([]models.StoredProject, map[string]*models.Studio, error) {
	stored, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to load projects")
	}
	studios, err := s.loadStudios(ctx)
	if err != nil {
		return nil, nil, err
	}
	return stored, studios, nil
}

func (s *CatalogService) loadStudios(ctx context.Context) (map[string]*models.Studio, error) {
	storedStudios, err := s.repo.ListStudios(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to load studios")
	}
	schools, err := s.repo.ListSchools(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to load schools")
	}
	demands, err := s.repo.ListDemands(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to load demands")
	}

	schoolsByID := make(map[string]*models.School, len(schools))
	for i := range schools {
		schoolsByID[schools[i].ID] = &schools[i]
	}
	demandsByID := make(map[string]*models.Demand, len(demands))
	for i := range demands {
		demandsByID[demands[i].ID] = &demands[i]
	}

	resolved := make(map[string]*models.Studio, len(storedStudios))
	for _, st := range storedStudios {
		studio := &models.Studio{
			ID:          st.ID,
			Title:       st.Title,
			Slug:        st.Slug,
			PosterImage: st.PosterImage,
			StudioURL:   st.StudioURL,
			Instructors: st.Instructors,
			Term:        st.Term,
			Level:       st.Level,
			Description: st.Description,
		}
		if st.Institution != nil {
			if school, ok := schoolsByID[st.Institution.Ref]; ok {
				studio.Institution = school
			}
		}
		for _, ref := range st.Demands {
			if demand, ok := demandsByID[ref.Ref]; ok {
				studio.Demands = append(studio.Demands, *demand)
			}
		}
		s.decorateStudio(studio)
		resolved[st.ID] = studio
	}
	return resolved, nil
}

func (s *CatalogService) decorateProject(project *models.Project) {
	if s.images == nil {
		return
	}
	if project.PosterImage != nil && project.PosterImage.Asset.Ref != "" {
		project.PosterImageURL = s.images.URL(storage.FilenameForRef(project.PosterImage.Asset.Ref), storage.PosterWidth, storage.PosterHeight, storage.FitCrop)
	}
	for i := range project.Media {
		item := &project.Media[i]
		if item.Type == models.TypeImage && item.Asset != nil && item.Asset.Ref != "" {
			item.URL = s.images.URL(storage.FilenameForRef(item.Asset.Ref), storage.MediaWidth, storage.MediaHeight, storage.FitCrop)
		}
	}
}

func (s *CatalogService) decorateStudio(studio *models.Studio) {
	if s.images == nil {
		return
	}
	if studio.PosterImage != nil && studio.PosterImage.Asset.Ref != "" {
		studio.PosterImageURL = s.images.URL(storage.FilenameForRef(studio.PosterImage.Asset.Ref), storage.StudioWidth, storage.StudioHeight, storage.FitCrop)
	}
}

// collectTags deduplicates tags across projects, keyed by their slug so that
// case and whitespace variants collapse into a single option.
func collectTags(projects []models.StoredProject) []models.TagOption {
	seen := make(map[string]models.TagOption)
	for _, p := range projects {
		for _, tag := range p.AllTags {
			label := strings.TrimSpace(tag)
			if label == "" {
				continue
			}
			slug := Slugify(label)
			if slug == "" {
				continue
			}
			if _, ok := seen[slug]; !ok {
				seen[slug] = models.TagOption{
					ID:    "tag-" + slug,
					Value: slug,
					Slug:  slug,
					Label: label,
				}
			}
		}
	}

	tags := make([]models.TagOption, 0, len(seen))
	for _, opt := range seen {
		tags = append(tags, opt)
	}
	sort.Slice(tags, func(i, j int) bool {
		return strings.ToLower(tags[i].Label) < strings.ToLower(tags[j].Label)
	})
	return tags
}

// Slugify lowercases the value, converts runs of whitespace to single
// dashes, and strips everything outside [a-z0-9-].
func Slugify(value string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '-' || r == '_' || r == '\t':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
