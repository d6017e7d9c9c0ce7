package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/superstudio/showcase-api/internal/models"
	appErrors "github.com/superstudio/showcase-api/pkg/errors"
	"github.com/superstudio/showcase-api/pkg/storage"
)

type catalogRepoStub struct {
	projects []models.StoredProject
	studios  []models.StoredStudio
	schools  []models.School
	demands  []models.Demand
	err      error

	projectCalls int
}

func (s *catalogRepoStub) ListProjects(ctx context.Context) ([]models.StoredProject, error) {
	s.projectCalls++
	return s.projects, s.err
}

func (s *catalogRepoStub) ListStudios(ctx context.Context) ([]models.StoredStudio, error) {
	return s.studios, s.err
}

func (s *catalogRepoStub) ListSchools(ctx context.Context) ([]models.School, error) {
	return s.schools, s.err
}

func (s *catalogRepoStub) ListDemands(ctx context.Context) ([]models.Demand, error) {
	return s.demands, s.err
}

type memoryCacheRepo struct {
	entries map[string][]byte
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.entries == nil {
		m.entries = map[string][]byte{}
	}
	m.entries[key] = raw
	return nil
}

func (m *memoryCacheRepo) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

func catalogFixture() *catalogRepoStub {
	return &catalogRepoStub{
		projects: []models.StoredProject{
			{
				ID:          "submission-1",
				Title:       "Tidal Futures",
				AllTags:     []string{"Water", "water", " Urban Ecology "},
				PosterImage: &models.PosterImage{Type: models.TypeImage, Asset: models.Reference{Ref: "image-deadbeef-jpg"}},
				Media: []models.MediaItem{
					{Type: models.TypeImage, Asset: &models.Reference{Ref: "image-cafe-png"}},
				},
				HomeStudio: &models.Reference{Ref: "studio-1"},
			},
			{
				ID:      "submission-2",
				Title:   "Orphan Studio Project",
				AllTags: []string{"Housing"},
			},
		},
		studios: []models.StoredStudio{
			{
				ID:          "studio-1",
				Title:       "Coastal Commons",
				Institution: &models.Reference{Ref: "school-1"},
				Demands:     []models.Reference{{Ref: "demand-1"}, {Ref: "demand-missing"}},
				PosterImage: &models.PosterImage{Type: models.TypeImage, Asset: models.Reference{Ref: "image-feed-jpg"}},
			},
		},
		schools: []models.School{{ID: "school-1", Title: "School of Architecture"}},
		demands: []models.Demand{{ID: "demand-1", Title: "Climate Adaptation"}},
	}
}

func newCatalogService(repo *catalogRepoStub, cacheRepo CacheRepository) *CatalogService {
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), cacheRepo != nil)
	images := storage.NewImageURLBuilder("url-secret", time.Minute)
	return NewCatalogService(repo, cacheSvc, images, zap.NewNop())
}

func TestCatalogServiceProjectsResolvesStudios(t *testing.T) {
	svc := newCatalogService(catalogFixture(), nil)

	projects, err := svc.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)

	first := projects[0]
	require.NotNil(t, first.HomeStudio)
	assert.Equal(t, "Coastal Commons", first.HomeStudio.Title)
	require.NotNil(t, first.HomeStudio.Institution)
	assert.Equal(t, "School of Architecture", first.HomeStudio.Institution.Title)
	require.Len(t, first.HomeStudio.Demands, 1)
	assert.Equal(t, "Climate Adaptation", first.HomeStudio.Demands[0].Title)

	assert.Contains(t, first.PosterImageURL, "deadbeef.jpg")
	assert.Contains(t, first.PosterImageURL, "w=400")
	assert.Contains(t, first.Media[0].URL, "cafe.png")
	assert.Contains(t, first.HomeStudio.PosterImageURL, "w=200")

	assert.Nil(t, projects[1].HomeStudio)
	assert.Empty(t, projects[1].PosterImageURL)
}

func TestCatalogServiceProjectsUsesCache(t *testing.T) {
	repo := catalogFixture()
	svc := newCatalogService(repo, &memoryCacheRepo{})

	_, err := svc.Projects(context.Background())
	require.NoError(t, err)
	_, err = svc.Projects(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.projectCalls)
}

func TestCatalogServiceInvalidateCatalogDropsCachedPayloads(t *testing.T) {
	repo := catalogFixture()
	svc := newCatalogService(repo, &memoryCacheRepo{})

	_, err := svc.Projects(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.InvalidateCatalog(context.Background()))

	_, err = svc.Projects(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, repo.projectCalls)
}

func TestCatalogServiceFiltersDedupesTags(t *testing.T) {
	svc := newCatalogService(catalogFixture(), nil)

	filters, err := svc.Filters(context.Background())
	require.NoError(t, err)

	require.Len(t, filters.Tags, 3)
	assert.Equal(t, "Housing", filters.Tags[0].Label)
	assert.Equal(t, "housing", filters.Tags[0].Slug)
	assert.Equal(t, "Urban Ecology", filters.Tags[1].Label)
	assert.Equal(t, "urban-ecology", filters.Tags[1].Slug)
	assert.Equal(t, "Water", filters.Tags[2].Label)

	require.Len(t, filters.Institutions, 1)
	require.Len(t, filters.Demands, 1)
}

func TestCatalogServiceStudios(t *testing.T) {
	svc := newCatalogService(catalogFixture(), nil)

	studios, err := svc.Studios(context.Background())
	require.NoError(t, err)
	require.Len(t, studios, 1)
	assert.Equal(t, "Coastal Commons", studios[0].Title)
	require.NotNil(t, studios[0].Institution)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "urban-ecology", Slugify("  Urban Ecology "))
	assert.Equal(t, "water", Slugify("Water"))
	assert.Equal(t, "mixed-use-2024", Slugify("Mixed_Use 2024!"))
	assert.Equal(t, "", Slugify("!!!"))
}
