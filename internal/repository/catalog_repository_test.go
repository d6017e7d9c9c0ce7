package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCatalogRepositoryListProjects(t *testing.T) {
	db, mock, cleanup := newCatalogMock(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	rows := sqlmock.NewRows([]string{"doc"}).
		AddRow([]byte(`{"_id": "submission-1", "title": "Tidal Futures", "allTags": ["Water"], "home_studio": {"_ref": "studio-1"}}`)).
		AddRow([]byte(`{"_id": "submission-2", "title": "Second"}`))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT doc FROM projects ORDER BY id")).WillReturnRows(rows)

	projects, err := repo.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Tidal Futures", projects[0].Title)
	require.NotNil(t, projects[0].HomeStudio)
	assert.Equal(t, "studio-1", projects[0].HomeStudio.Ref)
	assert.Nil(t, projects[1].HomeStudio)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryListStudios(t *testing.T) {
	db, mock, cleanup := newCatalogMock(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	rows := sqlmock.NewRows([]string{"doc"}).
		AddRow([]byte(`{"_id": "studio-1", "title": "Coastal Commons", "institution": {"_ref": "school-1"}, "demands": [{"_ref": "demand-1"}]}`))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT doc FROM studios ORDER BY id")).WillReturnRows(rows)

	studios, err := repo.ListStudios(context.Background())
	require.NoError(t, err)
	require.Len(t, studios, 1)
	assert.Equal(t, "Coastal Commons", studios[0].Title)
	require.Len(t, studios[0].Demands, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryListProjectsBadDocument(t *testing.T) {
	db, mock, cleanup := newCatalogMock(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	rows := sqlmock.NewRows([]string{"doc"}).AddRow([]byte(`not json`))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT doc FROM projects ORDER BY id")).WillReturnRows(rows)

	_, err := repo.ListProjects(context.Background())
	require.Error(t, err)
}

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)

	assert.False(t, repo.Available())

	first, err := repo.ConsumeLoginLink(context.Background(), "nonce-1", 0)
	require.NoError(t, err)
	assert.True(t, first)

	var dest string
	err = repo.Get(context.Background(), "key", &dest)
	require.Error(t, err)
}
