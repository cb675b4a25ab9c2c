package poi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-poi-tourism-engine/internal/types"
)

type MockEmbeddingStore struct {
	mock.Mock
}

func (m *MockEmbeddingStore) FindPOIsWithoutEmbedding(ctx context.Context, afterID int64, limit int) ([]types.POI, error) {
	args := m.Called(ctx, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.POI), args.Error(1)
}

func (m *MockEmbeddingStore) UpdatePOIEmbedding(ctx context.Context, id int64, embedding []float32) error {
	args := m.Called(ctx, id, embedding)
	return args.Error(0)
}

type MockDocumentEmbedder struct {
	mock.Mock
}

func (m *MockDocumentEmbedder) GenerateDocumentEmbedding(ctx context.Context, document string) ([]float32, error) {
	args := m.Called(ctx, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func TestFindPOIsWithoutEmbedding(t *testing.T) {
	repo, dbMock := setupRepositoryTest(t)

	dbMock.ExpectQuery("embedding IS NULL").
		WithArgs(int64(10), 20).
		WillReturnRows(pgxmock.NewRows(poiColumnNames).
			AddRow(int64(11), "Faro de Calpe", "Culture & History", "lighthouse", nil, 38.63, 0.08, 4.4, 120,
				nil, "Old lighthouse", nil, nil, nil, nil, nil, nil, nil))

	pois, err := repo.FindPOIsWithoutEmbedding(context.Background(), 10, 20)
	require.NoError(t, err)
	require.Len(t, pois, 1)
	assert.Equal(t, int64(11), pois[0].ID)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUpdatePOIEmbedding(t *testing.T) {
	repo, dbMock := setupRepositoryTest(t)

	dbMock.ExpectExec("UPDATE pois SET embedding").
		WithArgs("[0.500000,0.250000]", int64(11)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpdatePOIEmbedding(context.Background(), 11, []float32{0.5, 0.25}))
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUpdatePOIEmbeddingMissingRow(t *testing.T) {
	repo, dbMock := setupRepositoryTest(t)

	dbMock.ExpectExec("UPDATE pois SET embedding").
		WithArgs("[1.000000]", int64(99)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdatePOIEmbedding(context.Background(), 99, []float32{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestEmbeddingDocument(t *testing.T) {
	p := types.POI{
		Name:                "Peñón de Ifach",
		Category:            "Beaches & Nature",
		Subcategory:         "nature reserve",
		Description:         "Rock",
		EnrichedDescription: "A limestone rock rising from the sea.",
	}
	assert.Equal(t, "Peñón de Ifach. Beaches & Nature. nature reserve. A limestone rock rising from the sea.", EmbeddingDocument(p))

	p.EnrichedDescription = ""
	p.Subcategory = ""
	assert.Equal(t, "Peñón de Ifach. Beaches & Nature. Rock", EmbeddingDocument(p))
}

func TestBackfillEmbeddings(t *testing.T) {
	ctx := context.Background()
	store := new(MockEmbeddingStore)
	embedder := new(MockDocumentEmbedder)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store.On("FindPOIsWithoutEmbedding", mock.Anything, int64(0), 2).Return([]types.POI{
		{ID: 1, Name: "Museo", Category: "Culture & History"},
		{ID: 2, Name: "Broken", Category: "Shopping"},
	}, nil).Once()
	store.On("FindPOIsWithoutEmbedding", mock.Anything, int64(2), 2).Return([]types.POI{
		{ID: 3, Name: "Mirador", Category: "Active"},
	}, nil).Once()

	embedder.On("GenerateDocumentEmbedding", mock.Anything, "Museo. Culture & History").Return([]float32{0.1}, nil)
	embedder.On("GenerateDocumentEmbedding", mock.Anything, "Broken. Shopping").Return(nil, errors.New("quota exceeded"))
	embedder.On("GenerateDocumentEmbedding", mock.Anything, "Mirador. Active").Return([]float32{0.3}, nil)
	store.On("UpdatePOIEmbedding", mock.Anything, int64(1), []float32{0.1}).Return(nil)
	store.On("UpdatePOIEmbedding", mock.Anything, int64(3), []float32{0.3}).Return(nil)

	stats, err := BackfillEmbeddings(ctx, store, embedder, 2, logger)
	require.Error(t, err)
	assert.Equal(t, BackfillStats{Processed: 2, Failed: 1}, stats)
	store.AssertExpectations(t)
	embedder.AssertExpectations(t)
	store.AssertNotCalled(t, "UpdatePOIEmbedding", mock.Anything, int64(2), mock.Anything)
}

func TestBackfillEmbeddingsStopsOnQueryError(t *testing.T) {
	store := new(MockEmbeddingStore)
	store.On("FindPOIsWithoutEmbedding", mock.Anything, int64(0), 20).Return(nil, errors.New("connection reset"))

	stats, err := BackfillEmbeddings(context.Background(), store, new(MockDocumentEmbedder), 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	assert.Zero(t, stats.Processed)
}
