package exercises_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treinoapp/backend/internal/exercises"
)

func TestClient_FetchAll(t *testing.T) {
	entries := []exercises.CatalogEntry{
		{
			Name:      "barbell squat",
			BodyPart:  "upper legs",
			Target:    "quads",
			GifURL:    "https://cdn.example.com/squat.gif",
			Equipment: "barbell",
		},
		{
			Name:      "push up",
			BodyPart:  "chest",
			Target:    "pectorals",
			GifURL:    "https://cdn.example.com/pushup.gif",
			Equipment: "body weight",
		},
	}

	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exercises", r.URL.Path)
		assert.Equal(t, "0", r.URL.Query().Get("limit"))
		assert.Equal(t, "test-api-key", r.Header.Get("x-rapidapi-key"))
		assert.Equal(t, "exercisedb.test", r.Header.Get("x-rapidapi-host"))
		require.NoError(t, json.NewEncoder(w).Encode(entries))
	}))
	defer apiServer.Close()

	client := exercises.NewClient(apiServer.URL, "test-api-key", "exercisedb.test", apiServer.Client())

	gotEntries, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entries, gotEntries)
}

func TestClient_FetchAll_ApiError(t *testing.T) {
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer apiServer.Close()

	client := exercises.NewClient(apiServer.URL, "bad-key", "exercisedb.test", apiServer.Client())

	gotEntries, err := client.FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
	assert.Nil(t, gotEntries)
}

func TestSyncer_Sync_InsertsOnlyMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcherMock := NewMockcatalogFetcher(ctrl)
	storeMock := NewMocksyncStore(ctrl)
	cacheMock := NewMockcacheInvalidator(ctrl)

	fetcherMock.EXPECT().FetchAll(gomock.Any()).Return([]exercises.CatalogEntry{
		{Name: "barbell squat", BodyPart: "upper legs", Target: "quads", GifURL: "gif1", Equipment: "barbell"},
		{Name: "push up", BodyPart: "chest", Target: "pectorals", GifURL: "gif2", Equipment: "body weight"},
	}, nil)

	// first entry already known, second is new
	storeMock.EXPECT().
		GetByName(gomock.Any(), "barbell squat").
		Return(&exercises.Exercise{ID: 1, Name: "barbell squat"}, nil)
	storeMock.EXPECT().
		GetByName(gomock.Any(), "push up").
		Return(nil, exercises.ErrExerciseNotFound)
	storeMock.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e exercises.Exercise) (*exercises.Exercise, error) {
			assert.Equal(t, "push up", e.Name)
			assert.Equal(t, "chest", e.BodyPart)
			assert.Equal(t, "pectorals", e.Category)
			assert.Equal(t, "gif2", e.Description)
			assert.Equal(t, exercises.DefaultDifficulty, e.Difficulty)
			e.ID = 2
			return &e, nil
		})
	cacheMock.EXPECT().Invalidate()

	syncer := exercises.NewSyncer(fetcherMock, storeMock, cacheMock)
	inserted, err := syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
}

func TestSyncer_Sync_NothingNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcherMock := NewMockcatalogFetcher(ctrl)
	storeMock := NewMocksyncStore(ctrl)
	cacheMock := NewMockcacheInvalidator(ctrl)

	fetcherMock.EXPECT().FetchAll(gomock.Any()).Return([]exercises.CatalogEntry{
		{Name: "barbell squat"},
	}, nil)
	storeMock.EXPECT().
		GetByName(gomock.Any(), "barbell squat").
		Return(&exercises.Exercise{ID: 1, Name: "barbell squat"}, nil)
	// cache stays untouched

	syncer := exercises.NewSyncer(fetcherMock, storeMock, cacheMock)
	inserted, err := syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Zero(t, inserted)
}

func TestSyncer_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcherMock := NewMockcatalogFetcher(ctrl)
	storeMock := NewMocksyncStore(ctrl)
	cacheMock := NewMockcacheInvalidator(ctrl)

	fetcherMock.EXPECT().FetchAll(gomock.Any()).Return([]exercises.CatalogEntry{
		{Name: "barbell squat", GifURL: "new-gif-1"},
		{Name: "unknown exercise", GifURL: "new-gif-2"},
	}, nil)

	storeMock.EXPECT().
		UpdateMediaByName(gomock.Any(), "barbell squat", "new-gif-1").
		Return(true, nil)
	storeMock.EXPECT().
		UpdateMediaByName(gomock.Any(), "unknown exercise", "new-gif-2").
		Return(false, nil)
	cacheMock.EXPECT().Invalidate()

	syncer := exercises.NewSyncer(fetcherMock, storeMock, cacheMock)
	updated, err := syncer.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
}

func TestSyncer_Sync_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcherMock := NewMockcatalogFetcher(ctrl)
	storeMock := NewMocksyncStore(ctrl)
	cacheMock := NewMockcacheInvalidator(ctrl)

	fetcherMock.EXPECT().FetchAll(gomock.Any()).Return(nil, assert.AnError)

	syncer := exercises.NewSyncer(fetcherMock, storeMock, cacheMock)
	inserted, err := syncer.Sync(context.Background())
	require.Error(t, err)
	assert.Zero(t, inserted)
}
