package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/fakhrymubarak/weather-dashboard/internal/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type mockSuggestionRepository struct {
	places []model.Place
	err    error
	calls  int
}

func (m *mockSuggestionRepository) Search(ctx context.Context, partial string) ([]model.Place, error) {
	m.calls++
	return m.places, m.err
}

type favoriteSet map[string]bool

func (f favoriteSet) Contains(city string) bool { return f[city] }

func TestSuggestionService_DecoratesFavorites(t *testing.T) {
	repo := &mockSuggestionRepository{places: []model.Place{
		{CityName: "Paris", Latitude: 48.85, Longitude: 2.35},
		{CityName: "Parma", Latitude: 44.8, Longitude: 10.33},
	}}
	svc := &SuggestionService{Repo: repo, Favorites: favoriteSet{"Paris": true}, Logger: zap.NewNop().Sugar()}

	got := svc.Suggest(context.Background(), "par")

	assert.Equal(t, []model.SuggestionEntry{
		{CityName: "Paris", IsFavorite: true, Latitude: 48.85, Longitude: 2.35},
		{CityName: "Parma", IsFavorite: false, Latitude: 44.8, Longitude: 10.33},
	}, got)
}

func TestSuggestionService_BlankInput(t *testing.T) {
	repo := &mockSuggestionRepository{}
	svc := &SuggestionService{Repo: repo}

	assert.Empty(t, svc.Suggest(context.Background(), " \t"))
	assert.Zero(t, repo.calls)
}

func TestSuggestionService_FailureIsAbsorbed(t *testing.T) {
	repo := &mockSuggestionRepository{err: &repository.ProviderError{Provider: "nominatim", Op: "search", Err: repository.ErrExternalAPI}}
	svc := &SuggestionService{Repo: repo, Logger: zap.NewNop().Sugar()}

	got := svc.Suggest(context.Background(), "paris")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSuggestionService_NeverMoreThanFive(t *testing.T) {
	var places []model.Place
	for i := 0; i < 9; i++ {
		places = append(places, model.Place{CityName: fmt.Sprintf("City%d", i)})
	}
	svc := &SuggestionService{Repo: &mockSuggestionRepository{places: places}}

	assert.Len(t, svc.Suggest(context.Background(), "city"), 5)
}

func TestSuggestionService_NilFavorites(t *testing.T) {
	svc := &SuggestionService{Repo: &mockSuggestionRepository{places: []model.Place{{CityName: "Oslo"}}}}
	got := svc.Suggest(context.Background(), "os")
	assert.False(t, got[0].IsFavorite)
}

func TestNewSuggestionService(t *testing.T) {
	svc := NewSuggestionService(favoriteSet{})
	assert.NotNil(t, svc.Repo)
	assert.NotNil(t, svc.Logger)
}
