package service

import (
	"context"
	"strings"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/fakhrymubarak/weather-dashboard/internal/repository"
	"go.uber.org/zap"
)

// FavoritesReader answers membership queries against the favorites set.
type FavoritesReader interface {
	Contains(city string) bool
}

// SuggestionServiceInterface is the Location Suggestion Adapter as seen by the dashboard.
type SuggestionServiceInterface interface {
	Suggest(ctx context.Context, partial string) []model.SuggestionEntry
}

type SuggestionService struct {
	Repo      repository.SuggestionRepository
	Favorites FavoritesReader
	Logger    *zap.SugaredLogger
}

func NewSuggestionService(favorites FavoritesReader, repo ...repository.SuggestionRepository) *SuggestionService {
	var r repository.SuggestionRepository
	if len(repo) > 0 && repo[0] != nil {
		r = repo[0]
	} else {
		r = repository.NewSuggestionRepository()
	}
	return &SuggestionService{
		Repo:      r,
		Favorites: favorites,
		Logger:    config.GetLogger(),
	}
}

// Suggest never fails: autocomplete is a convenience, so provider errors are
// logged and yield an empty list. IsFavorite reflects the favorites set right now.
func (s *SuggestionService) Suggest(ctx context.Context, partial string) []model.SuggestionEntry {
	if strings.TrimSpace(partial) == "" {
		return []model.SuggestionEntry{}
	}

	places, err := s.Repo.Search(ctx, partial)
	if err != nil {
		if ctx.Err() == nil {
			s.logger().Warnw("Suggestion lookup failed", "query", partial, "error", err)
		}
		return []model.SuggestionEntry{}
	}

	out := make([]model.SuggestionEntry, 0, len(places))
	for _, p := range places {
		if len(out) == repository.MaxSuggestions {
			break
		}
		out = append(out, model.SuggestionEntry{
			CityName:   p.CityName,
			IsFavorite: s.isFavorite(p.CityName),
			Latitude:   p.Latitude,
			Longitude:  p.Longitude,
		})
	}
	return out
}

func (s *SuggestionService) isFavorite(city string) bool {
	return s.Favorites != nil && s.Favorites.Contains(city)
}

func (s *SuggestionService) logger() *zap.SugaredLogger {
	if s.Logger == nil {
		return config.GetLogger()
	}
	return s.Logger
}
