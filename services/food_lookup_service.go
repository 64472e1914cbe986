package services

import (
	"strings"

	"github.com/badinlee/sister-fitness/config"
	"github.com/badinlee/sister-fitness/models"
	"github.com/badinlee/sister-fitness/utils"
)

// CalorieEstimator is what the lookup falls back to when the local
// reference table has no match. Satisfied by *CoachService.
type CalorieEstimator interface {
	EstimateCalories(description string) CalorieEstimate
}

// FoodLookupResult carries where the number came from so the client can
// caption it ("from our table" vs "AI guess").
type FoodLookupResult struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	Serving  string `json:"serving,omitempty"`
	Source   string `json:"source"` // "local" | "ai" | "unknown"
}

type FoodLookupService struct {
	estimator CalorieEstimator
}

func NewFoodLookupService(estimator CalorieEstimator) *FoodLookupService {
	return &FoodLookupService{estimator: estimator}
}

// Lookup resolves a food description to calories: reference table first,
// generative fallback second. The fallback never errors out; it degrades
// to the unknown sentinel.
func (s *FoodLookupService) Lookup(query string) FoodLookupResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return FoodLookupResult{Name: UnknownFood, Source: "unknown"}
	}

	var ref models.FoodRef
	err := config.DB.
		Where("name LIKE ?", "%"+q+"%").
		Order("length(name) ASC"). // shortest match is the most specific serving
		First(&ref).Error
	if err == nil {
		return FoodLookupResult{
			Name:     ref.Name,
			Calories: ref.Calories,
			Serving:  ref.Serving,
			Source:   "local",
		}
	}

	if s.estimator == nil {
		return FoodLookupResult{Name: UnknownFood, Source: "unknown"}
	}
	est := s.estimator.EstimateCalories(query)
	if !est.Known {
		utils.Log.Warnf("food lookup found nothing for %q", query)
		return FoodLookupResult{Name: UnknownFood, Source: "unknown"}
	}
	return FoodLookupResult{Name: est.Name, Calories: est.Calories, Source: "ai"}
}
