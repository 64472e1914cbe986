package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/badinlee/sister-fitness/models"
	"github.com/badinlee/sister-fitness/utils"
)

// UnknownFood is the sentinel returned whenever the generative endpoint
// fails or replies with something that does not parse.
const UnknownFood = "unknown"

// CalorieEstimate is the parsed form of the model's "Name|Calories"
// reply. Known is false for the sentinel.
type CalorieEstimate struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	Known    bool   `json:"known"`
}

type CoachService struct {
	client  *http.Client
	token   string
	model   string
	baseURL string
}

func NewCoachService() *CoachService {
	model := os.Getenv("HUGGINGFACE_MODEL")
	if model == "" {
		model = "google/flan-t5-small"
	}
	return &CoachService{
		client:  &http.Client{Timeout: 15 * time.Second},
		token:   os.Getenv("HUGGINGFACE_TOKEN"),
		model:   model,
		baseURL: "https://api-inference.huggingface.co/models",
	}
}

// generate runs one text-generation call and returns the raw output.
func (s *CoachService) generate(prompt string, maxNewTokens int) (string, error) {
	if s.token == "" {
		return "", fmt.Errorf("HUGGINGFACE_TOKEN not set")
	}

	body := map[string]any{
		"inputs": prompt,
		"parameters": map[string]any{
			"max_new_tokens": maxNewTokens,
			"temperature":    0.2,
		},
	}
	b, _ := json.Marshal(body)

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/%s", s.baseURL, s.model), bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-wait-for-model", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("hf request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read hf response error: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var hfErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBytes, &hfErr) == nil && hfErr.Error != "" {
			return "", fmt.Errorf("hf api error (%d): %s", resp.StatusCode, hfErr.Error)
		}
		return "", fmt.Errorf("hf api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var hfOut []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(respBytes, &hfOut); err != nil {
		return "", fmt.Errorf("decode hf response error: %w", err)
	}
	if len(hfOut) == 0 || strings.TrimSpace(hfOut[0].GeneratedText) == "" {
		return "", fmt.Errorf("empty response from hf")
	}
	return hfOut[0].GeneratedText, nil
}

// EstimateCalories asks the model for a "Name|Calories" line describing
// the food. Never returns an error: any failure degrades to the unknown
// sentinel, shown inline by the client.
func (s *CoachService) EstimateCalories(description string) CalorieEstimate {
	prompt := fmt.Sprintf(
		"Estimate the calories in: %s\nAnswer with exactly one line in the format Name|Calories, e.g. Apple|95.",
		description,
	)
	raw, err := s.generate(prompt, 32)
	if err != nil {
		utils.Log.Warnf("calorie estimate failed for %q: %v", description, err)
		return CalorieEstimate{Name: UnknownFood}
	}
	est := parseEstimate(raw)
	if !est.Known {
		utils.Log.Warnf("unparseable calorie estimate for %q: %q", description, raw)
	}
	return est
}

// parseEstimate picks the first pipe-delimited line out of the model
// output and strips everything non-numeric from the calorie side.
func parseEstimate(raw string) CalorieEstimate {
	for _, line := range strings.Split(raw, "\n") {
		if !strings.Contains(line, "|") {
			continue
		}
		parts := strings.SplitN(line, "|", 2)
		name := strings.TrimSpace(parts[0])
		cals := digitsOnly(parts[1])
		if name == "" || cals == "" {
			break
		}
		var n int
		fmt.Sscanf(cals, "%d", &n)
		if n <= 0 {
			break
		}
		return CalorieEstimate{Name: name, Calories: n, Known: true}
	}
	return CalorieEstimate{Name: UnknownFood}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SuggestRecipes asks for dinner ideas sized to what is left of today's
// budget. The generated text is returned verbatim for the client to show.
func (s *CoachService) SuggestRecipes(entries []models.LogEntry, profile *models.Profile, now time.Time) (string, error) {
	remaining := Remaining(profile.CalorieTarget, TodayTotal(entries, now))

	var sb strings.Builder
	sb.WriteString("Today's meals:\n")
	logged := false
	for _, e := range entries {
		if !sameDay(e.Timestamp, now) || e.Calories <= 0 {
			continue
		}
		logged = true
		sb.WriteString(fmt.Sprintf("- %s (%s): %d kcal\n", e.Notes, e.MealType, e.Calories))
	}
	if !logged {
		sb.WriteString("- (nothing logged yet)\n")
	}
	sb.WriteString(fmt.Sprintf(
		"\nSuggest 2-3 simple recipes for the rest of the day using about %.0f kcal in total. Plain bullet points.",
		remaining,
	))

	return s.generate(sb.String(), 160)
}

// CheckinAdvice is the rule-based coach line shown right after a save.
// Pure; no model call involved.
func CheckinAdvice(profile *models.Profile, weight float64, caloriesEaten int) string {
	var parts []string

	if weight > 0 && profile.GoalWeight > 0 {
		if weight > profile.GoalWeight {
			parts = append(parts, fmt.Sprintf("You are %.1fkg away from your goal.", weight-profile.GoalWeight))
		} else {
			parts = append(parts, "You hit your weight goal! Amazing!")
		}
	}

	if profile.CalorieTarget > 0 {
		limit := int(profile.CalorieTarget)
		if caloriesEaten > limit {
			parts = append(parts, fmt.Sprintf(
				"You went over your calorie limit by %d. Try a lighter dinner tonight.", caloriesEaten-limit))
		} else if caloriesEaten > 0 {
			parts = append(parts, "You are within your calorie budget. Keep it up!")
		}
	}

	return strings.Join(parts, " ")
}
