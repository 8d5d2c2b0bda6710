package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/litnotes/litnotes/internal/domain"
	domainerrors "github.com/litnotes/litnotes/internal/errors"
	"github.com/litnotes/litnotes/internal/views"
)

func (s *Server) registerPreferenceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getPreferences",
		Method:      http.MethodGet,
		Path:        "/api/v1/preferences",
		Summary:     "Get preferences",
		Description: "Returns the reader's preferences",
		Tags:        []string{"Preferences"},
	}, s.handleGetPreferences)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePreferences",
		Method:      http.MethodPut,
		Path:        "/api/v1/preferences",
		Summary:     "Update preferences",
		Description: "Replaces the reader's preferences",
		Tags:        []string{"Preferences"},
	}, s.handleUpdatePreferences)

	huma.Register(s.api, huma.Operation{
		OperationID: "getReadingGoal",
		Method:      http.MethodGet,
		Path:        "/api/v1/goal",
		Summary:     "Reading goal progress",
		Description: "Returns finished books counted against the reading goal",
		Tags:        []string{"Preferences"},
	}, s.handleGetGoal)

	huma.Register(s.api, huma.Operation{
		OperationID: "getOnboarding",
		Method:      http.MethodGet,
		Path:        "/api/v1/onboarding",
		Summary:     "Get onboarding state",
		Description: "Reports whether the first-run flow has been completed",
		Tags:        []string{"Onboarding"},
	}, s.handleGetOnboarding)

	huma.Register(s.api, huma.Operation{
		OperationID: "setOnboarding",
		Method:      http.MethodPut,
		Path:        "/api/v1/onboarding",
		Summary:     "Set onboarding state",
		Description: "Marks the first-run flow as completed or pending",
		Tags:        []string{"Onboarding"},
	}, s.handleSetOnboarding)

	huma.Register(s.api, huma.Operation{
		OperationID: "resetLibrary",
		Method:      http.MethodPost,
		Path:        "/api/v1/reset",
		Summary:     "Reset all data",
		Description: "Restores the sample books, removes every note, restores default preferences, and clears onboarding",
		Tags:        []string{"Preferences"},
	}, s.handleReset)
}

// === DTOs ===

// PreferencesResponse contains preference data in API responses.
type PreferencesResponse struct {
	FavoriteGenres       []string `json:"favorite_genres" doc:"Favorite genres"`
	ReadingGoal          int      `json:"reading_goal" doc:"Books to finish this year"`
	IsDarkMode           bool     `json:"is_dark_mode" doc:"Dark theme enabled"`
	NotificationsEnabled bool     `json:"notifications_enabled" doc:"Notifications enabled"`
}

// PreferencesOutput wraps the preferences response for Huma.
type PreferencesOutput struct {
	Body PreferencesResponse
}

// PreferencesRequest is the request body for replacing preferences.
type PreferencesRequest struct {
	FavoriteGenres       []string `json:"favorite_genres,omitempty" validate:"max=50,dive,required,max=100" doc:"Favorite genres"`
	ReadingGoal          int      `json:"reading_goal" validate:"gte=0,lte=1000" doc:"Books to finish this year"`
	IsDarkMode           bool     `json:"is_dark_mode" doc:"Dark theme enabled"`
	NotificationsEnabled bool     `json:"notifications_enabled" doc:"Notifications enabled"`
}

// UpdatePreferencesInput wraps the preferences request for Huma.
type UpdatePreferencesInput struct {
	Body PreferencesRequest
}

// GoalOutput wraps the reading goal response for Huma.
type GoalOutput struct {
	Body views.Goal
}

// OnboardingBody carries the first-run flag.
type OnboardingBody struct {
	Completed bool `json:"completed" doc:"Whether onboarding has been completed"`
}

// OnboardingOutput wraps the onboarding response for Huma.
type OnboardingOutput struct {
	Body OnboardingBody
}

// SetOnboardingInput wraps the onboarding request for Huma.
type SetOnboardingInput struct {
	Body OnboardingBody
}

// ResetResponse summarizes the state after a reset.
type ResetResponse struct {
	Books int `json:"books" doc:"Number of books after the reset"`
	Notes int `json:"notes" doc:"Number of notes after the reset"`
}

// ResetOutput wraps the reset response for Huma.
type ResetOutput struct {
	Body ResetResponse
}

// === Handlers ===

func (s *Server) handleGetPreferences(_ context.Context, _ *struct{}) (*PreferencesOutput, error) {
	return &PreferencesOutput{Body: toPreferencesResponse(s.library.Preferences())}, nil
}

func (s *Server) handleUpdatePreferences(ctx context.Context, input *UpdatePreferencesInput) (*PreferencesOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	s.library.UpdatePreferences(ctx, domain.UserPreferences{
		FavoriteGenres:       input.Body.FavoriteGenres,
		ReadingGoal:          input.Body.ReadingGoal,
		IsDarkMode:           input.Body.IsDarkMode,
		NotificationsEnabled: input.Body.NotificationsEnabled,
	})

	return &PreferencesOutput{Body: toPreferencesResponse(s.library.Preferences())}, nil
}

func (s *Server) handleGetGoal(_ context.Context, _ *struct{}) (*GoalOutput, error) {
	snap := s.library.Snapshot()
	return &GoalOutput{Body: views.GoalProgress(snap.Books, snap.Preferences)}, nil
}

func (s *Server) handleGetOnboarding(ctx context.Context, _ *struct{}) (*OnboardingOutput, error) {
	return &OnboardingOutput{Body: OnboardingBody{Completed: s.onboarding.Completed(ctx)}}, nil
}

func (s *Server) handleSetOnboarding(ctx context.Context, input *SetOnboardingInput) (*OnboardingOutput, error) {
	if err := s.onboarding.SetCompleted(ctx, input.Body.Completed); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to save onboarding state")
	}
	return &OnboardingOutput{Body: input.Body}, nil
}

func (s *Server) handleReset(ctx context.Context, _ *struct{}) (*ResetOutput, error) {
	s.library.ResetAll(ctx)

	if err := s.onboarding.SetCompleted(ctx, false); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to clear onboarding state")
	}

	s.logger.Info("library reset")

	snap := s.library.Snapshot()
	return &ResetOutput{
		Body: ResetResponse{
			Books: len(snap.Books),
			Notes: len(snap.Notes),
		},
	}, nil
}

func toPreferencesResponse(p domain.UserPreferences) PreferencesResponse {
	genres := p.FavoriteGenres
	if genres == nil {
		genres = []string{}
	}
	return PreferencesResponse{
		FavoriteGenres:       genres,
		ReadingGoal:          p.ReadingGoal,
		IsDarkMode:           p.IsDarkMode,
		NotificationsEnabled: p.NotificationsEnabled,
	}
}
