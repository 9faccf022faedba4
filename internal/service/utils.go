package service

import (
	"errors"
	"mural/internal/contract"
	"mural/internal/domain/entity"
	"mural/internal/utils"
	"mural/internal/utils/apierror"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

const maxReadAttempts = 3

// fetchWithRetry retries read-only storage calls a bounded number of
// times. Writes never go through here: retrying a write without
// re-checking state risks duplicate side effects.
func fetchWithRetry[T any](what string, fetch func() (T, error)) (T, error) {
	var result T
	var err error
	for attempt := 1; attempt <= maxReadAttempts; attempt++ {
		result, err = fetch()
		if err == nil {
			return result, nil
		}
		log.Warnf("read of %s failed (attempt %d/%d): %v", what, attempt, maxReadAttempts, err)
	}
	return result, err
}

// mapStoreError is the translation boundary from storage error kinds
// to caller-facing outcomes.
func mapStoreError(op string, err error) apierror.ErrorResponse {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apierror.NotFoundError
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apierror.VoteConflictError
	default:
		log.Errorf("failed to %s: %v", op, err)
		return apierror.StoreUnavailableError
	}
}

func toSuggestionResponse(suggestion *entity.Suggestion, hasVoted bool) *contract.SuggestionResponse {
	return &contract.SuggestionResponse{
		ID:            suggestion.ID,
		Title:         suggestion.Title,
		Description:   suggestion.Description,
		Module:        suggestion.Module,
		Email:         suggestion.Email,
		YoutubeURL:    suggestion.YoutubeURL,
		IsPublic:      suggestion.IsPublic,
		Status:        entity.LabelFor(suggestion.Status),
		Votes:         suggestion.Votes,
		HasVoted:      hasVoted,
		CommentsCount: suggestion.CommentsCount,
		AdminResponse: suggestion.AdminResponse,
		IsPinned:      suggestion.IsPinned,
		CreatedAt:     utils.FormatEpoch(suggestion.CreatedAt),
		UpdatedAt:     utils.FormatEpoch(suggestion.UpdatedAt),
	}
}
