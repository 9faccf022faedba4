package service

import (
	"mural/internal/contract"
	"mural/internal/domain/entity"
	"mural/internal/domain/policy"
	"mural/internal/ranking"
	"mural/internal/utils"
	"mural/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type SuggestionRepository interface {
	FindAll(includePrivate bool) ([]*entity.Suggestion, error)
	FindByID(id string) (*entity.Suggestion, error)
	Save(suggestion *entity.Suggestion) error
	UpdateFields(id string, fields map[string]any) error
}

type VoteRepository interface {
	Toggle(suggestionID, voterEmail string) (voted bool, newCount int, err error)
	VotedSuggestionIDs(voterEmail string) (map[string]bool, error)
}

// DefaultBoardService orchestrates the suggestion store, the vote
// ledger and the ranking engine behind the public board operations.
type DefaultBoardService struct {
	SuggestionRepo SuggestionRepository
	VoteRepo       VoteRepository
	Visibility     *policy.VisibilityPolicy
	Validate       *validator.Validate
}

func NewBoardService(
	suggestionRepo SuggestionRepository,
	voteRepo VoteRepository,
	visibility *policy.VisibilityPolicy,
	validate *validator.Validate,
) *DefaultBoardService {
	return &DefaultBoardService{
		SuggestionRepo: suggestionRepo,
		VoteRepo:       voteRepo,
		Visibility:     visibility,
		Validate:       validate,
	}
}

func (b *DefaultBoardService) SubmitSuggestion(req *contract.SuggestionRequest) (*contract.SuggestionResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := b.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	now := utils.NowUTC()
	suggestion := &entity.Suggestion{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Module:      req.Module,
		Email:       req.Email,
		YoutubeURL:  req.YoutubeURL,
		IsPublic:    b.Visibility.ComputeVisibility(req.Email, req.IsPublic),
		Status:      entity.StatusReceived,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := b.SuggestionRepo.Save(suggestion); err != nil {
		log.Errorf("failed to save suggestion: %v", err)
		return nil, apierror.StoreUnavailableError
	}
	return toSuggestionResponse(suggestion, false), nil
}

// GetBoard returns the ranked, filtered view of a snapshot of the
// board. Ranking runs over the in-memory snapshot, after storage has
// been released. When voterEmail is set, each entry carries whether
// that voter has a ledger row for it.
func (b *DefaultBoardService) GetBoard(query ranking.Query, voterEmail string, includePrivate bool) ([]*contract.SuggestionResponse, apierror.ErrorResponse) {
	suggestions, err := fetchWithRetry("suggestions", func() ([]*entity.Suggestion, error) {
		return b.SuggestionRepo.FindAll(includePrivate)
	})
	if err != nil {
		return nil, apierror.StoreUnavailableError
	}

	voted := map[string]bool{}
	if voterEmail != "" {
		voted, err = fetchWithRetry("voter ledger", func() (map[string]bool, error) {
			return b.VoteRepo.VotedSuggestionIDs(voterEmail)
		})
		if err != nil {
			return nil, apierror.StoreUnavailableError
		}
	}

	ranked := ranking.Rank(suggestions, query)

	resp := make([]*contract.SuggestionResponse, len(ranked))
	for i, suggestion := range ranked {
		resp[i] = toSuggestionResponse(suggestion, voted[suggestion.ID])
	}
	return resp, nil
}

func (b *DefaultBoardService) GetSuggestion(id string) (*contract.SuggestionResponse, apierror.ErrorResponse) {
	suggestion, err := fetchWithRetry("suggestion", func() (*entity.Suggestion, error) {
		return b.SuggestionRepo.FindByID(id)
	})
	if err != nil {
		return nil, apierror.StoreUnavailableError
	}

	if suggestion == nil {
		return nil, apierror.NotFoundError
	}
	return toSuggestionResponse(suggestion, false), nil
}

func (b *DefaultBoardService) ToggleVote(suggestionID string, req *contract.VoteRequest) (*contract.VoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := b.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	voted, newCount, err := b.VoteRepo.Toggle(suggestionID, req.Email)
	if err != nil {
		return nil, mapStoreError("toggle vote", err)
	}

	return &contract.VoteResponse{
		SuggestionID: suggestionID,
		Voted:        voted,
		Votes:        newCount,
	}, nil
}

// SetStatus moves a suggestion to any of the five states; the workflow
// is staff-directed, so no transition is illegal. Conflicting staff
// edits resolve last-writer-wins.
func (b *DefaultBoardService) SetStatus(suggestionID string, req *contract.StatusUpdateRequest) (*contract.SuggestionResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := b.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	status, ok := entity.StatusFromLabel(req.Status)
	if !ok {
		return nil, apierror.NewUnknownStatusError(req.Status)
	}

	suggestion, apierr := b.findForUpdate(suggestionID)
	if apierr != nil {
		return nil, apierr
	}

	suggestion.Status = status
	if req.AdminResponse != nil {
		suggestion.AdminResponse = *req.AdminResponse
	}
	suggestion.UpdatedAt = utils.NowUTC()

	// Column-scoped on purpose: a full-row Save from this snapshot
	// would overwrite counters a concurrent vote or comment just moved.
	fields := map[string]any{
		"status":     suggestion.Status,
		"updated_at": suggestion.UpdatedAt,
	}
	if req.AdminResponse != nil {
		fields["admin_response"] = suggestion.AdminResponse
	}

	if err := b.SuggestionRepo.UpdateFields(suggestionID, fields); err != nil {
		return nil, mapStoreError("update suggestion status", err)
	}
	return toSuggestionResponse(suggestion, false), nil
}

func (b *DefaultBoardService) SetPinned(suggestionID string, req *contract.PinUpdateRequest) (*contract.SuggestionResponse, apierror.ErrorResponse) {
	if valerr := b.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	suggestion, apierr := b.findForUpdate(suggestionID)
	if apierr != nil {
		return nil, apierr
	}

	suggestion.IsPinned = *req.Pinned
	suggestion.UpdatedAt = utils.NowUTC()

	err := b.SuggestionRepo.UpdateFields(suggestionID, map[string]any{
		"is_pinned":  suggestion.IsPinned,
		"updated_at": suggestion.UpdatedAt,
	})
	if err != nil {
		return nil, mapStoreError("update suggestion pin", err)
	}
	return toSuggestionResponse(suggestion, false), nil
}

func (b *DefaultBoardService) findForUpdate(suggestionID string) (*entity.Suggestion, apierror.ErrorResponse) {
	suggestion, err := b.SuggestionRepo.FindByID(suggestionID)
	if err != nil {
		log.Errorf("failed to fetch suggestion: %v", err)
		return nil, apierror.StoreUnavailableError
	}

	if suggestion == nil {
		return nil, apierror.NotFoundError
	}
	return suggestion, nil
}
