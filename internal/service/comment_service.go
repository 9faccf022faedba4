package service

import (
	"mural/internal/contract"
	"mural/internal/domain/entity"
	"mural/internal/utils"
	"mural/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CommentRepository interface {
	Append(comment *entity.SuggestionComment) error
	FindBySuggestion(suggestionID string) ([]*entity.SuggestionComment, error)
}

type DefaultCommentService struct {
	CommentRepo CommentRepository
	Validate    *validator.Validate
}

func NewCommentService(commentRepo CommentRepository, validate *validator.Validate) *DefaultCommentService {
	return &DefaultCommentService{
		CommentRepo: commentRepo,
		Validate:    validate,
	}
}

func (s *DefaultCommentService) AddComment(suggestionID string, req *contract.CommentRequest) (*contract.CommentResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	now := utils.NowUTC()
	comment := &entity.SuggestionComment{
		ID:           uuid.NewString(),
		SuggestionID: suggestionID,
		AuthorName:   req.AuthorName,
		AuthorEmail:  req.AuthorEmail,
		Content:      req.Content,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.CommentRepo.Append(comment); err != nil {
		return nil, mapStoreError("append comment", err)
	}
	return toCommentResponse(comment), nil
}

func (s *DefaultCommentService) ListComments(suggestionID string) ([]*contract.CommentResponse, apierror.ErrorResponse) {
	comments, err := fetchWithRetry("comments", func() ([]*entity.SuggestionComment, error) {
		return s.CommentRepo.FindBySuggestion(suggestionID)
	})
	if err != nil {
		return nil, apierror.StoreUnavailableError
	}

	resp := make([]*contract.CommentResponse, len(comments))
	for i, comment := range comments {
		resp[i] = toCommentResponse(comment)
	}
	return resp, nil
}

func toCommentResponse(comment *entity.SuggestionComment) *contract.CommentResponse {
	return &contract.CommentResponse{
		ID:           comment.ID,
		SuggestionID: comment.SuggestionID,
		AuthorName:   comment.AuthorName,
		AuthorEmail:  comment.AuthorEmail,
		Content:      comment.Content,
		CreatedAt:    utils.FormatEpoch(comment.CreatedAt),
	}
}
