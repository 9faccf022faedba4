package handler

import (
	"net/http"

	"mural/internal/contract"
	"mural/internal/ranking"
	"mural/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type BoardService interface {
	SubmitSuggestion(req *contract.SuggestionRequest) (*contract.SuggestionResponse, apierror.ErrorResponse)
	GetBoard(query ranking.Query, voterEmail string, includePrivate bool) ([]*contract.SuggestionResponse, apierror.ErrorResponse)
	GetSuggestion(id string) (*contract.SuggestionResponse, apierror.ErrorResponse)
	ToggleVote(suggestionID string, req *contract.VoteRequest) (*contract.VoteResponse, apierror.ErrorResponse)
	SetStatus(suggestionID string, req *contract.StatusUpdateRequest) (*contract.SuggestionResponse, apierror.ErrorResponse)
	SetPinned(suggestionID string, req *contract.PinUpdateRequest) (*contract.SuggestionResponse, apierror.ErrorResponse)
}

type DefaultSuggestionRoute struct {
	BoardService BoardService
}

func NewSuggestionDefault(boardService BoardService) *DefaultSuggestionRoute {
	return &DefaultSuggestionRoute{BoardService: boardService}
}

// GetBoard serves the public board: only is_public suggestions,
// ranked by the requested filter/sort.
func (s *DefaultSuggestionRoute) GetBoard(c echo.Context) error {
	return s.board(c, false)
}

// GetFullBoard sits behind the staff middleware and includes private
// suggestions in the snapshot.
func (s *DefaultSuggestionRoute) GetFullBoard(c echo.Context) error {
	return s.board(c, true)
}

func (s *DefaultSuggestionRoute) board(c echo.Context, includePrivate bool) error {
	query := ranking.Query{
		Search: c.QueryParam("search"),
		Module: c.QueryParam("module"),
		Status: c.QueryParam("status"),
		Sort:   ranking.Sort(c.QueryParam("sort")),
	}
	voterEmail := c.QueryParam("voter")

	suggestions, apierr := s.BoardService.GetBoard(query, voterEmail, includePrivate)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"suggestions": suggestions}
	return c.JSON(http.StatusOK, &resp)
}

func (s *DefaultSuggestionRoute) GetSuggestion(c echo.Context) error {
	suggestion, apierr := s.BoardService.GetSuggestion(c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, suggestion)
}

func (s *DefaultSuggestionRoute) CreateSuggestion(c echo.Context) error {
	var req contract.SuggestionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	suggestion, apierr := s.BoardService.SubmitSuggestion(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, suggestion)
}

func (s *DefaultSuggestionRoute) ToggleVote(c echo.Context) error {
	var req contract.VoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	vote, apierr := s.BoardService.ToggleVote(c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, vote)
}
