package handler

import (
	"net/http"

	"mural/internal/contract"
	"mural/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type CommentService interface {
	AddComment(suggestionID string, req *contract.CommentRequest) (*contract.CommentResponse, apierror.ErrorResponse)
	ListComments(suggestionID string) ([]*contract.CommentResponse, apierror.ErrorResponse)
}

type DefaultCommentRoute struct {
	CommentService CommentService
}

func NewCommentDefault(commentService CommentService) *DefaultCommentRoute {
	return &DefaultCommentRoute{CommentService: commentService}
}

func (r *DefaultCommentRoute) GetComments(c echo.Context) error {
	comments, apierr := r.CommentService.ListComments(c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"comments": comments}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultCommentRoute) CreateComment(c echo.Context) error {
	var req contract.CommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	comment, apierr := r.CommentService.AddComment(c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, comment)
}
