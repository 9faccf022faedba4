package handler

import (
	"net/http"

	"mural/internal/contract"
	"mural/internal/utils"
	"mural/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// UpdateStatus is the staff authority path: any of the five states can
// be set from any other, optionally with an admin response.
func (s *DefaultSuggestionRoute) UpdateStatus(c echo.Context) error {
	staffEmail, cerr := utils.GetStaffEmail(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	suggestion, apierr := s.BoardService.SetStatus(c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	log.Infof("staff %s set suggestion %s to '%s'", staffEmail, suggestion.ID, suggestion.Status)
	return c.JSON(http.StatusOK, suggestion)
}

func (s *DefaultSuggestionRoute) UpdatePin(c echo.Context) error {
	staffEmail, cerr := utils.GetStaffEmail(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.PinUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	suggestion, apierr := s.BoardService.SetPinned(c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	log.Infof("staff %s set suggestion %s pinned=%v", staffEmail, suggestion.ID, suggestion.IsPinned)
	return c.JSON(http.StatusOK, suggestion)
}
