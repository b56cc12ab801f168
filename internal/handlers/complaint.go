package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hostelops/complaints/internal/errs"
	"github.com/hostelops/complaints/internal/service"
	"github.com/hostelops/complaints/internal/transport"
	"github.com/hostelops/complaints/pkg/logging"
)

type ComplaintHandler struct {
	Service *service.ComplaintService
}

func NewComplaintHandler(svc *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{Service: svc}
}

func (h *ComplaintHandler) Create(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return err
	}

	// a malformed body still goes through the service so the role check runs first
	var req transport.CreateComplaintRequest
	bindErr := c.Bind(&req)
	if bindErr != nil {
		req = transport.CreateComplaintRequest{}
	}

	complaint, err := h.Service.Create(c.Request().Context(), who, req)
	if err != nil {
		if bindErr != nil && errors.Is(err, errs.ErrValidation) {
			err = errs.Validation("invalid request body")
		}
		logging.FromContext(c.Request().Context()).Warn("create_complaint_rejected", "status", errs.HTTPStatus(err), "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message":   "Complaint submitted successfully",
		"complaint": transport.NewComplaintResponse(complaint),
	})
}

func (h *ComplaintHandler) List(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return err
	}

	q := transport.ListComplaintsQuery{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
	}
	complaints, err := h.Service.List(c.Request().Context(), who, q)
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("list_complaints_failed", "status", errs.HTTPStatus(err), "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"complaints": transport.NewComplaintList(complaints),
	})
}

func (h *ComplaintHandler) UpdateStatus(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return err
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return httpError(errs.Validation("invalid request body"))
	}

	complaint, err := h.Service.UpdateStatus(c.Request().Context(), who, c.Param("id"), req)
	if err != nil {
		logging.FromContext(c.Request().Context()).Warn("update_status_rejected", "status", errs.HTTPStatus(err), "complaint_id", c.Param("id"), "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":   "Complaint updated successfully",
		"complaint": transport.NewComplaintResponse(complaint),
	})
}

func (h *ComplaintHandler) Search(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return err
	}

	var q transport.SearchComplaintsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return httpError(errs.Validation("page and size must be integers"))
	}

	complaints, err := h.Service.Search(c.Request().Context(), who, q)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"complaints": transport.NewComplaintList(complaints),
	})
}
