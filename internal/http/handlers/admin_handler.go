// Admin HTTP handlers.
//
// This file exposes maintenance endpoints over the local submitted-contacts
// collection:
//   - GET    /admin/contacts  (list, paginated)
//   - DELETE /admin/contacts  (wipe the local collection)
//
// These endpoints operate on the local collection only; the remote contact
// store is never touched from here.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-leads-backend/internal/domain"
	"github.com/tbourn/go-leads-backend/internal/repo"
	"github.com/tbourn/go-leads-backend/internal/utils"
)

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListContactsResponse wraps a page of submitted contacts and pagination
// information.
type ListContactsResponse struct {
	Contacts   []domain.SubmittedContact `json:"contacts"`
	Pagination Pagination                `json:"pagination"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// ListContacts godoc
// @ID          listContacts
// @Summary     List locally recorded contacts
// @Description Returns a page of the local submitted-contacts collection, most recent first.
// @Tags        Admin
// @Produce     json
//
// @Param       page       query  int  false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListContactsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/contacts [get]
func (h *Handlers) ListContacts(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	total, err := repo.CountSubmittedContacts(ctx, h.db)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	items, err := repo.ListSubmittedContactsPage(ctx, h.db, (page-1)*pageSize, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListContactsResponse{
		Contacts: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// ClearContacts godoc
// @ID          clearContacts
// @Summary     Wipe the local contact collection
// @Description Removes every locally recorded contact. The remote collection is unaffected; duplicates known remotely are still caught.
// @Tags        Admin
// @Produce     json
//
// @Success     204  {string}  string  "No Content"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/contacts [delete]
func (h *Handlers) ClearContacts(c *gin.Context) {
	if err := h.dupSvc.ClearLocal(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeClearFailed, err.Error())
		return
	}
	noContent(c)
}
