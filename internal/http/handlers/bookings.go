package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"carwash/internal/domain"
	"carwash/internal/domain/models"
	"carwash/internal/repositories"
	"carwash/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type BookingHandler struct {
	Service  services.BookingService
	Receipts services.ReceiptService
	Exports  services.ExportService
	Log      zerolog.Logger
}

// parsePositiveInt falls back to def for missing, unparsable, or non-positive
// values instead of rejecting the request.
func parsePositiveInt(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 {
		return def
	}
	return v
}

func parseListFilter(c *gin.Context) (repositories.ListFilter, error) {
	f := repositories.ListFilter{
		ServiceType: strings.TrimSpace(c.Query("serviceType")),
		CarType:     strings.TrimSpace(c.Query("carType")),
		Status:      strings.TrimSpace(c.Query("status")),
	}

	if s := strings.TrimSpace(c.Query("startDate")); s != "" {
		t, err := models.ParseBookingDate(s)
		if err != nil {
			return f, domain.BadRequestError{Msg: "Invalid startDate: expected YYYY-MM-DD"}
		}
		f.StartDate = &t
	}
	if s := strings.TrimSpace(c.Query("endDate")); s != "" {
		t, err := models.ParseBookingDate(s)
		if err != nil {
			return f, domain.BadRequestError{Msg: "Invalid endDate: expected YYYY-MM-DD"}
		}
		f.EndDate = &t
	}

	return f, nil
}

// GET /api/bookings?page&limit&serviceType&carType&status&startDate&endDate&sortBy&sortOrder
func (h BookingHandler) List(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	page := parsePositiveInt(c.Query("page"), defaultPage)
	limit := parsePositiveInt(c.Query("limit"), defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}

	sortBy := strings.TrimSpace(c.DefaultQuery("sortBy", "date"))
	column, ok := repositories.SortColumns[sortBy]
	if !ok {
		RespondError(c, http.StatusBadRequest, "Invalid sortBy field: "+sortBy)
		return
	}

	opts := repositories.ListOptions{
		SortColumn: column,
		Desc:       c.DefaultQuery("sortOrder", "desc") != "asc",
		Offset:     (page - 1) * limit,
		Limit:      limit,
	}

	data, total, err := h.Service.List(c.Request.Context(), filter, opts)
	if err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"count":      len(data),
		"total":      total,
		"page":       page,
		"totalPages": totalPages,
		"data":       data,
	})
}

// GET /api/bookings/search?query=
func (h BookingHandler) Search(c *gin.Context) {
	data, err := h.Service.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(data),
		"data":    data,
	})
}

// bookingID treats a malformed identifier the same as an unknown one.
func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		RespondError(c, http.StatusNotFound, "Booking not found")
		return 0, false
	}
	return id, true
}

// GET /api/bookings/:id
func (h BookingHandler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": b})
}

// POST /api/bookings
func (h BookingHandler) Create(c *gin.Context) {
	var in models.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.Service.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking created successfully",
		"data":    b,
	})
}

// PUT /api/bookings/:id
func (h BookingHandler) Update(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var in models.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.Service.Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking updated successfully",
		"data":    b,
	})
}

// DELETE /api/bookings/:id
func (h BookingHandler) Delete(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking deleted successfully",
		"data":    gin.H{"id": id},
	})
}

// GET /api/bookings/:id/receipt
func (h BookingHandler) Receipt(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	pdf, filename, err := h.Receipts.Generate(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/bookings/export — honors the same filter parameters as List.
func (h BookingHandler) Export(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	xlsx, filename, err := h.Exports.Export(c.Request.Context(), filter)
	if err != nil {
		RespondDomainError(c, h.Log, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", xlsx)
}
