package handler

import (
	"net/http"

	"salestrack/internal/apierror"
	"salestrack/internal/dto"
	"salestrack/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportsHandler exposes the stats and analytics endpoints for dashboards.
type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// bindPeriod binds and validates the ?period= query parameter.
func bindPeriod(c *gin.Context) (string, bool) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return "", false
	}
	if err := validate.Struct(q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid period. Expected one of: week, month, quarter, year"))
		return "", false
	}
	return q.Period, true
}

func bindRange(c *gin.Context) (dto.RangeFilter, bool) {
	var filter dto.RangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return filter, false
	}
	return filter, true
}

func (h *ReportsHandler) SalesStats(c *gin.Context) {
	period, ok := bindPeriod(c)
	if !ok {
		return
	}
	resp, err := h.svc.SalesStats(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) SalesAnalytics(c *gin.Context) {
	filter, ok := bindRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.SalesAnalytics(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) ProductCount(c *gin.Context) {
	resp, err := h.svc.ProductCount(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) ProductGrowth(c *gin.Context) {
	period, ok := bindPeriod(c)
	if !ok {
		return
	}
	resp, err := h.svc.ProductGrowth(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) ExpenseStats(c *gin.Context) {
	period, ok := bindPeriod(c)
	if !ok {
		return
	}
	resp, err := h.svc.ExpenseStats(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) ExpenseAnalytics(c *gin.Context) {
	filter, ok := bindRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.ExpenseAnalytics(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) ExpenseTotal(c *gin.Context) {
	filter, ok := bindRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.ExpenseTotal(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
