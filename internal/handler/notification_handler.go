package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tilmock/cefr-backend/internal/model"
	"github.com/tilmock/cefr-backend/internal/response"
	"github.com/tilmock/cefr-backend/internal/service"
	"github.com/tilmock/cefr-backend/internal/validator"
)

// NotificationHandler exposes the platform notice feed.
type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List godoc
// GET /api/v1/notifications?page=1&limit=20
func (h *NotificationHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	notifs, total, err := h.notificationService.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	totalPages := (total + limit - 1) / limit

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"notifications": notifs}, &response.Pagination{
		Page:       page,
		PerPage:    limit,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// Create godoc
// POST /api/v1/notifications (admin)
func (h *NotificationHandler) Create(c *gin.Context) {
	var req model.CreateNotificationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	n, err := h.notificationService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"notification": n})
}
