package admin

import (
	"strconv"
	"strings"

	"github.com/parcel-next/internal/http/response"
	"github.com/parcel-next/internal/models"
	"github.com/parcel-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// AdminListContactMessages 管理端联系留言列表
func (h *Handler) AdminListContactMessages(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	status := strings.TrimSpace(c.Query("status"))
	email := strings.TrimSpace(c.Query("email"))

	messages, total, err := h.ContactService.ListMessages(repository.ContactMessageListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   models.ContactMessageStatus(status),
		Email:    email,
	})
	if err != nil {
		respondError(c, err, "Failed to fetch messages.")
		return
	}

	pagination := response.Pagination{
		Page:      page,
		Limit:     pageSize,
		Total:     total,
		TotalPage: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
	response.SuccessWithPage(c, messages, pagination)
}

// AdminResolveContactMessage 标记留言已处理
func (h *Handler) AdminResolveContactMessage(c *gin.Context) {
	messageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || messageID == 0 {
		response.BadRequest(c, "Invalid message id.")
		return
	}

	message, err := h.ContactService.ResolveMessage(uint(messageID))
	if err != nil {
		respondError(c, err, "Failed to resolve message.")
		return
	}
	response.SuccessWithMsg(c, "message resolved", message)
}
