package public

import (
	"github.com/parcel-next/internal/http/response"
	"github.com/parcel-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactRequest 联系留言请求
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// SubmitContactMessage 提交联系留言
func (h *Handler) SubmitContactMessage(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, "Invalid contact payload.", err)
		return
	}

	message, err := h.ContactService.SubmitMessage(service.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		respondError(c, err, "Failed to submit message.")
		return
	}

	response.SuccessWithMsg(c, "message received", message)
}
