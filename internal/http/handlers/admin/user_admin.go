package admin

import (
	"strconv"

	"github.com/parcel-next/internal/http/response"
	"github.com/parcel-next/internal/models"
	"github.com/parcel-next/internal/service"

	"github.com/gin-gonic/gin"
)

func parseUserID(c *gin.Context) (uint, bool) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || userID == 0 {
		response.BadRequest(c, "Invalid user id.")
		return 0, false
	}
	return uint(userID), true
}

// AdminListUsers 管理端用户列表，超级管理员不在结果内
func (h *Handler) AdminListUsers(c *gin.Context) {
	users, meta, err := h.AdminUserService.GetAllUsers(queryParams(c))
	if err != nil {
		respondError(c, err, "Failed to fetch users.")
		return
	}
	response.SuccessWithPage(c, users, toPagination(meta))
}

// AdminGetUser 管理端用户详情
func (h *Handler) AdminGetUser(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.AdminUserService.GetUser(userID)
	if err != nil {
		respondError(c, err, "Failed to fetch user.")
		return
	}
	response.Success(c, user)
}

// AdminUpdateUserRequest 管理端用户更新请求
type AdminUpdateUserRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Picture    *string `json:"picture"`
	Role       *string `json:"role"`
	Status     *string `json:"status"`
	IsVerified *bool   `json:"is_verified"`
}

// AdminUpdateUser 管理端更新用户资料与角色
func (h *Handler) AdminUpdateUser(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, "Invalid user payload.", err)
		return
	}

	input := service.UpdateUserInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Address:    req.Address,
		Picture:    req.Picture,
		IsVerified: req.IsVerified,
	}
	if req.Role != nil {
		role := models.UserRole(*req.Role)
		input.Role = &role
	}
	if req.Status != nil {
		status := models.UserStatus(*req.Status)
		input.Status = &status
	}

	user, err := h.AdminUserService.UpdateUser(userID, input)
	if err != nil {
		respondError(c, err, "Failed to update user.")
		return
	}
	response.SuccessWithMsg(c, "user updated", user)
}

// AdminBlockUser 封禁用户
func (h *Handler) AdminBlockUser(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.AdminUserService.BlockUser(userID)
	if err != nil {
		respondError(c, err, "Failed to block user.")
		return
	}
	response.SuccessWithMsg(c, "user blocked", user)
}

// AdminUnblockUser 解除封禁
func (h *Handler) AdminUnblockUser(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.AdminUserService.UnblockUser(userID)
	if err != nil {
		respondError(c, err, "Failed to unblock user.")
		return
	}
	response.SuccessWithMsg(c, "user unblocked", user)
}

// AdminDeleteUser 管理端删除用户
func (h *Handler) AdminDeleteUser(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.AdminUserService.DeleteUser(userID); err != nil {
		respondError(c, err, "Failed to delete user.")
		return
	}
	requestLog(c).Infow("admin_user_deleted", "user_id", userID)
	response.SuccessWithMsg(c, "user deleted", nil)
}
