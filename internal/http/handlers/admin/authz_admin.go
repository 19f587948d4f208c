package admin

import (
	"strconv"
	"strings"

	"github.com/parcel-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

func parseRoleParam(c *gin.Context) (string, bool) {
	role := strings.TrimSpace(c.Param("role"))
	if role == "" {
		response.BadRequest(c, "Role is required.")
		return "", false
	}
	return role, true
}

// AdminListRoles 角色列表
func (h *Handler) AdminListRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, err, "Failed to fetch roles.")
		return
	}
	response.Success(c, roles)
}

// AdminGetRolePolicies 查询角色策略
func (h *Handler) AdminGetRolePolicies(c *gin.Context) {
	role, ok := parseRoleParam(c)
	if !ok {
		return
	}

	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, "Failed to fetch role policies.", err)
		return
	}
	response.Success(c, policies)
}

// AdminRolePolicyRequest 角色策略授予/撤销请求
type AdminRolePolicyRequest struct {
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// AdminGrantRolePolicy 为角色授予策略
func (h *Handler) AdminGrantRolePolicy(c *gin.Context) {
	role, ok := parseRoleParam(c)
	if !ok {
		return
	}

	var req AdminRolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, "Invalid policy payload.", err)
		return
	}

	if err := h.AuthzService.GrantRolePolicy(role, req.Object, req.Action); err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, "Failed to grant policy.", err)
		return
	}
	requestLog(c).Infow("authz_policy_granted", "role", role, "object", req.Object, "action", req.Action)
	response.SuccessWithMsg(c, "policy granted", nil)
}

// AdminRevokeRolePolicy 撤销角色策略
func (h *Handler) AdminRevokeRolePolicy(c *gin.Context) {
	role, ok := parseRoleParam(c)
	if !ok {
		return
	}

	var req AdminRolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, "Invalid policy payload.", err)
		return
	}

	if err := h.AuthzService.RevokeRolePolicy(role, req.Object, req.Action); err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, "Failed to revoke policy.", err)
		return
	}
	requestLog(c).Infow("authz_policy_revoked", "role", role, "object", req.Object, "action", req.Action)
	response.SuccessWithMsg(c, "policy revoked", nil)
}

// AdminDeleteRole 删除自定义角色及其策略，预置角色不可删除
func (h *Handler) AdminDeleteRole(c *gin.Context) {
	role, ok := parseRoleParam(c)
	if !ok {
		return
	}

	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, "Failed to delete role.", err)
		return
	}
	requestLog(c).Infow("authz_role_deleted", "role", role)
	response.SuccessWithMsg(c, "role deleted", nil)
}

// AdminGetUserPolicies 查询用户生效策略（角色 + 直连）
func (h *Handler) AdminGetUserPolicies(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || userID == 0 {
		response.BadRequest(c, "Invalid user id.")
		return
	}

	policies, err := h.AuthzService.GetUserPolicies(uint(userID))
	if err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, "Failed to fetch user policies.", err)
		return
	}
	response.Success(c, policies)
}

// AdminSetUserRolesRequest 用户角色覆盖设置请求
type AdminSetUserRolesRequest struct {
	Roles []string `json:"roles"`
}

// AdminSetUserRoles 覆盖设置用户的授权角色
func (h *Handler) AdminSetUserRoles(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || userID == 0 {
		response.BadRequest(c, "Invalid user id.")
		return
	}

	var req AdminSetUserRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, "Invalid roles payload.", err)
		return
	}

	if err := h.AuthzService.SetUserRoles(uint(userID), req.Roles); err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, "Failed to set user roles.", err)
		return
	}
	requestLog(c).Infow("authz_user_roles_set", "user_id", userID, "roles", req.Roles)
	response.SuccessWithMsg(c, "user roles updated", nil)
}

// AdminReloadPolicy 从存储重新加载策略
func (h *Handler) AdminReloadPolicy(c *gin.Context) {
	if err := h.AuthzService.ReloadPolicy(); err != nil {
		respondError(c, err, "Failed to reload policies.")
		return
	}
	response.SuccessWithMsg(c, "policies reloaded", nil)
}
