package service

import (
	"context"
	"strings"

	"github.com/parcel-next/internal/cache"
	"github.com/parcel-next/internal/http/response"
	"github.com/parcel-next/internal/models"
	"github.com/parcel-next/internal/repository"
)

// AdminUserService 管理端用户服务
type AdminUserService struct {
	userRepo repository.UserRepository
}

// NewAdminUserService 创建管理端用户服务实例
func NewAdminUserService(userRepo repository.UserRepository) *AdminUserService {
	return &AdminUserService{userRepo: userRepo}
}

// GetAllUsers 管理端用户列表，仅分页，超级管理员不在结果内
func (s *AdminUserService) GetAllUsers(params map[string]string) ([]models.User, repository.PageMeta, error) {
	return s.userRepo.Query(params)
}

// GetUser 按 ID 获取用户
func (s *AdminUserService) GetUser(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundError("User not found", ErrUserNotFound)
	}
	return user, nil
}

// UpdateUserInput 管理端用户资料更新输入
type UpdateUserInput struct {
	Name       *string
	Phone      *string
	Address    *string
	Picture    *string
	Role       *models.UserRole
	Status     *models.UserStatus
	IsVerified *bool
}

// UpdateUser 更新用户资料与角色
func (s *AdminUserService) UpdateUser(userID uint, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundError("User Not Found", ErrUserNotFound)
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		user.Address = strings.TrimSpace(*input.Address)
	}
	if input.Picture != nil {
		user.Picture = strings.TrimSpace(*input.Picture)
	}
	if input.Role != nil {
		if !input.Role.Valid() || *input.Role == models.RoleSuperAdmin {
			return nil, response.WrapError(response.CodeBadRequest, "Invalid user role.", ErrUserStatusInvalid)
		}
		user.Role = *input.Role
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, response.WrapError(response.CodeBadRequest, "Invalid user status.", ErrUserStatusInvalid)
		}
		user.Status = *input.Status
	}
	if input.IsVerified != nil {
		user.IsVerified = *input.IsVerified
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.DelUserAuthState(context.Background(), user.ID)
	return user, nil
}

// BlockUser 封禁用户，状态从当前值条件切换到 BLOCKED
func (s *AdminUserService) BlockUser(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundError("User Not Found", ErrUserNotFound)
	}
	if user.Status == models.UserStatusBlocked {
		return nil, response.WrapError(response.CodeBadRequest, "User is already blocked.", ErrUserStatusConflict)
	}

	if err := s.userRepo.UpdateStatus(user.ID, user.Status, models.UserStatusBlocked); err != nil {
		if isStaleState(err) {
			return nil, response.WrapError(response.CodeBadRequest, "User was modified by another request. Please retry.", ErrParcelStateStale)
		}
		return nil, err
	}
	_ = cache.DelUserAuthState(context.Background(), user.ID)
	return s.userRepo.GetByID(user.ID)
}

// UnblockUser 解除封禁，状态回到 ACTIVE
func (s *AdminUserService) UnblockUser(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundError("User Not Found", ErrUserNotFound)
	}
	if user.Status != models.UserStatusBlocked {
		return nil, response.WrapError(response.CodeBadRequest, "User is not blocked.", ErrUserStatusConflict)
	}

	if err := s.userRepo.UpdateStatus(user.ID, user.Status, models.UserStatusActive); err != nil {
		if isStaleState(err) {
			return nil, response.WrapError(response.CodeBadRequest, "User was modified by another request. Please retry.", ErrParcelStateStale)
		}
		return nil, err
	}
	_ = cache.DelUserAuthState(context.Background(), user.ID)
	return s.userRepo.GetByID(user.ID)
}

// DeleteUser 硬删除用户
func (s *AdminUserService) DeleteUser(userID uint) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return notFoundError("User not found", ErrUserNotFound)
	}
	if err := s.userRepo.Delete(user.ID); err != nil {
		return err
	}
	_ = cache.DelUserAuthState(context.Background(), user.ID)
	return nil
}
