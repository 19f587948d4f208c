package service

import (
	"net/mail"
	"strings"

	"github.com/parcel-next/internal/http/response"
	"github.com/parcel-next/internal/models"
	"github.com/parcel-next/internal/repository"
)

// ContactService 联系留言服务
type ContactService struct {
	contactRepo repository.ContactMessageRepository
}

// NewContactService 创建联系留言服务实例
func NewContactService(contactRepo repository.ContactMessageRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// SubmitContactInput 提交留言输入
type SubmitContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// SubmitMessage 提交联系留言
func (s *ContactService) SubmitMessage(input SubmitContactInput) (*models.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	body := strings.TrimSpace(input.Message)
	if name == "" || email == "" || body == "" {
		return nil, response.WrapError(response.CodeBadRequest, "Name, email and message are required.", ErrParcelInputInvalid)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, response.WrapError(response.CodeBadRequest, "Invalid email address.", ErrInvalidEmail)
	}

	message := &models.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: strings.TrimSpace(input.Subject),
		Message: body,
		Status:  models.ContactMessagePending,
	}
	if err := s.contactRepo.Create(message); err != nil {
		return nil, err
	}
	return message, nil
}

// ListMessages 管理端留言列表
func (s *ContactService) ListMessages(filter repository.ContactMessageListFilter) ([]models.ContactMessage, int64, error) {
	return s.contactRepo.List(filter)
}

// ResolveMessage 标记留言已处理
func (s *ContactService) ResolveMessage(messageID uint) (*models.ContactMessage, error) {
	message, err := s.contactRepo.GetByID(messageID)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, notFoundError("Message not found", ErrContactMessageNotFound)
	}
	if err := s.contactRepo.UpdateStatus(message.ID, models.ContactMessageResolved); err != nil {
		return nil, err
	}
	return s.contactRepo.GetByID(message.ID)
}
