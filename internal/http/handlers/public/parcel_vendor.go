package public

import (
	"github.com/parcel-next/internal/http/response"
	"github.com/parcel-next/internal/models"
	"github.com/parcel-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateParcelRequest 创建包裹请求
type CreateParcelRequest struct {
	ReceiverID      uint    `json:"receiver_id" binding:"required"`
	PickupAddress   string  `json:"pickup_address" binding:"required"`
	DeliveryAddress string  `json:"delivery_address" binding:"required"`
	ContactNumber   string  `json:"contact_number"`
	Weight          float64 `json:"weight" binding:"required,gt=0"`
	ParcelType      string  `json:"parcel_type" binding:"required"`
	Description     string  `json:"description"`
}

// CreateParcel 寄件人创建包裹
func (h *Handler) CreateParcel(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	role, ok := getUserRole(c)
	if !ok {
		return
	}

	var req CreateParcelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, "Invalid parcel payload.", err)
		return
	}

	parcel, err := h.VendorService.CreateParcel(service.CreateParcelInput{
		SenderID:        userID,
		ReceiverID:      req.ReceiverID,
		PickupAddress:   req.PickupAddress,
		DeliveryAddress: req.DeliveryAddress,
		ContactNumber:   req.ContactNumber,
		Weight:          req.Weight,
		ParcelType:      models.ParcelType(req.ParcelType),
		Description:     req.Description,
	}, role)
	if err != nil {
		respondError(c, err, "Failed to create parcel.")
		return
	}

	response.SuccessWithMsg(c, "parcel created", parcel)
}

// CancelParcel 寄件人取消自己的包裹
func (h *Handler) CancelParcel(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	parcelID, ok := parseParcelID(c)
	if !ok {
		return
	}

	parcel, err := h.VendorService.CancelParcel(parcelID, userID)
	if err != nil {
		respondError(c, err, "Failed to cancel parcel.")
		return
	}

	response.SuccessWithMsg(c, "parcel cancelled", parcel)
}

// AcceptReturnParcel 寄件人受理收件人发起的退回
func (h *Handler) AcceptReturnParcel(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	parcelID, ok := parseParcelID(c)
	if !ok {
		return
	}

	parcel, err := h.VendorService.AcceptReturnParcel(parcelID, userID)
	if err != nil {
		respondError(c, err, "Failed to accept return.")
		return
	}

	response.SuccessWithMsg(c, "return accepted", parcel)
}
