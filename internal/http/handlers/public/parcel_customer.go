package public

import (
	"github.com/parcel-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// IncomingParcels 收件人在途包裹列表
func (h *Handler) IncomingParcels(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	parcels, err := h.CustomerService.IncomingParcels(userID)
	if err != nil {
		respondError(c, err, "Failed to fetch incoming parcels.")
		return
	}

	response.Success(c, parcels)
}

// DeliveredParcels 收件人已送达待确认包裹列表
func (h *Handler) DeliveredParcels(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	parcels, err := h.CustomerService.DeliveredParcels(userID)
	if err != nil {
		respondError(c, err, "Failed to fetch delivered parcels.")
		return
	}

	response.Success(c, parcels)
}

// ReceiveParcel 收件人确认签收
func (h *Handler) ReceiveParcel(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	parcelID, ok := parseParcelID(c)
	if !ok {
		return
	}

	parcel, err := h.CustomerService.ReceiveParcel(parcelID, userID)
	if err != nil {
		respondError(c, err, "Failed to confirm delivery.")
		return
	}

	response.SuccessWithMsg(c, "delivery confirmed", parcel)
}

// ReturnParcel 收件人发起退回
func (h *Handler) ReturnParcel(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	parcelID, ok := parseParcelID(c)
	if !ok {
		return
	}

	parcel, err := h.CustomerService.ReturnParcel(parcelID, userID)
	if err != nil {
		respondError(c, err, "Failed to return parcel.")
		return
	}

	response.SuccessWithMsg(c, "parcel returned", parcel)
}
