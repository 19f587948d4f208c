package public

import (
	"strconv"

	"github.com/parcel-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

func parseParcelID(c *gin.Context) (uint, bool) {
	parcelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || parcelID == 0 {
		response.BadRequest(c, "Invalid parcel id.")
		return 0, false
	}
	return uint(parcelID), true
}

// GetMyParcels 当前用户名下的全部包裹（寄出与接收）
func (h *Handler) GetMyParcels(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	parcels, err := h.ParcelService.GetMyParcels(userID)
	if err != nil {
		respondError(c, err, "Failed to fetch parcels.")
		return
	}

	response.Success(c, parcels)
}

// GetParcelByID 获取单个包裹，仅寄收双方可见
func (h *Handler) GetParcelByID(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	parcelID, ok := parseParcelID(c)
	if !ok {
		return
	}

	parcel, err := h.ParcelService.GetParcelByID(parcelID, userID)
	if err != nil {
		respondError(c, err, "Failed to fetch parcel.")
		return
	}

	response.Success(c, parcel)
}
