package public

import (
	"strings"

	"github.com/parcel-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// TrackParcel 按追踪单号公开查询包裹轨迹，无需登录
func (h *Handler) TrackParcel(c *gin.Context) {
	trackingID := strings.TrimSpace(c.Param("trackingId"))
	if trackingID == "" {
		response.BadRequest(c, "Tracking id is required.")
		return
	}

	snapshot, err := h.ParcelService.TrackByTrackingID(c.Request.Context(), trackingID)
	if err != nil {
		respondError(c, err, "Failed to track parcel.")
		return
	}

	response.Success(c, snapshot)
}
