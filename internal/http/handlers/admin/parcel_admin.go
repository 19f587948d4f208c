package admin

import (
	"strconv"

	"github.com/parcel-next/internal/http/response"
	"github.com/parcel-next/internal/models"
	"github.com/parcel-next/internal/repository"
	"github.com/parcel-next/internal/service"

	"github.com/gin-gonic/gin"
)

func queryParams(c *gin.Context) map[string]string {
	params := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

func toPagination(meta repository.PageMeta) response.Pagination {
	return response.Pagination{
		Page:      meta.Page,
		Limit:     meta.Limit,
		Total:     meta.Total,
		TotalPage: meta.TotalPage,
	}
}

func parseParcelID(c *gin.Context) (uint, bool) {
	parcelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || parcelID == 0 {
		response.BadRequest(c, "Invalid parcel id.")
		return 0, false
	}
	return uint(parcelID), true
}

// AdminListParcels 管理端包裹列表，支持检索、过滤、排序、投影与分页
func (h *Handler) AdminListParcels(c *gin.Context) {
	parcels, meta, err := h.AdminParcelService.GetAllParcels(queryParams(c))
	if err != nil {
		respondError(c, err, "Failed to fetch parcels.")
		return
	}
	response.SuccessWithPage(c, parcels, toPagination(meta))
}

// AdminGetParcel 管理端包裹详情
func (h *Handler) AdminGetParcel(c *gin.Context) {
	parcelID, ok := parseParcelID(c)
	if !ok {
		return
	}

	parcel, err := h.AdminParcelService.GetParcel(parcelID)
	if err != nil {
		respondError(c, err, "Failed to fetch parcel.")
		return
	}
	response.Success(c, parcel)
}

// AdminApproveParcel 管理员审批通过包裹
func (h *Handler) AdminApproveParcel(c *gin.Context) {
	parcelID, ok := parseParcelID(c)
	if !ok {
		return
	}

	parcel, err := h.AdminParcelService.ApproveParcel(parcelID)
	if err != nil {
		respondError(c, err, "Failed to approve parcel.")
		return
	}
	response.SuccessWithMsg(c, "parcel approved", parcel)
}

// AdminDeliverParcel 管理员标记包裹已送达
func (h *Handler) AdminDeliverParcel(c *gin.Context) {
	parcelID, ok := parseParcelID(c)
	if !ok {
		return
	}

	parcel, err := h.AdminParcelService.DeliverParcel(parcelID)
	if err != nil {
		respondError(c, err, "Failed to deliver parcel.")
		return
	}
	response.SuccessWithMsg(c, "parcel delivered", parcel)
}

// AdminCancelParcel 管理员取消包裹
func (h *Handler) AdminCancelParcel(c *gin.Context) {
	parcelID, ok := parseParcelID(c)
	if !ok {
		return
	}

	parcel, err := h.AdminParcelService.CancelParcel(parcelID)
	if err != nil {
		respondError(c, err, "Failed to cancel parcel.")
		return
	}
	response.SuccessWithMsg(c, "parcel cancelled", parcel)
}

// AdminUpdateParcelRequest 管理端通用状态更新请求
type AdminUpdateParcelRequest struct {
	Status   *string `json:"status"`
	Location *string `json:"location"`
	Note     *string `json:"note"`
}

// AdminUpdateParcel 管理端更新包裹状态并追加轨迹
func (h *Handler) AdminUpdateParcel(c *gin.Context) {
	parcelID, ok := parseParcelID(c)
	if !ok {
		return
	}

	var req AdminUpdateParcelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, "Invalid parcel payload.", err)
		return
	}

	input := service.UpdateParcelInput{
		Location: req.Location,
		Note:     req.Note,
	}
	if req.Status != nil {
		status := models.ParcelStatus(*req.Status)
		input.Status = &status
	}

	parcel, err := h.AdminParcelService.UpdateParcel(parcelID, input)
	if err != nil {
		respondError(c, err, "Failed to update parcel.")
		return
	}
	response.SuccessWithMsg(c, "parcel updated", parcel)
}

// AdminDeleteParcel 管理端删除包裹及其轨迹
func (h *Handler) AdminDeleteParcel(c *gin.Context) {
	parcelID, ok := parseParcelID(c)
	if !ok {
		return
	}

	if err := h.AdminParcelService.DeleteParcel(parcelID); err != nil {
		respondError(c, err, "Failed to delete parcel.")
		return
	}
	requestLog(c).Infow("admin_parcel_deleted", "parcel_id", parcelID)
	response.SuccessWithMsg(c, "parcel deleted", nil)
}
