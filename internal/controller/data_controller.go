package controller

import (
	"bytes"
	"context"
	"errors"
	"io"

	"golf_practice_backend/internal/model"
	"golf_practice_backend/internal/repository"
	"golf_practice_backend/internal/service"
	"golf_practice_backend/internal/util"
	"golf_practice_backend/pkg/logger"
	"golf_practice_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 导入文件大小上限 10MB
const maxImportSize = 10 << 20

type DataController struct {
	ExportService  *service.ExportService
	ImportService  *service.ImportService
	SessionService *service.SessionService
	Sessions       *repository.SessionRepository
	Storage        *service.StorageService
}

func NewDataController(
	exportService *service.ExportService,
	importService *service.ImportService,
	sessionService *service.SessionService,
	sessions *repository.SessionRepository,
	storage *service.StorageService,
) *DataController {
	return &DataController{
		ExportService:  exportService,
		ImportService:  importService,
		SessionService: sessionService,
		Sessions:       sessions,
		Storage:        storage,
	}
}

func parseExportFormat(s string) (service.ExportFormat, bool) {
	switch service.ExportFormat(s) {
	case service.FormatCSV:
		return service.FormatCSV, true
	case service.FormatJSON:
		return service.FormatJSON, true
	}
	return "", false
}

// @Summary 导出练习数据
// @Description 以 CSV 或 JSON 下载当前用户的全部练习数据
// @Tags 数据
// @Produce json
// @Security ApiKeyAuth
// @Param format query string false "csv 或 json，默认 csv"
// @Success 200 {file} file
// @Router /api/data/export [get]
func (c *DataController) Export(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	format, ok := parseExportFormat(ctx.DefaultQuery("format", "csv"))
	if !ok {
		util.BadRequest(ctx, "format must be csv or json")
		return
	}

	sessions, err := c.Sessions.ListByUser(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	data, err := c.ExportService.Export(sessions, format)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	monitoring.ExportCounter.WithLabelValues(string(format)).Inc()

	filename := c.ExportService.Filename(format)
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(200, c.ExportService.ContentType(format), data)
}

// @Summary 归档导出文件
// @Description 生成导出文件并存入对象存储，返回访问地址
// @Tags 数据
// @Produce json
// @Security ApiKeyAuth
// @Param format query string false "csv 或 json，默认 csv"
// @Success 200 {object} util.Response
// @Router /api/data/export/archive [post]
func (c *DataController) ExportArchive(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	format, ok := parseExportFormat(ctx.DefaultQuery("format", "csv"))
	if !ok {
		util.BadRequest(ctx, "format must be csv or json")
		return
	}

	sessions, err := c.Sessions.ListByUser(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	data, err := c.ExportService.Export(sessions, format)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := c.ExportService.Filename(format)
	url, err := c.Storage.Upload(context.Background(), filename,
		bytes.NewReader(data), int64(len(data)), c.ExportService.ContentType(format))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	monitoring.ExportCounter.WithLabelValues(string(format)).Inc()
	util.Success(ctx, gin.H{"filename": filename, "url": url})
}

// @Summary 导入练习数据
// @Description 上传 CSV 导出文件，重复场次跳过，行级错误不中断导入
// @Tags 数据
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "CSV 文件"
// @Success 200 {object} util.Response{data=model.ImportResult}
// @Router /api/data/import [post]
func (c *DataController) Import(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}
	if fileHeader.Size > maxImportSize {
		util.BadRequest(ctx, "file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if len(data) > 0 {
		if _, err := util.ValidateMimeType(bytes.NewReader(data), util.AllowedImportMimeTypes); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	result, err := c.ImportService.Import(c.Sessions.ForUser(user.UserID), data)
	if err != nil {
		var importErr *model.ImportError
		if errors.As(err, &importErr) {
			util.BadRequest(ctx, importErr.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	monitoring.ImportedSessions.WithLabelValues("imported").Add(float64(result.SessionsImported))
	monitoring.ImportedSessions.WithLabelValues("duplicate").Add(float64(result.DuplicatesSkipped))
	c.SessionService.InvalidateStats(ctx.Request.Context(), user.UserID)

	logger.Log.Info("data import finished",
		zap.Uint("userID", user.UserID),
		zap.Int("sessions", result.SessionsImported),
		zap.Int("drills", result.DrillsImported),
		zap.Int("duplicates", result.DuplicatesSkipped),
		zap.Int("errors", len(result.Errors)))

	util.Success(ctx, result)
}
