package controller

import (
	"strconv"

	"golf_practice_backend/internal/service"
	"golf_practice_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

// @Summary 练习场次列表
// @Tags 练习
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/sessions [get]
func (c *SessionController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	sessions, total, err := c.SessionService.List(user.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  sessions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 新建练习场次
// @Tags 练习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateSessionReq true "场次内容"
// @Success 201 {object} util.Response
// @Router /api/sessions [post]
func (c *SessionController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateSessionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.Create(user.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, session)
}

// @Summary 场次详情
// @Tags 练习
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "场次ID"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id} [get]
func (c *SessionController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.SessionService.Get(user.UserID, ctx.Param("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// @Summary 删除场次
// @Tags 练习
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "场次ID"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id} [delete]
func (c *SessionController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.SessionService.Delete(user.UserID, ctx.Param("id")); err != nil {
		if err == gorm.ErrRecordNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// @Summary 练习统计
// @Tags 练习
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/sessions/stats [get]
func (c *SessionController) Stats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.SessionService.GetStats(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
