package controller

import (
	"strconv"

	"renova_backend/internal/service"
	"renova_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminContentController is the authoring surface: daily templates and
// personalization rules. All routes require the admin role.
type AdminContentController struct {
	ContentAdmin *service.ContentAdminService
}

func NewAdminContentController(contentAdmin *service.ContentAdminService) *AdminContentController {
	return &AdminContentController{ContentAdmin: contentAdmin}
}

func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// ListDailyContent godoc
// @Summary Listar conteúdos diários
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   track query string false "Filtrar por trilha"
// @Param   page query int false "Página"
// @Param   limit query int false "Itens por página"
// @Success 200 {object} util.Response{data=[]model.DailyContent} "Conteúdos"
// @Router /api/admin/content [get]
func (c *AdminContentController) ListDailyContent(ctx *gin.Context) {
	page, limit := pagination(ctx)
	items, total, err := c.ContentAdmin.ListDailyContent(ctx.Query("track"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": items, "total": total, "page": page, "limit": limit})
}

// CreateDailyContent godoc
// @Summary Criar conteúdo diário
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.DailyContentInput true "Conteúdo do dia"
// @Success 201 {object} util.Response{data=model.DailyContent} "Criado"
// @Failure 400 {object} util.Response "Parâmetros inválidos"
// @Router /api/admin/content [post]
func (c *AdminContentController) CreateDailyContent(ctx *gin.Context) {
	var input service.DailyContentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content, err := c.ContentAdmin.CreateDailyContent(ctx.Request.Context(), input)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, content)
}

// UpdateDailyContent godoc
// @Summary Atualizar conteúdo diário
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "ID do conteúdo"
// @Param   body body service.DailyContentInput true "Conteúdo do dia"
// @Success 200 {object} util.Response{data=model.DailyContent} "Atualizado"
// @Failure 404 {object} util.Response "Conteúdo não encontrado"
// @Router /api/admin/content/{id} [put]
func (c *AdminContentController) UpdateDailyContent(ctx *gin.Context) {
	var input service.DailyContentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content, err := c.ContentAdmin.UpdateDailyContent(ctx.Request.Context(), ctx.Param("id"), input)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, content)
}

// DeleteDailyContent godoc
// @Summary Remover conteúdo diário
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "ID do conteúdo"
// @Success 200 {object} util.Response "Removido"
// @Failure 404 {object} util.Response "Conteúdo não encontrado"
// @Router /api/admin/content/{id} [delete]
func (c *AdminContentController) DeleteDailyContent(ctx *gin.Context) {
	if err := c.ContentAdmin.DeleteDailyContent(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

// ListRules godoc
// @Summary Listar regras de personalização
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   track query string false "Filtrar por trilha"
// @Param   page query int false "Página"
// @Param   limit query int false "Itens por página"
// @Success 200 {object} util.Response{data=[]model.PersonalizationRule} "Regras"
// @Router /api/admin/rules [get]
func (c *AdminContentController) ListRules(ctx *gin.Context) {
	page, limit := pagination(ctx)
	items, total, err := c.ContentAdmin.ListRules(ctx.Query("track"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": items, "total": total, "page": page, "limit": limit})
}

// CreateRule godoc
// @Summary Criar regra de personalização
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.RuleInput true "Regra"
// @Success 201 {object} util.Response{data=model.PersonalizationRule} "Criada"
// @Failure 400 {object} util.Response "Parâmetros inválidos"
// @Router /api/admin/rules [post]
func (c *AdminContentController) CreateRule(ctx *gin.Context) {
	var input service.RuleInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rule, err := c.ContentAdmin.CreateRule(ctx.Request.Context(), input)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, rule)
}

// UpdateRule godoc
// @Summary Atualizar regra de personalização
// @Tags admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "ID da regra"
// @Param   body body service.RuleInput true "Regra"
// @Success 200 {object} util.Response{data=model.PersonalizationRule} "Atualizada"
// @Failure 404 {object} util.Response "Regra não encontrada"
// @Router /api/admin/rules/{id} [put]
func (c *AdminContentController) UpdateRule(ctx *gin.Context) {
	var input service.RuleInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rule, err := c.ContentAdmin.UpdateRule(ctx.Request.Context(), ctx.Param("id"), input)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, rule)
}

// DeleteRule godoc
// @Summary Remover regra de personalização
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "ID da regra"
// @Success 200 {object} util.Response "Removida"
// @Failure 404 {object} util.Response "Regra não encontrada"
// @Router /api/admin/rules/{id} [delete]
func (c *AdminContentController) DeleteRule(ctx *gin.Context) {
	if err := c.ContentAdmin.DeleteRule(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}
