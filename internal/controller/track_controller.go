package controller

import (
	"errors"
	"strconv"

	"renova_backend/internal/service"
	"renova_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TrackController struct {
	Catalog         *service.CatalogService
	Personalization *service.PersonalizationService
	Progress        *service.ProgressService
}

func NewTrackController(catalog *service.CatalogService, personalization *service.PersonalizationService, progress *service.ProgressService) *TrackController {
	return &TrackController{Catalog: catalog, Personalization: personalization, Progress: progress}
}

// ListTracks godoc
// @Summary Listar trilhas
// @Tags trilhas
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.TrackDefinition} "Trilhas disponíveis"
// @Router /api/tracks [get]
func (c *TrackController) ListTracks(ctx *gin.Context) {
	util.Success(ctx, c.Catalog.ListTracks())
}

// GetTrack godoc
// @Summary Detalhar trilha
// @Tags trilhas
// @Produce  json
// @Param   slug path string true "Slug da trilha"
// @Success 200 {object} util.Response{data=service.TrackDefinition} "Trilha"
// @Failure 404 {object} util.Response "Trilha não encontrada"
// @Router /api/tracks/{slug} [get]
func (c *TrackController) GetTrack(ctx *gin.Context) {
	track, err := c.Catalog.GetTrack(ctx.Param("slug"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, track)
}

// GetDayContent godoc
// @Summary Conteúdo personalizado do dia
// @Description Monta o pacote de atividades do dia para o usuário autenticado
// @Tags trilhas
// @Produce  json
// @Security BearerAuth
// @Param   slug path string true "Slug da trilha"
// @Param   day path int true "Número do dia"
// @Success 200 {object} util.Response{data=service.PersonalizedContent} "Conteúdo do dia"
// @Failure 400 {object} util.Response "Dia inválido"
// @Failure 401 {object} util.Response "Não autenticado"
// @Router /api/tracks/{slug}/days/{day} [get]
func (c *TrackController) GetDayContent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	slug := ctx.Param("slug")
	day, err := strconv.Atoi(ctx.Param("day"))
	if err != nil || day < 1 {
		util.BadRequest(ctx, "dia inválido")
		return
	}
	if _, err := c.Catalog.GetTrack(slug); err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, c.Personalization.Synthesize(ctx.Request.Context(), claims.UserID, slug, day))
}

// GetTodayContent godoc
// @Summary Conteúdo do dia atual
// @Description Resolve o dia corrente da trilha ativa do usuário e monta o conteúdo
// @Tags trilhas
// @Produce  json
// @Security BearerAuth
// @Param   slug path string true "Slug da trilha"
// @Success 200 {object} util.Response{data=service.PersonalizedContent} "Conteúdo do dia"
// @Failure 401 {object} util.Response "Não autenticado"
// @Failure 404 {object} util.Response "Trilha não encontrada"
// @Router /api/tracks/{slug}/today [get]
func (c *TrackController) GetTodayContent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	slug := ctx.Param("slug")
	if _, err := c.Catalog.GetTrack(slug); err != nil {
		util.NotFound(ctx)
		return
	}

	progress, err := c.Progress.EnsureTrack(claims.UserID, slug)
	if err != nil {
		if errors.Is(err, util.ErrTrackNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, c.Personalization.Synthesize(ctx.Request.Context(), claims.UserID, slug, progress.CurrentDay))
}
