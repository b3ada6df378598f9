package controller

import (
	"errors"
	"renova_backend/internal/service"
	"renova_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService    *service.ProgressService
	AchievementService *service.AchievementService
}

func NewProgressController(progressService *service.ProgressService, achievementService *service.AchievementService) *ProgressController {
	return &ProgressController{ProgressService: progressService, AchievementService: achievementService}
}

// CompleteActivity godoc
// @Summary Concluir atividade
// @Description Registra uma atividade concluída; repetir a mesma atividade não duplica pontos
// @Tags progresso
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   slug path string true "Slug da trilha"
// @Param   body body service.ActivityCompletionInput true "Atividade concluída"
// @Success 200 {object} util.Response{data=model.ActivityProgress} "Registro"
// @Failure 400 {object} util.Response "Parâmetros inválidos"
// @Router /api/tracks/{slug}/activities [post]
func (c *ProgressController) CompleteActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.ActivityCompletionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, created, err := c.ProgressService.CompleteActivity(claims.UserID, ctx.Param("slug"), input)
	if err != nil {
		if errors.Is(err, util.ErrTrackNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"record": record, "created": created})
}

// ToggleActivity godoc
// @Summary Alternar atividade
// @Description Marca ou desmarca a conclusão de uma atividade
// @Tags progresso
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   slug path string true "Slug da trilha"
// @Param   body body service.ActivityCompletionInput true "Atividade"
// @Success 200 {object} util.Response "Estado resultante"
// @Router /api/tracks/{slug}/activities/toggle [post]
func (c *ProgressController) ToggleActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.ActivityCompletionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	completed, err := c.ProgressService.ToggleActivity(claims.UserID, ctx.Param("slug"), input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"completed": completed})
}

// CompleteDay godoc
// @Summary Concluir dia
// @Description Avança o progresso, soma pontos e dispara a avaliação de conquistas
// @Tags progresso
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   slug path string true "Slug da trilha"
// @Param   body body service.DayCompletionInput true "Dia concluído"
// @Success 200 {object} util.Response{data=model.TrackProgress} "Progresso atualizado"
// @Failure 400 {object} util.Response "Dia fora do intervalo da trilha"
// @Router /api/tracks/{slug}/days/complete [post]
func (c *ProgressController) CompleteDay(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.DayCompletionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.CompleteDay(claims.UserID, ctx.Param("slug"), input)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTrackNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrDayOutOfRange):
			util.BadRequest(ctx, "dia fora do intervalo da trilha")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, progress)
}

// Summary godoc
// @Summary Resumo de progresso da trilha
// @Tags progresso
// @Produce  json
// @Security BearerAuth
// @Param   slug path string true "Slug da trilha"
// @Success 200 {object} util.Response{data=service.ProgressSummary} "Resumo"
// @Router /api/tracks/{slug}/progress [get]
func (c *ProgressController) Summary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.ProgressService.Summary(claims.UserID, ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrTrackNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, summary)
}

// ActiveSummary godoc
// @Summary Resumo da trilha ativa
// @Tags progresso
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ProgressSummary} "Resumo ou nulo"
// @Router /api/progress [get]
func (c *ProgressController) ActiveSummary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.ProgressService.ActiveSummary(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// ListAchievements godoc
// @Summary Conquistas do usuário
// @Tags progresso
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.UserAchievement} "Conquistas"
// @Router /api/achievements [get]
func (c *ProgressController) ListAchievements(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	achievements, err := c.AchievementService.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, achievements)
}
