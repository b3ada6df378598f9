package controller

import (
	"renova_backend/internal/service"
	"renova_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionnaireController struct {
	QuestionnaireService *service.QuestionnaireService
}

func NewQuestionnaireController(questionnaireService *service.QuestionnaireService) *QuestionnaireController {
	return &QuestionnaireController{QuestionnaireService: questionnaireService}
}

// Submit godoc
// @Summary Enviar questionário
// @Description Pontua as respostas, salva o resultado e ativa a trilha recomendada
// @Tags questionário
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.QuestionnaireSubmission true "Respostas"
// @Success 201 {object} util.Response{data=service.QuestionnaireOutcome} "Resultado"
// @Failure 400 {object} util.Response "Respostas inválidas"
// @Failure 401 {object} util.Response "Não autenticado"
// @Router /api/questionnaire [post]
func (c *QuestionnaireController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var submission service.QuestionnaireSubmission
	if err := ctx.ShouldBindJSON(&submission); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	outcome, err := c.QuestionnaireService.Submit(claims.UserID, submission)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, outcome)
}

// Latest godoc
// @Summary Resultado mais recente
// @Tags questionário
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.QuestionnaireResult} "Resultado"
// @Failure 404 {object} util.Response "Nenhum questionário respondido"
// @Router /api/questionnaire/latest [get]
func (c *QuestionnaireController) Latest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.QuestionnaireService.Latest(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if result == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, result)
}

// History godoc
// @Summary Histórico de questionários
// @Tags questionário
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.QuestionnaireResult} "Histórico"
// @Router /api/questionnaire/history [get]
func (c *QuestionnaireController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.QuestionnaireService.History(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, results)
}
