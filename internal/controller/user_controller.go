package controller

import (
	"errors"
	"renova_backend/internal/service"
	"renova_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// UpdateProfile godoc
// @Summary Atualizar perfil
// @Tags usuário
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.ProfileUpdateInput true "Campos a atualizar"
// @Success 200 {object} util.Response{data=model.User} "Perfil atualizado"
// @Failure 400 {object} util.Response "Parâmetros inválidos"
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.ProfileUpdateInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, input)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// GetPreferences godoc
// @Summary Preferências do usuário
// @Tags usuário
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.UserPreference} "Preferências"
// @Router /api/user/preferences [get]
func (c *UserController) GetPreferences(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	pref, err := c.UserService.GetPreferences(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, pref)
}

// SavePreferences godoc
// @Summary Salvar preferências
// @Description Substitui as áreas de foco e a dificuldade preferida
// @Tags usuário
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.PreferenceInput true "Preferências"
// @Success 200 {object} util.Response{data=model.UserPreference} "Preferências salvas"
// @Failure 400 {object} util.Response "Parâmetros inválidos"
// @Router /api/user/preferences [put]
func (c *UserController) SavePreferences(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.PreferenceInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	pref, err := c.UserService.SavePreferences(claims.UserID, input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, pref)
}
