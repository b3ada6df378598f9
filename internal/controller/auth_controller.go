package controller

import (
	"errors"
	"renova_backend/internal/service"
	"renova_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

func NewAuthController(authService *service.AuthService, userService *service.UserService) *AuthController {
	return &AuthController{AuthService: authService, UserService: userService}
}

// Register godoc
// @Summary Registrar novo usuário
// @Description Cria uma conta e retorna o token de acesso
// @Tags autenticação
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterInput true "Dados de cadastro"
// @Success 201 {object} util.Response{data=service.AuthPayload} "Conta criada"
// @Failure 400 {object} util.Response "Parâmetros inválidos"
// @Failure 409 {object} util.Response "E-mail já cadastrado"
// @Failure 500 {object} util.Response "Erro interno"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var input service.RegisterInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	payload, err := c.AuthService.Register(input)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, 409, "Este e-mail já está cadastrado")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, payload)
}

// Login godoc
// @Summary Autenticar usuário
// @Tags autenticação
// @Accept  json
// @Produce  json
// @Param   body body service.LoginInput true "Credenciais"
// @Success 200 {object} util.Response{data=service.AuthPayload} "Autenticado"
// @Failure 400 {object} util.Response "Parâmetros inválidos"
// @Failure 401 {object} util.Response "Credenciais inválidas"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var input service.LoginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	payload, err := c.AuthService.Login(input)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidCredentials):
			util.Error(ctx, 401, "E-mail ou senha incorretos")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, payload)
}

// Me godoc
// @Summary Usuário autenticado
// @Tags autenticação
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User} "Usuário atual"
// @Failure 401 {object} util.Response "Não autenticado"
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetByID(claims.UserID)
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
