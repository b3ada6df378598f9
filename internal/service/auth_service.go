package service

import (
	"renova_backend/internal/config"
	"renova_backend/internal/model"
	"renova_backend/internal/repository"
	"renova_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Age      int    `json:"age" binding:"omitempty,min=10,max=120"`
	Location string `json:"location" binding:"omitempty,max=100"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthPayload struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type AuthService struct {
	UserRepo *repository.UserRepository
	Config   *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{UserRepo: userRepo, Config: cfg}
}

func (s *AuthService) Register(input RegisterInput) (*AuthPayload, error) {
	if existing, err := s.UserRepo.FindByEmail(input.Email); err == nil && existing != nil {
		return nil, util.ErrEmailRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     model.RoleUser,
		Age:      input.Age,
		Location: input.Location,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *AuthService) Login(input LoginInput) (*AuthPayload, error) {
	user, err := s.UserRepo.FindByEmail(input.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Disabled {
		return nil, util.ErrPermissionDenied
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *model.User) (*AuthPayload, error) {
	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return &AuthPayload{Token: token, User: user}, nil
}
