package service

import (
	"encoding/json"
	"renova_backend/internal/model"
	"renova_backend/internal/repository"
	"renova_backend/internal/util"
)

type ProfileUpdateInput struct {
	Name     string `json:"name" binding:"omitempty,min=2,max=100"`
	Age      int    `json:"age" binding:"omitempty,min=10,max=120"`
	Location string `json:"location" binding:"omitempty,max=100"`
}

type PreferenceInput struct {
	FocusAreas []string `json:"focusAreas" binding:"max=6"`
	Difficulty string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

type UserService struct {
	UserRepo       *repository.UserRepository
	PreferenceRepo *repository.PreferenceRepository
}

func NewUserService(userRepo *repository.UserRepository, preferenceRepo *repository.PreferenceRepository) *UserService {
	return &UserService{UserRepo: userRepo, PreferenceRepo: preferenceRepo}
}

func (s *UserService) GetByID(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// UpdateProfile applies only the fields present in the input.
func (s *UserService) UpdateProfile(userID uint, input ProfileUpdateInput) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Age != 0 {
		user.Age = input.Age
	}
	if input.Location != "" {
		user.Location = input.Location
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// GetPreferences returns the stored preferences, or defaults when the user
// has never saved any.
func (s *UserService) GetPreferences(userID uint) (*model.UserPreference, error) {
	pref, err := s.PreferenceRepo.FindByUser(userID)
	if err != nil {
		if isNotFound(err) {
			return &model.UserPreference{UserID: userID, Difficulty: "medium"}, nil
		}
		return nil, err
	}
	return pref, nil
}

func (s *UserService) SavePreferences(userID uint, input PreferenceInput) (*model.UserPreference, error) {
	rawAreas, err := json.Marshal(input.FocusAreas)
	if err != nil {
		return nil, err
	}
	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}
	pref := &model.UserPreference{
		UserID:     userID,
		FocusAreas: rawAreas,
		Difficulty: difficulty,
	}
	if err := s.PreferenceRepo.Upsert(pref); err != nil {
		return nil, err
	}
	return pref, nil
}
