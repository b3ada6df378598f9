package service

import (
	"testing"

	"renova_backend/internal/model"
	"renova_backend/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.QuestionnaireResult{},
		&model.DailyContent{},
		&model.PersonalizationRule{},
		&model.TrackProgress{},
		&model.ActivityProgress{},
		&model.UserPreference{},
		&model.UserAchievement{},
	))
	return db
}

type testEnv struct {
	db              *gorm.DB
	users           *repository.UserRepository
	questionnaires  *repository.QuestionnaireRepository
	contents        *repository.ContentRepository
	progresses      *repository.ProgressRepository
	preferences     *repository.PreferenceRepository
	achievements    *repository.AchievementRepository
	catalog         *CatalogService
	profile         *ProfileService
	personalization *PersonalizationService
	progress        *ProgressService
	achievement     *AchievementService
	questionnaire   *QuestionnaireService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{
		db:             db,
		users:          repository.NewUserRepository(db),
		questionnaires: repository.NewQuestionnaireRepository(db),
		contents:       repository.NewContentRepository(db),
		progresses:     repository.NewProgressRepository(db),
		preferences:    repository.NewPreferenceRepository(db),
		achievements:   repository.NewAchievementRepository(db),
	}
	env.catalog = NewCatalogService(env.contents, nil)
	env.profile = NewProfileService(env.questionnaires, env.progresses, env.preferences, env.users)
	env.personalization = NewPersonalizationService(env.profile, env.catalog, env.progresses)
	env.achievement = NewAchievementService(env.achievements)
	env.progress = NewProgressService(env.progresses, env.catalog, env.achievement)
	env.questionnaire = NewQuestionnaireService(env.questionnaires, env.progress, env.catalog)
	return env
}

func (e *testEnv) createUser(t *testing.T) *model.User {
	t.Helper()
	user := &model.User{
		Name:     "Maria Teste",
		Email:    "maria@example.com",
		Password: "hash",
		Role:     model.RoleUser,
	}
	require.NoError(t, e.users.Create(user))
	return user
}
