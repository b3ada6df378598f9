package database

import (
	"fmt"
	"log"
	"renova_backend/internal/config"
	"renova_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedCatalog(db)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.QuestionnaireResult{},
		&model.DailyContent{},
		&model.PersonalizationRule{},
		&model.TrackProgress{},
		&model.ActivityProgress{},
		&model.UserPreference{},
		&model.UserAchievement{},
	)
}

// seedCatalog inserts a starter day of authored content per track so a fresh
// install serves real templates instead of the generic fallback on day 1.
func seedCatalog(db *gorm.DB) {
	var count int64
	db.Model(&model.DailyContent{}).Count(&count)
	if count > 0 {
		return
	}

	seeds := []model.DailyContent{
		{
			TrackSlug:            string(model.TrackLiberdade),
			DayNumber:            1,
			Title:                "Primeiro passo para a liberdade",
			Objective:            "Reconhecer os gatilhos do uso excessivo",
			Verse:                "Salmos 119:45",
			Reflection:           "Andarei em liberdade, pois busquei os teus preceitos.",
			Prayer:               "Senhor, ajuda-me a dar o primeiro passo hoje.",
			MainActivityTitle:    "Mapa de gatilhos",
			MainActivityContent:  "Anote os três momentos do dia em que você mais sente vontade de pegar o celular e o que estava sentindo em cada um.",
			ChallengeTitle:       "Uma hora offline",
			ChallengeDescription: "Escolha uma hora do dia para deixar o celular em outro cômodo.",
			MaxPoints:            100,
			DifficultyLevel:      2,
		},
		{
			TrackSlug:            string(model.TrackEquilibrio),
			DayNumber:            1,
			Title:                "Encontrando o equilíbrio",
			Objective:            "Estabelecer limites saudáveis de uso",
			Verse:                "Filipenses 4:5",
			Reflection:           "Seja a vossa moderação conhecida de todos os homens.",
			Prayer:               "Senhor, dá-me sabedoria para usar bem o meu tempo.",
			MainActivityTitle:    "Inventário de tempo de tela",
			MainActivityContent:  "Consulte o relatório de tempo de tela do seu aparelho e registre os três aplicativos mais usados da semana.",
			ChallengeTitle:       "Refeição sem telas",
			ChallengeDescription: "Faça ao menos uma refeição hoje sem nenhum dispositivo por perto.",
			BonusTitle:           "Conversa intencional",
			BonusContent:         "Ligue para alguém querido em vez de mandar mensagem.",
			MaxPoints:            100,
			DifficultyLevel:      3,
		},
		{
			TrackSlug:            string(model.TrackRenovacao),
			DayNumber:            1,
			Title:                "O início da renovação",
			Objective:            "Assumir o compromisso de 40 dias",
			Verse:                "Romanos 12:2",
			Reflection:           "Transformai-vos pela renovação da vossa mente.",
			Prayer:               "Senhor, renova a minha mente e os meus hábitos.",
			MainActivityTitle:    "Carta de compromisso",
			MainActivityContent:  "Escreva uma carta para você mesmo explicando por que decidiu percorrer os 40 dias e o que espera encontrar no final.",
			ChallengeTitle:       "Detox noturno",
			ChallengeDescription: "Desligue o celular uma hora antes de dormir e deixe-o fora do quarto.",
			MaxPoints:            120,
			DifficultyLevel:      4,
		},
	}

	for i := range seeds {
		db.Create(&seeds[i])
	}
}
