package service

import (
	"context"
	"errors"
	"fmt"
	"renova_backend/internal/model"
	"renova_backend/internal/repository"
	"renova_backend/internal/util"
	"renova_backend/pkg/logger"
	"renova_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// Activity is one item of a personalized day.
type Activity struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"` // devotional|practice|challenge|focus|personal
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Duration     int      `json:"duration"` // minutes
	Instructions []string `json:"instructions"`
	Difficulty   int      `json:"difficulty"` // 1-5
	Points       int      `json:"points"`
	IsRequired   bool     `json:"isRequired"`
	Completed    bool     `json:"completed"`
}

type Rewards struct {
	Points      int    `json:"points"`
	Achievement string `json:"achievement,omitempty"`
}

type DevotionalContent struct {
	Verse      string `json:"verse"`
	Reflection string `json:"reflection"`
	Prayer     string `json:"prayer"`
}

// PersonalizedContent is the assembled bundle for one (user, track, day).
// It is ephemeral; nothing here is persisted.
type PersonalizedContent struct {
	DayNumber     int               `json:"dayNumber"`
	Title         string            `json:"title"`
	Subtitle      string            `json:"subtitle"`
	Description   string            `json:"description"`
	Activities    []Activity        `json:"activities"`
	MainFocus     string            `json:"mainFocus"`
	Difficulty    string            `json:"difficulty"` // easy|medium|hard
	EstimatedTime int               `json:"estimatedTime"`
	Rewards       Rewards           `json:"rewards"`
	Devotional    DevotionalContent `json:"devotionalContent"`
	IsFallback    bool              `json:"isFallback"`
}

// Fixed point and duration budgets for the daily activity skeleton.
const (
	devotionalPoints   = 25
	devotionalDuration = 15
	mainDuration       = 45
	challengeDuration  = 30
	focusPoints        = 20
	focusDuration      = 25
	preferencePoints   = 15
	preferenceDuration = 20
)

type focusActivityTemplate struct {
	Title        string
	Description  string
	Instructions []string
}

// One fixed focus activity per assessment category.
var focusActivities = map[string]focusActivityTemplate{
	model.CategoryComportamento: {
		Title:       "Pausa consciente",
		Description: "Treine interromper o impulso de pegar o celular.",
		Instructions: []string{
			"Ao sentir o impulso de pegar o celular, pare e respire fundo três vezes",
			"Pergunte-se: o que estou sentindo agora?",
			"Espere dois minutos antes de decidir se realmente precisa do aparelho",
		},
	},
	model.CategoryVidaCotidiana: {
		Title:       "Bloco de tempo protegido",
		Description: "Reserve um bloco do dia inteiramente livre de telas.",
		Instructions: []string{
			"Escolha um período de 30 minutos do seu dia",
			"Deixe o celular em outro cômodo, no silencioso",
			"Use o tempo para uma tarefa que vem adiando",
		},
	},
	model.CategoryRelacoes: {
		Title:       "Presença de verdade",
		Description: "Dedique atenção plena a alguém próximo.",
		Instructions: []string{
			"Escolha uma pessoa da sua casa ou do seu convívio",
			"Converse por 15 minutos sem nenhum dispositivo por perto",
			"Faça ao menos duas perguntas sinceras sobre o dia dela",
		},
	},
	model.CategoryEspiritual: {
		Title:       "Momento de silêncio",
		Description: "Troque o primeiro uso do celular por um momento devocional.",
		Instructions: []string{
			"Antes de desbloquear o celular pela manhã, separe 10 minutos",
			"Leia o versículo do dia e medite nele",
			"Anote uma frase do que o texto falou com você",
		},
	},
}

// Fixed lookup for preference-based activities, keyed by declared focus
// area tag. Unrecognized tags simply produce no activity.
var preferenceActivities = map[string]focusActivityTemplate{
	"oracao": {
		Title:       "Pausa para oração",
		Description: "Um momento guiado de oração no meio do dia.",
		Instructions: []string{
			"Encontre um lugar silencioso",
			"Agradeça por três coisas do seu dia",
			"Apresente uma dificuldade e entregue-a em oração",
		},
	},
	"meditacao": {
		Title:       "Meditação guiada",
		Description: "Respiração e aquietamento por dez minutos.",
		Instructions: []string{
			"Sente-se confortavelmente e feche os olhos",
			"Respire contando quatro tempos para inspirar e seis para soltar",
			"Ao final, permaneça um minuto em silêncio",
		},
	},
	"exercicio": {
		Title:       "Movimento ao ar livre",
		Description: "Troque tempo de tela por atividade física leve.",
		Instructions: []string{
			"Caminhe 20 minutos sem olhar o celular",
			"Observe três coisas bonitas no caminho",
			"Alongue-se ao voltar",
		},
	},
	"leitura": {
		Title:       "Leitura em papel",
		Description: "Avance em um livro físico em vez do feed.",
		Instructions: []string{
			"Escolha um livro que queira terminar",
			"Leia por 20 minutos sem interrupções",
			"Anote uma ideia que valha a pena guardar",
		},
	},
	"gratidao": {
		Title:       "Diário de gratidão",
		Description: "Registre por escrito os bons momentos do dia.",
		Instructions: []string{
			"Liste três coisas pelas quais é grato hoje",
			"Escolha uma e descreva por que ela importa",
			"Releia a lista de ontem, se houver",
		},
	},
	"comunidade": {
		Title:       "Conexão real",
		Description: "Fortaleça um laço fora das redes.",
		Instructions: []string{
			"Convide alguém para um café ou uma caminhada",
			"Se não for possível hoje, ligue em vez de mandar mensagem",
			"Combine o próximo encontro antes de se despedir",
		},
	},
}

// Milestone day -> achievement name, per track.
var trackMilestones = map[string]map[int]string{
	string(model.TrackLiberdade): {
		1: "Primeiro Passo",
		3: "Três Dias Livres",
		7: "Semana da Liberdade",
	},
	string(model.TrackEquilibrio): {
		1:  "Primeiro Passo",
		3:  "Começo Firme",
		7:  "Uma Semana de Equilíbrio",
		14: "Duas Semanas Constantes",
		21: "Equilíbrio Conquistado",
	},
	string(model.TrackRenovacao): {
		1:  "Primeiro Passo",
		3:  "Decisão Firmada",
		7:  "Sete Dias de Renovação",
		10: "Ruptura Completa",
		15: "Meio do Caminho à Vista",
		20: "Vinte Dias Renovados",
		30: "Um Mês de Vida Nova",
		40: "Renovação Completa",
	},
}

// MilestoneAchievement returns the achievement name for (track, day), or
// empty when the day is not a milestone.
func MilestoneAchievement(trackSlug string, dayNumber int) string {
	if milestones, ok := trackMilestones[trackSlug]; ok {
		return milestones[dayNumber]
	}
	return ""
}

// TrackMilestoneDays lists the milestone days of a track in ascending order.
func TrackMilestoneDays(trackSlug string) []int {
	milestones := trackMilestones[trackSlug]
	days := make([]int, 0, len(milestones))
	for d := range milestones {
		days = append(days, d)
	}
	for i := 1; i < len(days); i++ {
		for j := i; j > 0 && days[j] < days[j-1]; j-- {
			days[j], days[j-1] = days[j-1], days[j]
		}
	}
	return days
}

type PersonalizationService struct {
	Profiles     *ProfileService
	Catalog      *CatalogService
	ProgressRepo *repository.ProgressRepository
}

func NewPersonalizationService(
	profiles *ProfileService,
	catalog *CatalogService,
	progressRepo *repository.ProgressRepository,
) *PersonalizationService {
	return &PersonalizationService{
		Profiles:     profiles,
		Catalog:      catalog,
		ProgressRepo: progressRepo,
	}
}

// ApplyRules folds the matching rules over the base template in evaluation
// order: every present override field of a matching rule overwrites the
// accumulator, so the last matching rule wins per field. Non-matching rules
// and malformed conditions leave the template untouched.
func ApplyRules(base model.DailyContent, profile *UserProfile, rules []model.PersonalizationRule) model.DailyContent {
	merged := base
	for _, rule := range rules {
		if !ruleMatches(rule, profile) {
			continue
		}
		applyOverride(&merged, rule.Override())
	}
	return merged
}

func ruleMatches(rule model.PersonalizationRule, profile *UserProfile) bool {
	cond := rule.Condition()
	switch rule.RuleType {
	case model.RuleAreaBased:
		return cond.MostAffectedArea == MostAffectedCategory(profile.CategoryScores)
	case model.RuleScoreBased:
		min, max := 0, 100
		if cond.MinScore != nil {
			min = *cond.MinScore
		}
		if cond.MaxScore != nil {
			max = *cond.MaxScore
		}
		return profile.TotalScore >= min && profile.TotalScore <= max
	case model.RulePreferenceBased:
		for _, area := range cond.FocusAreas {
			for _, declared := range profile.FocusAreas {
				if area == declared {
					return true
				}
			}
		}
		return false
	default:
		return false
	}
}

func applyOverride(content *model.DailyContent, o model.ContentOverride) {
	if o.Title != nil {
		content.Title = *o.Title
	}
	if o.Objective != nil {
		content.Objective = *o.Objective
	}
	if o.Verse != nil {
		content.Verse = *o.Verse
	}
	if o.Reflection != nil {
		content.Reflection = *o.Reflection
	}
	if o.Prayer != nil {
		content.Prayer = *o.Prayer
	}
	if o.MainActivityTitle != nil {
		content.MainActivityTitle = *o.MainActivityTitle
	}
	if o.MainActivityContent != nil {
		content.MainActivityContent = *o.MainActivityContent
	}
	if o.ChallengeTitle != nil {
		content.ChallengeTitle = *o.ChallengeTitle
	}
	if o.ChallengeDescription != nil {
		content.ChallengeDescription = *o.ChallengeDescription
	}
	if o.BonusTitle != nil {
		content.BonusTitle = *o.BonusTitle
	}
	if o.BonusContent != nil {
		content.BonusContent = *o.BonusContent
	}
}

// Synthesize assembles the personalized bundle for (user, track, day).
// Personalization is best-effort: any read failure degrades to the generic
// fallback bundle and the method never returns an error to the caller.
func (s *PersonalizationService) Synthesize(ctx context.Context, userID uint, trackSlug string, dayNumber int) *PersonalizedContent {
	profile, err := s.Profiles.BuildProfile(ctx, userID)
	if err != nil {
		logger.Log.Warn("profile build failed, serving fallback",
			zap.Uint("user", userID), zap.String("track", trackSlug), zap.Error(err))
		monitoring.SynthesisFallbacks.WithLabelValues(trackSlug, "profile_error").Inc()
		return s.fallbackBundle(trackSlug, dayNumber)
	}
	if profile == nil {
		profile = BasicProfile(userID)
	}

	template, err := s.Catalog.GetDailyTemplate(ctx, trackSlug, dayNumber)
	if err != nil {
		reason := "store_error"
		if errors.Is(err, util.ErrDayNotAuthored) || errors.Is(err, util.ErrTrackNotFound) {
			reason = "not_authored"
		}
		monitoring.SynthesisFallbacks.WithLabelValues(trackSlug, reason).Inc()
		return s.fallbackBundle(trackSlug, dayNumber)
	}

	rules, err := s.Catalog.GetRules(ctx, trackSlug, dayNumber)
	if err != nil {
		// Rules are an enhancement; the base template still personalizes.
		logger.Log.Warn("rule fetch failed, applying base template only",
			zap.String("track", trackSlug), zap.Int("day", dayNumber), zap.Error(err))
		rules = nil
	}

	merged := ApplyRules(*template, profile, rules)
	activities := s.buildActivities(merged, profile, trackSlug, dayNumber)
	s.markCompleted(userID, trackSlug, dayNumber, activities)

	totalPoints := 0
	estimatedTime := 0
	for _, a := range activities {
		totalPoints += a.Points
		estimatedTime += a.Duration
	}

	return &PersonalizedContent{
		DayNumber:     dayNumber,
		Title:         merged.Title,
		Subtitle:      fmt.Sprintf("Dia %d", dayNumber),
		Description:   merged.Objective,
		Activities:    activities,
		MainFocus:     MostAffectedCategory(profile.CategoryScores),
		Difficulty:    ComputeDifficulty(trackSlug, dayNumber, profile.TotalScore),
		EstimatedTime: estimatedTime,
		Rewards: Rewards{
			Points:      totalPoints,
			Achievement: MilestoneAchievement(trackSlug, dayNumber),
		},
		Devotional: DevotionalContent{
			Verse:      merged.Verse,
			Reflection: merged.Reflection,
			Prayer:     merged.Prayer,
		},
	}
}

// buildActivities constructs the fixed skeleton in order: devotional, main,
// challenge, bonus, focus-area, preference. Optional entries are skipped
// when their source field is absent.
func (s *PersonalizationService) buildActivities(content model.DailyContent, profile *UserProfile, trackSlug string, dayNumber int) []Activity {
	difficulty := content.DifficultyLevel
	if difficulty < 1 || difficulty > 5 {
		difficulty = 3
	}

	activities := []Activity{
		{
			ID:          fmt.Sprintf("%s-%d-devotional", trackSlug, dayNumber),
			Type:        "devotional",
			Title:       "Devocional do dia",
			Description: content.Verse,
			Duration:    devotionalDuration,
			Instructions: []string{
				"Leia o versículo com calma",
				"Leia a reflexão do dia",
				"Termine com a oração sugerida",
			},
			Difficulty: 1,
			Points:     devotionalPoints,
			IsRequired: true,
		},
	}

	if content.MainActivityTitle != "" {
		activities = append(activities, Activity{
			ID:           fmt.Sprintf("%s-%d-main", trackSlug, dayNumber),
			Type:         "practice",
			Title:        content.MainActivityTitle,
			Description:  content.MainActivityContent,
			Duration:     mainDuration,
			Instructions: []string{content.MainActivityContent},
			Difficulty:   difficulty,
			Points:       content.MaxPoints * 40 / 100,
			IsRequired:   true,
		})
	}

	if content.ChallengeTitle != "" {
		activities = append(activities, Activity{
			ID:           fmt.Sprintf("%s-%d-challenge", trackSlug, dayNumber),
			Type:         "challenge",
			Title:        content.ChallengeTitle,
			Description:  content.ChallengeDescription,
			Duration:     challengeDuration,
			Instructions: []string{content.ChallengeDescription},
			Difficulty:   difficulty,
			Points:       content.MaxPoints * 30 / 100,
			IsRequired:   true,
		})
	}

	if content.BonusTitle != "" {
		activities = append(activities, Activity{
			ID:           fmt.Sprintf("%s-%d-bonus", trackSlug, dayNumber),
			Type:         "practice",
			Title:        content.BonusTitle,
			Description:  content.BonusContent,
			Duration:     preferenceDuration,
			Instructions: []string{content.BonusContent},
			Difficulty:   difficulty,
			Points:       content.MaxPoints * 10 / 100,
			IsRequired:   false,
		})
	}

	area := MostAffectedCategory(profile.CategoryScores)
	if tpl, ok := focusActivities[area]; ok {
		activities = append(activities, Activity{
			ID:           fmt.Sprintf("%s-%d-focus", trackSlug, dayNumber),
			Type:         "focus",
			Title:        tpl.Title,
			Description:  tpl.Description,
			Duration:     focusDuration,
			Instructions: tpl.Instructions,
			Difficulty:   difficulty,
			Points:       focusPoints,
			IsRequired:   false,
		})
	}

	if len(profile.FocusAreas) > 0 {
		if tpl, ok := preferenceActivities[profile.FocusAreas[0]]; ok {
			activities = append(activities, Activity{
				ID:           fmt.Sprintf("%s-%d-personal", trackSlug, dayNumber),
				Type:         "personal",
				Title:        tpl.Title,
				Description:  tpl.Description,
				Duration:     preferenceDuration,
				Instructions: tpl.Instructions,
				Difficulty:   2,
				Points:       preferencePoints,
				IsRequired:   false,
			})
		}
	}

	return activities
}

// markCompleted flips Completed on activities already recorded in the
// ledger. A read failure here leaves everything uncompleted rather than
// failing the request.
func (s *PersonalizationService) markCompleted(userID uint, trackSlug string, dayNumber int, activities []Activity) {
	records, err := s.ProgressRepo.ListDayActivities(userID, trackSlug, dayNumber)
	if err != nil {
		return
	}
	for _, record := range records {
		if record.ActivityIndex >= 0 && record.ActivityIndex < len(activities) {
			activities[record.ActivityIndex].Completed = true
		}
	}
}

// fallbackBundle is served whenever the authored template cannot be used:
// three fixed generic activities totalling 35 minutes.
func (s *PersonalizationService) fallbackBundle(trackSlug string, dayNumber int) *PersonalizedContent {
	trackName := trackSlug
	if track, err := s.Catalog.GetTrack(trackSlug); err == nil {
		trackName = track.Name
	}

	activities := []Activity{
		{
			ID:          fmt.Sprintf("%s-%d-generic-devotional", trackSlug, dayNumber),
			Type:        "devotional",
			Title:       "Devocional do dia",
			Description: "Um momento de quietude para começar o dia.",
			Duration:    devotionalDuration,
			Instructions: []string{
				"Separe um lugar silencioso",
				"Leia um salmo de sua preferência",
				"Agradeça por três coisas do seu dia",
			},
			Difficulty: 1,
			Points:     devotionalPoints,
			IsRequired: true,
		},
		{
			ID:          fmt.Sprintf("%s-%d-generic-reflection", trackSlug, dayNumber),
			Type:        "practice",
			Title:       "Reflexão do dia",
			Description: "Pare e observe como está sua relação com as telas hoje.",
			Duration:    10,
			Instructions: []string{
				"Anote quantas vezes pegou o celular sem motivo",
				"Identifique o momento mais difícil do dia",
				"Escreva uma frase sobre como quer agir amanhã",
			},
			Difficulty: 2,
			Points:     20,
			IsRequired: true,
		},
		{
			ID:          fmt.Sprintf("%s-%d-generic-practice", trackSlug, dayNumber),
			Type:        "practice",
			Title:       "Prática de presença",
			Description: "Dedique dez minutos a algo fora das telas.",
			Duration:    10,
			Instructions: []string{
				"Escolha uma atividade manual ou ao ar livre",
				"Deixe o celular em outro cômodo",
				"Observe como se sente ao terminar",
			},
			Difficulty: 2,
			Points:     20,
			IsRequired: false,
		},
	}

	totalPoints := 0
	estimatedTime := 0
	for _, a := range activities {
		totalPoints += a.Points
		estimatedTime += a.Duration
	}

	return &PersonalizedContent{
		DayNumber:     dayNumber,
		Title:         fmt.Sprintf("Dia %d - %s", dayNumber, trackName),
		Subtitle:      fmt.Sprintf("Dia %d", dayNumber),
		Description:   "Conteúdo do dia",
		Activities:    activities,
		MainFocus:     model.CategoryComportamento,
		Difficulty:    "easy",
		EstimatedTime: estimatedTime,
		Rewards:       Rewards{Points: totalPoints},
		Devotional: DevotionalContent{
			Verse:      "Salmos 46:10",
			Reflection: "Aquietai-vos e sabei que eu sou Deus.",
			Prayer:     "Senhor, ensina-me a aquietar o coração hoje.",
		},
		IsFallback: true,
	}
}

// ComputeDifficulty combines the track's day progression with a severity
// factor from the normalized score, bucketed into easy/medium/hard.
// Renovacao starts hard and eases after day 20, equilibrio escalates over
// its 21 days, liberdade stays gentle.
func ComputeDifficulty(trackSlug string, dayNumber, normalizedScore int) string {
	var base float64
	switch trackSlug {
	case string(model.TrackRenovacao):
		if dayNumber < 20 {
			base = 4.5
		} else {
			base = 3.0
		}
	case string(model.TrackEquilibrio):
		base = 2.0 + 2.0*float64(dayNumber-1)/20.0
	default:
		base = 2.0
	}

	factor := 1.0
	switch {
	case normalizedScore > 66:
		factor = 1.2
	case normalizedScore > 33:
		factor = 1.0
	default:
		factor = 0.8
	}

	score := base * factor
	switch {
	case score < 2.5:
		return "easy"
	case score < 3.8:
		return "medium"
	default:
		return "hard"
	}
}
