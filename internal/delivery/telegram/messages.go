// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/service"
)

const msgWelcome = "🇰🇿 BATYR BOL\n\n" +
	"Тарих пен қазақ тілін миссия арқылы үйренеміз!\n\n" +
	"Тілді таңда:\n" +
	"/kz — Қазақша\n" +
	"/ru — Русский"

// texts is the set of bot phrases in one language.
type texts struct {
	languageSet        string
	needMission        string
	answerFormat       string
	questionNotNumber  string
	invalidQuestion    string
	internalError      string
	noContent          string
	missionComplete    string
	questionsHeader    string
	answerHint         string
	hint               string
	newAchievement     string
	bonus              string
	profileLevel       string
	profileSkill       string
	profileStreak      string
	profileToday       string
	profileAchievement string
	days               string
	leaderboardTitle   string
	leaderboardEmpty   string
	noRecommendations  string
	recommendations    string
	help               string
}

var catalog = map[entities.Language]texts{
	entities.LanguageKZ: {
		languageSet:        "✅ Қазақ тілі таңдалды\n/missions",
		needMission:        "Алдымен /missions командасын жіберіңіз",
		answerFormat:       "Формат: /answer <нөмір> <жауап>",
		questionNotNumber:  "❗ Сұрақ нөмірі сан болуы керек",
		invalidQuestion:    "❗ Сұрақ нөмірі қате",
		internalError:      "Қате пайда болды. Кейінірек қайталап көріңіз.",
		noContent:          "Әзірге миссиялар жоқ. Кейінірек қайталап көріңіз.",
		missionComplete:    "🎉 Миссия аяқталды! Жаңа миссия: /missions",
		questionsHeader:    "❓ Сұрақтар:",
		answerHint:         "✍️ Жауап беру үшін:\n/answer <нөмір> <жауап>\nнемесе жай ғана жауап жазыңыз",
		hint:               "💡 Көмек: Дұрыс жауап - %s",
		newAchievement:     "🏆 Жаңа жетістік: %s (+%d XP)",
		bonus:              "🎁 Бонус: +%d XP",
		profileLevel:       "🏆 Деңгей",
		profileSkill:       "📚 Білім деңгейі",
		profileStreak:      "🔥 Streak",
		profileToday:       "📌 Бүгін",
		profileAchievement: "🎖 Жетістіктер",
		days:               "күн",
		leaderboardTitle:   "🏆 Лидерборд:",
		leaderboardEmpty:   "Әзірге рейтинг бос",
		noRecommendations:  "Әзірге сіз үшін ұсыныстар жоқ. Көбірек миссиялар орындаңыз!",
		recommendations:    "🤖 Сіз үшін ұсыныстар:",
		help: "🤖 BATYR BOL Ботының командалары:\n\n" +
			"/start - Ботты бастау\n" +
			"/missions - Жаңа миссиялар алу\n" +
			"/answer <нөмір> <жауап> - Жауап беру\n" +
			"/profile - Профиліңізді көру\n" +
			"/leaderboard - Лидерлер кестесі\n" +
			"/recommendations - Ұсыныстар\n" +
			"/help - Көмек\n" +
			"/kz - Қазақ тіліне ауысу\n" +
			"/ru - Орыс тіліне ауысу",
	},
	entities.LanguageRU: {
		languageSet:        "✅ Русский язык выбран\n/missions",
		needMission:        "Сначала отправьте команду /missions",
		answerFormat:       "Формат: /answer <номер> <ответ>",
		questionNotNumber:  "❗ Номер вопроса должен быть числом",
		invalidQuestion:    "❗ Неверный номер вопроса",
		internalError:      "Что‑то пошло не так. Попробуйте позже.",
		noContent:          "Миссий пока нет. Попробуйте позже.",
		missionComplete:    "🎉 Миссия завершена! Новая миссия: /missions",
		questionsHeader:    "❓ Вопросы:",
		answerHint:         "✍️ Чтобы ответить:\n/answer <номер> <ответ>\nили просто напишите ответ",
		hint:               "💡 Подсказка: Правильный ответ - %s",
		newAchievement:     "🏆 Новое достижение: %s (+%d XP)",
		bonus:              "🎁 Бонус: +%d XP",
		profileLevel:       "🏆 Уровень",
		profileSkill:       "📚 Уровень знаний",
		profileStreak:      "🔥 Streak",
		profileToday:       "📌 Сегодня",
		profileAchievement: "🎖 Достижения",
		days:               "дней",
		leaderboardTitle:   "🏆 Лидерборд:",
		leaderboardEmpty:   "Рейтинг пока пуст",
		noRecommendations:  "Пока нет рекомендаций для вас. Выполните больше миссий!",
		recommendations:    "🤖 Рекомендации для вас:",
		help: "🤖 Команды бота BATYR BOL:\n\n" +
			"/start - Начать\n" +
			"/missions - Новая миссия\n" +
			"/answer <номер> <ответ> - Ответить\n" +
			"/profile - Ваш профиль\n" +
			"/leaderboard - Таблица лидеров\n" +
			"/recommendations - Рекомендации\n" +
			"/help - Помощь\n" +
			"/kz - Казахский язык\n" +
			"/ru - Русский язык",
	},
}

func textFor(lang entities.Language) texts {
	if t, ok := catalog[lang]; ok {
		return t
	}
	return catalog[entities.LanguageKZ]
}

func formatMission(m *entities.Mission) string {
	t := textFor(m.Language)

	var sb strings.Builder
	fmt.Fprintf(&sb, "📖 %s\n\n%s\n\n%s\n\n", m.Content.Title, m.Content.Text, t.questionsHeader)

	for i, q := range m.Questions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, q.Text)
		for j, option := range q.Options {
			fmt.Fprintf(&sb, "   %d) %s\n", j+1, option)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(t.answerHint)
	return sb.String()
}

func formatAnswerResult(lang entities.Language, res *service.AnswerResult) string {
	t := textFor(lang)

	var sb strings.Builder
	if !res.Correct {
		fmt.Fprintf(&sb, "❌ %s", res.Feedback)
		if res.Hint != "" {
			sb.WriteString("\n")
			fmt.Fprintf(&sb, t.hint, res.Hint)
		}
		return sb.String()
	}

	fmt.Fprintf(&sb, "✅ %s\n+%d XP", res.Feedback, res.XPGained)

	var bonus int
	for _, a := range res.Achievements {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, t.newAchievement, a.Name, a.XPReward)
		bonus += a.XPReward
	}
	if bonus > 0 {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, t.bonus, bonus)
	}

	return sb.String()
}

func formatProfile(u *entities.User) string {
	t := textFor(u.Language)

	var sb strings.Builder
	sb.WriteString("👤 Профиль\n\n")
	fmt.Fprintf(&sb, "⭐ XP: %d\n", u.XP)
	fmt.Fprintf(&sb, "%s: %d\n", t.profileLevel, u.Level)
	fmt.Fprintf(&sb, "%s: %s\n", t.profileSkill, u.Skill)
	fmt.Fprintf(&sb, "%s: %d %s\n", t.profileStreak, u.Streak, t.days)
	fmt.Fprintf(&sb, "%s: %d\n", t.profileToday, len(u.CompletedMissions))
	fmt.Fprintf(&sb, "%s: %d", t.profileAchievement, len(u.Achievements))

	return sb.String()
}

func formatLeaderboard(lang entities.Language, users []*entities.User) string {
	t := textFor(lang)
	if len(users) == 0 {
		return t.leaderboardEmpty
	}

	var sb strings.Builder
	sb.WriteString(t.leaderboardTitle)
	sb.WriteString("\n\n")
	for i, u := range users {
		name := u.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		fmt.Fprintf(&sb, "%d. %s: %d XP\n", i+1, name, u.XP)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatRecommendations(lang entities.Language, recs []service.Recommendation) string {
	t := textFor(lang)
	if len(recs) == 0 {
		return t.noRecommendations
	}

	var sb strings.Builder
	sb.WriteString(t.recommendations)
	sb.WriteString("\n\n")
	for i, rec := range recs {
		fmt.Fprintf(&sb, "%d. %s\n   📖 %s\n\n", i+1, rec.Reason, rec.Content.Title)
	}

	return strings.TrimRight(sb.String(), "\n")
}
