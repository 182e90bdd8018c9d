package entities

// Achievement is a one-time reward granted when a condition is first met.
type Achievement struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	XPReward    int    `json:"xp_reward"`
}

const (
	AchievementFirstMission   = "first_mission"
	AchievementVoiceMaster    = "voice_master"
	AchievementHistoryExpert  = "history_expert"
	AchievementLanguagePro    = "language_pro"
	AchievementStreakChampion = "streak_champion"
)

// Achievements is the catalog in the order they are checked.
var Achievements = []Achievement{
	{Code: AchievementFirstMission, Name: "Первая миссия", Description: "Выполните первую миссию", XPReward: 5},
	{Code: AchievementVoiceMaster, Name: "Мастер голоса", Description: "Выполните 10 голосовых миссий", XPReward: 10},
	{Code: AchievementHistoryExpert, Name: "Эксперт по истории", Description: "Ответьте правильно на 20 вопросов по истории", XPReward: 15},
	{Code: AchievementLanguagePro, Name: "Профи языка", Description: "Ответьте правильно на 20 вопросов по языку", XPReward: 15},
	{Code: AchievementStreakChampion, Name: "Чемпион по дням", Description: "Изучайте каждый день в течение 7 дней подряд", XPReward: 20},
}
