package service

import (
	"fmt"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

const localeKK = "kk"

// questionTemplate holds a question in Russian and Kazakh. Correct answers are
// derived from the Russian wording.
type questionTemplate struct {
	ru string
	kk string
}

func (t questionTemplate) text(locale string) string {
	if locale == localeKK {
		return t.kk
	}
	return t.ru
}

var questionTemplates = map[entities.SkillLevel][]questionTemplate{
	entities.SkillBeginner: {
		{"Когда произошло событие, описанное в тексте?", "Мәтінде сипатталған оқиға қашан болды?"},
		{"Кто главный герой описанного события?", "Сипатталған оқиғаның басты кейіпкері кім?"},
		{"Как называется событие, о котором говорится в тексте?", "Мәтінде қай оқиға туралы айтылады?"},
		{"Где происходило описанное событие?", "Сипатталған оқиға қайда болды?"},
		{"Почему это событие важно?", "Бұл оқиға неліктен маңызды?"},
	},
	entities.SkillIntermediate: {
		{"Объясните причину описанного события.", "Сипатталған оқиғаның себебін түсіндіріңіз."},
		{"Каковы последствия описанного события?", "Сипатталған оқиғаның салдары қандай?"},
		{"Сравните это событие с другими историческими событиями.", "Бұл оқиғаны басқа тарихи оқиғалармен салыстырыңыз."},
		{"Какие персонажи участвовали в этом событии?", "Бұл оқиғаға қай кейіпкерлер қатысты?"},
		{"Оцените значимость этого события.", "Бұл оқиғаның маңызын бағалаңыз."},
	},
	entities.SkillAdvanced: {
		{"Проанализируйте влияние этого события на дальнейшее развитие.", "Бұл оқиғаның әрі қарай дамуына әсерін талдаңыз."},
		{"Сформулируйте критическое мнение о данном событии.", "Бұл оқиға туралы сын тұрғысынан пікір білдіріңіз."},
		{"Свяжите это событие с современностью.", "Бұл оқиғаны қазіргі таңмен байланыстырыңыз."},
		{"Обоснуйте важность этого события в историческом контексте.", "Бұл оқиғаның тарихи контекстегі маңызын негіздеңіз."},
		{"Выскажите свое мнение о последствиях этого события.", "Бұл оқиғаның салдары туралы өз пікіріңізді білдіріңіз."},
	},
}

const (
	genericAnswer        = "Ответ можно найти в представленном тексте"
	genericAnswerFact    = "Ответ находится в тексте"
	genericAnswerKeyword = "Персонаж из текста"
)

var distractors = []string{
	"Это не упоминалось в тексте",
	"Событие произошло позже",
	"Это другой исторический период",
	"Персонаж не связан с этим событием",
}

func topicQuestion(title, locale string) string {
	if locale == localeKK {
		return fmt.Sprintf("Тізімделген нәрселердің қайсысы '%s' тақырыбына жатады?", title)
	}
	return fmt.Sprintf("Что из перечисленного относится к теме '%s'?", title)
}

func notRelatedOption(locale string) string {
	if locale == localeKK {
		return "Бұл тақырыпқа жатпайды"
	}
	return "Это не относится к теме"
}

func orderingQuestion(locale string) string {
	if locale == localeKK {
		return "Оқиғаларды хронологиялық тәртіпте орналастырыңыз:"
	}
	return "Расставьте события в хронологическом порядке:"
}

func analysisQuestion(title, locale string) string {
	if locale == localeKK {
		return fmt.Sprintf("'%s' оқиғасының Қазақстанның дамуы үшін маңызын талдаңыз.", title)
	}
	return fmt.Sprintf("Проанализируйте значение события '%s' для развития Казахстана.", title)
}

func analysisAnswer(locale string) string {
	if locale == localeKK {
		return "Жауап оқиғаның әсерін талдауы тиіс"
	}
	return "Ответ должен содержать анализ влияния события"
}

type feedbackKind int

const (
	feedbackPositive feedbackKind = iota
	feedbackConstructive
	feedbackEncouraging
)

var feedbackMessages = map[string]map[feedbackKind][]string{
	"ru": {
		feedbackPositive: {
			"Отлично! Вы хорошо справляетесь!",
			"Превосходно! Так держать!",
			"Великолепно! Вы делаете успехи!",
			"Замечательно! Продолжайте в том же духе!",
			"Прекрасно! Вы отлично понимаете материал!",
		},
		feedbackConstructive: {
			"Хорошая попытка! Давайте попробуем еще раз.",
			"Вы на правильном пути! Обратите внимание на детали.",
			"Почти верно! Попробуйте еще раз.",
			"Не совсем так, но вы близки к правильному ответу.",
			"Еще одна попытка, и у вас получится!",
		},
		feedbackEncouraging: {
			"Не переживайте! Учиться - это процесс.",
			"Каждая ошибка - это шаг к успеху.",
			"Вы сможете! Главное - не сдаваться.",
			"Попробуйте еще раз, у вас всё получится!",
			"Ошибки помогают нам учиться лучше.",
		},
	},
	localeKK: {
		feedbackPositive: {
			"Керемет! Жақсы келе жатырсыз!",
			"Тамаша! Осылай жалғастырыңыз!",
			"Өте жақсы! Жетістігіңіз көрініп тұр!",
			"Ғажап! Осы қарқынмен жүре беріңіз!",
			"Жарайсыз! Материалды жақсы түсінесіз!",
		},
		feedbackConstructive: {
			"Жақсы әрекет! Тағы бір рет көрейік.",
			"Дұрыс жолдасыз! Бөлшектерге назар аударыңыз.",
			"Дұрысқа жақын! Тағы байқап көріңіз.",
			"Толық емес, бірақ дұрыс жауапқа жақынсыз.",
			"Тағы бір әрекет, сонда міндетті түрде шығады!",
		},
		feedbackEncouraging: {
			"Уайымдамаңыз! Оқу деген үдеріс.",
			"Әр қате табысқа бастайтын қадам.",
			"Сіз істей аласыз! Бастысы берілмеу.",
			"Тағы байқап көріңіз, бәрі де шығады!",
			"Қателер бізге жақсырақ үйренуге көмектеседі.",
		},
	},
}

const (
	reasonReview    = "Повторите материал по теме '%s'"
	reasonEasier    = "Попробуйте материал среднего уровня перед возвращением к сложному"
	reasonChallenge = "Попробуйте более сложный материал"
)
