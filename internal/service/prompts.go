package service

import (
	"fmt"
	"strings"
)

var contentLevelDescriptions = map[int]string{
	1: "простые сказки и легенды для начинающих",
	2: "средняя сложность, основные исторические факты",
	3: "сложные темы, детальная информация",
	4: "официальные документы, сложные тексты",
	5: "углубленный анализ исторических источников",
	6: "экспертный уровень, научные дискуссии",
}

const contentSystemPrompt = "Ты - эксперт по казахской истории и языку. Отвечай ТОЛЬКО валидным JSON, без markdown или пояснений."

func contentPrompt(topic string, level int, sources []string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Создай образовательный контент по казахской теме %q для уровня %d (%s).\n\n",
		topic, level, contentLevelDescriptions[level])

	if len(sources) > 0 {
		sb.WriteString("Используй только факты из следующих официальных источников:\n")
		for i, text := range sources {
			fmt.Fprintf(&sb, "--- Источник %d ---\n%s\n", i+1, truncateRunes(text, 3000))
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, `Напиши краткий текст на казахском языке (50-100 слов) по этой теме.
Затем создай 4 вопроса с вариантами ответов по этому тексту.

Верни строго JSON:
{
    "text_kz": "краткий текст на казахском языке по теме %s",
    "questions_kz": ["вопрос 1", "вопрос 2", "вопрос 3", "вопрос 4"],
    "options_kz": [["вариант", "вариант", "вариант", "вариант"], ...4 массива по 4 варианта],
    "correct_answers": [индекс правильного варианта для каждого вопроса, от 0 до 3]
}

ВАЖНО:
- Вопросы должны относиться к тексту
- Варианты ответов должны быть реальными, а не шаблонами
- Все на казахском языке`, topic)

	return sb.String()
}

const translatePrompt = "Переведи следующий текст с казахского языка на русский. Верни только перевод, без пояснений.\n\n%s"

var personalLevelDescriptions = map[int]string{
	1: "бастауыш деңгей, қарапайым сөздер мен қысқа сөйлемдер",
	2: "орташа деңгей, негізгі тарихи фактілер",
	3: "жоғары деңгей, толық ақпарат",
	4: "эксперт деңгейі, терең талдау",
}

func personalizedPrompt(level int, avoid, focus string) string {
	desc, ok := personalLevelDescriptions[level]
	if !ok {
		desc = "орташа"
	}

	return fmt.Sprintf(`Сен Қазақстанның білім беру жүйесінің AI көмекшісісің. Оқушыға қазақ тілінде жекелендірілген білім беру миссиясын құр.

ОҚУШЫ ПРОФИЛІ:
- Деңгей: %d (%s)
- Орындалған миссиялар: %s
- Назар аудару қажет салалар: %s

ТАПСЫРМА:
Қазақстан тарихы бойынша 100-150 сөзден тұратын қызықты мәтін жаз. Мәтін оқушының деңгейіне сәйкес болуы керек.

МАҢЫЗДЫ ЕРЕЖЕЛЕР:
1. Мәтінде нақты фактілер, аттар, күндер, сандар болуы керек
2. Әр сұрақтың дұрыс жауабы мәтіннің ішінде тікелей айтылған болуы керек
3. Жалпы білімге негізделген сұрақтар жарамайды

Тек қана келесі JSON форматында жауап бер:
{
    "text_kz": "100-150 сөзден тұратын қазақша мәтін",
    "questions_kz": ["сұрақ 1", "сұрақ 2", "сұрақ 3"],
    "options_kz": [["нұсқа", "нұсқа", "нұсқа", "нұсқа"], ["нұсқа", "нұсқа", "нұсқа", "нұсқа"], ["нұсқа", "нұсқа", "нұсқа", "нұсқа"]],
    "correct_answers": [0, 1, 2],
    "topic": "Мәтіннің тақырыбы"
}`, level, desc, avoid, focus)
}

// characterContext describes the setting of choice missions for a character.
type characterContext struct {
	events []string
	rules  string
}

var characterContexts = map[string]characterContext{
	"Абылай хан": {
		events: []string{"присоединение Младшего жуза", "войны с джунгарами", "дипломатические переговоры"},
		rules:  "помочь народу выиграть на войне, масштабировать территорию, укрепить ханство",
	},
	"Абай": {
		events: []string{"создание стихотворений", "реформы образования", "просветительская деятельность"},
		rules:  "учить детей писать стихи, создавать произведения, развивать образование",
	},
	"Айтеке би": {
		events: []string{"бийские суды", "дипломатия", "разрешение споров"},
		rules:  "справедливо судить, решать конфликты, поддерживать мир",
	},
}

func missionComplexity(level int) string {
	switch {
	case level <= 2:
		return "простой"
	case level <= 4:
		return "сложный"
	default:
		return "экспертный"
	}
}

func missionPrompt(character string, ctx characterContext, level int, previous []string) string {
	prev := "нет"
	if len(previous) > 0 {
		prev = strings.Join(previous, "; ")
	}

	return fmt.Sprintf(`Создай %s игровую миссию для игрока уровня %d от лица персонажа %s.
Исторические события: %s.
Цель игрока: %s.
Не повторяй предыдущие миссии: %s.

Верни строго JSON:
{
    "text": "описание ситуации на русском языке (1-3 предложения)",
    "options": ["вариант 1", "вариант 2", "вариант 3"],
    "correctIndex": 0,
    "explanation": "почему этот вариант исторически верный"
}`, missionComplexity(level), level, character, strings.Join(ctx.events, ", "), ctx.rules, prev)
}

const scenarioSystemPrompt = "Ты - эксперт по казахской истории и создатель интерактивных образовательных игр. Отвечай ТОЛЬКО валидным JSON, без markdown или пояснений."

const gradingSystemPrompt = "Ты - преподаватель истории Казахстана. Оцени ответ ученика. Отвечай ТОЛЬКО валидным JSON."

func gradingPrompt(question, answer, correct, context string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Вопрос: %s\nОтвет ученика: %s\n", question, answer)
	if correct != "" {
		fmt.Fprintf(&sb, "Эталонный ответ: %s\n", correct)
	}
	if context != "" {
		fmt.Fprintf(&sb, "Контекст: %s\n", context)
	}

	sb.WriteString(`
Верни JSON:
{
    "is_correct": true или false,
    "score": число от 0 до 100,
    "feedback": "краткий отзыв",
    "suggestions": "что улучшить",
    "explanation": "правильный ответ с пояснением"
}`)

	return sb.String()
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
