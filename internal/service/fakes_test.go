package service

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/llm"
	"github.com/aliskhannn/batyr-bol/internal/repository"
)

type fakeUsers struct {
	users     map[string]*entities.User
	updateErr error
}

func newFakeUsers(users ...*entities.User) *fakeUsers {
	f := &fakeUsers{users: make(map[string]*entities.User)}
	for _, u := range users {
		f.put(u)
	}
	return f
}

func (f *fakeUsers) put(u *entities.User) {
	c := *u
	f.users[u.ID] = &c
}

func (f *fakeUsers) find(match func(*entities.User) bool) (*entities.User, error) {
	for _, u := range f.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUsers) Create(_ context.Context, u *entities.User) error {
	if _, err := f.GetByEmail(context.Background(), u.Email); err == nil {
		return repository.ErrEmailExists
	}
	f.put(u)
	return nil
}

func (f *fakeUsers) EnsureTelegramUser(ctx context.Context, u *entities.User) (*entities.User, error) {
	existing, err := f.GetByTelegramID(ctx, *u.TelegramID)
	if err == nil {
		existing.Name = u.Name
		f.put(existing)
		return existing, nil
	}
	f.put(u)
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entities.User, error) {
	return f.find(func(u *entities.User) bool { return u.ID == id })
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	return f.find(func(u *entities.User) bool { return u.Email != "" && u.Email == email })
}

func (f *fakeUsers) GetByTelegramID(_ context.Context, telegramID int64) (*entities.User, error) {
	return f.find(func(u *entities.User) bool { return u.TelegramID != nil && *u.TelegramID == telegramID })
}

func (f *fakeUsers) Update(_ context.Context, u *entities.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.users[u.ID]; !ok {
		return repository.ErrUserNotFound
	}
	f.put(u)
	return nil
}

func (f *fakeUsers) TopByXP(_ context.Context, limit int) ([]*entities.User, error) {
	var top []*entities.User
	for _, u := range f.users {
		if u.XP > 0 {
			top = append(top, u)
		}
	}
	sort.Slice(top, func(i, j int) bool { return top[i].XP > top[j].XP })
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

type fakeAnswers struct {
	records []entities.AnswerRecord
}

func (f *fakeAnswers) Append(_ context.Context, rec entities.AnswerRecord) error {
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeAnswers) ListByUser(_ context.Context, userID string) ([]entities.AnswerRecord, error) {
	var out []entities.AnswerRecord
	for _, rec := range f.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeContent struct {
	items []entities.ContentItem
}

func (f *fakeContent) ByType(t entities.ContentType) []entities.ContentItem {
	var out []entities.ContentItem
	for _, item := range f.items {
		if item.Topic == t {
			out = append(out, item)
		}
	}
	return out
}

func (f *fakeContent) All() []entities.ContentItem {
	return f.items
}

var (
	historyBeginner = entities.ContentItem{
		Title:      "Қазақ хандығының құрылуы",
		Text:       "Қазақ хандығы 1465 жылы құрылды.",
		Topic:      entities.ContentHistory,
		Difficulty: entities.SkillBeginner,
		KeyFacts:   []string{"1465 год", "Керей и Жанибек", "Козыбасы"},
		Keywords:   []string{"Керей", "Жанибек"},
	}
	historyIntermediate = entities.ContentItem{
		Title:      "Анракайская битва",
		Text:       "Анырақай шайқасы 1729 жылы болды.",
		Topic:      entities.ContentHistory,
		Difficulty: entities.SkillIntermediate,
		KeyFacts:   []string{"1729 год", "победа над джунгарами"},
		Keywords:   []string{"Абулхаир"},
	}
	languageBeginner = entities.ContentItem{
		Title:      "Сәлемдесу",
		Text:       "Сәлеметсіз бе - вежливое приветствие.",
		Topic:      entities.ContentLanguage,
		Difficulty: entities.SkillBeginner,
		KeyFacts:   []string{"Сәлеметсіз бе"},
		Keywords:   []string{"приветствие"},
	}
)

func newTestContent() *fakeContent {
	return &fakeContent{items: []entities.ContentItem{historyBeginner, historyIntermediate, languageBeginner}}
}

type completion struct {
	text  string
	model string
	err   error
}

// fakeCompleter replays responses in order and repeats the last one.
type fakeCompleter struct {
	configured bool
	responses  []completion
	prompts    []llm.Prompt
}

func (f *fakeCompleter) Configured() bool {
	return f.configured
}

func (f *fakeCompleter) CompleteWithModel(_ context.Context, p llm.Prompt) (string, string, error) {
	f.prompts = append(f.prompts, p)
	if !f.configured {
		return "", "", llm.ErrNotConfigured
	}
	i := min(len(f.prompts), len(f.responses)) - 1
	r := f.responses[i]
	return r.text, r.model, r.err
}

type fakeClient struct {
	configured bool
	text       string
	err        error
	prompts    []llm.Prompt
}

func (f *fakeClient) Name() string     { return "openai" }
func (f *fakeClient) Model() string    { return "gpt-4o-mini" }
func (f *fakeClient) Configured() bool { return f.configured }

func (f *fakeClient) Complete(_ context.Context, p llm.Prompt) (string, error) {
	f.prompts = append(f.prompts, p)
	if !f.configured {
		return "", llm.ErrNotConfigured
	}
	return f.text, f.err
}

type fakeFallbacks struct {
	lessons map[string]entities.LearningContent
	topics  map[int][]string
}

func (f *fakeFallbacks) Lesson(topic string) (*entities.LearningContent, bool) {
	l, ok := f.lessons[topic]
	if !ok {
		return nil, false
	}
	return &l, true
}

func (f *fakeFallbacks) DefaultTopics(level int) []string {
	return f.topics[level]
}

func (f *fakeFallbacks) DefaultCharacter() string {
	return "Абылай хан"
}

func (f *fakeFallbacks) Mission(character string) entities.MissionChoice {
	return entities.MissionChoice{
		Text:         "Offline mission for " + character,
		Options:      []string{"a", "b", "c"},
		CorrectIndex: 1,
	}
}

func (f *fakeFallbacks) Scenario(_ string, number int, locale string) entities.Scenario {
	return entities.Scenario{Scenario: number, Text: "offline " + locale}
}

type fakeFetcher struct {
	urls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, urls []string) ([]string, []string) {
	f.urls = urls
	return []string{"official text"}, urls[:1]
}

type fakeClans struct {
	clans   map[string]entities.Clan
	members []entities.MemberStatus
	day     time.Time
}

func newFakeClans() *fakeClans {
	return &fakeClans{clans: make(map[string]entities.Clan)}
}

func (f *fakeClans) Create(_ context.Context, clan entities.Clan) error {
	if _, ok := f.clans[clan.Name]; ok {
		return repository.ErrClanExists
	}
	f.clans[clan.Name] = clan
	return nil
}

func (f *fakeClans) AddMember(_ context.Context, clanName, email string, _ time.Time) error {
	clan, ok := f.clans[clanName]
	if !ok {
		return repository.ErrClanNotFound
	}
	if !slices.Contains(clan.Members, email) {
		clan.Members = append(clan.Members, email)
	}
	f.clans[clanName] = clan
	return nil
}

func (f *fakeClans) List(context.Context) ([]entities.Clan, error) {
	var out []entities.Clan
	for _, c := range f.clans {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClans) Leaderboard(context.Context) ([]entities.ClanStanding, error) {
	return nil, nil
}

func (f *fakeClans) MembersStatus(_ context.Context, _ string, day time.Time) ([]entities.MemberStatus, error) {
	f.day = day
	return f.members, nil
}

type fakeActivity struct {
	tracked []entities.DailyActivity
	days    map[string]entities.DailyActivity
}

func (f *fakeActivity) Track(_ context.Context, a entities.DailyActivity) error {
	f.tracked = append(f.tracked, a)
	if f.days == nil {
		f.days = make(map[string]entities.DailyActivity)
	}
	key := a.Email + "|" + a.Day.Format(time.DateOnly)
	if prev, ok := f.days[key]; ok {
		a = prev.Merge(a)
	}
	f.days[key] = a
	return nil
}

type fakeContacts struct {
	saved []entities.ContactMessage
}

func (f *fakeContacts) Save(_ context.Context, m entities.ContactMessage) error {
	f.saved = append(f.saved, m)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
