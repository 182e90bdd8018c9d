package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/infra/postgres"
)

const userColumns = `
	id, telegram_id, name, COALESCE(email, ''), password_hash, legacy_password,
	xp, level, energy, streak, skill_level, language, avatar_url, clan_name,
	completed_missions, achievements, weak_areas, last_active_day, created_at, last_login`

// UserRepository provides access to learners stored in PostgreSQL.
type UserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Returns ErrEmailExists when the email is taken.
func (r *UserRepository) Create(ctx context.Context, u *entities.User) error {
	query := `
		INSERT INTO users (
			id, telegram_id, name, email, password_hash, legacy_password,
			xp, level, energy, streak, skill_level, language, avatar_url, clan_name,
			completed_missions, achievements, weak_areas, last_active_day, created_at, last_login
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.db.Exec(ctx, query,
		u.ID,
		u.TelegramID,
		u.Name,
		nullIfEmpty(u.Email),
		u.PasswordHash,
		u.LegacyPassword,
		u.XP,
		u.Level,
		u.Energy,
		u.Streak,
		string(u.Skill),
		string(u.Language),
		u.AvatarURL,
		nullIfEmpty(u.Clan),
		nonNil(u.CompletedMissions),
		nonNil(u.Achievements),
		nonNil(u.WeakAreas),
		nullDay(u.LastActiveDay),
		u.CreatedAt,
		u.LastLogin,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// EnsureTelegramUser inserts a bot learner or refreshes the name of an
// existing one and returns the stored record.
func (r *UserRepository) EnsureTelegramUser(ctx context.Context, u *entities.User) (*entities.User, error) {
	query := `
		INSERT INTO users (id, telegram_id, name, skill_level, language, created_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (telegram_id) DO UPDATE
		SET name = EXCLUDED.name, last_login = EXCLUDED.last_login
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query,
		u.ID,
		u.TelegramID,
		u.Name,
		string(u.Skill),
		string(u.Language),
		u.CreatedAt,
	)

	stored, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("ensure telegram user: %w", err)
	}

	return stored, nil
}

// GetByID returns ErrUserNotFound if the user doesn't exist.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return r.getOne(ctx, "get user by id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail returns ErrUserNotFound if no user has the email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.getOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetByTelegramID returns ErrUserNotFound if the learner never started the bot.
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*entities.User, error) {
	return r.getOne(ctx, "get user by telegram id", `SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)
}

func (r *UserRepository) getOne(ctx context.Context, op, query string, arg any) (*entities.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

// Update saves every mutable field of the user.
func (r *UserRepository) Update(ctx context.Context, u *entities.User) error {
	query := `
		UPDATE users
		SET name = $2,
		    email = $3,
		    password_hash = $4,
		    legacy_password = $5,
		    xp = $6,
		    level = $7,
		    energy = $8,
		    streak = $9,
		    skill_level = $10,
		    language = $11,
		    avatar_url = $12,
		    clan_name = $13,
		    completed_missions = $14,
		    achievements = $15,
		    weak_areas = $16,
		    last_active_day = $17,
		    last_login = $18
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query,
		u.ID,
		u.Name,
		nullIfEmpty(u.Email),
		u.PasswordHash,
		u.LegacyPassword,
		u.XP,
		u.Level,
		u.Energy,
		u.Streak,
		string(u.Skill),
		string(u.Language),
		u.AvatarURL,
		nullIfEmpty(u.Clan),
		nonNil(u.CompletedMissions),
		nonNil(u.Achievements),
		nonNil(u.WeakAreas),
		nullDay(u.LastActiveDay),
		u.LastLogin,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("update user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// TopByXP returns up to limit users ordered by XP.
func (r *UserRepository) TopByXP(ctx context.Context, limit int) ([]*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE xp > 0 ORDER BY xp DESC, created_at LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top by xp: %w", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var (
		u             entities.User
		skill         string
		language      string
		clan          *string
		lastActiveDay *time.Time
	)

	err := row.Scan(
		&u.ID,
		&u.TelegramID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.LegacyPassword,
		&u.XP,
		&u.Level,
		&u.Energy,
		&u.Streak,
		&skill,
		&language,
		&u.AvatarURL,
		&clan,
		&u.CompletedMissions,
		&u.Achievements,
		&u.WeakAreas,
		&lastActiveDay,
		&u.CreatedAt,
		&u.LastLogin,
	)
	if err != nil {
		return nil, err
	}

	u.Skill = entities.ParseSkillLevel(skill)
	u.Language = entities.ParseLanguage(language)
	if clan != nil {
		u.Clan = *clan
	}
	if lastActiveDay != nil {
		u.LastActiveDay = *lastActiveDay
	}

	return &u, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullDay(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
