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

// ClanRepository stores clans and their members.
type ClanRepository struct {
	db postgres.DBTX
	tx *postgres.Transactor
}

// NewClanRepository creates a new ClanRepository.
func NewClanRepository(db postgres.DBTX, tx *postgres.Transactor) *ClanRepository {
	return &ClanRepository{db: db, tx: tx}
}

// Create inserts the clan with its leader as the first member.
// Returns ErrClanExists if the name is taken.
func (r *ClanRepository) Create(ctx context.Context, clan entities.Clan) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `INSERT INTO clans (name, leader_email, created_at) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, query, clan.Name, clan.Leader, clan.CreatedAt); err != nil {
			if isUniqueViolation(err) {
				return ErrClanExists
			}
			return fmt.Errorf("create clan: %w", err)
		}

		return addMember(ctx, tx, clan.Name, clan.Leader, clan.CreatedAt)
	})
}

// AddMember puts the user into an existing clan. Joining twice is a no-op.
func (r *ClanRepository) AddMember(ctx context.Context, clanName, email string, now time.Time) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT TRUE FROM clans WHERE name = $1`, clanName).Scan(&exists)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrClanNotFound
			}
			return fmt.Errorf("get clan: %w", err)
		}

		return addMember(ctx, tx, clanName, email, now)
	})
}

func addMember(ctx context.Context, db postgres.DBTX, clanName, email string, now time.Time) error {
	query := `
		INSERT INTO clan_members (clan_name, email, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (clan_name, email) DO NOTHING
	`
	if _, err := db.Exec(ctx, query, clanName, email, now); err != nil {
		return fmt.Errorf("add clan member: %w", err)
	}

	if _, err := db.Exec(ctx, `UPDATE users SET clan_name = $1 WHERE email = $2`, clanName, email); err != nil {
		return fmt.Errorf("set user clan: %w", err)
	}

	return nil
}

// List returns all clans with their member emails.
func (r *ClanRepository) List(ctx context.Context) ([]entities.Clan, error) {
	query := `
		SELECT c.name, c.leader_email, c.created_at,
		       COALESCE(array_agg(m.email ORDER BY m.joined_at) FILTER (WHERE m.email IS NOT NULL), '{}')
		FROM clans c
		LEFT JOIN clan_members m ON m.clan_name = c.name
		GROUP BY c.name, c.leader_email, c.created_at
		ORDER BY c.created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clans: %w", err)
	}
	defer rows.Close()

	clans := []entities.Clan{}
	for rows.Next() {
		var c entities.Clan
		if err := rows.Scan(&c.Name, &c.Leader, &c.CreatedAt, &c.Members); err != nil {
			return nil, fmt.Errorf("scan clan: %w", err)
		}
		clans = append(clans, c)
	}

	return clans, rows.Err()
}

// Leaderboard ranks clans by the total XP of members that still have accounts.
func (r *ClanRepository) Leaderboard(ctx context.Context) ([]entities.ClanStanding, error) {
	query := `
		SELECT c.name,
		       COALESCE(SUM(u.xp), 0)::INTEGER,
		       COUNT(u.id)::INTEGER,
		       c.leader_email,
		       COALESCE(array_agg(m.email ORDER BY m.joined_at) FILTER (WHERE m.email IS NOT NULL), '{}')
		FROM clans c
		LEFT JOIN clan_members m ON m.clan_name = c.name
		LEFT JOIN users u ON u.email = m.email
		GROUP BY c.name, c.leader_email
		ORDER BY 2 DESC, c.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("clan leaderboard: %w", err)
	}
	defer rows.Close()

	standings := []entities.ClanStanding{}
	for rows.Next() {
		var s entities.ClanStanding
		if err := rows.Scan(&s.Name, &s.TotalXP, &s.MemberCount, &s.Leader, &s.Members); err != nil {
			return nil, fmt.Errorf("scan clan standing: %w", err)
		}
		standings = append(standings, s)
	}

	return standings, rows.Err()
}

// MembersStatus returns members of the clan with their activity on day.
func (r *ClanRepository) MembersStatus(ctx context.Context, clanName string, day time.Time) ([]entities.MemberStatus, error) {
	query := `
		SELECT m.email, u.name, u.xp, u.avatar_url,
		       COALESCE(a.mission_completed, FALSE),
		       COALESCE(a.mission_skipped, FALSE),
		       a.email IS NOT NULL
		FROM clan_members m
		JOIN users u ON u.email = m.email
		LEFT JOIN daily_activity a ON a.email = m.email AND a.day = $2
		WHERE m.clan_name = $1
		ORDER BY u.xp DESC, m.joined_at
	`

	rows, err := r.db.Query(ctx, query, clanName, day)
	if err != nil {
		return nil, fmt.Errorf("clan members status: %w", err)
	}
	defer rows.Close()

	members := []entities.MemberStatus{}
	for rows.Next() {
		var m entities.MemberStatus
		if err := rows.Scan(
			&m.Email,
			&m.Name,
			&m.XP,
			&m.AvatarURL,
			&m.MissionCompleted,
			&m.MissionSkipped,
			&m.HasActivityToday,
		); err != nil {
			return nil, fmt.Errorf("scan member status: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}
