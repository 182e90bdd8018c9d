package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/infra/postgres"
)

// AnswerRepository stores the answer history used for adaptive difficulty.
type AnswerRepository struct {
	db postgres.DBTX
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(db postgres.DBTX) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// Append adds one evaluated answer to the user's history.
func (r *AnswerRepository) Append(ctx context.Context, rec entities.AnswerRecord) error {
	query := `
		INSERT INTO answer_history (user_id, question_id, user_answer, correct, level, topic, difficulty, answered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		rec.UserID,
		rec.QuestionID,
		rec.UserAnswer,
		rec.Correct,
		string(rec.Level),
		string(rec.Topic),
		string(rec.Difficulty),
		rec.AnsweredAt,
	)
	if err != nil {
		return fmt.Errorf("append answer: %w", err)
	}

	return nil
}

// ListByUser returns the user's answers in the order they were given.
func (r *AnswerRepository) ListByUser(ctx context.Context, userID string) ([]entities.AnswerRecord, error) {
	query := `
		SELECT user_id, question_id, user_answer, correct, level, topic, difficulty, answered_at
		FROM answer_history
		WHERE user_id = $1
		ORDER BY answered_at, id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	var history []entities.AnswerRecord
	for rows.Next() {
		var (
			rec                      entities.AnswerRecord
			level, topic, difficulty string
		)
		if err := rows.Scan(
			&rec.UserID,
			&rec.QuestionID,
			&rec.UserAnswer,
			&rec.Correct,
			&level,
			&topic,
			&difficulty,
			&rec.AnsweredAt,
		); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}

		rec.Level = entities.ParseSkillLevel(level)
		rec.Topic = entities.ContentType(topic)
		rec.Difficulty = entities.ParseSkillLevel(difficulty)
		history = append(history, rec)
	}

	return history, rows.Err()
}
