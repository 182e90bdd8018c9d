package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DuelService acknowledges duel challenges between users. Challenges are not
// persisted yet.
type DuelService struct {
	logger *zap.Logger
}

func NewDuelService(logger *zap.Logger) *DuelService {
	return &DuelService{logger: logger}
}

// Challenge returns the message shown to the challenger.
func (s *DuelService) Challenge(from, to string) (string, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" {
		return "", ErrMissingFields
	}

	s.logger.Info("duel challenge", zap.String("from", from), zap.String("to", to))

	return fmt.Sprintf("Вызов брошен пользователю %s!", to), nil
}
