package ports

import (
	"context"

	"trashpiles/internal/domain"
)

// PlayerRecord is the cross-match progression persisted per user.
type PlayerRecord struct {
	Progress   domain.Progress         `json:"progress"`
	Challenges domain.PlayerChallenges `json:"challenges"`
}

// ProgressPort persists skill, ability and challenge progression between
// matches. Load returns found=false for users who have never played.
type ProgressPort interface {
	Load(ctx context.Context, userID string) (PlayerRecord, bool, error)
	Save(ctx context.Context, userID string, record PlayerRecord) error
}
