package ports

import "context"

// WalletSkillPoints is the wallet currency holding spendable skill points.
// Granting implementations credit the welcome bonus to this key.
const WalletSkillPoints = "skill_points"

// WelcomeBonusPort grants the welcome bonus at most once per user.
type WelcomeBonusPort interface {
	// GrantWelcomeBonusOnce attempts to grant a one-time welcome bonus.
	// Returns granted=false when the bonus was already granted.
	GrantWelcomeBonusOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error)
}
