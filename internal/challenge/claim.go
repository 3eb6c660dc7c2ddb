package challenge

import "trashpiles/internal/domain"

// Claim rejection reasons, surfaced on InvalidMove events.
const (
	ReasonUnknownChallenge = "unknown challenge"
	ReasonNotComplete      = "challenge not complete"
	ReasonAlreadyClaimed   = "reward already claimed"
)

// Claim grants the reward of a completed challenge at most once. The claim is
// checked against both the per-challenge claim set and the append-only
// achievement set; re-submitting a satisfied claim is a rejection, not a
// second payout. A non-empty reason means nothing changed.
func Claim(pc domain.PlayerChallenges, challengeID string) (domain.PlayerChallenges, domain.ChallengeReward, string) {
	var found *domain.Challenge
	for i := range pc.Current.Challenges {
		if pc.Current.Challenges[i].ID == challengeID {
			found = &pc.Current.Challenges[i]
			break
		}
	}
	if found == nil {
		return pc, domain.ChallengeReward{}, ReasonUnknownChallenge
	}
	if !found.Completed {
		return pc, domain.ChallengeReward{}, ReasonNotComplete
	}
	if pc.Claimed[challengeID] || pc.Achievements[found.Reward.Achievement] {
		return pc, domain.ChallengeReward{}, ReasonAlreadyClaimed
	}

	out := pc
	out.Claimed = withMember(pc.Claimed, challengeID)
	out.Achievements = withMember(pc.Achievements, found.Reward.Achievement)
	out.TotalCompleted = pc.TotalCompleted + 1
	return out, found.Reward, ""
}

func withMember(set map[string]bool, id string) map[string]bool {
	out := make(map[string]bool, len(set)+1)
	for k, v := range set {
		out[k] = v
	}
	out[id] = true
	return out
}
