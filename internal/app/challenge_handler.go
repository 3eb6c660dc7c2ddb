package app

import (
	"trashpiles/internal/challenge"
	"trashpiles/internal/domain"
	"trashpiles/internal/skills"
)

// ChallengeHandler owns the challenge family: viewing the current set,
// claiming completed rewards and the challenge-gated level-up check.
type ChallengeHandler struct{}

func NewChallengeHandler() *ChallengeHandler { return &ChallengeHandler{} }

func (h *ChallengeHandler) Family() Family { return FamilyChallenge }

func (h *ChallengeHandler) Handle(state *domain.GameState, cmd Command) (*domain.GameState, []Event, error) {
	if state.PlayerByID(cmd.Actor()) == nil {
		return reject(state, cmd, "player not found")
	}

	switch c := cmd.(type) {
	case ViewChallengesCommand:
		return h.view(state, c)
	case CheckLevelUpCommand:
		return h.checkLevelUp(state, c)
	case ClaimChallengeRewardsCommand:
		return h.claim(state, c)
	default:
		return nil, nil, ErrWrongFamily
	}
}

func (h *ChallengeHandler) view(state *domain.GameState, cmd ViewChallengesCommand) (*domain.GameState, []Event, error) {
	pc := state.Challenges.For(cmd.PlayerID)
	return state, []Event{NewEventFor(EventChallengesViewed, ChallengesViewedPayload{
		PlayerID: cmd.PlayerID,
		Set:      pc.Current,
	}, cmd.PlayerID)}, nil
}

// claim pays out a completed challenge exactly once: points go to the skill
// pool and the XP bonus runs through the progression path, so a claim can
// push a level-up.
func (h *ChallengeHandler) claim(state *domain.GameState, cmd ClaimChallengeRewardsCommand) (*domain.GameState, []Event, error) {
	pc := state.Challenges.For(cmd.PlayerID)
	next, reward, reason := challenge.Claim(pc, cmd.ChallengeID)
	if reason != "" {
		return reject(state, cmd, reason)
	}

	out := state.Clone()
	out.Challenges = out.Challenges.With(cmd.PlayerID, next)

	prog := out.Progression.ProgressFor(cmd.PlayerID)
	oldLevel := prog.Level
	prog.SP += reward.Points
	prog = skills.AddXP(prog, reward.XP)
	out.Progression = out.Progression.WithProgress(prog)

	events := []Event{NewEventFor(EventPointsEarned, PointsEarnedPayload{
		PlayerID: cmd.PlayerID,
		SP:       reward.Points,
		XP:       reward.XP,
		Source:   "challenge_claimed",
	}, cmd.PlayerID)}

	events = append(events, observe(out, challenge.Observation{
		Kind:     challenge.ObservedPointsEarned,
		PlayerID: cmd.PlayerID,
		Amount:   reward.Points,
	})...)

	if prog.Level > oldLevel {
		events = append(events, NewEvent(EventLevelUp, LevelUpPayload{
			PlayerID: cmd.PlayerID,
			Level:    prog.Level,
		}))
	}
	return out, events, nil
}

// checkLevelUp applies the level gate: the current set's threshold must be
// met and the player must hold the XP minimum. Success assigns the next
// level's challenge set and records the qualifying achievements.
func (h *ChallengeHandler) checkLevelUp(state *domain.GameState, cmd CheckLevelUpCommand) (*domain.GameState, []Event, error) {
	pc := state.Challenges.For(cmd.PlayerID)
	prog := state.Progression.ProgressFor(cmd.PlayerID)

	res := challenge.CheckLevelUnlock(pc, prog)
	if !res.Success {
		return reject(state, cmd, res.Message)
	}

	out := state.Clone()
	outPC := out.Challenges.For(cmd.PlayerID)
	for _, a := range res.NewAchievements {
		if outPC.Achievements == nil {
			outPC.Achievements = make(map[string]bool, len(res.NewAchievements))
		}
		outPC.Achievements[a] = true
	}
	out.Challenges = out.Challenges.With(cmd.PlayerID, outPC)
	out.Challenges = challenge.AssignLevel(out.Challenges, cmd.PlayerID, res.Level)

	return out, []Event{NewEventFor(EventLevelUnlocked, LevelUnlockedPayload{
		PlayerID:     cmd.PlayerID,
		Level:        res.Level,
		Achievements: res.NewAchievements,
	}, cmd.PlayerID)}, nil
}
