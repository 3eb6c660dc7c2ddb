package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameTrash is the authoritative match handler name registered with Nakama.
	MatchNameTrash = "trash_match"

	// MatchLabelKey_OpenSeats is the label key carrying the open seat count.
	MatchLabelKey_OpenSeats = "open"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame      int64 = 1
	OpDrawCard       int64 = 2
	OpPlaceCard      int64 = 3
	OpDiscardCard    int64 = 4
	OpFlipCard       int64 = 5
	OpEndTurn        int64 = 6
	OpUnlockNode     int64 = 7
	OpUseAbility     int64 = 8
	OpViewChallenges int64 = 9
	OpCheckLevelUp   int64 = 10
	OpClaimChallenge int64 = 11
	OpPauseGame      int64 = 12
	OpResumeGame     int64 = 13

	// Server -> Client
	OpMatchSnapshot int64 = 101
	OpGameEvent     int64 = 102
	OpGameError     int64 = 103
)
