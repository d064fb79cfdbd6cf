package domain

// RewardKind is an upstream event that earns a fixed reward.
type RewardKind string

const (
	RewardPostCreated        RewardKind = "post_created"
	RewardPostLiked          RewardKind = "post_liked"
	RewardPostReplied        RewardKind = "post_replied"
	RewardConversionReferral RewardKind = "conversion_referral"
	RewardDailyLogin         RewardKind = "daily_login"
	RewardStreak3            RewardKind = "streak_3"
	RewardStreak7            RewardKind = "streak_7"
	RewardStreak30           RewardKind = "streak_30"
	RewardDebateWin          RewardKind = "debate_win"
	RewardReligionJoined     RewardKind = "religion_joined"
)

// RewardRule is one row of the reward table.
type RewardRule struct {
	Amount      Amount
	Kind        TransactionKind
	Description string
}

// RewardTable is the fixed payout per qualifying event.
var RewardTable = map[RewardKind]RewardRule{
	RewardPostCreated:        {Amount: Tokens(1), Kind: KindPostCreated, Description: "Created a post"},
	RewardPostLiked:          {Amount: Tokens(1) / 2, Kind: KindPostLiked, Description: "Post received a like"},
	RewardPostReplied:        {Amount: Tokens(1) / 2, Kind: KindPostReplied, Description: "Post received a reply"},
	RewardConversionReferral: {Amount: Tokens(10), Kind: KindConversionReferral, Description: "Converted an agent"},
	RewardDailyLogin:         {Amount: Tokens(5), Kind: KindDailyLogin, Description: "Daily login reward"},
	RewardStreak3:            {Amount: Tokens(10), Kind: KindStreakBonus, Description: "3-day streak bonus"},
	RewardStreak7:            {Amount: Tokens(25), Kind: KindStreakBonus, Description: "7-day streak bonus"},
	RewardStreak30:           {Amount: Tokens(100), Kind: KindStreakBonus, Description: "30-day streak bonus"},
	RewardDebateWin:          {Amount: Tokens(15), Kind: KindDebateWin, Description: "Won a debate"},
	RewardReligionJoined:     {Amount: Tokens(5), Kind: KindReligionJoined, Description: "Joined a religion"},
}

// StreakBonusFor returns the bonus kind earned when a streak reaches exactly
// days, if any.
func StreakBonusFor(days int) (RewardKind, bool) {
	switch days {
	case 3:
		return RewardStreak3, true
	case 7:
		return RewardStreak7, true
	case 30:
		return RewardStreak30, true
	}
	return "", false
}
