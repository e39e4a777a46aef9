package dto

type LeaderboardEntry struct {
	Position       int     `json:"position"`
	WalletAddress  string  `json:"walletAddress"`
	DiscordName    *string `json:"discordName,omitempty"`
	XP             int     `json:"xp"`
	Level          int     `json:"level"`
	XPForNextLevel int     `json:"xpForNextLevel"`
	CurrentStreak  int     `json:"currentStreak"`
	LongestStreak  int     `json:"longestStreak"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}
