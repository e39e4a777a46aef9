package dto

type StatsResponse struct {
	WalletAddress  string `json:"walletAddress"`
	XP             int    `json:"xp"`
	Level          int    `json:"level"`
	XPForNextLevel int    `json:"xpForNextLevel"`
}

type DiscordStatusResponse struct {
	Linked      bool    `json:"linked"`
	DiscordID   *string `json:"discordId,omitempty"`
	DiscordName *string `json:"discordName,omitempty"`
}
