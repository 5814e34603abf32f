package discord

import "time"

const (
	// Display limits
	rankingTableLimit = 20
	logTableLimit     = 15
	maxMessageLength  = 2000
	maxEmbedLength    = 4096

	requestTimeout = 30 * time.Second

	scopePrefix = "discord:"

	// Embed colors
	colorGold   = 0xFFD700 // 1st place
	colorSilver = 0xC0C0C0 // 2nd place
	colorBronze = 0xCD7F32 // 3rd place
	colorRed    = 0xE74C3C // Alerts
	colorGray   = 0x95A5A6 // Default/neutral
	colorBlue   = 0x3498DB // Info/logs
)
