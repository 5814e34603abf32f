package discord

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"rpsboard/internal/application"
	"rpsboard/pkg/config"

	"github.com/bwmarrin/discordgo"
)

type Bot struct {
	session  *discordgo.Session
	services *application.Service
	logger   application.Logger
	loc      *time.Location

	adminIDs         map[string]struct{}
	allowedChannelID string
	guildID          string
	commands         []*discordgo.ApplicationCommand

	mu  sync.RWMutex
	ctx context.Context
}

func NewBot(cfg *config.Config, services *application.Service, logger application.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	admins := make(map[string]struct{})
	for _, id := range cfg.AdminUserIDs {
		cleanID := strings.TrimSpace(id)
		if cleanID != "" {
			admins[cleanID] = struct{}{}
		}
	}

	b := &Bot{
		session:          s,
		services:         services,
		logger:           logger,
		loc:              cfg.Location(),
		adminIDs:         admins,
		allowedChannelID: cfg.AllowedChannelID,
		guildID:          cfg.DiscordGuildID,
		ctx:              context.Background(),
	}

	b.addCommands(
		b.newStudentCommand(),
		b.newRankingCommand(),
		b.newExportCommand(),
		b.newWatchCommand(),
		b.newUnwatchCommand(),
		b.newResetCommand(),
	)
	if services.Sheets != nil {
		b.addCommands(b.newSyncSheetCommand())
	}

	return b, nil
}

func (b *Bot) Init() error {
	b.session.AddHandler(b.onInteraction)
	return nil
}

func (b *Bot) Run(ctx context.Context) {
	b.mu.Lock()
	b.ctx = ctx
	b.mu.Unlock()

	if err := b.session.Open(); err != nil {
		b.logger.Error("failed to open discord session: %v", err)
		return
	}

	b.logger.Info("Discord Bot Started. Registering %d slash commands...", len(b.commands))

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.guildID, b.commands)
	if err != nil {
		b.logger.Error("Failed to register commands: %v", err)
	} else {
		b.logger.Info("Slash commands registered successfully")
	}
}

func (b *Bot) Stop() {
	if err := b.session.Close(); err != nil {
		b.logger.Warn("failed to close discord session: %v", err)
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if b.allowedChannelID != "" && i.ChannelID != b.allowedChannelID {
		b.respondMessage(s, i.Interaction, "이 채널에서는 사용할 수 없습니다.", true)
		return
	}

	switch i.ApplicationCommandData().Name {
	case "student":
		b.handleStudent(s, i.Interaction)
	case "ranking":
		b.handleRanking(s, i.Interaction)
	case "export":
		b.handleExport(s, i.Interaction)
	case "watch":
		b.ensureAdmin(s, i.Interaction, b.handleWatch)
	case "unwatch":
		b.ensureAdmin(s, i.Interaction, b.handleUnwatch)
	case "reset":
		b.ensureAdmin(s, i.Interaction, b.handleReset)
	case "sync_sheet":
		b.ensureAdmin(s, i.Interaction, b.handleSyncSheet)
	}
}

func (b *Bot) requestContext() (context.Context, context.CancelFunc) {
	b.mu.RLock()
	parent := b.ctx
	b.mu.RUnlock()
	return context.WithTimeout(parent, requestTimeout)
}

func scopeKey(channelID string) string {
	return scopePrefix + channelID
}
