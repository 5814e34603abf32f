package telegram

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"rpsboard/internal/application"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	scopePrefix    = "telegram:"
	requestTimeout = 30 * time.Second
	maxMessageLen  = 4096

	rankingTableLimit = 20
	logTableLimit     = 15
)

type Bot struct {
	bot      *tgbotapi.BotAPI
	services *application.Service
	logger   application.Logger
	loc      *time.Location
	adminIDs map[int64]struct{}

	mu  sync.RWMutex
	ctx context.Context
}

func NewBot(token string, adminIDs []int64, loc *time.Location, services *application.Service, logger application.Logger) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	admins := make(map[int64]struct{})
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	logger.Info("Telegram bot authorized on account %s", bot.Self.UserName)

	return &Bot{
		bot:      bot,
		services: services,
		logger:   logger,
		loc:      loc,
		adminIDs: admins,
		ctx:      context.Background(),
	}, nil
}

func (b *Bot) Init() error {
	return nil
}

func (b *Bot) Run(ctx context.Context) {
	b.mu.Lock()
	b.ctx = ctx
	b.mu.Unlock()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(update.Message)
		}
	}
}

func (b *Bot) Stop() {
	b.bot.StopReceivingUpdates()
}

func (b *Bot) isAdmin(id int64) bool {
	_, ok := b.adminIDs[id]
	return ok
}

func (b *Bot) requestContext() (context.Context, context.CancelFunc) {
	b.mu.RLock()
	parent := b.ctx
	b.mu.RUnlock()
	return context.WithTimeout(parent, requestTimeout)
}

func scopeKey(chatID int64) string {
	return scopePrefix + strconv.FormatInt(chatID, 10)
}
