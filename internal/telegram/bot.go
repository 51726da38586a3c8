package telegram

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/eydelrivero/tuber/internal/metrics"
	"github.com/eydelrivero/tuber/internal/ratelimit"
	"github.com/eydelrivero/tuber/internal/service"
)

type BotConfig struct {
	Token             string
	Debug             bool
	RequestsPerMinute int
	MaxResults        int
}

const defaultBotMaxResults = 25

type Bot struct {
	api            *tgbotapi.BotAPI
	searchService  service.SearchService
	historyService service.HistoryService
	logger         *zap.Logger
	metrics        *metrics.Metrics
	handler        *Handler
	rateLimiter    *ratelimit.Limiter
	maxResults     int
	wg             sync.WaitGroup
}

func New(cfg BotConfig, searchSvc service.SearchService, historySvc service.HistoryService, logger *zap.Logger, m *metrics.Metrics) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	api.Debug = cfg.Debug

	rateLimiter := ratelimit.New(ratelimit.Config{
		RequestsPerMinute: cfg.RequestsPerMinute,
	})

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultBotMaxResults
	}

	bot := &Bot{
		api:            api,
		searchService:  searchSvc,
		historyService: historySvc,
		logger:         logger,
		metrics:        m,
		rateLimiter:    rateLimiter,
		maxResults:     maxResults,
	}

	bot.handler = NewHandler(bot)

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
	)

	return bot, nil
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("bot started, waiting for updates")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("bot stopping, waiting for handlers to finish")
			b.api.StopReceivingUpdates()
			b.wg.Wait()
			b.rateLimiter.Stop()
			b.logger.Info("all handlers finished")
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			b.wg.Add(1)
			go func(upd tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			chatID := int64(0)
			if update.Message != nil && update.Message.Chat != nil {
				chatID = update.Message.Chat.ID
			}
			b.logger.Error("panic in update handler",
				zap.Any("panic", r),
				zap.Int64("chat_id", chatID),
			)
		}
	}()

	b.handler.HandleMessage(ctx, update.Message)
}

func (b *Bot) Send(chatID int64, text string) error {
	if b.api == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "HTML"
	msg.DisableWebPagePreview = true
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendTyping(chatID int64) {
	if b.api == nil {
		return
	}
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	b.api.Send(action)
}

func (b *Bot) RecordRateLimitHit(userID int64) {
	if b.metrics != nil {
		b.metrics.RecordRateLimitHit(strconv.FormatInt(userID, 10))
	}
}

func (b *Bot) rateLimitKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func (b *Bot) waitHint(userID int64) string {
	resetTime := b.rateLimiter.ResetTime(b.rateLimitKey(userID))
	wait := time.Until(resetTime).Round(time.Second)
	if wait <= 0 {
		return "Слишком много запросов. Пожалуйста, подождите минуту."
	}
	return fmt.Sprintf("Слишком много запросов. Попробуйте через %s.", wait)
}
