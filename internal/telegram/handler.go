package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/eydelrivero/tuber/internal/domain"
)

type Handler struct {
	bot *Bot
}

func NewHandler(bot *Bot) *Handler {
	return &Handler{bot: bot}
}

func (h *Handler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	h.bot.logger.Info("received message",
		zap.Int64("user_id", msg.From.ID),
		zap.String("username", msg.From.UserName),
		zap.Bool("is_command", msg.IsCommand()),
	)

	if msg.IsCommand() {
		cmd := msg.Command()
		if cmd == "find" || cmd == "channels" || cmd == "playlists" || cmd == "stats" {
			h.handleSearch(ctx, msg)
			return
		}
		h.handleCommand(ctx, msg)
	} else {
		h.handleSearch(ctx, msg)
	}
}

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		h.handleStart(ctx, msg)
	case "help":
		h.handleHelp(ctx, msg)
	case "history":
		h.handleHistory(ctx, msg)
	default:
		h.bot.Send(msg.Chat.ID, "Неизвестная команда. Используйте /help для справки.")
	}
}

func (h *Handler) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	h.bot.Send(msg.Chat.ID, "Добро пожаловать! Отправьте запрос, и я найду видео на YouTube.\n\nИспользуйте /help для просмотра доступных команд.")
}

func (h *Handler) handleHelp(ctx context.Context, msg *tgbotapi.Message) {
	helpText := `<b>Доступные команды:</b>

/start - Начало работы
/help - Показать эту справку
/history - Последние запросы

<b>Режимы поиска:</b>
/find запрос - Поиск видео
/channels запрос - Поиск каналов
/playlists запрос - Поиск плейлистов
/stats запрос - Поиск видео со статистикой просмотров

<b>Как использовать:</b>
Просто отправьте поисковый запрос, и я найду подходящие видео.

<b>Примеры:</b>
• Обычный поиск: "уроки Go"
• Каналы: /channels программирование
• Со статистикой: /stats standup comedy`

	h.bot.Send(msg.Chat.ID, helpText)
}

func (h *Handler) handleHistory(ctx context.Context, msg *tgbotapi.Message) {
	if h.bot.historyService == nil {
		h.bot.Send(msg.Chat.ID, "История поиска не настроена.")
		return
	}

	records, err := h.bot.historyService.Recent(ctx, 10)
	if err != nil {
		h.bot.logger.Error("failed to list search history", zap.Error(err))
		h.bot.Send(msg.Chat.ID, "Произошла ошибка. Попробуйте позже.")
		return
	}

	h.bot.Send(msg.Chat.ID, FormatHistory(records))
}

func (h *Handler) handleSearch(ctx context.Context, msg *tgbotapi.Message) {
	if !h.bot.rateLimiter.Allow(h.bot.rateLimitKey(msg.From.ID)) {
		h.bot.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", msg.From.ID),
		)
		h.bot.RecordRateLimitHit(msg.From.ID)
		h.bot.Send(msg.Chat.ID, h.bot.waitHint(msg.From.ID))
		return
	}

	query := ParseSearchCommand(msg.Text, h.bot.maxResults)

	h.bot.SendTyping(msg.Chat.ID)

	h.bot.logger.Info("processing search request",
		zap.Int64("user_id", msg.From.ID),
		zap.String("type", string(query.Type)),
		zap.Bool("with_stats", query.IncludeStats),
	)

	table, err := h.bot.searchService.Search(ctx, query)
	if err != nil {
		h.bot.logger.Error("search failed",
			zap.Error(err),
			zap.Int64("user_id", msg.From.ID),
		)
		h.bot.Send(msg.Chat.ID, mapErrorToMessage(err))
		return
	}

	formatted := FormatResultTable(table, query.Type)

	messages := SplitMessage(formatted, 4096) // лимит телеграма
	for _, m := range messages {
		if err := h.bot.Send(msg.Chat.ID, m); err != nil {
			h.bot.logger.Error("failed to send message", zap.Error(err))
		}
	}
}

func mapErrorToMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingTerm):
		return "Пустой запрос. Введите, что искать."
	case errors.Is(err, domain.ErrInvalidDate):
		return "Некорректная дата. Используйте формат RFC 3339."
	case errors.Is(err, domain.ErrInvalidFilter):
		return "Некорректное значение фильтра."
	case errors.Is(err, domain.ErrFilterConflict):
		return "Фильтры видео применимы только к поиску видео."
	case errors.Is(err, domain.ErrUnauthorized):
		return "Сервис не авторизован. Обратитесь к администратору."
	case errors.Is(err, domain.ErrQuotaExceeded):
		return "Квота API исчерпана. Попробуйте позже."
	case errors.Is(err, domain.ErrInvalidRequest):
		return "Сервер отклонил запрос. Попробуйте изменить его."
	default:
		return "Произошла ошибка. Попробуйте позже."
	}
}
