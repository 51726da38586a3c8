package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/eydelrivero/tuber/internal/domain"
	"github.com/eydelrivero/tuber/internal/ratelimit"
)

func TestMapErrorToMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing term", domain.ErrMissingTerm, "Пустой запрос. Введите, что искать."},
		{"bad date", domain.ErrInvalidDate, "Некорректная дата. Используйте формат RFC 3339."},
		{"bad filter", domain.ErrInvalidFilter, "Некорректное значение фильтра."},
		{"filter conflict", domain.ErrFilterConflict, "Фильтры видео применимы только к поиску видео."},
		{"unauthorized", domain.ErrUnauthorized, "Сервис не авторизован. Обратитесь к администратору."},
		{"quota", domain.ErrQuotaExceeded, "Квота API исчерпана. Попробуйте позже."},
		{"rejected", domain.ErrInvalidRequest, "Сервер отклонил запрос. Попробуйте изменить его."},
		{"unknown", errors.New("some random error"), "Произошла ошибка. Попробуйте позже."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapErrorToMessage(tt.err)
			if got != tt.want {
				t.Errorf("mapErrorToMessage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapErrorToMessage_WrappedErrors(t *testing.T) {
	wrappedErr := errors.Join(errors.New("fetch"), domain.ErrQuotaExceeded)
	got := mapErrorToMessage(wrappedErr)
	want := "Квота API исчерпана. Попробуйте позже."
	if got != want {
		t.Errorf("mapErrorToMessage(wrapped) = %v, want %v", got, want)
	}
}

type TrackingSearchService struct {
	LastQuery domain.SearchQuery
	CallCount int
	Table     *domain.ResultTable
	Error     error
}

func (m *TrackingSearchService) Search(ctx context.Context, query domain.SearchQuery) (*domain.ResultTable, error) {
	m.CallCount++
	m.LastQuery = query

	if m.Error != nil {
		return nil, m.Error
	}
	if m.Table != nil {
		return m.Table, nil
	}
	return &domain.ResultTable{
		TotalResults: 1,
		Rows:         []domain.Row{{ID: "v1", Title: "Mock Video"}},
	}, nil
}

func createTestBot(searchSvc *TrackingSearchService) *Bot {
	bot := &Bot{
		api:           nil, // тесты без сети
		searchService: searchSvc,
		logger:        zap.NewNop(),
		rateLimiter:   ratelimit.New(ratelimit.Config{RequestsPerMinute: 100}),
		maxResults:    defaultBotMaxResults,
	}
	bot.handler = NewHandler(bot)
	return bot
}

func createTestMessage(userID int64, text string) *tgbotapi.Message {
	msg := &tgbotapi.Message{
		From: &tgbotapi.User{
			ID:       userID,
			UserName: "testuser",
		},
		Chat: &tgbotapi.Chat{
			ID: userID,
		},
		Text: text,
	}
	if len(text) > 0 && text[0] == '/' {
		end := len(text)
		for i, c := range text {
			if c == ' ' {
				end = i
				break
			}
		}
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: end}}
	}
	return msg
}

func TestHandler_FindCommand(t *testing.T) {
	searchSvc := &TrackingSearchService{}
	bot := createTestBot(searchSvc)

	msg := createTestMessage(123, "/find уроки go")
	bot.handler.HandleMessage(context.Background(), msg)

	if searchSvc.CallCount != 1 {
		t.Fatalf("CallCount = %d, want 1", searchSvc.CallCount)
	}
	if searchSvc.LastQuery.Term != "уроки go" {
		t.Errorf("Term = %q, want 'уроки go'", searchSvc.LastQuery.Term)
	}
	if searchSvc.LastQuery.Type != domain.TypeVideo {
		t.Errorf("Type = %v, want video", searchSvc.LastQuery.Type)
	}
}

func TestHandler_ChannelsCommand(t *testing.T) {
	searchSvc := &TrackingSearchService{}
	bot := createTestBot(searchSvc)

	msg := createTestMessage(123, "/channels джаз")
	bot.handler.HandleMessage(context.Background(), msg)

	if searchSvc.CallCount != 1 {
		t.Fatalf("CallCount = %d, want 1", searchSvc.CallCount)
	}
	if searchSvc.LastQuery.Type != domain.TypeChannel {
		t.Errorf("Type = %v, want channel", searchSvc.LastQuery.Type)
	}
}

func TestHandler_StatsCommand(t *testing.T) {
	searchSvc := &TrackingSearchService{}
	bot := createTestBot(searchSvc)

	msg := createTestMessage(123, "/stats comedy")
	bot.handler.HandleMessage(context.Background(), msg)

	if searchSvc.CallCount != 1 {
		t.Fatalf("CallCount = %d, want 1", searchSvc.CallCount)
	}
	if !searchSvc.LastQuery.IncludeStats {
		t.Error("IncludeStats = false, want true")
	}
	if searchSvc.LastQuery.Type != domain.TypeVideo {
		t.Errorf("Type = %v, want video", searchSvc.LastQuery.Type)
	}
}

func TestHandler_PlainText(t *testing.T) {
	searchSvc := &TrackingSearchService{}
	bot := createTestBot(searchSvc)

	msg := createTestMessage(123, "обычный запрос без команды")
	bot.handler.HandleMessage(context.Background(), msg)

	if searchSvc.CallCount != 1 {
		t.Fatalf("CallCount = %d, want 1", searchSvc.CallCount)
	}
	if searchSvc.LastQuery.Term != "обычный запрос без команды" {
		t.Errorf("Term = %q", searchSvc.LastQuery.Term)
	}
	if searchSvc.LastQuery.Type != domain.TypeVideo {
		t.Errorf("Type = %v, want video", searchSvc.LastQuery.Type)
	}
}

func TestHandler_UnknownCommandSkipsSearch(t *testing.T) {
	searchSvc := &TrackingSearchService{}
	bot := createTestBot(searchSvc)

	msg := createTestMessage(123, "/bogus аргумент")
	bot.handler.HandleMessage(context.Background(), msg)

	if searchSvc.CallCount != 0 {
		t.Errorf("CallCount = %d, want 0 for unknown command", searchSvc.CallCount)
	}
}

func TestHandler_RateLimit(t *testing.T) {
	searchSvc := &TrackingSearchService{}
	bot := createTestBot(searchSvc)
	bot.rateLimiter = ratelimit.New(ratelimit.Config{RequestsPerMinute: 1})
	defer bot.rateLimiter.Stop()

	msg := createTestMessage(123, "первый запрос")
	bot.handler.HandleMessage(context.Background(), msg)
	bot.handler.HandleMessage(context.Background(), msg)

	if searchSvc.CallCount != 1 {
		t.Errorf("CallCount = %d, want 1 (second request rate limited)", searchSvc.CallCount)
	}
}

func TestHandler_SearchErrorDoesNotPanic(t *testing.T) {
	searchSvc := &TrackingSearchService{Error: domain.ErrQuotaExceeded}
	bot := createTestBot(searchSvc)

	msg := createTestMessage(123, "/find тест")
	bot.handler.HandleMessage(context.Background(), msg)

	if searchSvc.CallCount != 1 {
		t.Errorf("CallCount = %d, want 1", searchSvc.CallCount)
	}
}
