package main

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/etodastandetka/bingo/config"
	"github.com/etodastandetka/bingo/db"
	"github.com/etodastandetka/bingo/internal/backend"
	"github.com/etodastandetka/bingo/internal/bot"
	"github.com/etodastandetka/bingo/internal/repository"
	"github.com/etodastandetka/bingo/internal/service"
	"github.com/etodastandetka/bingo/internal/session"
	"github.com/etodastandetka/bingo/internal/timer"
	"github.com/etodastandetka/bingo/utils"
)

func main() {
	logger := utils.InitLogger()
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		logger.Fatal("Не удалось загрузить конфиг: ", err)
	}

	database, err := db.ConnectDb(cfg.DB_URL, logger)
	if err != nil {
		logger.Fatal(err)
	}
	if err := db.Migrate(database, true, logger); err != nil {
		logger.Fatal(err)
	}

	repo := repository.NewRepository(database, logger)
	userService := service.NewUserService(repo, logger)

	client := backend.NewClient(cfg.APIBaseURL, cfg.APIFallbackURL, cfg.PaymentSiteURL, cfg.BotType, logger)

	var sessions session.Store
	if cfg.RedisAddr != "" {
		redisStore, err := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.BotType)
		if err != nil {
			logger.Fatal("Не удалось подключиться к Redis: ", err)
		}
		sessions = redisStore
	} else {
		sessions = session.NewMemoryStore()
	}

	timers := timer.NewRegistry(logger)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		logger.Fatal("Не удалось создать Telegram API: ", err)
	}
	logger.Infof("Авторизован как @%s", api.Self.UserName)

	telegramBot := bot.NewBot(api, client, userService, sessions, timers, config.MainProfile(), logger)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	telegramBot.Start(api.GetUpdatesChan(updateConfig))
}
