package main

import (
	"net/http"

	"github.com/etodastandetka/bingo/config"
	"github.com/etodastandetka/bingo/internal/qrsite"
	"github.com/etodastandetka/bingo/utils"
)

func main() {
	logger := utils.InitLogger()
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		logger.Fatal("Не удалось загрузить конфиг: ", err)
	}

	server := qrsite.NewServer(cfg.PaymentSiteURL, logger)

	logger.Infof("Сервис QR слушает на %s", cfg.QRSiteAddr)
	if err := http.ListenAndServe(cfg.QRSiteAddr, server.Router()); err != nil {
		logger.Fatal(err)
	}
}
