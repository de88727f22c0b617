// Package qrsite - HTTP-сервис генерации картинок QR для сообщений бота.
package qrsite

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/tidwall/gjson"

	"github.com/etodastandetka/bingo/utils"
)

const qrSize = 512

type Server struct {
	paymentURL string
	logger     *utils.Logger
}

func NewServer(paymentURL string, logger *utils.Logger) *Server {
	return &Server{paymentURL: paymentURL, logger: logger}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)
	r.Post("/api/generate-qr", s.handleGenerateQR)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
}

// handleGenerateQR кодирует ссылку на страницу оплаты в PNG и отдаёт её
// как data-url, в том виде, в котором её ждёт бот.
func (s *Server) handleGenerateQR(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "не удалось прочитать тело запроса")
		return
	}

	body := gjson.ParseBytes(raw)
	amount := body.Get("amount").Float()
	bank := body.Get("bank").String()
	uniqueID := body.Get("unique_id").String()

	if amount <= 0 {
		writeError(w, http.StatusBadRequest, "некорректная сумма")
		return
	}

	content := fmt.Sprintf("%s/pay?amount=%.2f", s.paymentURL, amount)
	if bank != "" {
		content += "&bank=" + bank
	}
	if uniqueID != "" {
		content += "&id=" + uniqueID
	}

	png, err := qrcode.Encode(content, qrcode.Medium, qrSize)
	if err != nil {
		s.logger.Errorf("Не удалось сгенерировать QR: %v", err)
		writeError(w, http.StatusInternalServerError, "не удалось сгенерировать QR")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"qr_image": "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "error": message})
}
