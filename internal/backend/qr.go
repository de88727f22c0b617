package backend

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/imroc/req"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// GenerateQR запрашивает хеш платежа и ссылки банков. Hard: без QR поток
// пополнения прерывается.
func (c *Client) GenerateQR(amount decimal.Decimal, bank string) (*QRResult, error) {
	resp, err := c.do("generate-qr", "POST", "/public/generate-qr", map[string]interface{}{
		"amount": amount.InexactFloat64(),
		"bank":   bank,
	})
	if err != nil {
		return nil, err
	}

	body := gjson.ParseBytes(resp.Bytes())
	if !body.Get("success").Bool() {
		return nil, fmt.Errorf("generate-qr: %s", body.Get("error").String())
	}

	hash := body.Get("qr_hash").String()
	if hash == "" {
		return nil, fmt.Errorf("generate-qr: пустой qr_hash в ответе")
	}

	urls := map[string]string{}
	body.Get("all_bank_urls").ForEach(func(key, value gjson.Result) bool {
		urls[key.String()] = value.String()
		return true
	})

	return &QRResult{Hash: hash, BankURLs: urls}, nil
}

// GenerateQRImage получает готовую картинку QR с сайта оплаты и
// декодирует data-url в PNG-байты.
func (c *Client) GenerateQRImage(amount decimal.Decimal, bank, uniqueID string) ([]byte, error) {
	p := PolicyFor("generate-qr-image")
	r := req.New()
	r.SetTimeout(p.Timeout)

	payload := map[string]interface{}{
		"amount": amount.InexactFloat64(),
		"bank":   bank,
	}
	if uniqueID != "" {
		payload["unique_id"] = uniqueID
	}

	resp, err := r.Post(c.paymentSiteURL+"/api/generate-qr", req.BodyJSON(payload))
	if err != nil {
		return nil, fmt.Errorf("generate-qr-image: %w", err)
	}
	if code := resp.Response().StatusCode; code >= 300 {
		return nil, fmt.Errorf("generate-qr-image: статус %d", code)
	}

	body := gjson.ParseBytes(resp.Bytes())
	if !body.Get("success").Bool() {
		return nil, fmt.Errorf("generate-qr-image: %s", body.Get("error").String())
	}

	return DecodeImageDataURL(body.Get("qr_image").String())
}

// DecodeImageDataURL принимает "data:image/png;base64,..." или голый base64.
func DecodeImageDataURL(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("пустое изображение в ответе")
	}
	if strings.HasPrefix(s, "data:image") {
		if _, rest, ok := strings.Cut(s, ","); ok {
			s = rest
		}
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("некорректный base64 изображения: %w", err)
	}
	return raw, nil
}
