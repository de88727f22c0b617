package backend

import (
	"fmt"
	"strings"

	"github.com/etodastandetka/bingo/utils"
	"github.com/imroc/req"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// Client - клиент админского API и сайта оплаты. Все таймауты берутся из
// таблицы политик, при недоступности основного URL пробуем fallback.
type Client struct {
	baseURL        string
	fallbackURL    string
	paymentSiteURL string
	botType        string
	logger         *utils.Logger

	settings settingsCache
}

func NewClient(baseURL, fallbackURL, paymentSiteURL, botType string, logger *utils.Logger) *Client {
	return &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		fallbackURL:    strings.TrimSuffix(fallbackURL, "/"),
		paymentSiteURL: strings.TrimSuffix(paymentSiteURL, "/"),
		botType:        botType,
		logger:         logger,
	}
}

// apiRoot - базовый URL без суффикса /api, для путей вида /api/requests/{id}.
func apiRoot(base string) string {
	return strings.TrimSuffix(base, "/api")
}

func (c *Client) do(endpoint, method, path string, body interface{}) (*req.Resp, error) {
	p := PolicyFor(endpoint)
	r := req.New()
	r.SetTimeout(p.Timeout)

	var vs []interface{}
	if body != nil {
		vs = append(vs, req.BodyJSON(body))
	}

	resp, err := r.Do(method, c.baseURL+path, vs...)
	if err != nil && c.fallbackURL != "" && c.fallbackURL != c.baseURL {
		resp, err = r.Do(method, c.fallbackURL+path, vs...)
	}
	if err != nil {
		c.logFailure(endpoint, err)
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	if code := resp.Response().StatusCode; code >= 300 {
		err := fmt.Errorf("%s: статус %d: %s", endpoint, code, truncate(resp.String(), 200))
		c.logFailure(endpoint, err)
		return resp, err
	}
	return resp, nil
}

// logFailure пишет отказ зависимости уровнем её критичности: мягкие
// проверки - предупреждение, финансовые - ошибка.
func (c *Client) logFailure(endpoint string, err error) {
	if PolicyFor(endpoint).Criticality == Hard {
		c.logger.Errorf("Отказ %s: %v", endpoint, err)
		return
	}
	c.logger.Warnf("Отказ %s: %v", endpoint, err)
}

func (c *Client) doRoot(endpoint, method, path string, body interface{}) (*req.Resp, error) {
	p := PolicyFor(endpoint)
	r := req.New()
	r.SetTimeout(p.Timeout)

	var vs []interface{}
	if body != nil {
		vs = append(vs, req.BodyJSON(body))
	}

	resp, err := r.Do(method, apiRoot(c.baseURL)+path, vs...)
	if err != nil && c.fallbackURL != "" && c.fallbackURL != c.baseURL {
		resp, err = r.Do(method, apiRoot(c.fallbackURL)+path, vs...)
	}
	if err != nil {
		c.logFailure(endpoint, err)
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	if code := resp.Response().StatusCode; code >= 300 {
		err := fmt.Errorf("%s: статус %d", endpoint, code)
		c.logFailure(endpoint, err)
		return resp, err
	}
	return resp, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// CheckBlocked - soft: при недоступности бэкенда считаем, что не заблокирован.
func (c *Client) CheckBlocked(userID, accountID string) (*BlockedResult, error) {
	payload := map[string]interface{}{"userId": userID}
	if accountID != "" {
		payload["accountId"] = accountID
	}

	resp, err := c.do("check-blocked", "POST", "/public/check-blocked", payload)
	if err != nil {
		return nil, err
	}

	body := gjson.ParseBytes(resp.Bytes())
	if !body.Get("success").Bool() {
		return &BlockedResult{}, nil
	}
	return &BlockedResult{
		Blocked: body.Get("data.blocked").Bool(),
		Message: body.Get("data.message").String(),
	}, nil
}

func (c *Client) CheckActiveDeposit(userID string) (*ActiveDeposit, error) {
	resp, err := c.do("check-active-deposit", "POST", "/public/check-active-deposit",
		map[string]interface{}{"userId": userID})
	if err != nil {
		return nil, err
	}

	body := gjson.ParseBytes(resp.Bytes())
	if !body.Get("success").Bool() {
		return &ActiveDeposit{}, nil
	}
	return &ActiveDeposit{
		HasActive:  body.Get("data.hasActive").Bool(),
		RequestID:  body.Get("data.requestId").String(),
		MinutesAgo: body.Get("data.timeAgoMinutes").Int(),
	}, nil
}

// CheckPlayer проверяет существование игрока. Ошибка означает "не удалось
// проверить" - вызывающий код трактует её как fail-open, а не как отказ.
func (c *Client) CheckPlayer(bookmaker, accountID string) (*PlayerCheck, error) {
	resp, err := c.do("check-player", "POST", "/public/check-player",
		map[string]interface{}{"bookmaker": bookmaker, "accountId": accountID})
	if err != nil {
		return nil, err
	}

	body := gjson.ParseBytes(resp.Bytes())
	if !body.Get("success").Bool() {
		return nil, fmt.Errorf("check-player: %s", body.Get("error").String())
	}
	return &PlayerCheck{Exists: body.Get("data.exists").Bool()}, nil
}

func (c *Client) CreateUncreatedRequest(in UncreatedInput) (string, error) {
	payload := map[string]interface{}{
		"userId":      in.UserID,
		"bookmaker":   in.Bookmaker,
		"accountId":   in.AccountID,
		"amount":      in.Amount.InexactFloat64(),
		"requestType": "deposit",
	}
	if in.Bank != "" {
		payload["bank"] = in.Bank
	}
	if in.Username != "" {
		payload["username"] = in.Username
	}
	if in.FirstName != "" {
		payload["firstName"] = in.FirstName
	}
	if in.LastName != "" {
		payload["lastName"] = in.LastName
	}

	resp, err := c.do("uncreated-requests", "POST", "/public/uncreated-requests", payload)
	if err != nil {
		return "", err
	}

	body := gjson.ParseBytes(resp.Bytes())
	if !body.Get("success").Bool() {
		return "", fmt.Errorf("uncreated-requests: %s", body.Get("error").String())
	}
	return body.Get("data.id").String(), nil
}

// CreateRequest создаёт заявку на пополнение или вывод. Hard: любая ошибка
// означает, что заявки нет.
func (c *Client) CreateRequest(in RequestInput) (*CreatedRequest, error) {
	payload := map[string]interface{}{
		"telegram_user_id": in.TelegramUserID,
		"type":             in.Type,
		"amount":           in.Amount.InexactFloat64(),
	}
	optional := map[string]string{
		"bookmaker":            in.Bookmaker,
		"bank":                 in.Bank,
		"phone":                in.Phone,
		"account_id":           in.AccountID,
		"telegram_username":    in.Username,
		"telegram_first_name":  in.FirstName,
		"telegram_last_name":   in.LastName,
		"receipt_photo":        in.ReceiptPhoto,
		"withdrawal_code":      in.WithdrawalCode,
		"uncreated_request_id": in.UncreatedRequestID,
		"bot_type":             c.botType,
	}
	for k, v := range optional {
		if v != "" {
			payload[k] = v
		}
	}

	resp, err := c.do("payment", "POST", "/payment", payload)
	if err != nil {
		return nil, err
	}

	body := gjson.ParseBytes(resp.Bytes())
	id := body.Get("data.id").String()
	if body.Get("message").String() == "Request already exists" && id != "" {
		return &CreatedRequest{ID: id, AlreadyExists: true}, nil
	}
	if !body.Get("success").Bool() || id == "" {
		msg := body.Get("message").String()
		if msg == "" {
			msg = body.Get("error").String()
		}
		return nil, fmt.Errorf("payment: %s", msg)
	}
	return &CreatedRequest{ID: id}, nil
}

func (c *Client) UpdateRequestMessageID(requestID string, messageID int) error {
	path := fmt.Sprintf("/api/requests/%s/message-id", requestID)
	_, err := c.doRoot("request-message-id", "PATCH", path,
		map[string]interface{}{"message_id": messageID})
	return err
}

// CheckWithdrawAmount разрешает код вывода в сумму. Hard: без подтверждённой
// суммы заявка не создаётся.
func (c *Client) CheckWithdrawAmount(bookmaker, userID, code string) (decimal.Decimal, error) {
	resp, err := c.do("check-withdraw-amount", "POST", "/check-withdraw-amount",
		map[string]interface{}{"bookmaker": bookmaker, "userId": userID, "code": code})
	if err != nil {
		return decimal.Zero, err
	}

	body := gjson.ParseBytes(resp.Bytes())
	if !body.Get("success").Bool() {
		msg := body.Get("error").String()
		if msg == "" {
			msg = body.Get("message").String()
		}
		return decimal.Zero, fmt.Errorf("check-withdraw-amount: %s", msg)
	}

	amount, err := decimal.NewFromString(body.Get("data.amount").String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("check-withdraw-amount: некорректная сумма в ответе: %w", err)
	}
	return amount, nil
}

func (c *Client) SavedCasinoAccount(userID, casinoID string) (string, error) {
	path := fmt.Sprintf("/public/user-casino-ids?userId=%s&casinoId=%s", userID, casinoID)
	resp, err := c.do("user-casino-ids", "GET", path, nil)
	if err != nil {
		return "", err
	}

	body := gjson.ParseBytes(resp.Bytes())
	if !body.Get("success").Bool() {
		return "", nil
	}
	return body.Get("data.accountId").String(), nil
}

func (c *Client) SaveCasinoAccount(userID, casinoID, accountID string) error {
	_, err := c.do("user-casino-ids", "POST", "/public/user-casino-ids", map[string]interface{}{
		"userId":    userID,
		"casinoId":  casinoID,
		"accountId": accountID,
	})
	return err
}

func (c *Client) LastWithdrawPhone(userID string) (string, error) {
	path := fmt.Sprintf("/api/users/%s/requests?type=withdraw&limit=1", userID)
	resp, err := c.doRoot("last-withdraw-phone", "GET", path, nil)
	if err != nil {
		return "", err
	}

	body := gjson.ParseBytes(resp.Bytes())
	if !body.Get("success").Bool() {
		return "", nil
	}
	requests := body.Get("data").Array()
	if len(requests) == 0 {
		return "", nil
	}
	return requests[0].Get("phone").String(), nil
}
