// Package paymentprovider реализует HTTP-клиент Mollie API v2.
//
// Каждый вызов делает ровно одну попытку без повторов. Результат либо разобранный ответ,
// либо одна из типизированных ошибок: *TransportError (провайдер недоступен),
// *APIError (провайдер отклонил запрос), *DecodeError (ответ не разобрать).
package paymentprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/mollie-cli/internal/lib/sl"
	"github.com/magabrotheeeer/mollie-cli/internal/models"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "mol-cli"
	maxBodySize      = 4 << 20
)

// Имена операций, они же метки метрик.
const (
	OpCreatePayment = "create_payment"
	OpGetPayment    = "get_payment"
	OpCancelPayment = "cancel_payment"
	OpListBalances  = "list_balances"
)

// OutcomeTransportError — метка исхода запроса, не получившего ответа.
const OutcomeTransportError = "transport_error"

// Recorder учитывает каждую попытку запроса.
type Recorder interface {
	ObserveRequest(operation, outcome string, duration time.Duration)
}

// Options — необязательные настройки клиента.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Recorder  Recorder
}

// Client — клиент Mollie API, привязанный к одному bearer-токену.
type Client struct {
	apiURL     string
	token      string
	userAgent  string
	httpClient *http.Client
	recorder   Recorder
	log        *slog.Logger
}

// NewClient создаёт клиент для базового URL apiURL и токена token.
func NewClient(apiURL, token string, opts Options, log *slog.Logger) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		apiURL:     apiURL,
		token:      token,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		recorder:   opts.Recorder,
		log:        log,
	}
}

type call struct {
	op         string
	method     string
	path       string
	query      url.Values
	body       any
	expect     int
	idempotent bool
}

// CreatePayment создаёт платёж. Успешный ответ: 201 Created.
func (c *Client) CreatePayment(ctx context.Context, req *models.PaymentRequest) (*models.Payment, error) {
	var p models.Payment
	err := c.do(ctx, call{
		op:         OpCreatePayment,
		method:     http.MethodPost,
		path:       "/payments",
		body:       req,
		expect:     http.StatusCreated,
		idempotent: true,
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPayment возвращает платёж по ID.
func (c *Client) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	var p models.Payment
	err := c.do(ctx, call{
		op:     OpGetPayment,
		method: http.MethodGet,
		path:   "/payments/" + url.PathEscape(id),
		expect: http.StatusOK,
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CancelPayment отменяет платёж и возвращает его обновлённое представление.
// Отказ провайдера (например, платёж уже нельзя отменить) приходит обычной *APIError.
func (c *Client) CancelPayment(ctx context.Context, id string) (*models.Payment, error) {
	var p models.Payment
	err := c.do(ctx, call{
		op:     OpCancelPayment,
		method: http.MethodDelete,
		path:   "/payments/" + url.PathEscape(id),
		expect: http.StatusOK,
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListBalances возвращает страницу балансов.
func (c *Client) ListBalances(ctx context.Context, params models.ListBalancesParams) (*models.BalanceList, error) {
	query := url.Values{}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.From != "" {
		query.Set("from", params.From)
	}

	var list models.BalanceList
	err := c.do(ctx, call{
		op:     OpListBalances,
		method: http.MethodGet,
		path:   "/balances",
		query:  query,
		expect: http.StatusOK,
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	u := c.apiURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return nil, err
		}
		c.log.Debug("request body", slog.String("op", cl.op), slog.String("body", string(data)))
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.idempotent {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, cl call, result any) error {
	op := "paymentprovider." + cl.op
	log := c.log.With(slog.String("op", op))

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}

	log.Debug("sending request", slog.String("method", req.Method), slog.String("url", req.URL.String()))
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(cl.op, OutcomeTransportError, start)
		log.Debug("request failed", sl.Err(err))
		return &TransportError{Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.observe(cl.op, OutcomeTransportError, start)
		return &TransportError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	c.observe(cl.op, strconv.Itoa(resp.StatusCode), start)
	log.Debug("response received", sl.Status(resp.StatusCode), slog.Int("bytes", len(body)))

	if resp.StatusCode != cl.expect {
		return parseAPIError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, result); err != nil {
		return &DecodeError{Op: op, Status: resp.StatusCode, Body: body, Err: err}
	}
	if v, ok := result.(validatable); ok {
		if err := v.Validate(); err != nil {
			log.Debug("response rejected", sl.Err(err))
			return &DecodeError{Op: op, Status: resp.StatusCode, Body: body, Err: err}
		}
	}
	return nil
}

// validatable — результат, который умеет проверить, что ответ действительно описывает ресурс.
type validatable interface {
	Validate() error
}

func (c *Client) observe(op, outcome string, start time.Time) {
	if c.recorder == nil {
		return
	}
	c.recorder.ObserveRequest(op, outcome, time.Since(start))
}
