package input

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

type answer struct {
	value string
	err   error
}

// scriptedPrompter отвечает заранее заданными ответами и запоминает заданные вопросы.
type scriptedPrompter struct {
	answers map[string]answer
	asked   []string
}

func (p *scriptedPrompter) Ask(q Question) (string, error) {
	p.asked = append(p.asked, q.Name)
	a, ok := p.answers[q.Name]
	if !ok {
		return q.Default, nil
	}
	return a.value, a.err
}

func validValues() PaymentValues {
	return PaymentValues{
		Currency:    "eur",
		Amount:      "10.5",
		Description: "  Order #12345 ",
		RedirectURL: "https://shop.example.org/return",
	}
}

func TestCollector_CollectPayment_Defaults(t *testing.T) {
	p := &scriptedPrompter{}
	c := New(p, newNoopLogger())

	req, err := c.CollectPayment(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"currency", "amount", "description", "redirect_url"}, p.asked)
	assert.Equal(t, "EUR", req.Amount.Currency)
	assert.Equal(t, "1.00", req.Amount.FormattedValue())
	assert.Equal(t, "N/A", req.Description)
	assert.Equal(t, DefaultRedirectURL, req.RedirectURL)
	assert.Empty(t, req.WebhookURL)
}

func TestCollector_CollectPayment_Answers(t *testing.T) {
	p := &scriptedPrompter{answers: map[string]answer{
		"currency":     {value: "usd"},
		"amount":       {value: "12.345"},
		"description":  {value: "Order #1"},
		"redirect_url": {value: "https://shop.example.org/return?x=1"},
	}}
	c := New(p, newNoopLogger())

	req, err := c.CollectPayment(context.Background(), "https://shop.example.org/hook")
	require.NoError(t, err)

	assert.Equal(t, "USD", req.Amount.Currency)
	assert.Equal(t, "12.35", req.Amount.FormattedValue())
	assert.Equal(t, "Order #1", req.Description)
	assert.Equal(t, "https://shop.example.org/return?x=1", req.RedirectURL)
	assert.Equal(t, "https://shop.example.org/hook", req.WebhookURL)
}

func TestCollector_CollectPayment_StopsAtFirstInvalidStage(t *testing.T) {
	tests := []struct {
		name      string
		answers   map[string]answer
		webhook   string
		wantErr   error
		wantAsked []string
	}{
		{
			name:      "currency too long",
			answers:   map[string]answer{"currency": {value: "EURO"}},
			wantErr:   ErrInvalidCurrency,
			wantAsked: []string{"currency"},
		},
		{
			name:      "currency with digits",
			answers:   map[string]answer{"currency": {value: "E1R"}},
			wantErr:   ErrInvalidCurrency,
			wantAsked: []string{"currency"},
		},
		{
			name:      "amount not a number",
			answers:   map[string]answer{"amount": {value: "ten"}},
			wantErr:   ErrInvalidAmount,
			wantAsked: []string{"currency", "amount"},
		},
		{
			name:      "negative amount",
			answers:   map[string]answer{"amount": {value: "-0.01"}},
			wantErr:   ErrInvalidAmount,
			wantAsked: []string{"currency", "amount"},
		},
		{
			name:      "blank description",
			answers:   map[string]answer{"description": {value: "   "}},
			wantErr:   ErrInvalidDescription,
			wantAsked: []string{"currency", "amount", "description"},
		},
		{
			name:      "scheme-less redirect",
			answers:   map[string]answer{"redirect_url": {value: "example.com/return"}},
			wantErr:   ErrInvalidURL,
			wantAsked: []string{"currency", "amount", "description", "redirect_url"},
		},
		{
			name:      "invalid webhook from flag",
			webhook:   "/webhook",
			wantErr:   ErrInvalidURL,
			wantAsked: []string{"currency", "amount", "description", "redirect_url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scriptedPrompter{answers: tt.answers}
			c := New(p, newNoopLogger())

			req, err := c.CollectPayment(context.Background(), tt.webhook)

			assert.Nil(t, req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantAsked, p.asked)
		})
	}
}

func TestCollector_CollectPayment_Aborted(t *testing.T) {
	tests := []struct {
		name      string
		answers   map[string]answer
		wantAsked []string
	}{
		{
			name:      "abort at currency",
			answers:   map[string]answer{"currency": {err: ErrInputAborted}},
			wantAsked: []string{"currency"},
		},
		{
			name:      "abort at description",
			answers:   map[string]answer{"description": {err: ErrInputAborted}},
			wantAsked: []string{"currency", "amount", "description"},
		},
		{
			name:      "prompt failure at redirect url",
			answers:   map[string]answer{"redirect_url": {err: errors.New("not a terminal")}},
			wantAsked: []string{"currency", "amount", "description", "redirect_url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scriptedPrompter{answers: tt.answers}
			c := New(p, newNoopLogger())

			req, err := c.CollectPayment(context.Background(), "")

			assert.Nil(t, req)
			assert.ErrorIs(t, err, ErrInputAborted)
			assert.Equal(t, tt.wantAsked, p.asked)
		})
	}
}

func TestCollector_CollectPayment_CancelledContext(t *testing.T) {
	p := &scriptedPrompter{}
	c := New(p, newNoopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := c.CollectPayment(ctx, "")

	assert.Nil(t, req)
	assert.ErrorIs(t, err, ErrInputAborted)
	assert.Empty(t, p.asked)
}

func TestCollector_CollectPayment_NoPrompter(t *testing.T) {
	c := New(nil, newNoopLogger())

	_, err := c.CollectPayment(context.Background(), "")
	assert.ErrorIs(t, err, ErrInputAborted)
}

func TestCollector_FromValues(t *testing.T) {
	c := New(nil, newNoopLogger())

	req, err := c.FromValues(validValues())
	require.NoError(t, err)

	assert.Equal(t, "EUR", req.Amount.Currency)
	assert.Equal(t, "10.50", req.Amount.FormattedValue())
	assert.Equal(t, "Order #12345", req.Description)
	assert.Equal(t, "https://shop.example.org/return", req.RedirectURL)
}

func TestCollector_FromValues_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(v *PaymentValues)
		wantErr error
	}{
		{name: "empty currency", mutate: func(v *PaymentValues) { v.Currency = "" }, wantErr: ErrInvalidCurrency},
		{name: "two letter currency", mutate: func(v *PaymentValues) { v.Currency = "EU" }, wantErr: ErrInvalidCurrency},
		{name: "empty amount", mutate: func(v *PaymentValues) { v.Amount = "" }, wantErr: ErrInvalidAmount},
		{name: "comma amount", mutate: func(v *PaymentValues) { v.Amount = "1,50" }, wantErr: ErrInvalidAmount},
		{name: "negative amount", mutate: func(v *PaymentValues) { v.Amount = "-5" }, wantErr: ErrInvalidAmount},
		{name: "empty description", mutate: func(v *PaymentValues) { v.Description = "\t " }, wantErr: ErrInvalidDescription},
		{name: "relative redirect", mutate: func(v *PaymentValues) { v.RedirectURL = "/return" }, wantErr: ErrInvalidURL},
		{name: "host-less redirect", mutate: func(v *PaymentValues) { v.RedirectURL = "https://" }, wantErr: ErrInvalidURL},
		{name: "garbage redirect", mutate: func(v *PaymentValues) { v.RedirectURL = "://nope" }, wantErr: ErrInvalidURL},
		{name: "empty redirect", mutate: func(v *PaymentValues) { v.RedirectURL = "" }, wantErr: ErrInvalidURL},
		{name: "scheme-less webhook", mutate: func(v *PaymentValues) { v.WebhookURL = "hooks.example.org" }, wantErr: ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(nil, newNoopLogger())
			values := validValues()
			tt.mutate(&values)

			req, err := c.FromValues(values)

			assert.Nil(t, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// Одинаковые значения дают одинаковый результат в обоих путях ввода.
func TestCollector_PathsAgree(t *testing.T) {
	inputs := []PaymentValues{
		validValues(),
		{Currency: "EURO", Amount: "1", Description: "x", RedirectURL: "https://a.example"},
		{Currency: "EUR", Amount: "-1", Description: "x", RedirectURL: "https://a.example"},
		{Currency: "EUR", Amount: "1", Description: " ", RedirectURL: "https://a.example"},
		{Currency: "EUR", Amount: "1", Description: "x", RedirectURL: "a.example"},
	}

	for _, values := range inputs {
		c := New(&scriptedPrompter{answers: map[string]answer{
			"currency":     {value: values.Currency},
			"amount":       {value: values.Amount},
			"description":  {value: values.Description},
			"redirect_url": {value: values.RedirectURL},
		}}, newNoopLogger())

		fromPrompt, promptErr := c.CollectPayment(context.Background(), values.WebhookURL)
		fromFlags, flagErr := c.FromValues(values)

		assert.Equal(t, fromFlags, fromPrompt)
		if flagErr == nil {
			assert.NoError(t, promptErr)
			continue
		}
		for _, sentinel := range []error{ErrInvalidCurrency, ErrInvalidAmount, ErrInvalidDescription, ErrInvalidURL} {
			assert.Equal(t, errors.Is(flagErr, sentinel), errors.Is(promptErr, sentinel))
		}
	}
}

func TestCollector_BalanceQuery(t *testing.T) {
	c := New(nil, newNoopLogger())

	params, err := c.BalanceQuery(2, " bal_abc123 ")
	require.NoError(t, err)
	assert.Equal(t, 2, params.Limit)
	assert.Equal(t, "bal_abc123", params.From)

	params, err = c.BalanceQuery(0, "")
	require.NoError(t, err)
	assert.Zero(t, params.Limit)

	_, err = c.BalanceQuery(-1, "")
	assert.ErrorIs(t, err, ErrInvalidLimit)

	_, err = c.BalanceQuery(MaxListLimit+1, "")
	assert.ErrorIs(t, err, ErrInvalidLimit)

	_, err = c.BalanceQuery(10, "bal_../etc")
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestCollector_PaymentID(t *testing.T) {
	c := New(nil, newNoopLogger())

	id, err := c.PaymentID(" tr_WDqYK6vllg ")
	require.NoError(t, err)
	assert.Equal(t, "tr_WDqYK6vllg", id)

	for _, bad := range []string{"", "WDqYK6vllg", "tr_", "tr_abc/def", "ord_abc"} {
		_, err := c.PaymentID(bad)
		assert.ErrorIs(t, err, ErrInvalidPaymentID, bad)
	}
}
