// Package models содержит доменные структуры клиента Mollie: денежные суммы,
// платежи, балансы и режим работы (live/test).
// Структуры используются и как модель предметной области, и как формат обмена с API,
// поэтому поля размечены json-тегами в нотации Mollie.
package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale — количество знаков после запятой в сериализованной сумме.
const MoneyScale = 2

// Money представляет денежную сумму в конкретной валюте.
//
// В JSON сумма всегда пишется строкой ровно с двумя знаками после запятой,
// округление половины от нуля: 1.005 -> "1.01", 1.004 -> "1.00", -1.005 -> "-1.01".
type Money struct {
	Currency string          // Код валюты ISO 4217, например "EUR"
	Value    decimal.Decimal // Сумма без ограничения точности
}

type wireMoney struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

// NewMoney создаёт сумму из кода валюты и значения.
func NewMoney(currency string, value decimal.Decimal) Money {
	return Money{Currency: currency, Value: value}
}

// FormattedValue возвращает сумму в виде строки с двумя знаками после запятой.
func (m Money) FormattedValue() string {
	return m.Value.StringFixed(MoneyScale)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.FormattedValue(), m.Currency)
}

// MarshalJSON сериализует сумму в формат {"currency":"EUR","value":"10.00"}.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireMoney{
		Currency: m.Currency,
		Value:    m.FormattedValue(),
	})
}

// UnmarshalJSON разбирает сумму из ответа API. Пустое значение трактуется как ноль.
func (m *Money) UnmarshalJSON(data []byte) error {
	const op = "models.Money.UnmarshalJSON"
	var w wireMoney
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	value := decimal.Zero
	if w.Value != "" {
		v, err := decimal.NewFromString(w.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		value = v
	}
	m.Currency = w.Currency
	m.Value = value
	return nil
}
