package models

import (
	"fmt"
	"net/url"
	"time"
)

// Balance — баланс организации в одной валюте.
type Balance struct {
	Resource        string     `json:"resource"`
	ID              string     `json:"id"`
	Mode            Mode       `json:"mode"`
	Currency        string     `json:"currency"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status"`
	AvailableAmount Money      `json:"availableAmount"`
	PendingAmount   Money      `json:"pendingAmount"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
}

// ListLinks — ссылки пагинации списка.
type ListLinks struct {
	Self          *Link `json:"self,omitempty"`
	Previous      *Link `json:"previous"`
	Next          *Link `json:"next"`
	Documentation *Link `json:"documentation,omitempty"`
}

// BalanceList — страница списка балансов. Записи лежат во встроенной коллекции _embedded
// в том порядке, в котором их вернул провайдер.
type BalanceList struct {
	Count    int `json:"count"`
	Embedded struct {
		Balances []Balance `json:"balances"`
	} `json:"_embedded"`
	Links ListLinks `json:"_links"`
}

// ListBalancesParams — параметры запроса списка балансов.
// Limit == 0 означает значение провайдера по умолчанию.
type ListBalancesParams struct {
	Limit int
	From  string
}

// Validate проверяет, что ответ содержит коллекцию _embedded.balances
// и каждая запись в ней — баланс с ID. Пустая страница допустима.
func (l *BalanceList) Validate() error {
	if l.Embedded.Balances == nil {
		return fmt.Errorf("%w: no _embedded.balances collection", ErrUnexpectedResource)
	}
	for i, b := range l.Embedded.Balances {
		if b.Resource != "" && b.Resource != ResourceBalance {
			return fmt.Errorf("%w: item %d has resource %q, want %q", ErrUnexpectedResource, i, b.Resource, ResourceBalance)
		}
		if b.ID == "" {
			return fmt.Errorf("%w: item %d without id", ErrUnexpectedResource, i)
		}
	}
	return nil
}

// Items возвращает балансы страницы.
func (l *BalanceList) Items() []Balance {
	return l.Embedded.Balances
}

// NextCursor возвращает значение from для следующей страницы или пустую строку.
func (l *BalanceList) NextCursor() string {
	return cursorFrom(l.Links.Next)
}

// PreviousCursor возвращает значение from для предыдущей страницы или пустую строку.
func (l *BalanceList) PreviousCursor() string {
	return cursorFrom(l.Links.Previous)
}

func cursorFrom(link *Link) string {
	if link == nil || link.Href == "" {
		return ""
	}
	u, err := url.Parse(link.Href)
	if err != nil {
		return ""
	}
	return u.Query().Get("from")
}
