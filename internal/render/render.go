// Package render выводит результаты команд в человекочитаемом виде:
// таблица для списков, сводка для одиночного платежа и, по запросу,
// исходный ответ в виде форматированного JSON.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/magabrotheeeer/mollie-cli/internal/lib/sl"
	"github.com/magabrotheeeer/mollie-cli/internal/models"
)

// Заголовки таблиц. Порядок колонок стабилен.
var (
	BalanceHeader = []string{"#", "ID", "CURRENCY", "STATUS", "AVAILABLE", "PENDING"}
	PaymentHeader = []string{"ID", "MODE", "STATUS", "AMOUNT", "METHOD", "DESCRIPTION"}
)

// Options управляет дополнительным выводом.
type Options struct {
	WithRawResponse bool
}

// Renderer пишет результаты в out.
type Renderer struct {
	out         io.Writer
	log         *slog.Logger
	checkoutURL string
	title       *color.Color
	header      *color.Color
	alert       *color.Color
}

// New создаёт Renderer. checkoutURL задаёт адрес страницы выбора метода оплаты,
// к которому дописывается ID платежа, если провайдер не вернул ссылку checkout.
func New(out io.Writer, log *slog.Logger, checkoutURL string, colored bool) *Renderer {
	r := &Renderer{
		out:         out,
		log:         log,
		checkoutURL: checkoutURL,
		title:       color.New(color.Bold),
		header:      color.New(color.FgHiBlack),
		alert:       color.New(color.FgRed),
	}
	for _, c := range []*color.Color{r.title, r.header, r.alert} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Balances выводит страницу балансов: строка на запись с номером от 1 в порядке провайдера.
func (r *Renderer) Balances(list *models.BalanceList, opts Options) error {
	const op = "render.Balances"

	rows := make([][]string, 0, len(list.Items()))
	for i, b := range list.Items() {
		rows = append(rows, []string{
			fmt.Sprintf("%d.", i+1),
			b.ID,
			b.Currency,
			b.Status,
			b.AvailableAmount.FormattedValue(),
			b.PendingAmount.FormattedValue(),
		})
	}

	fmt.Fprintln(r.out, r.title.Sprint("Balances"))
	if err := r.table(BalanceHeader, rows); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if prev := list.PreviousCursor(); prev != "" {
		fmt.Fprintf(r.out, "previous page: --from %s\n", prev)
	}
	if next := list.NextCursor(); next != "" {
		fmt.Fprintf(r.out, "next page: --from %s\n", next)
	}

	r.raw(list, opts)
	return nil
}

// Payment выводит сводку по одному платежу под заголовком title.
func (r *Renderer) Payment(title string, p *models.Payment, opts Options) error {
	const op = "render.Payment"

	c := r.title
	if p.Status == models.PaymentStatusCanceled || p.Status == models.PaymentStatusFailed {
		c = r.alert
	}
	fmt.Fprintln(r.out, c.Sprint(title))

	method := "-"
	if p.Method != nil && *p.Method != "" {
		method = *p.Method
	}
	row := []string{
		p.ID,
		string(p.Mode),
		string(p.Status),
		p.Amount.String(),
		method,
		p.Description,
	}
	if err := r.table(PaymentHeader, [][]string{row}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r.raw(p, opts)
	return nil
}

// CheckoutHint подсказывает, где оплатить только что созданный платёж.
func (r *Renderer) CheckoutHint(p *models.Payment) {
	if url := p.CheckoutURL(); url != "" {
		fmt.Fprintf(r.out, "Pay this payment: %s\n", url)
		return
	}
	if p.Method != nil {
		fmt.Fprintf(r.out, "Payment method %s is preselected, the payment ID is: %s\n", *p.Method, p.ID)
		return
	}
	fmt.Fprintf(r.out, "Pay this payment: %s%s\n", r.checkoutURL, p.ID)
}

// table выравнивает колонки и только потом красит заголовок,
// иначе escape-последовательности цвета сбивают ширину колонок.
func (r *Renderer) table(header []string, rows [][]string) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	head, body, _ := strings.Cut(buf.String(), "\n")
	if _, err := fmt.Fprintln(r.out, r.header.Sprint(head)); err != nil {
		return err
	}
	_, err := io.WriteString(r.out, body)
	return err
}

// raw печатает исходный разобранный ответ. Ошибка сериализации не прерывает команду:
// основной вывод уже напечатан.
func (r *Renderer) raw(v any, opts Options) {
	const op = "render.raw"
	if !opts.WithRawResponse {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		r.log.Error("failed to render raw response", slog.String("op", op), sl.Err(err))
		return
	}
	fmt.Fprintln(r.out, string(data))
}
