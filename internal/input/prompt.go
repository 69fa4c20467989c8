package input

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
)

// Terminal задаёт вопросы в терминале через promptui.
// Ответ, не прошедший Validate, не принимается: promptui показывает ошибку и ждёт новый ввод.
type Terminal struct {
	in  io.ReadCloser
	out io.WriteCloser
}

// NewTerminal создаёт Terminal поверх потоков команды.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  io.NopCloser(in),
		out: nopWriteCloser{out},
	}
}

// Ask задаёт вопрос. Ctrl-C, Ctrl-D и отмена превращаются в ErrInputAborted.
func (t *Terminal) Ask(q Question) (string, error) {
	p := promptui.Prompt{
		Label:    q.Label,
		Default:  q.Default,
		Validate: promptui.ValidateFunc(q.Validate),
		Stdin:    t.in,
		Stdout:   t.out,
	}

	answer, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
			return "", fmt.Errorf("%w: %s", ErrInputAborted, q.Name)
		}
		return "", fmt.Errorf("prompt %s: %w", q.Name, err)
	}
	if answer == "" {
		answer = q.Default
	}
	return answer, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
