package session

import (
	"context"
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"go-currency-converter/domain"
	"go-currency-converter/exchange"
	"go-currency-converter/prompt"
)

const (
	WelcomeMessage  = "Welcome to the Currency Converter!"
	FarewellMessage = "You have exited the converter. Thanks for using it!"
)

// Prompter supplies one conversion request per call, or prompt.Exit
type Prompter interface {
	Next(ctx context.Context) (domain.Request, prompt.Signal, error)
}

// Session the conversion loop: ask, convert, print, repeat until exit
type Session struct {
	prompter Prompter
	service  exchange.Service
	out      io.Writer
	logger   log.Logger
}

// New constructs a Session writing results to out
func New(p Prompter, s exchange.Service, out io.Writer, logger log.Logger) *Session {
	return &Session{
		prompter: p,
		service:  s,
		out:      out,
		logger:   logger,
	}
}

// Run blocks until the user exits or something unexpected fails.
// A nil error means the user chose to exit.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, WelcomeMessage)

	for conversions := 0; ; conversions++ {
		req, sig, err := s.prompter.Next(ctx)
		if err != nil {
			return fmt.Errorf("prompting: %w", err)
		}
		if sig == prompt.Exit {
			level.Info(s.logger).Log("msg", "user exited", "conversions", conversions)
			fmt.Fprintln(s.out, FarewellMessage)
			return nil
		}

		ex, err := s.service.Convert(ctx, req)
		if err != nil {
			return fmt.Errorf("converting %v %v to %v: %w", req.Amount, req.From, req.To, err)
		}

		if _, err := fmt.Fprintln(s.out, FormatResult(req, ex)); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
	}
}

// FormatResult renders a conversion as shown to the user, rounded to 2 decimals
func FormatResult(req domain.Request, ex domain.Exchanged) string {
	return fmt.Sprintf("%v %v is equal to %.2f %v", req.Amount, req.From, float64(ex.Amount), req.To)
}
