// Package prompt gathers conversion requests from an interactive user.
//
// Every prompt blocks until a full line of input is available. The word
// "exit" is never passed around as a value: it is turned into the Exit
// signal as soon as it is read.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"go-currency-converter/domain"
)

const (
	AmountPrompt         = `Enter the amount to convert (or type "exit" to quit): `
	SourcePrompt         = "Select the source currency:"
	TargetPrompt         = "Select the target currency:"
	ChoicePrompt         = "> "
	InvalidAmountMessage = "Please enter a valid amount."
	InvalidChoiceMessage = "Please select one of the listed options."

	exitWord = "exit"

	// maxLineBytes longest answer kept; the rest of a longer line is discarded
	maxLineBytes = 4096
)

var (
	// ErrInputClosed input ended before the user answered
	ErrInputClosed = errors.New("input closed")

	ErrInvalidAmount = errors.New("invalid amount")

	// errLineTooLong the answer exceeded maxLineBytes and was thrown away
	errLineTooLong = errors.New("line too long")
)

// Signal tells the caller whether to carry on or stop
type Signal int

const (
	Continue Signal = iota
	Exit
)

func (s Signal) String() string {
	switch s {
	case Continue:
		return "continue"
	case Exit:
		return "exit"
	}
	return "signal(" + strconv.Itoa(int(s)) + ")"
}

// Controller asks the questions of one conversion
type Controller struct {
	reader *bufio.Reader
	out    io.Writer

	// codes the currencies offered, in display order
	codes []domain.Currency
}

// New constructs a Controller offering codes as currency choices
func New(in io.Reader, out io.Writer, codes []domain.Currency) *Controller {
	offered := make([]domain.Currency, len(codes))
	copy(offered, codes)
	return &Controller{
		reader: bufio.NewReader(in),
		out:    out,
		codes:  offered,
	}
}

// Next asks for amount, source and target in turn.
// Exit at any question skips the ones after it.
func (c *Controller) Next(ctx context.Context) (domain.Request, Signal, error) {
	amount, sig, err := c.Amount(ctx)
	if err != nil || sig == Exit {
		return domain.Request{}, sig, err
	}

	from, sig, err := c.Currency(ctx, SourcePrompt)
	if err != nil || sig == Exit {
		return domain.Request{}, sig, err
	}

	to, sig, err := c.Currency(ctx, TargetPrompt)
	if err != nil || sig == Exit {
		return domain.Request{}, sig, err
	}

	return domain.Request{Amount: amount, From: from, To: to}, Continue, nil
}

// Amount asks until it gets a positive number or exit
func (c *Controller) Amount(ctx context.Context) (domain.Amount, Signal, error) {
	for {
		fmt.Fprint(c.out, AmountPrompt)
		line, err := c.readLine(ctx)
		if errors.Is(err, errLineTooLong) {
			fmt.Fprintln(c.out, InvalidAmountMessage)
			continue
		}
		if err != nil {
			return 0, Continue, fmt.Errorf("amount: %w", err)
		}
		if isExit(line) {
			return 0, Exit, nil
		}

		amount, err := ParseAmount(line)
		if err != nil {
			fmt.Fprintln(c.out, InvalidAmountMessage)
			continue
		}
		return amount, Continue, nil
	}
}

// Currency shows the currency menu under message and asks until a listed option is picked.
// Options can be picked by number or by code.
func (c *Controller) Currency(ctx context.Context, message string) (domain.Currency, Signal, error) {
	for {
		c.printMenu(message)
		line, err := c.readLine(ctx)
		if errors.Is(err, errLineTooLong) {
			fmt.Fprintln(c.out, InvalidChoiceMessage)
			continue
		}
		if err != nil {
			return "", Continue, fmt.Errorf("currency: %w", err)
		}

		code, sig, ok := c.choose(line)
		if !ok {
			fmt.Fprintln(c.out, InvalidChoiceMessage)
			continue
		}
		return code, sig, nil
	}
}

func (c *Controller) printMenu(message string) {
	fmt.Fprintln(c.out, message)
	for i, code := range c.codes {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, code)
	}
	fmt.Fprintf(c.out, "  %d) %s\n", len(c.codes)+1, exitWord)
	fmt.Fprint(c.out, ChoicePrompt)
}

// choose maps an answer to a menu option. ok is false when nothing matches.
func (c *Controller) choose(answer string) (code domain.Currency, sig Signal, ok bool) {
	if isExit(answer) {
		return "", Exit, true
	}

	if n, err := strconv.Atoi(answer); err == nil {
		switch {
		case n >= 1 && n <= len(c.codes):
			return c.codes[n-1], Continue, true
		case n == len(c.codes)+1:
			return "", Exit, true
		}
		return "", Continue, false
	}

	want := domain.NormalizeCurrency(answer)
	for _, code := range c.codes {
		if code == want {
			return code, Continue, true
		}
	}
	return "", Continue, false
}

// readLine returns the next input line, trimmed. A line longer than
// maxLineBytes is consumed whole and reported as errLineTooLong.
func (c *Controller) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var line []byte
	tooLong := false
	for {
		chunk, isPrefix, err := c.reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(line) > 0 || tooLong {
					break
				}
				return "", ErrInputClosed
			}
			return "", fmt.Errorf("reading input: %w", err)
		}
		if !tooLong {
			if len(line)+len(chunk) > maxLineBytes {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			break
		}
	}

	if tooLong {
		return "", errLineTooLong
	}
	return strings.TrimSpace(string(line)), nil
}

// ParseAmount accepts a finite number greater than zero
func ParseAmount(s string) (domain.Amount, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidAmount)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidAmount)
	}
	return domain.Amount(f), nil
}

func isExit(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), exitWord)
}
