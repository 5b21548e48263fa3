package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go-currency-converter/domain"
	"go-currency-converter/exchange"
	"go-currency-converter/mocks/exchange_mock"
	"go-currency-converter/prompt"
	"go-currency-converter/rates"
)

func run(t *testing.T, input string, svc exchange.Service) (string, error) {
	t.Helper()
	table := rates.Default()
	var out bytes.Buffer
	ctrl := prompt.New(strings.NewReader(input), &out, table.Codes())
	err := New(ctrl, svc, &out, log.NewNopLogger()).Run(context.Background())
	return out.String(), err
}

func results(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if i := strings.LastIndex(line, prompt.ChoicePrompt); i >= 0 {
			line = line[i+len(prompt.ChoicePrompt):]
		}
		if strings.Contains(line, " is equal to ") {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestSession_Run(t *testing.T) {
	svc := exchange.NewService(rates.Default())

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			"pkr -> usd",
			"100\nPKR\nUSD\nexit\n",
			[]string{"100 PKR is equal to 0.35 USD"},
		},
		{
			"usd -> eur",
			"10\nUSD\nEUR\nexit\n",
			[]string{"10 USD is equal to 8.86 EUR"},
		},
		{
			"menu numbers and same currency",
			"12.5\n6\n6\nexit\n",
			[]string{"12.5 INR is equal to 12.50 INR"},
		},
		{
			"several conversions",
			"abc\n100\n1\n2\n1\nUSD\nPKR\nexit\n",
			[]string{"100 PKR is equal to 0.35 USD", "1 USD is equal to 285.71 PKR"},
		},
		{
			"exit at source",
			"100\nexit\n",
			nil,
		},
		{
			"exit at target by number",
			"100\nPKR\n7\n",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.input, svc)

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, WelcomeMessage+"\n"))
			assert.True(t, strings.HasSuffix(out, FarewellMessage+"\n"))
			assert.Equal(t, tt.want, results(out))
		})
	}
}

func TestSession_ExitAtAmount(t *testing.T) {
	out, err := run(t, "EXIT\n", exchange.NewService(rates.Default()))

	require.NoError(t, err)
	assert.Equal(t, WelcomeMessage+"\n"+prompt.AmountPrompt+FarewellMessage+"\n", out)
	assert.NotContains(t, out, prompt.SourcePrompt)
}

func TestSession_InputClosed(t *testing.T) {
	out, err := run(t, "100\nPKR\n", exchange.NewService(rates.Default()))

	assert.ErrorIs(t, err, prompt.ErrInputClosed)
	assert.NotContains(t, out, FarewellMessage)
}

func TestSession_ConvertFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc := exchange_mock.NewMockService(ctrl)
	svc.EXPECT().
		Convert(gomock.Any(), domain.Request{Amount: 100, From: "PKR", To: "USD"}).
		Return(domain.Exchanged{}, errors.New("rates unavailable"))

	out, err := run(t, "100\nPKR\nUSD\nexit\n", svc)

	assert.ErrorContains(t, err, "rates unavailable")
	assert.NotContains(t, out, FarewellMessage)
}

func TestSession_UsesService(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc := exchange_mock.NewMockService(ctrl)
	svc.EXPECT().
		Convert(gomock.Any(), domain.Request{Amount: 3, From: "GBP", To: "JPY"}).
		Return(domain.Exchanged{Rate: 2, Amount: 6}, nil)

	out, err := run(t, "3\nGBP\nJPY\nexit\n", svc)

	require.NoError(t, err)
	assert.Equal(t, []string{"3 GBP is equal to 6.00 JPY"}, results(out))
}

func TestFormatResult(t *testing.T) {
	req := domain.Request{Amount: 100, From: "PKR", To: "USD"}
	ex := domain.Exchanged{Rate: 0.0035, Amount: 0.35000000000000003}

	assert.Equal(t, "100 PKR is equal to 0.35 USD", FormatResult(req, ex))
}

func TestSession_OverlongAmountReprompts(t *testing.T) {
	out, err := run(t, strings.Repeat("a", 70*1024)+"\nexit\n", exchange.NewService(rates.Default()))

	require.NoError(t, err)
	assert.Contains(t, out, prompt.InvalidAmountMessage)
	assert.True(t, strings.HasSuffix(out, FarewellMessage+"\n"))
}
