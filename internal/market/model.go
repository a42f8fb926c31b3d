package market

import "fmt"

// TickerEntry is one exchange ticker after wire-format conversion.
type TickerEntry struct {
	Symbol        string
	LastPrice     float64
	ChangePercent float64
	QuoteVolume   float64
}

// QuoteEntry is a stock quote after wire-format conversion.
type QuoteEntry struct {
	Current       float64
	Change        float64
	PercentChange float64
}

// CryptoTicker is a dashboard-ready crypto listing.
type CryptoTicker struct {
	Symbol          string  `json:"symbol"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	Change24h       float64 `json:"change_24h"`
	Volume24h       float64 `json:"volume_24h"`
	PriceFormatted  string  `json:"price_formatted"`
	VolumeFormatted string  `json:"volume_formatted"`
}

// StockQuote is a dashboard-ready stock quote.
type StockQuote struct {
	Ticker         string  `json:"ticker"`
	Price          float64 `json:"price"`
	Change         float64 `json:"change"`
	ChangePercent  float64 `json:"change_percent"`
	PriceFormatted string  `json:"price_formatted"`
}

// cryptoNames maps exchange symbols to display names. Unknown symbols fall
// back to the symbol itself.
var cryptoNames = map[string]string{
	"BTC":   "Bitcoin",
	"ETH":   "Ethereum",
	"BNB":   "Binance Coin",
	"XRP":   "Ripple",
	"ADA":   "Cardano",
	"DOGE":  "Dogecoin",
	"SOL":   "Solana",
	"DOT":   "Polkadot",
	"MATIC": "Polygon",
	"SHIB":  "Shiba Inu",
	"TRX":   "TRON",
	"AVAX":  "Avalanche",
	"LINK":  "Chainlink",
	"UNI":   "Uniswap",
	"ATOM":  "Cosmos",
}

// cryptoName returns the display name for an exchange symbol
func cryptoName(symbol string) string {
	if name, ok := cryptoNames[symbol]; ok {
		return name
	}
	return symbol
}

// formatPrice renders a USD price with precision depending on magnitude
func formatPrice(price float64) string {
	switch {
	case price >= 1000:
		return "$" + groupThousands(fmt.Sprintf("%.2f", price))
	case price >= 1:
		return fmt.Sprintf("$%.2f", price)
	case price >= 0.01:
		return fmt.Sprintf("$%.4f", price)
	default:
		return fmt.Sprintf("$%.8f", price)
	}
}

// formatVolume renders a USD trade volume with a B/M/K suffix
func formatVolume(volume float64) string {
	switch {
	case volume >= 1_000_000_000:
		return fmt.Sprintf("$%.2fB", volume/1_000_000_000)
	case volume >= 1_000_000:
		return fmt.Sprintf("$%.2fM", volume/1_000_000)
	default:
		return fmt.Sprintf("$%.2fK", volume/1_000)
	}
}

// groupThousands inserts commas into the integer part of a fixed-point
// decimal string, e.g. "45678.90" -> "45,678.90".
func groupThousands(s string) string {
	dot := len(s)
	for i, r := range s {
		if r == '.' {
			dot = i
			break
		}
	}

	intPart, rest := s[:dot], s[dot:]
	if len(intPart) <= 3 {
		return s
	}

	var out []byte
	lead := len(intPart) % 3
	if lead > 0 {
		out = append(out, intPart[:lead]...)
	}
	for i := lead; i < len(intPart); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, intPart[i:i+3]...)
	}

	return string(out) + rest
}
