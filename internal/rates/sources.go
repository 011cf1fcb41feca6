package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Fiat codes tracked by the service. USD is the pivot and must stay first.
var fiatCodes = []string{"USD", "INR", "EUR", "GBP", "JPY", "AUD", "CAD", "CNY", "SGD", "AED"}

// cryptoIDs maps ticker codes to the upstream asset identifiers.
var cryptoIDs = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"SOL":  "solana",
	"BNB":  "binancecoin",
	"XRP":  "ripple",
	"DOGE": "dogecoin",
	"ADA":  "cardano",
}

// FiatSource fetches fiat exchange rates keyed by a base currency code.
type FiatSource struct {
	baseURL string
	client  *http.Client
}

// NewFiatSource creates a fiat source. baseURL defaults to the public
// open.er-api.com endpoint.
func NewFiatSource(baseURL string, timeout time.Duration) *FiatSource {
	if baseURL == "" {
		baseURL = "https://open.er-api.com/v6/latest"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FiatSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type fiatResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// Fetch returns units-per-base for every tracked fiat code.
func (s *FiatSource) Fetch(ctx context.Context, base string) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+url.PathEscape(base), nil)
	if err != nil {
		return nil, fmt.Errorf("build fiat request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch fiat rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fiat source returned status %d", resp.StatusCode)
	}
	var body fiatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode fiat response: %w", err)
	}
	if body.Result != "success" || len(body.Rates) == 0 {
		return nil, fmt.Errorf("fiat source returned result %q", body.Result)
	}

	out := make(map[string]float64, len(fiatCodes))
	for _, code := range fiatCodes {
		if v, ok := body.Rates[code]; ok && v > 0 {
			out[code] = v
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("fiat source returned no tracked codes")
	}
	return out, nil
}

// CryptoSource fetches USD prices for crypto assets keyed by asset id.
type CryptoSource struct {
	baseURL string
	client  *http.Client
}

// NewCryptoSource creates a crypto source. baseURL defaults to the public
// coingecko endpoint.
func NewCryptoSource(baseURL string, timeout time.Duration) *CryptoSource {
	if baseURL == "" {
		baseURL = "https://api.coingecko.com/api/v3"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CryptoSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch returns the USD price per coin for every tracked crypto code.
func (s *CryptoSource) Fetch(ctx context.Context) (map[string]float64, error) {
	ids := make([]string, 0, len(cryptoIDs))
	for _, id := range cryptoIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.baseURL+"/simple/price?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build crypto request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch crypto prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("crypto source returned status %d", resp.StatusCode)
	}
	var body map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode crypto response: %w", err)
	}

	out := make(map[string]float64, len(cryptoIDs))
	for code, id := range cryptoIDs {
		if prices, ok := body[id]; ok {
			if usd := prices["usd"]; usd > 0 {
				out[code] = usd
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("crypto source returned no tracked assets")
	}
	return out, nil
}

// SupportedCodes returns every currency code the service understands,
// fiat first, then crypto, each group alphabetical after the pivot.
func SupportedCodes() []string {
	out := make([]string, 0, len(fiatCodes)+len(cryptoIDs))
	out = append(out, fiatCodes...)
	crypto := make([]string, 0, len(cryptoIDs))
	for code := range cryptoIDs {
		crypto = append(crypto, code)
	}
	sort.Strings(crypto)
	return append(out, crypto...)
}

// IsSupported reports whether code is a tracked fiat or crypto currency.
func IsSupported(code string) bool {
	for _, c := range fiatCodes {
		if c == code {
			return true
		}
	}
	_, ok := cryptoIDs[code]
	return ok
}
