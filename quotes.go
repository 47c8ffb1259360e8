package valuation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/PaesslerAG/jsonpath"

	"github.com/spello/valuation/date"
)

// This file fetches latest quotes for pair-coded FX symbols from a JSON quote
// endpoint, to refresh a price archive between market-data deliveries. The
// valuation core never performs network I/O; only the update command calls
// into here.

// QuoteSource describes a JSON quote endpoint: a URL pattern with a %s verb
// for the symbol, and a JSONPath expression selecting the latest price in
// the response.
type QuoteSource struct {
	URL  string
	Path string
}

// DefaultQuoteSource reads Yahoo-style chart JSON, which quotes the same
// pair-coded symbols the price archives use.
var DefaultQuoteSource = QuoteSource{
	URL:  "https://query1.finance.yahoo.com/v8/finance/chart/%s",
	Path: "$.chart.result[0].meta.regularMarketPrice",
}

// FetchQuote retrieves today's observation for symbol from the source.
// The returned observation is quoted in 'currency'.
func FetchQuote(client *http.Client, src QuoteSource, symbol, currency string) (Observation, error) {
	addr := fmt.Sprintf(src.URL, symbol)
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return Observation{}, fmt.Errorf("error retrieving quote %q: %w", symbol, err)
	}

	jval, err := jsonpath.Get(src.Path, jobj)
	if err != nil {
		return Observation{}, fmt.Errorf("error parsing quote %q: %q %w", symbol, src.Path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer,
	// or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return Observation{}, fmt.Errorf("error parsing quote %q: %q not a number: %v", symbol, src.Path, jval)
	}

	return Observation{Symbol: symbol, On: date.Today(), Price: M(val, currency)}, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}
