package finance

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// This file contains the client for the public mutual-fund NAV feed. The core
// takes a NAV as input; fetching is an on-demand convenience for the CLI.

// DefaultNAVBaseURL is the public mfapi-style endpoint serving the latest NAV
// per scheme code. Overridable through the MFAPI_BASE_URL environment variable.
const DefaultNAVBaseURL = "https://api.mfapi.in"

// NAVBaseURL returns the configured NAV feed base URL.
func NAVBaseURL() string {
	if u := os.Getenv("MFAPI_BASE_URL"); u != "" {
		return u
	}
	return DefaultNAVBaseURL
}

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// diskcache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	err = c.put(key, resp)
	if err != nil {
		log.Printf("cache write err (ignored): %v\n", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}

// daily returns a client with a cache with daily expiry.
func daily() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
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

// LatestNAV fetches the latest published NAV for a scheme from the feed.
// Responses look like {"meta":{...},"data":[{"date":"28-08-2026","nav":"117.2"}]}.
func LatestNAV(client *http.Client, baseURL, schemeCode string) (Money, error) {
	if client == nil {
		client = daily()
	}
	addr := fmt.Sprintf("%s/mf/%s/latest", baseURL, schemeCode)

	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return Money{}, fmt.Errorf("error fetching nav for %q: %w", schemeCode, err)
	}

	path := "$.data[0].nav"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return Money{}, fmt.Errorf("error parsing nav for %q: %q %w", schemeCode, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	var nav decimal.Decimal
	switch v := jval.(type) {
	case string:
		nav, err = decimal.NewFromString(v)
		if err != nil {
			return Money{}, fmt.Errorf("nav for %q is not a number: %q", schemeCode, v)
		}
	case float64:
		nav = decimal.NewFromFloat(v)
	default:
		return Money{}, fmt.Errorf("nav for %q has unexpected type %T", schemeCode, jval)
	}
	if !nav.IsPositive() {
		return Money{}, fmt.Errorf("%w: feed returned %s for %q", ErrInvalidNAV, nav, schemeCode)
	}
	return M(nav), nil
}
