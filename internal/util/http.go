package util

import (
	"net/http"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
)

type HTTPClientOptions struct {
	Timeout     time.Duration
	UserAgent   string
	DebugLogger interface {
		Debugf(string, ...any)
	}
}

// NewDownloadClient builds the HTTP client used for image downloads. The
// transport is wrapped with the Cloudflare bypass round tripper so direct
// asset fetches carry browser-like headers. Redirects are not followed
// automatically; the downloader walks them itself so it can bound the hop
// count.
func NewDownloadClient(opts HTTPClientOptions) *http.Client {
	base := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		ForceAttemptHTTP2:   true,
	}

	client := &http.Client{
		Timeout: opts.Timeout,
		Transport: roundTripper{
			base: cloudflarebp.AddCloudFlareByPass(base),
			ua:   opts.UserAgent,
			log:  opts.DebugLogger,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	if opts.DebugLogger != nil {
		opts.DebugLogger.Debugf("HTTP client initialized (timeout=%s, ua=%q)\n",
			opts.Timeout, opts.UserAgent)
	}

	return client
}

type roundTripper struct {
	base http.RoundTripper
	ua   string
	log  interface{ Debugf(string, ...any) }
}

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.ua != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", rt.ua)
	}

	if rt.log != nil {
		rt.log.Debugf("HTTP %s %s\n", req.Method, req.URL.String())
	}

	return rt.base.RoundTrip(req)
}

func PickUserAgent(override string) string {
	if override != "" {
		return override
	}

	return "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
}
