// Package openrouter scrapes per-provider pricing/performance breakdowns
// from openrouter.ai model pages.
package openrouter

import (
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	"providerwatch/lib/restyutil"
	"providerwatch/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	BaseUrl string
	// sent as a bearer token on every request, required by the upstream
	ApiKey string
	// optional, dumps every fetched page for offline inspection
	InstrumentOutput restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetHeader("authorization", fmt.Sprintf("Bearer %s", opts.ApiKey))
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/openrouter/http")
	restyutil.InstrumentClient(client, opts.InstrumentOutput)

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
	return c, nil
}

// ModelUrl returns the page a model's provider breakdown lives on, the
// base endpoint joined with the model identifier.
func (c *Client) ModelUrl(modelId string) string {
	return c.BaseUrl.JoinPath(modelId).String()
}
