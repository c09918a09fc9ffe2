package poedb

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"poemarket-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const defaultBaseUrl = "https://poedb.tw/us"

// Client fetches mod pages from poedb. The tables are server rendered
// so a plain HTTP client behind the cloudflare bypass transport is
// enough, no browser session is involved.
type Client struct {
	http *resty.Client
}

func NewClient(baseUrl string) *Client {
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "services/poedb/http")

	return &Client{http: client}
}

// FetchModTables downloads the mod listing page for one affix kind
// and hands back the parsed document.
func (c *Client) FetchModTables(ctx context.Context, kind AffixKind) (*goquery.Document, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("type", string(kind)).
		Get("/mod.php")
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("poedb returned status %d for %s mods", res.StatusCode(), kind)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s mod page: %w", kind, err)
	}
	return doc, nil
}
