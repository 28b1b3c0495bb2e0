package confluence

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"

	"github.com/aspies/asutils/pkg/logger"
)

const (
	requestTimeout = 30 * time.Second
	maxExcerptLen  = 200
)

// ErrUnauthorized reports a 401 from the API; the usual cause is a
// missing or expired token.
var ErrUnauthorized = errors.New("authentication failed, check your " + TokenEnvVar)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// Client talks to one Confluence Cloud site with basic auth.
type Client struct {
	baseURL    string
	email      string
	token      string
	httpClient *http.Client
}

// NewClient builds a client for the configured site. The token comes
// from APIToken, not the config file.
func NewClient(site SiteConfig, token string) *Client {
	return &Client{
		baseURL:    site.BaseURL,
		email:      site.Email,
		token:      token,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// SearchResult is one hit from a CQL search.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Excerpt string `json:"excerpt"`
	PageID  string `json:"page_id"`
	Space   string `json:"space"`
}

// Page is the full content of one Confluence page.
type Page struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Space string `json:"space"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// Space is one Confluence space.
type Space struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ChildPage is a page listed under a parent.
type ChildPage struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Search runs a text search, optionally scoped to one space key.
func (c *Client) Search(ctx context.Context, query string, limit int, space string) ([]SearchResult, error) {
	cql := fmt.Sprintf("text~%q", query)
	if space != "" {
		cql = fmt.Sprintf("space=%q AND %s", space, cql)
	}
	return c.SearchCQL(ctx, cql, limit)
}

// SearchCQL runs a raw CQL query.
func (c *Client) SearchCQL(ctx context.Context, cql string, limit int) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("cql", cql)
	params.Set("limit", strconv.Itoa(limit))

	var resp searchResponse
	if err := c.getJSON(ctx, "/search", params, &resp); err != nil {
		return nil, errors.Wrap(err, "search failed")
	}

	results := make([]SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		excerpt := htmlTagRe.ReplaceAllString(r.Excerpt, "")
		if runes := []rune(excerpt); len(runes) > maxExcerptLen {
			excerpt = string(runes[:maxExcerptLen])
		}
		results = append(results, SearchResult{
			Title:   r.Title,
			URL:     c.baseURL + r.URL,
			Excerpt: excerpt,
			PageID:  r.Content.ID,
			Space:   r.ResultGlobalContainer.Title,
		})
	}
	return results, nil
}

// GetPage fetches a page with its rendered body. asMarkdown converts
// the HTML body to markdown; conversion failures fall back to plain
// tag stripping rather than erroring out.
func (c *Client) GetPage(ctx context.Context, pageID string, asMarkdown bool) (*Page, error) {
	params := url.Values{}
	params.Set("expand", "body.view,space")

	var resp pageResponse
	if err := c.getJSON(ctx, "/content/"+pageID, params, &resp); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch page %s", pageID)
	}

	body := resp.Body.View.Value
	if asMarkdown {
		body = htmlToMarkdown(ctx, body)
	}

	return &Page{
		ID:    resp.ID,
		Title: resp.Title,
		Space: resp.Space.Key,
		Body:  body,
		URL:   c.baseURL + resp.Links.WebUI,
	}, nil
}

// ListSpaces returns up to limit spaces.
func (c *Client) ListSpaces(ctx context.Context, limit int) ([]Space, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var resp spacesResponse
	if err := c.getJSON(ctx, "/space", params, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to list spaces")
	}

	spaces := make([]Space, 0, len(resp.Results))
	for _, s := range resp.Results {
		spaces = append(spaces, Space{Key: s.Key, Name: s.Name, Type: s.Type})
	}
	return spaces, nil
}

// ChildPages returns the direct child pages of a parent page.
func (c *Client) ChildPages(ctx context.Context, parentID string, limit int) ([]ChildPage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var resp childrenResponse
	if err := c.getJSON(ctx, "/content/"+parentID+"/child/page", params, &resp); err != nil {
		return nil, errors.Wrapf(err, "failed to list children of %s", parentID)
	}

	children := make([]ChildPage, 0, len(resp.Results))
	for _, child := range resp.Results {
		children = append(children, ChildPage{ID: child.ID, Title: child.Title})
	}
	return children, nil
}

// VerifyAuth makes the cheapest authenticated call and reports whether
// the credentials work.
func (c *Client) VerifyAuth(ctx context.Context) error {
	params := url.Values{}
	params.Set("limit", "1")

	var resp spacesResponse
	return c.getJSON(ctx, "/space", params, &resp)
}

// getJSON performs an authenticated GET against the REST API, retrying
// transient failures. Client errors (4xx) are not retried; 401 maps to
// ErrUnauthorized.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + "/rest/api" + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return retry.Unrecoverable(errors.Wrap(err, "failed to build request"))
			}
			req.SetBasicAuth(c.email, c.token)
			req.Header.Set("Accept", "application/json")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return errors.Wrap(err, "request failed")
			}
			defer resp.Body.Close()

			switch {
			case resp.StatusCode == http.StatusUnauthorized:
				return retry.Unrecoverable(ErrUnauthorized)
			case resp.StatusCode >= 500:
				return errors.Errorf("confluence API returned %d", resp.StatusCode)
			case resp.StatusCode >= 400:
				return retry.Unrecoverable(errors.Errorf("confluence API returned %d", resp.StatusCode))
			}

			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return retry.Unrecoverable(errors.Wrap(err, "failed to decode response"))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

// htmlToMarkdown converts a rendered page body. Confluence emits markup
// the converter occasionally rejects; stripping tags is the fallback so
// page fetches never fail on formatting alone.
func htmlToMarkdown(ctx context.Context, html string) string {
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(html)
	if err != nil {
		logger.G(ctx).WithError(err).Debug("html-to-markdown conversion failed, stripping tags")
		return htmlTagRe.ReplaceAllString(html, "")
	}
	return markdown
}

// Wire types for the REST responses, trimmed to the fields we read.

type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Excerpt string `json:"excerpt"`
		Content struct {
			ID string `json:"id"`
		} `json:"content"`
		ResultGlobalContainer struct {
			Title string `json:"title"`
		} `json:"resultGlobalContainer"`
	} `json:"results"`
}

type pageResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Space struct {
		Key string `json:"key"`
	} `json:"space"`
	Body struct {
		View struct {
			Value string `json:"value"`
		} `json:"view"`
	} `json:"body"`
	Links struct {
		WebUI string `json:"webui"`
	} `json:"_links"`
}

type spacesResponse struct {
	Results []struct {
		Key  string `json:"key"`
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"results"`
}

type childrenResponse struct {
	Results []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"results"`
}
