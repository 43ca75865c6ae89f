// Package courtlistener queries the CourtListener REST API and resolves
// nested opinion metadata into normalized decision records.
package courtlistener

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"courtwatch-backend/models"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"
)

const (
	publicHost = "https://www.courtlistener.com"
	userAgent  = "SupremeCourtTracker/1.0 (Educational Project)"
)

// Client fetches recent opinions for a single court. Nested cluster and
// docket lookups are best-effort: a failure degrades the affected field
// to a default and never aborts the record.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	token        string
	court        string
	maxTextChars int
	limiter      *rate.Limiter
	logger       *zap.Logger
}

// Option is a functional option for Client
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for all requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sets the CourtListener API token
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithCourt sets the court filter
func WithCourt(court string) Option {
	return func(c *Client) {
		c.court = court
	}
}

// WithMaxTextChars sets the opinion text truncation budget
func WithMaxTextChars(n int) Option {
	return func(c *Client) {
		c.maxTextChars = n
	}
}

// WithLookupInterval sets the pacing between nested metadata lookups
func WithLookupInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new CourtListener client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		court:        "scotus",
		maxTextChars: 15000,
		limiter:      rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// opinionPage is one page of the opinions endpoint
type opinionPage struct {
	Results []opinionRecord `json:"results"`
}

type opinionRecord struct {
	ID          int64  `json:"id"`
	AbsoluteURL string `json:"absolute_url"`
	CaseName    string `json:"case_name"`
	DateFiled   string `json:"date_filed"`
	AuthorStr   string `json:"author_str"`
	PerCuriam   bool   `json:"per_curiam"`
	Type        string `json:"type"`
	PageCount   int    `json:"page_count"`
	DownloadURL string `json:"download_url"`
	PlainText   string `json:"plain_text"`
	Cluster     string `json:"cluster"`
}

type clusterRecord struct {
	ID        int64             `json:"id"`
	CaseName  string            `json:"case_name"`
	DateFiled string            `json:"date_filed"`
	AuthorStr string            `json:"author_str"`
	Judges    string            `json:"judges"`
	PerCuriam bool              `json:"per_curiam"`
	Docket    string            `json:"docket"`
	Citations []clusterCitation `json:"citations"`
}

type clusterCitation struct {
	Volume   int    `json:"volume"`
	Reporter string `json:"reporter"`
	Page     string `json:"page"`
}

type docketRecord struct {
	CaseName string `json:"case_name"`
	CourtID  string `json:"court_id"`
}

// Fetch queries opinions filed within the lookback window, most recent
// first, capped at maxRecords. Failure of the top-level query is fatal
// and yields an empty sequence.
func (c *Client) Fetch(ctx context.Context, lookbackDays, maxRecords int) ([]models.Decision, error) {
	since := time.Now().AddDate(0, 0, -lookbackDays).Format("2006-01-02")

	params := url.Values{}
	params.Set("court", c.court)
	params.Set("date_filed__gte", since)
	params.Set("order_by", "-date_filed")
	params.Set("page_size", strconv.Itoa(maxRecords))

	var page opinionPage
	if err := c.getJSON(ctx, c.baseURL+"/opinions/?"+params.Encode(), &page); err != nil {
		return nil, fmt.Errorf("opinion query failed: %w", err)
	}

	results := page.Results
	if len(results) > maxRecords {
		results = results[:maxRecords]
	}

	decisions := make([]models.Decision, 0, len(results))
	for i := range results {
		decisions = append(decisions, c.resolve(ctx, &results[i]))
	}
	return decisions, nil
}

// resolve follows the opinion -> cluster -> docket reference chain and
// assembles a normalized decision with fallback defaults
func (c *Client) resolve(ctx context.Context, op *opinionRecord) models.Decision {
	var cluster clusterRecord
	if op.Cluster != "" {
		if err := c.getNested(ctx, op.Cluster, &cluster); err != nil {
			c.logger.Warn("cluster lookup failed",
				zap.Int64("opinion_id", op.ID),
				zap.Error(err))
		}
	}

	var docket docketRecord
	if cluster.Docket != "" {
		if err := c.getNested(ctx, cluster.Docket, &docket); err != nil {
			c.logger.Warn("docket lookup failed",
				zap.Int64("opinion_id", op.ID),
				zap.Error(err))
		}
	}
	if docket.CourtID != "" && docket.CourtID != c.court {
		c.logger.Warn("opinion belongs to a different court than the filter",
			zap.Int64("opinion_id", op.ID),
			zap.String("want", c.court),
			zap.String("got", docket.CourtID))
	}

	text := op.PlainText
	if text == "" {
		text = c.fetchPlainText(ctx, op.ID)
	}
	if len(text) > c.maxTextChars {
		text = text[:c.maxTextChars]
	}

	dateFiled := cluster.DateFiled
	if dateFiled == "" {
		dateFiled = op.DateFiled
	}

	return models.Decision{
		OpinionID:   op.ID,
		ClusterID:   cluster.ID,
		CaseName:    resolveCaseName(op, &cluster, &docket),
		DateFiled:   dateFiled,
		Author:      resolveAuthor(op, &cluster),
		Type:        op.Type,
		Citation:    formatCitation(cluster.Citations),
		PageCount:   op.PageCount,
		URL:         publicHost + op.AbsoluteURL,
		DownloadURL: op.DownloadURL,
		RawText:     text,
	}
}

// fetchPlainText fetches the opinion detail when the list result carried
// no text. Best-effort: an empty string is returned on failure.
func (c *Client) fetchPlainText(ctx context.Context, opinionID int64) string {
	var detail struct {
		PlainText string `json:"plain_text"`
	}
	detailURL := fmt.Sprintf("%s/opinions/%d/", c.baseURL, opinionID)
	if err := c.getNested(ctx, detailURL, &detail); err != nil {
		c.logger.Warn("opinion detail lookup failed",
			zap.Int64("opinion_id", opinionID),
			zap.Error(err))
		return ""
	}
	return detail.PlainText
}

// resolveAuthor applies the author fallback chain: opinion author ->
// cluster author -> cluster judges -> per-curiam marker -> unknown
func resolveAuthor(op *opinionRecord, cluster *clusterRecord) string {
	if a := strings.TrimSpace(op.AuthorStr); a != "" {
		return a
	}
	if a := strings.TrimSpace(cluster.AuthorStr); a != "" {
		return a
	}
	if j := strings.TrimSpace(cluster.Judges); j != "" {
		return j
	}
	if op.PerCuriam || cluster.PerCuriam {
		return models.AuthorPerCuriam
	}
	return models.AuthorUnknown
}

// resolveCaseName applies the case-name fallback chain, ending with a
// human-readable title derived from the opinion URL slug
func resolveCaseName(op *opinionRecord, cluster *clusterRecord, docket *docketRecord) string {
	if n := strings.TrimSpace(op.CaseName); n != "" {
		return n
	}
	if n := strings.TrimSpace(cluster.CaseName); n != "" {
		return n
	}
	if n := strings.TrimSpace(docket.CaseName); n != "" {
		return n
	}
	if n := titleFromSlug(op.AbsoluteURL); n != "" {
		return n
	}
	return models.CaseNameUnknown
}

// titleFromSlug turns "/opinion/123/trump-v-anderson/" into "Trump V Anderson"
func titleFromSlug(absoluteURL string) string {
	parts := strings.Split(strings.Trim(absoluteURL, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	slug := parts[len(parts)-1]
	if slug == "" {
		return ""
	}
	words := strings.ReplaceAll(slug, "-", " ")
	return cases.Title(language.AmericanEnglish).String(words)
}

// formatCitation renders the first cluster citation as "volume reporter page"
func formatCitation(citations []clusterCitation) string {
	if len(citations) == 0 {
		return ""
	}
	ct := citations[0]
	fields := make([]string, 0, 3)
	if ct.Volume > 0 {
		fields = append(fields, strconv.Itoa(ct.Volume))
	}
	if ct.Reporter != "" {
		fields = append(fields, ct.Reporter)
	}
	if ct.Page != "" {
		fields = append(fields, ct.Page)
	}
	return strings.Join(fields, " ")
}

// getNested performs a paced secondary lookup by absolute reference URL
func (c *Client) getNested(ctx context.Context, rawURL string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	return c.getJSON(ctx, rawURL, out)
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
