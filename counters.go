package homepage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// API base URLs. Declared as vars so tests can substitute an httptest server.
var (
	githubAPIBase   = "https://api.github.com"
	bilibiliAPIBase = "https://api.bilibili.com"
)

const (
	githubHost   = "api.github.com"
	bilibiliHost = "api.bilibili.com"
)

var (
	githubRepoRe = regexp.MustCompile(`github\.com/([^/?#]+/[^/?#]+)`)
	bvidRe       = regexp.MustCompile(`bvid=([^&#]+)`)
)

// GitHubRepo extracts "owner/repo" from a GitHub URL.
func GitHubRepo(rawURL string) (string, bool) {
	m := githubRepoRe.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return strings.TrimSuffix(m[1], ".git"), true
}

// BilibiliID extracts the bvid query value from a player URL.
func BilibiliID(rawURL string) (string, bool) {
	m := bvidRe.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// StarSource reads the star count of a repository.
type StarSource interface {
	Stars(ctx context.Context, repo string) (int, error)
}

// ViewSource reads the view count of a video.
type ViewSource interface {
	Views(ctx context.Context, bvid string) (int, error)
}

// GitHubClient reads repository metadata from the public GitHub REST API.
type GitHubClient struct {
	Client    *http.Client
	Token     string // optional, raises the rate limit
	UserAgent string
}

// Stars returns stargazers_count for repo ("owner/name").
func (g *GitHubClient) Stars(ctx context.Context, repo string) (int, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return 0, fmt.Errorf("invalid repository %q", repo)
	}
	reqURL := githubAPIBase + "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.UserAgent != "" {
		req.Header.Set("User-Agent", g.UserAgent)
	}
	if g.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.Token)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("GitHub API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("GitHub API returned HTTP %d", resp.StatusCode)
	}

	var body struct {
		StargazersCount *int `json:"stargazers_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("parsing GitHub response: %w", err)
	}
	if body.StargazersCount == nil {
		return 0, fmt.Errorf("GitHub response has no stargazers_count")
	}
	return *body.StargazersCount, nil
}

// BilibiliClient reads video statistics from the public Bilibili web API.
type BilibiliClient struct {
	Client    *http.Client
	UserAgent string
}

// Views returns data.stat.view for bvid.
func (b *BilibiliClient) Views(ctx context.Context, bvid string) (int, error) {
	params := url.Values{"bvid": {bvid}}
	reqURL := bilibiliAPIBase + "/x/web-interface/view?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("Bilibili API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("Bilibili API returned HTTP %d", resp.StatusCode)
	}

	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    struct {
			Stat struct {
				View int `json:"view"`
			} `json:"stat"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("parsing Bilibili response: %w", err)
	}
	if body.Code != 0 {
		return 0, fmt.Errorf("Bilibili API code %d: %s", body.Code, body.Message)
	}
	return body.Data.Stat.View, nil
}

// Counters is a read-only snapshot of the known third-party counters.
type Counters struct {
	Stars map[string]int `json:"stars"`
	Views map[string]int `json:"views"`
}

// StarsFor returns the star count of repo when known.
func (c Counters) StarsFor(repo string) (int, bool) {
	n, ok := c.Stars[repo]
	return n, ok
}

// ViewsFor returns the view count of bvid when known.
func (c Counters) ViewsFor(bvid string) (int, bool) {
	n, ok := c.Views[bvid]
	return n, ok
}

// CollectRepos returns the distinct GitHub repositories linked from projects.
func CollectRepos(content Content) []string {
	seen := make(map[string]struct{})
	for _, p := range content.Projects {
		if repo, ok := GitHubRepo(p.URL); ok {
			seen[repo] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// CollectVideoIDs returns the distinct bvids embedded in games.
func CollectVideoIDs(content Content) []string {
	seen := make(map[string]struct{})
	for _, g := range content.Games {
		if id, ok := BilibiliID(g.Video); ok {
			seen[id] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EnricherConfig wires an Enricher. Store and the limiters are optional.
type EnricherConfig struct {
	Stars           StarSource
	Views           ViewSource
	Store           *Store
	Logger          echo.Logger
	GitHubLimiter   *UpstreamLimiter
	BilibiliLimiter *UpstreamLimiter
}

// Enricher keeps star and view counters fresh. Every failure is logged and
// the previous value is kept; nothing is retried.
type Enricher struct {
	cfg EnricherConfig

	mu    sync.RWMutex
	stars map[string]int
	views map[string]int
}

// NewEnricher creates an Enricher with empty counters.
func NewEnricher(cfg EnricherConfig) *Enricher {
	if cfg.Logger == nil {
		cfg.Logger = log.New("counters")
	}
	return &Enricher{
		cfg:   cfg,
		stars: make(map[string]int),
		views: make(map[string]int),
	}
}

// Load seeds the in-memory counters from the store.
func (e *Enricher) Load() error {
	if e.cfg.Store == nil {
		return nil
	}
	stars, err := e.cfg.Store.ListCounters(CounterStars)
	if err != nil {
		return fmt.Errorf("load star counters: %w", err)
	}
	views, err := e.cfg.Store.ListCounters(CounterViews)
	if err != nil {
		return fmt.Errorf("load view counters: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range stars {
		e.stars[c.Key] = c.Value
	}
	for _, c := range views {
		e.views[c.Key] = c.Value
	}
	return nil
}

// Snapshot returns a copy of the current counters.
func (e *Enricher) Snapshot() Counters {
	e.mu.RLock()
	defer e.mu.RUnlock()
	snap := Counters{
		Stars: make(map[string]int, len(e.stars)),
		Views: make(map[string]int, len(e.views)),
	}
	for k, v := range e.stars {
		snap.Stars[k] = v
	}
	for k, v := range e.views {
		snap.Views[k] = v
	}
	return snap
}

// Refresh fetches every counter referenced by content and drops counters
// content no longer references. The star and view flows run independently
// of each other; each walks its keys in order.
func (e *Enricher) Refresh(ctx context.Context, content Content) {
	var wg sync.WaitGroup
	if e.cfg.Stars != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.refresh(ctx, CounterStars, CollectRepos(content), githubHost, e.cfg.GitHubLimiter, e.cfg.Stars.Stars)
		}()
	}
	if e.cfg.Views != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.refresh(ctx, CounterViews, CollectVideoIDs(content), bilibiliHost, e.cfg.BilibiliLimiter, e.cfg.Views.Views)
		}()
	}
	wg.Wait()
}

func (e *Enricher) refresh(ctx context.Context, kind CounterKind, keys []string, host string, limiter *UpstreamLimiter, fetch func(context.Context, string) (int, error)) {
	e.prune(kind, keys)
	for _, key := range keys {
		if ctx.Err() != nil {
			return
		}
		if limiter != nil && !limiter.Allow(host) {
			e.cfg.Logger.Warnf("counters: %s rate limit reached, skipping %s", host, key)
			continue
		}
		n, err := fetch(ctx, key)
		if err != nil {
			e.cfg.Logger.Warnf("counters: %s error for %s: %v", host, key, err)
			continue
		}
		e.set(kind, key, n)
		if e.cfg.Store != nil {
			if err := e.cfg.Store.SaveCounter(Counter{Kind: kind, Key: key, Value: n, FetchedAt: time.Now()}); err != nil {
				e.cfg.Logger.Warnf("counters: save %s %s: %v", kind, key, err)
			}
		}
	}
}

// prune drops counters of kind whose key is no longer referenced by the
// content, both in memory and in the store.
func (e *Enricher) prune(kind CounterKind, keys []string) {
	keep := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		keep[k] = struct{}{}
	}

	e.mu.Lock()
	values := e.stars
	if kind == CounterViews {
		values = e.views
	}
	for k := range values {
		if _, ok := keep[k]; !ok {
			delete(values, k)
		}
	}
	e.mu.Unlock()

	if e.cfg.Store == nil {
		return
	}
	stored, err := e.cfg.Store.ListCounters(kind)
	if err != nil {
		e.cfg.Logger.Warnf("counters: list %s: %v", kind, err)
		return
	}
	for _, c := range stored {
		if _, ok := keep[c.Key]; ok {
			continue
		}
		if err := e.cfg.Store.DeleteCounter(kind, c.Key); err != nil {
			e.cfg.Logger.Warnf("counters: delete %s %s: %v", kind, c.Key, err)
		}
	}
}

func (e *Enricher) set(kind CounterKind, key string, n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch kind {
	case CounterStars:
		e.stars[key] = n
	case CounterViews:
		e.views[key] = n
	}
}

// StartRefreshScheduler refreshes immediately and then every interval,
// reading the current content through load. It returns a stop function
// that cancels an in-flight refresh and waits for the loop to exit.
func (e *Enricher) StartRefreshScheduler(load func() Content, interval time.Duration) func() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			e.Refresh(ctx, load())
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
