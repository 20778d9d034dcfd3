package homepage

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitHubRepo(t *testing.T) {
	tests := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://github.com/owner/repo", "owner/repo", true},
		{"https://github.com/owner/repo/tree/main/docs", "owner/repo", true},
		{"https://github.com/owner/repo.git", "owner/repo", true},
		{"https://github.com/owner/repo?tab=readme", "owner/repo", true},
		{"https://github.com/owner", "", false},
		{"https://gitlab.com/owner/repo", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := GitHubRepo(tt.url)
		assert.Equal(t, tt.ok, ok, tt.url)
		assert.Equal(t, tt.want, got, tt.url)
	}
}

func TestBilibiliID(t *testing.T) {
	id, ok := BilibiliID("https://player.bilibili.com/player.html?bvid=BV1xx411c7mD&autoplay=0")
	assert.True(t, ok)
	assert.Equal(t, "BV1xx411c7mD", id)

	id, ok = BilibiliID("//player.bilibili.com/player.html?aid=1&bvid=BV2#t=3")
	assert.True(t, ok)
	assert.Equal(t, "BV2", id)

	_, ok = BilibiliID("https://www.youtube.com/embed/abc")
	assert.False(t, ok)
}

func TestCollectReposAndVideoIDs(t *testing.T) {
	content := Content{
		Projects: []Project{
			{Name: "b", URL: "https://github.com/o/b"},
			{Name: "a", URL: "https://github.com/o/a"},
			{Name: "dup", URL: "https://github.com/o/a/issues"},
			{Name: "site", URL: "https://example.org"},
		},
		Games: []Game{
			{Name: "g1", Video: "https://player.bilibili.com/player.html?bvid=BV2"},
			{Name: "g2", Video: "https://player.bilibili.com/player.html?bvid=BV1"},
			{Name: "g3", Image: "/cover.png"},
		},
	}
	assert.Equal(t, []string{"o/a", "o/b"}, CollectRepos(content))
	assert.Equal(t, []string{"BV1", "BV2"}, CollectVideoIDs(content))
}

func withAPIBase(t *testing.T, target *string, base string) {
	t.Helper()
	old := *target
	*target = base
	t.Cleanup(func() { *target = old })
}

func TestGitHubClientStars(t *testing.T) {
	var gotPath, gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"full_name":"owner/repo","stargazers_count":1234}`))
	}))
	defer srv.Close()
	withAPIBase(t, &githubAPIBase, srv.URL)

	client := &GitHubClient{Client: srv.Client(), Token: "secret"}
	n, err := client.Stars(context.Background(), "owner/repo")

	require.NoError(t, err)
	assert.Equal(t, 1234, n)
	assert.Equal(t, "/repos/owner/repo", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "application/vnd.github+json", gotAccept)
}

func TestGitHubClientErrors(t *testing.T) {
	status := http.StatusNotFound
	body := `{"message":"Not Found"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	defer srv.Close()
	withAPIBase(t, &githubAPIBase, srv.URL)
	client := &GitHubClient{Client: srv.Client()}

	_, err := client.Stars(context.Background(), "owner/missing")
	assert.ErrorContains(t, err, "HTTP 404")

	status, body = http.StatusOK, `{"full_name":"owner/repo"}`
	_, err = client.Stars(context.Background(), "owner/repo")
	assert.ErrorContains(t, err, "no stargazers_count")

	status, body = http.StatusOK, `not json`
	_, err = client.Stars(context.Background(), "owner/repo")
	assert.ErrorContains(t, err, "parsing GitHub response")

	_, err = client.Stars(context.Background(), "not-a-repo")
	assert.ErrorContains(t, err, "invalid repository")
}

func TestGitHubClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()
	withAPIBase(t, &githubAPIBase, srv.URL)

	client := &GitHubClient{Client: &http.Client{Timeout: 50 * time.Millisecond}}
	_, err := client.Stars(context.Background(), "owner/slow")
	assert.Error(t, err)
}

func TestBilibiliClientViews(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("bvid")
		assert.Equal(t, "/x/web-interface/view", r.URL.Path)
		w.Write([]byte(`{"code":0,"message":"0","data":{"bvid":"BV1","stat":{"view":56789,"like":10}}}`))
	}))
	defer srv.Close()
	withAPIBase(t, &bilibiliAPIBase, srv.URL)

	client := &BilibiliClient{Client: srv.Client()}
	n, err := client.Views(context.Background(), "BV1")

	require.NoError(t, err)
	assert.Equal(t, 56789, n)
	assert.Equal(t, "BV1", gotQuery)
}

func TestBilibiliClientNonZeroCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":-404,"message":"啥都木有"}`))
	}))
	defer srv.Close()
	withAPIBase(t, &bilibiliAPIBase, srv.URL)

	client := &BilibiliClient{Client: srv.Client()}
	_, err := client.Views(context.Background(), "BVmissing")
	assert.ErrorContains(t, err, "code -404")
}

type fakeStars struct {
	mu     sync.Mutex
	counts map[string]int
	fail   map[string]bool
	calls  []string
}

func (f *fakeStars) Stars(_ context.Context, repo string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, repo)
	if f.fail[repo] {
		return 0, errors.New("upstream down")
	}
	return f.counts[repo], nil
}

type fakeViews struct {
	calls  atomic.Int32
	counts map[string]int
	err    error
}

func (f *fakeViews) Views(_ context.Context, bvid string) (int, error) {
	f.calls.Add(1)
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[bvid], nil
}

var enrichContent = Content{
	Projects: []Project{
		{Name: "a", URL: "https://github.com/o/a"},
		{Name: "b", URL: "https://github.com/o/b"},
	},
	Games: []Game{
		{Name: "g", Video: "https://player.bilibili.com/player.html?bvid=BV1"},
	},
}

func TestEnricherRefreshStoresCounts(t *testing.T) {
	store := setupTestStore(t)
	var logs bytes.Buffer
	stars := &fakeStars{counts: map[string]int{"o/a": 10, "o/b": 20}}
	views := &fakeViews{counts: map[string]int{"BV1": 300}}

	e := NewEnricher(EnricherConfig{Stars: stars, Views: views, Store: store, Logger: testLogger(&logs)})
	e.Refresh(context.Background(), enrichContent)

	snap := e.Snapshot()
	assert.Equal(t, map[string]int{"o/a": 10, "o/b": 20}, snap.Stars)
	assert.Equal(t, map[string]int{"BV1": 300}, snap.Views)

	saved, err := store.GetCounter(CounterViews, "BV1")
	require.NoError(t, err)
	assert.Equal(t, 300, saved.Value)
}

func TestEnricherKeepsPreviousValueOnError(t *testing.T) {
	var logs bytes.Buffer
	stars := &fakeStars{counts: map[string]int{"o/a": 10, "o/b": 20}}
	e := NewEnricher(EnricherConfig{Stars: stars, Logger: testLogger(&logs)})
	e.Refresh(context.Background(), enrichContent)

	stars.counts["o/a"] = 99
	stars.fail = map[string]bool{"o/b": true}
	e.Refresh(context.Background(), enrichContent)

	snap := e.Snapshot()
	assert.Equal(t, 99, snap.Stars["o/a"])
	assert.Equal(t, 20, snap.Stars["o/b"], "failed fetch keeps the old value")
	assert.Contains(t, logs.String(), "upstream down")
	assert.Len(t, stars.calls, 4, "no retries")
}

func TestEnricherSkipsWhenRateLimited(t *testing.T) {
	var logs bytes.Buffer
	limiter := NewUpstreamLimiter(1, time.Hour)
	defer limiter.Stop()
	stars := &fakeStars{counts: map[string]int{"o/a": 1, "o/b": 2}}

	e := NewEnricher(EnricherConfig{Stars: stars, Logger: testLogger(&logs), GitHubLimiter: limiter})
	e.Refresh(context.Background(), enrichContent)

	assert.Equal(t, []string{"o/a"}, stars.calls)
	_, known := e.Snapshot().StarsFor("o/b")
	assert.False(t, known)
	assert.Contains(t, logs.String(), "rate limit reached")
}

func TestEnricherLoadSeedsFromStore(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.SaveCounter(Counter{Kind: CounterStars, Key: "o/a", Value: 5}))
	require.NoError(t, store.SaveCounter(Counter{Kind: CounterViews, Key: "BV1", Value: 50}))

	e := NewEnricher(EnricherConfig{Store: store})
	require.NoError(t, e.Load())

	n, ok := e.Snapshot().StarsFor("o/a")
	assert.True(t, ok)
	assert.Equal(t, 5, n)
	n, ok = e.Snapshot().ViewsFor("BV1")
	assert.True(t, ok)
	assert.Equal(t, 50, n)
}

func TestEnricherSnapshotIsCopy(t *testing.T) {
	e := NewEnricher(EnricherConfig{Stars: &fakeStars{counts: map[string]int{"o/a": 1}}})
	e.Refresh(context.Background(), enrichContent)

	snap := e.Snapshot()
	snap.Stars["o/a"] = 1000
	assert.Equal(t, 1, e.Snapshot().Stars["o/a"])
}

func TestEnricherRefreshStopsOnCancelledContext(t *testing.T) {
	views := &fakeViews{counts: map[string]int{"BV1": 1}}
	e := NewEnricher(EnricherConfig{Views: views})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e.Refresh(ctx, enrichContent)

	assert.Equal(t, int32(0), views.calls.Load())
}

func TestStartRefreshScheduler(t *testing.T) {
	views := &fakeViews{counts: map[string]int{"BV1": 7}}
	e := NewEnricher(EnricherConfig{Views: views})

	stop := e.StartRefreshScheduler(func() Content { return enrichContent }, 20*time.Millisecond)
	assert.Eventually(t, func() bool { return views.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	stop()

	after := views.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, views.calls.Load(), "no refresh after stop")
	n, _ := e.Snapshot().ViewsFor("BV1")
	assert.Equal(t, 7, n)
}

func TestEnricherPersistsEveryKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "c.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	e := NewEnricher(EnricherConfig{Stars: &fakeStars{counts: map[string]int{"o/a": 3, "o/b": 4}}, Store: store})
	e.Refresh(context.Background(), enrichContent)

	list, err := store.ListCounters(CounterStars)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestEnricherDropsCountersNoLongerReferenced(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.SaveCounter(Counter{Kind: CounterStars, Key: "o/gone", Value: 9}))
	require.NoError(t, store.SaveCounter(Counter{Kind: CounterViews, Key: "BVgone", Value: 90}))

	stars := &fakeStars{counts: map[string]int{"o/a": 1, "o/b": 2}}
	views := &fakeViews{counts: map[string]int{"BV1": 3}}
	e := NewEnricher(EnricherConfig{Stars: stars, Views: views, Store: store})
	require.NoError(t, e.Load())
	e.Refresh(context.Background(), enrichContent)

	snap := e.Snapshot()
	assert.Equal(t, map[string]int{"o/a": 1, "o/b": 2}, snap.Stars)
	assert.Equal(t, map[string]int{"BV1": 3}, snap.Views)

	_, err := store.GetCounter(CounterStars, "o/gone")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	_, err = store.GetCounter(CounterViews, "BVgone")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// Dropping a project from the content removes its counter on the next refresh.
	e.Refresh(context.Background(), Content{Projects: enrichContent.Projects[:1], Games: enrichContent.Games})
	_, known := e.Snapshot().StarsFor("o/b")
	assert.False(t, known)
	list, err := store.ListCounters(CounterStars)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "o/a", list[0].Key)
}
