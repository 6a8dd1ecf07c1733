package harvest_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"ainews-backend/internal/config"
	"ainews-backend/internal/domain/entity"
	"ainews-backend/internal/usecase/harvest"
)

/* ───────── stub implementations ───────── */

type stubSearch struct {
	results  []harvest.SearchResult
	err      error
	requests []harvest.SearchRequest
}

func (s *stubSearch) Search(_ context.Context, req harvest.SearchRequest) ([]harvest.SearchResult, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

type stubItemRepo struct {
	mu        sync.Mutex
	existing  map[string]bool
	existsErr error
	createErr error
	created   []*entity.NewsItem
	pkValues  map[string]string
}

func (r *stubItemRepo) Exists(_ context.Context, id, partitionValue string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	if r.pkValues == nil {
		r.pkValues = make(map[string]string)
	}
	r.pkValues[id] = partitionValue
	return r.existing[id], nil
}

func (r *stubItemRepo) Create(_ context.Context, item *entity.NewsItem, partitionValue string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, item)
	if r.pkValues == nil {
		r.pkValues = make(map[string]string)
	}
	r.pkValues[item.ID] = partitionValue
	return nil
}

func (r *stubItemRepo) List(_ context.Context) ([]*entity.NewsItem, error) {
	return r.created, nil
}

// stubGenerator echoes the user prompt, optionally failing for prompts that
// contain failOn.
type stubGenerator struct {
	calls  int32
	failOn string
	err    error
}

func (g *stubGenerator) Generate(_ context.Context, _, userPrompt string) (string, error) {
	atomic.AddInt32(&g.calls, 1)
	if g.err != nil {
		return "", g.err
	}
	if g.failOn != "" && strings.Contains(userPrompt, g.failOn) {
		return "", errors.New("backend unavailable")
	}
	return userPrompt, nil
}

func sha256hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func defaultQueries() []config.HarvestQuery {
	return []config.HarvestQuery{{Query: "OpenAI news", MaxResults: 5, Depth: "advanced"}}
}

/* ───────── tests ───────── */

func TestHarvestAll_SkipsExistingWithoutGeneration(t *testing.T) {
	id := sha256hex("https://example.com/known")
	repo := &stubItemRepo{existing: map[string]bool{id: true}}
	gen := &stubGenerator{}
	search := &stubSearch{results: []harvest.SearchResult{
		{Title: "known story", Content: "body", URL: "https://example.com/known"},
	}}

	svc := harvest.NewService(repo, search, gen, defaultQueries(), "id", "items")
	stats, err := svc.HarvestAll(context.Background())
	if err != nil {
		t.Fatalf("HarvestAll() error = %v", err)
	}

	if got := atomic.LoadInt32(&gen.calls); got != 0 {
		t.Errorf("generator calls = %d, want 0 for already ingested candidate", got)
	}
	if len(repo.created) != 0 {
		t.Errorf("created items = %d, want 0", len(repo.created))
	}
	if stats.Duplicated != 1 {
		t.Errorf("stats.Duplicated = %d, want 1", stats.Duplicated)
	}
}

func TestHarvestAll_LevelFailureIsIsolated(t *testing.T) {
	repo := &stubItemRepo{}
	gen := &stubGenerator{failOn: "CEFR B2"}
	search := &stubSearch{results: []harvest.SearchResult{
		{Title: "story", Content: "the body text", URL: "https://example.com/b2"},
	}}

	svc := harvest.NewService(repo, search, gen, defaultQueries(), "id", "items")
	stats, err := svc.HarvestAll(context.Background())
	if err != nil {
		t.Fatalf("HarvestAll() error = %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created items = %d, want 1", len(repo.created))
	}

	item := repo.created[0]
	for _, key := range []string{"content_a1", "content_a2", "content_b1", "content_c1", "content_c2"} {
		if _, ok := item.Levels[key]; !ok {
			t.Errorf("missing level %s, sibling failures must not leak", key)
		}
	}
	if _, ok := item.Levels["content_b2"]; ok {
		t.Errorf("content_b2 present, failed level must be omitted")
	}
	if item.Content == "" || item.Content == "the body text" {
		t.Errorf("summary = %q, want sanitized output from the summary call", item.Content)
	}
	if stats.GenerationErrors != 1 {
		t.Errorf("stats.GenerationErrors = %d, want 1", stats.GenerationErrors)
	}
}

func TestHarvestAll_NoGeneratorDegradesGracefully(t *testing.T) {
	repo := &stubItemRepo{}
	search := &stubSearch{results: []harvest.SearchResult{
		{Title: "story", Content: "original body", URL: "https://example.com/nogen"},
	}}

	svc := harvest.NewService(repo, search, nil, defaultQueries(), "id", "items")
	if _, err := svc.HarvestAll(context.Background()); err != nil {
		t.Fatalf("HarvestAll() error = %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created items = %d, want 1", len(repo.created))
	}

	item := repo.created[0]
	if item.Content != "original body" {
		t.Errorf("content = %q, want original source text", item.Content)
	}
	if len(item.Levels) != 0 {
		t.Errorf("levels = %v, want none without a generator", item.Levels)
	}
}

func TestHarvestAll_EndToEnd(t *testing.T) {
	repo := &stubItemRepo{}
	gen := &stubGenerator{}
	search := &stubSearch{results: []harvest.SearchResult{
		{Title: "X launches model", Content: "", URL: "https://x.com/a", PublishedDate: "2024-01-01"},
	}}

	svc := harvest.NewService(repo, search, gen, defaultQueries(), "id", "items")
	stats, err := svc.HarvestAll(context.Background())
	if err != nil {
		t.Fatalf("HarvestAll() error = %v", err)
	}

	wantID := sha256hex("https://x.com/a")
	if len(repo.created) != 1 {
		t.Fatalf("created items = %d, want exactly 1", len(repo.created))
	}
	item := repo.created[0]
	if item.ID != wantID {
		t.Errorf("id = %s, want sha256 of url %s", item.ID, wantID)
	}
	if item.Title != "X launches model" {
		t.Errorf("title = %q", item.Title)
	}
	if item.Date != "2024-01-01" {
		t.Errorf("date = %q, want source-provided 2024-01-01", item.Date)
	}
	if item.FetchedAt.IsZero() {
		t.Errorf("fetchedAt not set")
	}
	// One summary call plus one per level; content is empty so the source
	// text is the title.
	if got := atomic.LoadInt32(&gen.calls); got != int32(1+len(entity.CEFRLevels)) {
		t.Errorf("generator calls = %d, want %d", got, 1+len(entity.CEFRLevels))
	}
	if !strings.Contains(item.Content, "X launches model") {
		t.Errorf("summary %q does not derive from the title source text", item.Content)
	}
	if stats.Inserted != 1 {
		t.Errorf("stats.Inserted = %d, want 1", stats.Inserted)
	}
}

func TestHarvestAll_SearchFailureAbortsBatch(t *testing.T) {
	repo := &stubItemRepo{}
	search := &stubSearch{err: errors.New("tavily unavailable")}

	svc := harvest.NewService(repo, search, nil, defaultQueries(), "id", "items")
	if _, err := svc.HarvestAll(context.Background()); err == nil {
		t.Fatalf("HarvestAll() must return the search failure")
	}
	if len(repo.created) != 0 {
		t.Errorf("created items = %d, want 0 after aborted batch", len(repo.created))
	}
}

func TestHarvestAll_EmptyCandidateDiscarded(t *testing.T) {
	repo := &stubItemRepo{}
	gen := &stubGenerator{}
	search := &stubSearch{results: []harvest.SearchResult{
		{Title: "", Content: "", URL: "https://example.com/empty"},
		{Title: "kept", Content: "body", URL: "https://example.com/kept"},
	}}

	svc := harvest.NewService(repo, search, gen, defaultQueries(), "id", "items")
	stats, err := svc.HarvestAll(context.Background())
	if err != nil {
		t.Fatalf("HarvestAll() error = %v", err)
	}
	if stats.Discarded != 1 {
		t.Errorf("stats.Discarded = %d, want 1", stats.Discarded)
	}
	if len(repo.created) != 1 || repo.created[0].Title != "kept" {
		t.Errorf("only the non-empty candidate should be stored, got %d items", len(repo.created))
	}
}

func TestHarvestAll_CreateConflictIsNotSuccess(t *testing.T) {
	repo := &stubItemRepo{createErr: entity.ErrItemAlreadyExists}
	search := &stubSearch{results: []harvest.SearchResult{
		{Title: "raced", Content: "body", URL: "https://example.com/raced"},
	}}

	svc := harvest.NewService(repo, search, nil, defaultQueries(), "id", "items")
	stats, err := svc.HarvestAll(context.Background())
	if err != nil {
		t.Fatalf("HarvestAll() error = %v, conflicts must not abort the batch", err)
	}
	if stats.Inserted != 0 {
		t.Errorf("stats.Inserted = %d, want 0 on create conflict", stats.Inserted)
	}
	if stats.Abandoned != 1 {
		t.Errorf("stats.Abandoned = %d, want 1", stats.Abandoned)
	}
}

func TestHarvestAll_StorageLookupFailureAbandonsCandidate(t *testing.T) {
	repo := &stubItemRepo{existsErr: errors.New("storage unavailable")}
	gen := &stubGenerator{}
	search := &stubSearch{results: []harvest.SearchResult{
		{Title: "story", Content: "body", URL: "https://example.com/x"},
	}}

	svc := harvest.NewService(repo, search, gen, defaultQueries(), "id", "items")
	stats, err := svc.HarvestAll(context.Background())
	if err != nil {
		t.Fatalf("HarvestAll() error = %v", err)
	}
	if got := atomic.LoadInt32(&gen.calls); got != 0 {
		t.Errorf("generator calls = %d, want 0 when the dedup lookup fails", got)
	}
	if stats.Abandoned != 1 {
		t.Errorf("stats.Abandoned = %d, want 1", stats.Abandoned)
	}
}

func TestHarvestAll_PartitionValueResolution(t *testing.T) {
	t.Run("identity field uses the fingerprint", func(t *testing.T) {
		repo := &stubItemRepo{}
		search := &stubSearch{results: []harvest.SearchResult{
			{Title: "a", Content: "b", URL: "https://example.com/pk1"},
		}}
		svc := harvest.NewService(repo, search, nil, defaultQueries(), "/id", "items")
		if _, err := svc.HarvestAll(context.Background()); err != nil {
			t.Fatalf("HarvestAll() error = %v", err)
		}
		id := sha256hex("https://example.com/pk1")
		if repo.pkValues[id] != id {
			t.Errorf("partition value = %q, want the fingerprint", repo.pkValues[id])
		}
	})

	t.Run("other field uses the configured constant", func(t *testing.T) {
		repo := &stubItemRepo{}
		search := &stubSearch{results: []harvest.SearchResult{
			{Title: "a", Content: "b", URL: "https://example.com/pk2"},
		}}
		svc := harvest.NewService(repo, search, nil, defaultQueries(), "/category", "items")
		if _, err := svc.HarvestAll(context.Background()); err != nil {
			t.Fatalf("HarvestAll() error = %v", err)
		}
		id := sha256hex("https://example.com/pk2")
		if repo.pkValues[id] != "items" {
			t.Errorf("partition value = %q, want the constant", repo.pkValues[id])
		}
	})
}

func TestHarvestAll_ForwardsQueryParameters(t *testing.T) {
	repo := &stubItemRepo{}
	search := &stubSearch{}
	queries := []config.HarvestQuery{{
		Query:          "Anthropic news",
		MaxResults:     3,
		Depth:          "advanced",
		IncludeDomains: []string{"anthropic.com"},
		TimeRange:      "week",
	}}

	svc := harvest.NewService(repo, search, nil, queries, "id", "items")
	if _, err := svc.HarvestAll(context.Background()); err != nil {
		t.Fatalf("HarvestAll() error = %v", err)
	}
	if len(search.requests) != 1 {
		t.Fatalf("search requests = %d, want 1", len(search.requests))
	}
	req := search.requests[0]
	if req.Query != "Anthropic news" || req.MaxResults != 3 || req.Depth != "advanced" ||
		req.TimeRange != "week" || len(req.IncludeDomains) != 1 {
		t.Errorf("request parameters not forwarded: %+v", req)
	}
}
