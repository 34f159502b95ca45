// Package search is the jump index: fuzzy lookup of resource names across
// every store that has loaded something.
package search

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/holonet/internal/domain"
)

// DefaultLimit caps the number of results returned by Find
const DefaultLimit = 20

// Source is anything that can hand over its loaded resources.
// store.Handle satisfies it.
type Source interface {
	Kind() domain.Kind
	Catalog() []domain.Resource
}

// Entry is one indexed resource.
type Entry struct {
	Ref      domain.Ref
	Title    string
	Resource domain.Resource
}

// Result is an Entry with match metadata for highlighting.
type Result struct {
	Entry
	MatchedIndexes []int // rune positions in Title; nil for typo matches
	Score          int   // higher is better
}

// index implements fuzzy.Source over pre-lowercased titles
type index struct {
	entries     []Entry
	lowerTitles []string
}

func (idx *index) String(i int) string { return idx.lowerTitles[i] }
func (idx *index) Len() int            { return len(idx.entries) }

// Service keeps the jump index.
type Service struct {
	logger *slog.Logger
	limit  int

	mu      sync.RWMutex
	idx     *index
	indexed map[domain.Ref]bool
}

// NewService creates an empty index. limit <= 0 means DefaultLimit.
func NewService(limit int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Service{
		logger:  logger,
		limit:   limit,
		idx:     &index{},
		indexed: make(map[domain.Ref]bool),
	}
}

// Rebuild replaces the index with the current contents of sources.
func (s *Service) Rebuild(sources ...Source) int {
	s.mu.Lock()
	s.idx = &index{}
	s.indexed = make(map[domain.Ref]bool)
	s.mu.Unlock()

	for _, src := range sources {
		s.Index(src.Catalog())
	}
	return s.Count()
}

// Index adds resources, skipping ones already indexed or without an id.
func (s *Service) Index(items []domain.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, it := range items {
		ref, ok := domain.RefOf(it)
		if !ok || s.indexed[ref] {
			continue
		}
		s.indexed[ref] = true
		title := it.DisplayName()
		s.idx.entries = append(s.idx.entries, Entry{Ref: ref, Title: title, Resource: it})
		s.idx.lowerTitles = append(s.idx.lowerTitles, strings.ToLower(title))
		added++
	}
	s.logger.Debug("indexed for jump", "added", added, "skipped", len(items)-added, "total", len(s.idx.entries))
}

// Count returns the number of indexed entries
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx.Len()
}

// Find returns the best matches for query. Subsequence matches come first;
// when there are none, titles within a small edit distance of every query
// word are returned instead.
func (s *Service) Find(query string) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.idx.Len() == 0 {
		return nil
	}

	results := s.subsequence(query)
	if len(results) == 0 {
		results = s.typos(query)
	}
	if len(results) > s.limit {
		results = results[:s.limit]
	}
	return results
}

func (s *Service) subsequence(query string) []Result {
	matches := fuzzy.FindFrom(query, s.idx)
	if len(matches) == 0 {
		return nil
	}

	type ranked struct {
		Result
		distance int
	}
	rs := make([]ranked, len(matches))
	for i, m := range matches {
		rs[i] = ranked{
			Result: Result{
				Entry:          s.idx.entries[m.Index],
				MatchedIndexes: runeIndexes(m.Str, m.MatchedIndexes),
				Score:          m.Score,
			},
			distance: lfuzzy.LevenshteinDistance(query, m.Str),
		}
	}
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Score != rs[j].Score {
			return rs[i].Score > rs[j].Score
		}
		return rs[i].distance < rs[j].distance
	})

	out := make([]Result, len(rs))
	for i, r := range rs {
		out[i] = r.Result
	}
	return out
}

func (s *Service) typos(query string) []Result {
	type ranked struct {
		Result
		distance int
	}
	var rs []ranked
	for i, title := range s.idx.lowerTitles {
		d := typoDistance(query, title)
		if d < 0 {
			continue
		}
		rs = append(rs, ranked{
			Result:   Result{Entry: s.idx.entries[i], Score: -d},
			distance: d,
		})
	}
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].distance != rs[j].distance {
			return rs[i].distance < rs[j].distance
		}
		return len(rs[i].Title) < len(rs[j].Title)
	})

	out := make([]Result, len(rs))
	for i, r := range rs {
		out[i] = r.Result
	}
	return out
}

// runeIndexes converts byte offsets in str to rune positions
func runeIndexes(str string, byteIdx []int) []int {
	if len(byteIdx) == 0 {
		return nil
	}
	pos := make(map[int]int, len(str))
	n := 0
	for i := range str {
		pos[i] = n
		n++
	}
	out := make([]int, 0, len(byteIdx))
	for _, b := range byteIdx {
		if r, ok := pos[b]; ok {
			out = append(out, r)
		}
	}
	return out
}
