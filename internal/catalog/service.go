package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/shoplite/shoplite-backend/pkg/catalogapi"
	"github.com/shoplite/shoplite-backend/pkg/config"
	pkgerrors "github.com/shoplite/shoplite-backend/pkg/errors"
	"github.com/shoplite/shoplite-backend/pkg/pagination"
)

// quickKeywords is the fixed quick-pick list shown next to the catalog.
var quickKeywords = []string{"Apple", "Watch", "Fashion", "Trends", "Shoes", "Shirt"}

type upstreamClient interface {
	ListProducts(ctx context.Context, limit, skip int) (*catalogapi.ProductPage, error)
	SearchProducts(ctx context.Context, q string) (*catalogapi.ProductPage, error)
	GetProduct(ctx context.Context, id int64) (*catalogapi.Product, error)
}

// BrowseRequest carries one catalog query.
type BrowseRequest struct {
	Page     int
	Criteria Criteria
	Sort     SortMode
	// PrevFingerprint is the client-echoed fingerprint of the previously
	// active filters; when it differs from the current criteria and the
	// reset policy is on, the page snaps back to 1.
	PrevFingerprint string
}

// BrowseResult is one catalog page plus its pagination metadata.
type BrowseResult struct {
	Products    []catalogapi.Product `json:"products"`
	Total       int                  `json:"total"`
	Page        pagination.Page      `json:"page"`
	Fingerprint string               `json:"fingerprint"`

	seq uint64
}

// Service answers catalog queries against the upstream read-only API.
type Service struct {
	client    upstreamClient
	pageSize  int
	resetPage bool

	// issued tracks the newest browse sequence; older responses are never
	// cached as the current snapshot.
	issued atomic.Uint64

	mu         sync.Mutex
	snapshot   *BrowseResult
	categories []string
}

// NewService builds a catalog service from the upstream client and config.
func NewService(client upstreamClient, cfg config.CatalogConfig, flags config.FeatureFlagsConfig) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("catalog client is required")
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		return nil, fmt.Errorf("catalog page size must be positive")
	}
	return &Service{
		client:    client,
		pageSize:  pageSize,
		resetPage: flags.ResetPageOnFilterChange,
	}, nil
}

// Browse runs the full query pipeline: optional page reset, upstream fetch,
// local narrowing, sort, and pagination metadata.
func (s *Service) Browse(ctx context.Context, req BrowseRequest) (*BrowseResult, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	fingerprint := req.Criteria.Fingerprint()
	if s.resetPage && req.PrevFingerprint != "" && req.PrevFingerprint != fingerprint {
		page = 1
	}

	seq := s.issued.Add(1)

	var (
		upstream *catalogapi.ProductPage
		err      error
	)
	if req.Criteria.Keyword != "" {
		// The keyword path is unpaginated upstream; its total reflects the
		// whole search set even after local narrowing.
		upstream, err = s.client.SearchProducts(ctx, req.Criteria.Keyword)
	} else {
		upstream, err = s.client.ListProducts(ctx, s.pageSize, pagination.Offset(page, s.pageSize))
	}
	if err != nil {
		return nil, err
	}

	products := narrow(upstream.Products, req.Criteria)
	sortProducts(products, req.Sort)

	total := upstream.Total
	if total == 0 {
		total = len(products)
	}

	result := &BrowseResult{
		Products:    products,
		Total:       total,
		Page:        pagination.Describe(page, s.pageSize, total),
		Fingerprint: fingerprint,
		seq:         seq,
	}
	s.apply(result)
	return result, nil
}

// apply caches the result as the current snapshot unless a newer browse has
// been issued since this one started.
func (s *Service) apply(result *BrowseResult) bool {
	if result.seq != s.issued.Load() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot != nil && s.snapshot.seq > result.seq {
		return false
	}
	s.snapshot = result
	return true
}

// Snapshot returns the most recently applied browse result, if any.
func (s *Service) Snapshot() *BrowseResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// GetProduct loads a single product from the upstream catalog.
func (s *Service) GetProduct(ctx context.Context, id int64) (*catalogapi.Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	return s.client.GetProduct(ctx, id)
}

// Categories returns the distinct category list derived from the first
// upstream page. The list is cached after the first successful fetch.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	cached := s.categories
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	page, err := s.client.ListProducts(ctx, s.pageSize, 0)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	categories := make([]string, 0)
	for _, p := range page.Products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	return categories, nil
}

// Keywords returns the fixed quick-pick keyword list.
func (s *Service) Keywords() []string {
	out := make([]string, len(quickKeywords))
	copy(out, quickKeywords)
	return out
}

// narrow applies the local constraints in order: price floor, price ceiling,
// title substring, exact category.
func narrow(products []catalogapi.Product, criteria Criteria) []catalogapi.Product {
	out := make([]catalogapi.Product, 0, len(products))
	query := strings.ToLower(criteria.SearchQuery)
	for _, p := range products {
		if criteria.MinPrice != nil && p.Price.LessThan(*criteria.MinPrice) {
			continue
		}
		if criteria.MaxPrice != nil && p.Price.GreaterThan(*criteria.MaxPrice) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Title), query) {
			continue
		}
		if criteria.Category != "" && p.Category != criteria.Category {
			continue
		}
		out = append(out, p)
	}
	return out
}

func sortProducts(products []catalogapi.Product, mode SortMode) {
	switch mode {
	case SortCheap:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case SortExpensive:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	case SortPopular:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	}
}
