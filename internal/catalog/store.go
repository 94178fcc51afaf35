// internal/catalog/store.go
package catalog

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"consultation-workers/internal/common/errors"
	"consultation-workers/internal/common/logger"
	"consultation-workers/internal/common/metrics"
	"consultation-workers/internal/models"
)

var (
	ErrPackageNotFound  = stderrors.New("service package not found")
	ErrDuplicatePackage = stderrors.New("service package already exists")
)

const indexSyncTimeout = 10 * time.Second

// SearchIndex mirrors the catalog into an external full-text index.
type SearchIndex interface {
	Sync(ctx context.Context, pkgs []models.ServicePackage) error
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

type Options struct {
	Source     Source
	Index      SearchIndex
	MaxPerTier int
	Logger     logger.Logger
}

// Store is the in-memory service catalog. Readers get deep copies, so a matching pass never
// observes a concurrent mutation or reload.
type Store struct {
	mu        sync.RWMutex
	packages  map[string]models.ServicePackage
	version   uint64
	source    Source
	index     SearchIndex
	validator *Validator
	logger    logger.Logger
}

func NewStore(opts Options) (*Store, error) {
	validator, err := NewValidator(opts.MaxPerTier)
	if err != nil {
		return nil, err
	}
	if opts.Source == nil {
		opts.Source = DefaultSource{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	return &Store{
		packages:  make(map[string]models.ServicePackage),
		source:    opts.Source,
		index:     opts.Index,
		validator: validator,
		logger:    opts.Logger.WithFields(map[string]interface{}{"component": "catalog", "source": opts.Source.Name()}),
	}, nil
}

// Validator exposes the ruleset the store enforces.
func (s *Store) Validator() *Validator {
	return s.validator
}

// Version is bumped on every mutation and reload.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.packages)
}

// Snapshot returns a deep copy of the catalog ordered by tier, then title.
func (s *Store) Snapshot() []models.ServicePackage {
	pkgs, _ := s.SnapshotWithVersion()
	return pkgs
}

// SnapshotWithVersion returns a snapshot and the version it was taken at.
func (s *Store) SnapshotWithVersion() ([]models.ServicePackage, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(), s.version
}

func (s *Store) snapshotLocked() []models.ServicePackage {
	out := make([]models.ServicePackage, 0, len(s.packages))
	for _, pkg := range s.packages {
		out = append(out, pkg.Clone())
	}
	sortPackages(out)
	return out
}

func sortPackages(pkgs []models.ServicePackage) {
	sort.SliceStable(pkgs, func(i, j int) bool {
		if ri, rj := pkgs[i].Tier.Rank(), pkgs[j].Tier.Rank(); ri != rj {
			return ri < rj
		}
		return pkgs[i].Title < pkgs[j].Title
	})
}

func (s *Store) Get(id string) (models.ServicePackage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pkg, ok := s.packages[id]
	if !ok {
		return models.ServicePackage{}, errors.NewPackageNotFoundError(id, ErrPackageNotFound)
	}
	return pkg.Clone(), nil
}

// Create adds a package keyed by the slug of its title.
func (s *Store) Create(ctx context.Context, pkg models.ServicePackage) (models.ServicePackage, error) {
	pkg = pkg.Clone()
	pkg.ID = Slugify(pkg.Title)
	if err := s.validator.Validate(pkg); err != nil {
		return models.ServicePackage{}, err
	}
	if pkg.ID == "" {
		return models.ServicePackage{}, errors.NewCatalogValidationFailedError(
			fmt.Sprintf("title %q has no letters or digits to build an id from", pkg.Title), nil)
	}

	s.mu.Lock()
	if _, exists := s.packages[pkg.ID]; exists {
		s.mu.Unlock()
		return models.ServicePackage{}, errors.NewDuplicatePackageError(pkg.ID, ErrDuplicatePackage)
	}
	if err := s.checkTierRoomLocked(pkg.Tier, ""); err != nil {
		s.mu.Unlock()
		return models.ServicePackage{}, err
	}
	s.packages[pkg.ID] = pkg
	s.bumpLocked()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("service package created", map[string]interface{}{"id": pkg.ID, "tier": string(pkg.Tier)})
	s.syncIndex(ctx, snapshot)
	return pkg.Clone(), nil
}

// Update replaces the package stored under id. The id is stable even if the title changes.
func (s *Store) Update(ctx context.Context, id string, pkg models.ServicePackage) (models.ServicePackage, error) {
	pkg = pkg.Clone()
	pkg.ID = id
	if err := s.validator.Validate(pkg); err != nil {
		return models.ServicePackage{}, err
	}

	s.mu.Lock()
	if _, exists := s.packages[id]; !exists {
		s.mu.Unlock()
		return models.ServicePackage{}, errors.NewPackageNotFoundError(id, ErrPackageNotFound)
	}
	if err := s.checkTierRoomLocked(pkg.Tier, id); err != nil {
		s.mu.Unlock()
		return models.ServicePackage{}, err
	}
	s.packages[id] = pkg
	s.bumpLocked()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("service package updated", map[string]interface{}{"id": id})
	s.syncIndex(ctx, snapshot)
	return pkg.Clone(), nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, exists := s.packages[id]; !exists {
		s.mu.Unlock()
		return errors.NewPackageNotFoundError(id, ErrPackageNotFound)
	}
	delete(s.packages, id)
	s.bumpLocked()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("service package deleted", map[string]interface{}{"id": id})
	s.syncIndex(ctx, snapshot)
	return nil
}

// Duplicate copies a package under the title "<title> (Copy)", numbering further copies.
func (s *Store) Duplicate(ctx context.Context, id string) (models.ServicePackage, error) {
	original, err := s.Get(id)
	if err != nil {
		return models.ServicePackage{}, err
	}

	base := original.Title + " (Copy)"
	title := base
	s.mu.RLock()
	for n := 2; ; n++ {
		if _, taken := s.packages[Slugify(title)]; !taken {
			break
		}
		title = fmt.Sprintf("%s %d", base, n)
	}
	s.mu.RUnlock()

	original.Title = title
	return s.Create(ctx, original)
}

// Search matches query case-insensitively against title, description, category, industry
// tags and features. The search index is used when configured; any index failure falls back
// to the in-memory scan.
func (s *Store) Search(ctx context.Context, query string) []models.ServicePackage {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.Snapshot()
	}

	if s.index != nil {
		ids, err := s.index.Search(ctx, query, s.validator.MaxPerTier()*len(models.Tiers))
		if err == nil {
			return s.byIDs(ids)
		}
		s.logger.Warn("search index query failed, using in-memory search", map[string]interface{}{
			"query": query,
			"error": err,
		})
	}

	var out []models.ServicePackage
	for _, pkg := range s.Snapshot() {
		if packageMatches(pkg, query) {
			out = append(out, pkg)
		}
	}
	return out
}

func (s *Store) byIDs(ids []string) []models.ServicePackage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ServicePackage, 0, len(ids))
	for _, id := range ids {
		if pkg, ok := s.packages[id]; ok {
			out = append(out, pkg.Clone())
		}
	}
	return out
}

func packageMatches(pkg models.ServicePackage, query string) bool {
	fields := []string{pkg.Title, pkg.Description, pkg.Category}
	fields = append(fields, pkg.IndustryTags...)
	fields = append(fields, pkg.Features...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// Reload atomically replaces the catalog with the contents of the configured source. An
// invalid source leaves the current catalog untouched.
func (s *Store) Reload(ctx context.Context) error {
	start := time.Now()
	pkgs, err := s.source.Load(ctx)
	if err != nil {
		return errors.NewCatalogLoadFailedError(s.source.Name(), err)
	}

	for i := range pkgs {
		if pkgs[i].ID == "" {
			pkgs[i].ID = Slugify(pkgs[i].Title)
		}
	}
	if problems := s.validator.ValidateAll(pkgs); len(problems) > 0 {
		return problems[0]
	}

	next := make(map[string]models.ServicePackage, len(pkgs))
	for _, pkg := range pkgs {
		next[pkg.ID] = pkg.Clone()
	}

	s.mu.Lock()
	s.packages = next
	s.bumpLocked()
	version := s.version
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("catalog reloaded", map[string]interface{}{
		"packages":   len(next),
		"version":    version,
		"durationMs": time.Since(start).Milliseconds(),
	})
	s.syncIndex(ctx, snapshot)
	return nil
}

func (s *Store) checkTierRoomLocked(tier models.ServiceTier, replacing string) error {
	count := 0
	for id, pkg := range s.packages {
		if pkg.Tier == tier && id != replacing {
			count++
		}
	}
	if count >= s.validator.MaxPerTier() {
		return errors.NewCatalogValidationFailedError(
			fmt.Sprintf("tier %s already has %d packages, limit is %d", tier, count, s.validator.MaxPerTier()), nil)
	}
	return nil
}

func (s *Store) bumpLocked() {
	s.version++
	counts := make(map[models.ServiceTier]int, len(models.Tiers))
	for _, pkg := range s.packages {
		counts[pkg.Tier]++
	}
	for _, tier := range models.Tiers {
		metrics.CatalogPackages.WithLabelValues(string(tier)).Set(float64(counts[tier]))
	}
	metrics.CatalogVersion.Set(float64(s.version))
}

func (s *Store) syncIndex(ctx context.Context, snapshot []models.ServicePackage) {
	if s.index == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, indexSyncTimeout)
	defer cancel()
	if err := s.index.Sync(ctx, snapshot); err != nil {
		s.logger.Warn("search index sync failed", map[string]interface{}{"error": err})
	}
}
