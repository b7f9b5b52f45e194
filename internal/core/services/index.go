package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/ports/driven"
	"github.com/custodia-labs/staticfield/internal/core/ports/driving"
	"github.com/custodia-labs/staticfield/internal/logger"
)

// errStore marks failures of the document store itself.
var errStore = errors.New("document store")

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService runs sources through connector, normaliser, indexing
// filters and document store.
type IndexService struct {
	factory     driven.ConnectorFactory
	normaliser  driven.Normaliser
	pipeline    driven.IndexingFilterPipeline
	docStore    driven.DocumentStore
	locker      driven.IndexLocker
	parallelism int
	mimeTypes   map[string]struct{}

	// Status tracking
	mu     sync.RWMutex
	active map[string]*driving.IndexStatus
}

// IndexOption configures an IndexService.
type IndexOption func(*IndexService)

// WithLocker guards each source with a cross-process lock.
func WithLocker(l driven.IndexLocker) IndexOption {
	return func(s *IndexService) {
		s.locker = l
	}
}

// WithParallelism bounds how many sources IndexAll runs at once.
// Values below 1 are ignored.
func WithParallelism(n int) IndexOption {
	return func(s *IndexService) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// NewIndexService creates a new index service.
func NewIndexService(
	factory driven.ConnectorFactory,
	normaliser driven.Normaliser,
	pipeline driven.IndexingFilterPipeline,
	docStore driven.DocumentStore,
	opts ...IndexOption,
) *IndexService {
	s := &IndexService{
		factory:     factory,
		normaliser:  normaliser,
		pipeline:    pipeline,
		docStore:    docStore,
		parallelism: domain.DefaultIndexParallelism,
		active:      make(map[string]*driving.IndexStatus),
	}
	if normaliser != nil {
		s.mimeTypes = make(map[string]struct{})
		for _, m := range normaliser.SupportedMIMETypes() {
			s.mimeTypes[m] = struct{}{}
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Index fully indexes a single source. Documents previously stored for the
// source that the connector no longer reports are removed.
func (s *IndexService) Index(ctx context.Context, source domain.Source) (*driving.IndexStatus, error) {
	var result *driving.IndexStatus
	err := s.run(ctx, source, func(ctx context.Context, conn driven.Connector, status *driving.IndexStatus) error {
		if err := s.fullSync(ctx, source, conn, status); err != nil {
			return err
		}
		result = s.snapshot(status)
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Running = false
	return result, nil
}

// IndexAll indexes several sources concurrently, bounded by parallelism.
// Every source runs to completion; failures are joined in source order.
func (s *IndexService) IndexAll(ctx context.Context, sources []domain.Source) ([]driving.IndexStatus, error) {
	statuses := make([]*driving.IndexStatus, len(sources))
	errs := make([]error, len(sources))

	var g errgroup.Group
	g.SetLimit(s.parallelism)

	for i, source := range sources {
		g.Go(func() error {
			status, err := s.Index(ctx, source)
			if err != nil {
				errs[i] = fmt.Errorf("index %s: %w", source.ID, err)
				return nil
			}
			statuses[i] = status
			return nil
		})
	}
	_ = g.Wait()

	results := make([]driving.IndexStatus, 0, len(sources))
	for _, st := range statuses {
		if st != nil {
			results = append(results, *st)
		}
	}
	return results, errors.Join(errs...)
}

// Watch indexes a source and then applies live changes until ctx is done.
// Cancelling ctx is a clean stop and returns nil.
func (s *IndexService) Watch(ctx context.Context, source domain.Source) error {
	err := s.run(ctx, source, func(ctx context.Context, conn driven.Connector, status *driving.IndexStatus) error {
		if err := s.fullSync(ctx, source, conn, status); err != nil {
			return err
		}

		changes, err := conn.Watch(ctx)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		logger.Info("Watching %s for changes", source.ID)

		for change := range changes {
			s.applyChange(ctx, source, change, status)
		}
		return ctx.Err()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Status returns the status of an active run, or an idle status.
func (s *IndexService) Status(_ context.Context, sourceID string) (*driving.IndexStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if status, ok := s.active[sourceID]; ok {
		out := *status
		return &out, nil
	}

	return &driving.IndexStatus{
		SourceID: sourceID,
		Running:  false,
	}, nil
}

// RequiredFields returns the page fields the configured filters read.
func (s *IndexService) RequiredFields() []domain.PageField {
	if s.pipeline == nil {
		return nil
	}
	return s.pipeline.Fields()
}

// runFunc is the body of an index run, called with a validated connector.
type runFunc func(ctx context.Context, conn driven.Connector, status *driving.IndexStatus) error

// run claims the source, creates and validates its connector and calls fn.
func (s *IndexService) run(ctx context.Context, source domain.Source, fn runFunc) error {
	if err := s.checkConfigured(); err != nil {
		return err
	}
	if source.ID == "" {
		return fmt.Errorf("%w: source ID is required", domain.ErrInvalidInput)
	}

	status, err := s.begin(source.ID)
	if err != nil {
		return err
	}
	defer s.end(source.ID)

	if s.locker != nil {
		unlock, err := s.locker.TryLock(source.ID)
		if err != nil {
			return err
		}
		defer func() {
			if err := unlock(); err != nil {
				logger.Warn("Failed to release lock for %s: %v", source.ID, err)
			}
		}()
	}

	conn, err := s.factory.Create(ctx, source)
	if err != nil {
		return fmt.Errorf("create connector: %w", err)
	}
	defer conn.Close()

	if err := conn.Validate(ctx); err != nil {
		if errors.Is(err, domain.ErrConnectorValidation) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrConnectorValidation, err)
	}

	logger.Section("Index " + source.ID)
	logger.Info("Starting index for source %s", source.ID)
	if err := fn(ctx, conn, status); err != nil {
		return err
	}

	final := s.snapshot(status)
	logger.WithFields(map[string]any{
		"source":  source.ID,
		"indexed": final.DocumentsIndexed,
		"dropped": final.DocumentsDropped,
		"skipped": final.DocumentsSkipped,
		"deleted": final.DocumentsDeleted,
		"errors":  final.ErrorCount,
	}, "Index complete")
	return nil
}

func (s *IndexService) checkConfigured() error {
	switch {
	case s.factory == nil:
		return errors.New("connector factory not configured")
	case s.normaliser == nil:
		return errors.New("normaliser not configured")
	case s.pipeline == nil:
		return errors.New("indexing pipeline not configured")
	case s.docStore == nil:
		return errors.New("document store not configured")
	}
	return nil
}

// fullSync indexes everything the connector reports and prunes stale documents.
func (s *IndexService) fullSync(
	ctx context.Context,
	source domain.Source,
	conn driven.Connector,
	status *driving.IndexStatus,
) error {
	seen := make(map[string]struct{})
	docsCh, errsCh := conn.FullSync(ctx)

	for docsCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if err != nil {
				return fmt.Errorf("connector error: %w", err)
			}

		case raw, ok := <-docsCh:
			if !ok {
				docsCh = nil
				continue
			}
			seen[raw.URI] = struct{}{}
			s.indexOne(ctx, source, &raw, status)
		}
	}

	return s.prune(ctx, source.ID, seen, status)
}

// prune removes stored documents whose URI was not seen in a full sync.
func (s *IndexService) prune(
	ctx context.Context,
	sourceID string,
	seen map[string]struct{},
	status *driving.IndexStatus,
) error {
	stored, err := s.docStore.ListDocuments(ctx, sourceID)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	for _, doc := range stored {
		if _, ok := seen[doc.URI]; ok {
			continue
		}
		logger.Debug("Removing stale document: %s", doc.URI)
		if err := s.docStore.DeleteDocument(ctx, doc.ID); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
		s.update(func() { status.DocumentsDeleted++ })
	}
	return nil
}

// applyChange handles one watch event.
func (s *IndexService) applyChange(
	ctx context.Context,
	source domain.Source,
	change domain.RawDocumentChange,
	status *driving.IndexStatus,
) {
	switch change.Type {
	case domain.ChangeCreated, domain.ChangeUpdated:
		logger.Debug("Change %s: %s", change.Type, change.Document.URI)
		s.indexOne(ctx, source, &change.Document, status)

	case domain.ChangeDeleted:
		logger.Debug("Deleting: %s", change.Document.URI)
		deleted, err := s.deleteByURI(ctx, source.ID, change.Document.URI)
		if deleted > 0 {
			s.update(func() { status.DocumentsDeleted += deleted })
		}
		if err != nil {
			s.update(func() { status.ErrorCount++ })
			logger.Error("Failed to delete %s: %v", change.Document.URI, err)
		}
	}
}

// indexOne normalises, filters and stores one document.
// Failures are counted on status; they do not stop the run. Documents no
// normaliser accepts are counted as skipped, not as failures.
func (s *IndexService) indexOne(
	ctx context.Context,
	source domain.Source,
	raw *domain.RawDocument,
	status *driving.IndexStatus,
) {
	if raw.SourceID == "" {
		raw.SourceID = source.ID
	}

	indexed, err := s.processOneDocument(ctx, raw)
	switch {
	case errors.Is(err, domain.ErrUnsupportedType):
		s.update(func() { status.DocumentsSkipped++ })
		logger.Debug("Skipping %s: %v", raw.URI, err)
	case errors.Is(err, errStore):
		s.update(func() { status.ErrorCount++ })
		logger.Error("Failed to store %s: %v", raw.URI, err)
	case err != nil:
		s.update(func() { status.ErrorCount++ })
		logger.Warn("Failed to index %s: %v", raw.URI, err)
	case indexed:
		s.update(func() { status.DocumentsIndexed++ })
	default:
		s.update(func() { status.DocumentsDropped++ })
	}
}

// processOneDocument runs one raw document through the pipeline.
// Returns false if a filter dropped it.
func (s *IndexService) processOneDocument(ctx context.Context, raw *domain.RawDocument) (bool, error) {
	logger.Debug("Processing: %s", raw.URI)

	// 1. NORMALISE
	if !s.supports(raw.MIMEType) {
		return false, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, raw.MIMEType)
	}
	page, err := s.normaliser.Normalise(ctx, raw)
	if err != nil {
		return false, fmt.Errorf("normalise: %w", err)
	}

	// 2. RUN INDEXING FILTERS
	doc, err := s.pipeline.Process(ctx, page)
	if err != nil {
		return false, fmt.Errorf("filter: %w", err)
	}
	if doc == nil {
		// A dropped page must not leave an older version behind.
		if err := s.docStore.DeleteDocument(ctx, page.ID); err != nil {
			return false, fmt.Errorf("%w: delete dropped document: %w", errStore, err)
		}
		return false, nil
	}

	// 3. SAVE TO DOCUMENT STORE
	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return false, fmt.Errorf("%w: save document: %w", errStore, err)
	}
	return true, nil
}

// deleteByURI removes the document stored at uri and, when uri was a
// directory, every document below it. Returns how many were removed.
func (s *IndexService) deleteByURI(ctx context.Context, sourceID, uri string) (int, error) {
	docs, err := s.docStore.ListDocuments(ctx, sourceID)
	if err != nil {
		return 0, fmt.Errorf("%w: list documents: %w", errStore, err)
	}

	deleted := 0
	for i := range docs {
		if !under(docs[i].URI, uri) {
			continue
		}
		if err := s.docStore.DeleteDocument(ctx, docs[i].ID); err != nil {
			return deleted, fmt.Errorf("%w: delete document: %w", errStore, err)
		}
		deleted++
	}
	return deleted, nil
}

// under reports whether uri is dir itself or a path below it.
func under(uri, dir string) bool {
	if uri == dir {
		return true
	}
	dir = strings.TrimRight(dir, `/\`)
	if dir == "" || len(uri) <= len(dir) || !strings.HasPrefix(uri, dir) {
		return false
	}
	sep := uri[len(dir)]
	return sep == '/' || sep == '\\'
}

// supports reports whether the normaliser handles a MIME type.
// An empty type is treated as plain text.
func (s *IndexService) supports(mimeType string) bool {
	base, _, _ := strings.Cut(mimeType, ";")
	base = strings.ToLower(strings.TrimSpace(base))
	if base == "" {
		base = "text/plain"
	}
	_, ok := s.mimeTypes[base]
	return ok
}

// begin registers an active run. Returns domain.ErrIndexInProgress if the
// source is already running in this process.
func (s *IndexService) begin(sourceID string) (*driving.IndexStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[sourceID]; ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrIndexInProgress, sourceID)
	}
	status := &driving.IndexStatus{SourceID: sourceID, Running: true}
	s.active[sourceID] = status
	return status, nil
}

func (s *IndexService) end(sourceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, sourceID)
}

// update mutates a status under the write lock.
func (s *IndexService) update(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func (s *IndexService) snapshot(status *driving.IndexStatus) *driving.IndexStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := *status
	return &out
}
