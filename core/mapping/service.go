package mapping

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asaidimu/go-events"
	"github.com/asaidimu/go-ramani/core/analysis"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service orchestrates mapping compilation for named indices: it decodes and
// parses a raw mapping source, persists the source through a Store, and
// publishes typed events for observers. Parsing itself stays synchronous and
// per-call; the service only adds the surrounding plumbing.
type Service struct {
	store     Store
	registry  *TypeRegistry
	analyzers *analysis.IndexAnalyzers
	logger    *zap.Logger

	bus           *events.TypedEventBus[Event]
	subscriptions map[string]*SubscriptionInfo
	subMu         sync.RWMutex

	// strict is carried per service rather than per call so every compile
	// through one service applies the same policy.
	strict bool
}

// ServiceOptions configures optional service collaborators.
type ServiceOptions struct {
	// Registry overrides the process default type registry.
	Registry *TypeRegistry
	// Analyzers is the analyzer lookup handed to text field parsing.
	Analyzers *analysis.IndexAnalyzers
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Strict rejects unknown parameters during parsing.
	Strict bool
}

// NewService creates a mapping service over the given store.
func NewService(store Store, options *ServiceOptions) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("mapping service requires a store")
	}

	bus, err := events.NewTypedEventBus[Event](events.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("could not initialize event bus: %w", err)
	}

	service := &Service{
		store:         store,
		registry:      DefaultRegistry(),
		logger:        zap.NewNop(),
		bus:           bus,
		subscriptions: make(map[string]*SubscriptionInfo),
	}
	if options != nil {
		if options.Registry != nil {
			service.registry = options.Registry
		}
		service.analyzers = options.Analyzers
		if options.Logger != nil {
			service.logger = options.Logger
		}
		service.strict = options.Strict
	}
	return service, nil
}

// Compile parses a raw mapping source for an index, persists the source on
// success, and returns the compiled mapping together with the deprecations
// collected during the parse. The deprecation slice is the side channel for
// warning-only conditions; the compiled tree never carries them.
func (s *Service) Compile(ctx context.Context, index string, source []byte, format SourceFormat, version Version) (*DocumentMapping, []Deprecation, error) {
	started := time.Now()
	s.emit(Event{
		Type:      MappingCompileStart,
		Timestamp: started.UnixMilli(),
		Index:     index,
		Version:   version.String(),
	})

	compiled, deprecations, err := s.compile(source, format, version)
	if err != nil {
		s.emitFailure(MappingCompileFailed, index, version.String(), started, err)
		s.logger.Warn("mapping compilation failed",
			zap.String("index", index),
			zap.String("version", version.String()),
			zap.Error(err))
		return nil, nil, err
	}

	record := Record{
		Index:     index,
		Version:   version.String(),
		Format:    format,
		Source:    source,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.store.Put(ctx, record); err != nil {
		err = fmt.Errorf("failed to persist mapping for index %s: %w", index, err)
		s.emitFailure(MappingCompileFailed, index, version.String(), started, err)
		return nil, nil, err
	}

	event := newEvent(MappingCompileSuccess, index, version.String(), started)
	event.Deprecations = deprecations
	s.emit(event)

	for _, deprecation := range deprecations {
		s.logger.Warn("mapping deprecation",
			zap.String("index", index),
			zap.String("field", deprecation.Field),
			zap.String("message", deprecation.Message))
	}

	return compiled, deprecations, nil
}

// Mapping recompiles the stored source of an index. Found is false when the
// index has no stored mapping.
func (s *Service) Mapping(ctx context.Context, index string) (*DocumentMapping, bool, error) {
	record, found, err := s.store.Get(ctx, index)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load mapping for index %s: %w", index, err)
	}
	if !found {
		return nil, false, nil
	}

	version, err := ParseVersion(record.Version)
	if err != nil {
		return nil, false, fmt.Errorf("stored mapping for index %s carries an invalid version: %w", index, err)
	}

	compiled, _, err := s.compile(record.Source, record.Format, version)
	if err != nil {
		return nil, false, err
	}
	return compiled, true, nil
}

// Indices returns the names of all indices with a stored mapping.
func (s *Service) Indices(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// Delete removes an index's stored mapping.
func (s *Service) Delete(ctx context.Context, index string) (bool, error) {
	started := time.Now()
	removed, err := s.store.Delete(ctx, index)
	if err != nil {
		s.emitFailure(MappingDeleteFailed, index, "", started, err)
		return false, fmt.Errorf("failed to delete mapping for index %s: %w", index, err)
	}
	if removed {
		s.emit(newEvent(MappingDeleteSuccess, index, "", started))
	}
	return removed, nil
}

// Subscribe registers a callback for a service event type and returns an id
// for later unsubscription.
func (s *Service) Subscribe(options SubscribeOptions) string {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	unsubscribe := s.bus.Subscribe(string(options.Event), options.Callback)
	id := uuid.New().String()

	s.subscriptions[id] = &SubscriptionInfo{
		Id:          &id,
		Event:       options.Event,
		Label:       options.Label,
		Description: options.Description,
		Unsubscribe: unsubscribe,
	}
	return id
}

// Unsubscribe removes a subscription by id.
func (s *Service) Unsubscribe(id string) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if info, ok := s.subscriptions[id]; ok {
		info.Unsubscribe()
		delete(s.subscriptions, id)
	}
}

// Subscriptions returns the currently active subscriptions.
func (s *Service) Subscriptions() []SubscriptionInfo {
	s.subMu.RLock()
	defer s.subMu.RUnlock()

	subs := make([]SubscriptionInfo, 0, len(s.subscriptions))
	for _, sub := range s.subscriptions {
		subs = append(subs, *sub)
	}
	return subs
}

func (s *Service) compile(source []byte, format SourceFormat, version Version) (*DocumentMapping, []Deprecation, error) {
	node, err := DecodeSource(source, format)
	if err != nil {
		return nil, nil, err
	}

	parserCtx := NewParserContext(version, s.analyzers, s.registry, &ParserContextOptions{Strict: s.strict})
	compiled, err := ParseMapping(node, parserCtx)
	if err != nil {
		return nil, nil, err
	}
	return compiled, parserCtx.Deprecations().All(), nil
}

func (s *Service) emit(event Event) {
	if s.bus != nil {
		s.bus.Emit(string(event.Type), event)
	}
}

func (s *Service) emitFailure(eventType EventType, index, version string, started time.Time, err error) {
	event := newEvent(eventType, index, version, started)
	message := err.Error()
	event.Error = &message
	s.emit(event)
}
