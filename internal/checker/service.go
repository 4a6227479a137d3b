// Package checker drives one scan from raw input to a recorded lookup.
package checker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/Michaelcode2/pricechecker/internal/domain"
	"github.com/Michaelcode2/pricechecker/internal/events"
	"github.com/Michaelcode2/pricechecker/internal/lookup"
	"github.com/Michaelcode2/pricechecker/internal/scan"
)

// ErrBusy rejects a submission made while another lookup is outstanding.
var ErrBusy = errors.New("a lookup is already in progress")

// State is the orchestrator's position in the scan pipeline.
type State int32

const (
	Idle State = iota
	Validating
	LookingUp
)

func (s State) String() string {
	switch s {
	case Validating:
		return "validating"
	case LookingUp:
		return "looking_up"
	default:
		return "idle"
	}
}

// HistoryRecorder persists successful lookups.
type HistoryRecorder interface {
	Record(entry domain.HistoryEntry) ([]domain.HistoryEntry, error)
}

// Service validates scans, looks them up and records the results.
// It allows one submission at a time and keeps the canonical current product.
type Service struct {
	settings domain.SettingsProvider
	client   lookup.ProductClient
	history  HistoryRecorder
	events   events.Publisher
	ids      *snowflake.Node
	now      func() time.Time

	state atomic.Int32

	mu      sync.RWMutex
	current *domain.ProductInfo
}

// NewService wires the pipeline. pub and ids may be nil.
func NewService(
	settings domain.SettingsProvider,
	client lookup.ProductClient,
	history HistoryRecorder,
	pub events.Publisher,
	ids *snowflake.Node,
) *Service {
	if ids == nil {
		ids, _ = snowflake.NewNode(1)
	}
	return &Service{
		settings: settings,
		client:   client,
		history:  history,
		events:   events.OrNop(pub),
		ids:      ids,
		now:      time.Now,
	}
}

// State reports where the pipeline currently is.
func (s *Service) State() State {
	return State(s.state.Load())
}

// Current returns the product of the last successful scan, if any.
func (s *Service) Current() (domain.ProductInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.ProductInfo{}, false
	}
	return s.current.Clone(), true
}

// SubmitScan runs one raw scan through validation, lookup and history.
// Empty input is ignored. The outcome is published on events.TopicScanOutcome
// after the service is back to Idle.
func (s *Service) SubmitScan(ctx context.Context, raw string) Outcome {
	if raw == "" {
		return Outcome{Status: Ignored}
	}

	id := s.ids.Generate().String()
	if !s.state.CompareAndSwap(int32(Idle), int32(Validating)) {
		zap.L().Warn("scan rejected, lookup in progress", zap.String("namespace", "checker"), zap.String("scan_id", id))
		return s.publish(Outcome{ScanID: id, Status: Failed, Err: ErrBusy})
	}

	outcome := s.process(ctx, id, raw)
	s.state.Store(int32(Idle))
	return s.publish(outcome)
}

func (s *Service) process(ctx context.Context, id, raw string) Outcome {
	cfg := s.settings.Current()
	code, err := scan.Validate(raw, cfg.MinScanLength, cfg.MaxScanLength)
	if err != nil {
		zap.L().Info("scan rejected",
			zap.String("namespace", "checker"),
			zap.String("scan_id", id),
			zap.Error(err),
		)
		return Outcome{ScanID: id, Status: Failed, Err: err}
	}

	s.state.Store(int32(LookingUp))
	product, err := s.client.FetchProduct(ctx, code)
	if err != nil {
		zap.L().Warn("lookup failed",
			zap.String("namespace", "checker"),
			zap.String("scan_id", id),
			zap.String("code", code),
			zap.String("kind", lookup.KindOf(err).String()),
			zap.Error(err),
		)
		return Outcome{ScanID: id, Status: Failed, Code: code, Err: err}
	}

	entry := domain.HistoryEntry{Barcode: code, Product: product, Timestamp: s.now()}
	if _, err := s.history.Record(entry); err != nil {
		return Outcome{ScanID: id, Status: Failed, Code: code, Err: err}
	}

	p := product.Clone()
	s.mu.Lock()
	s.current = &p
	s.mu.Unlock()

	zap.L().Info("scan succeeded",
		zap.String("namespace", "checker"),
		zap.String("scan_id", id),
		zap.String("code", code),
		zap.String("product", product.Name),
		zap.Float64("price", product.Price),
	)
	return Outcome{ScanID: id, Status: Succeeded, Code: code, Product: product}
}

func (s *Service) publish(o Outcome) Outcome {
	s.events.Publish(events.TopicScanOutcome, o)
	return o
}
