package application

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/ports"
)

// Service answers "what does the shop look like after N days" questions. It
// never mutates its baseline: every call advances a private clone.
type Service struct {
	baseline    *domain.Shop
	fingerprint string
	cache       ports.SnapshotCache
	maxDays     uint32
	logger      *slog.Logger
	flight      singleflight.Group
}

type Option func(*Service)

// WithCache stores computed reports in cache.
func WithCache(cache ports.SnapshotCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithMaxDays rejects requests for more than max days. Zero means no limit.
func WithMaxDays(max uint32) Option {
	return func(s *Service) {
		s.maxDays = max
	}
}

// WithLogger reports cache failures, which never fail a request.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService wires the herd service around a baseline shop.
func NewService(baseline *domain.Shop, opts ...Option) *Service {
	if baseline == nil {
		baseline = domain.NewShop(nil)
	}
	s := &Service{
		baseline:    baseline.Clone(),
		fingerprint: Fingerprint(baseline),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Load reads the herd from source and wires a service around it.
func Load(ctx context.Context, source ports.HerdSource, opts ...Option) (*Service, error) {
	if source == nil {
		return nil, errors.New("herd source is nil")
	}
	entries, err := source.Load(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	shop, err := domain.LoadShop(entries)
	if err != nil {
		return nil, mapError(err)
	}
	return NewService(shop, opts...), nil
}

// Report advances a copy of the baseline by days and returns its full state.
func (s *Service) Report(ctx context.Context, days uint32) (domain.Report, error) {
	if s.maxDays > 0 && days > s.maxDays {
		return domain.Report{}, mapError(fmt.Errorf("%w: %d > %d", ErrTooManyDays, days, s.maxDays))
	}
	key := ports.SnapshotKey{Herd: s.fingerprint, Days: days}
	if s.cache != nil {
		report, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.warn(ctx, "snapshot cache read failed", key, err)
		} else if ok {
			return report, nil
		}
	}
	// Concurrent misses for the same snapshot share one simulation. The cache
	// write serves every caller in the flight, so it outlives the first one's cancellation.
	v, _, _ := s.flight.Do(key.String(), func() (any, error) {
		shop := s.baseline.Clone()
		shop.Advance(days)
		report := shop.Report()
		if s.cache != nil {
			writeCtx := context.WithoutCancel(ctx)
			if err := s.cache.Put(writeCtx, key, report); err != nil {
				s.warn(writeCtx, "snapshot cache write failed", key, err)
			}
		}
		return report, nil
	})
	report := v.(domain.Report)
	return cloneReport(report), nil
}

func cloneReport(report domain.Report) domain.Report {
	herd := make([]domain.YakView, len(report.Herd))
	copy(herd, report.Herd)
	report.Herd = herd
	return report
}

// Stock returns the milk and wool produced after days.
func (s *Service) Stock(ctx context.Context, days uint32) (domain.Products, error) {
	report, err := s.Report(ctx, days)
	if err != nil {
		return domain.Products{}, err
	}
	return report.Stock, nil
}

// Herd returns the roster after days.
func (s *Service) Herd(ctx context.Context, days uint32) ([]domain.YakView, error) {
	report, err := s.Report(ctx, days)
	if err != nil {
		return nil, err
	}
	return report.Herd, nil
}

// Fingerprint identifies a herd's starting state for cache keys.
func (s *Service) Fingerprint() string {
	return s.fingerprint
}

func (s *Service) warn(ctx context.Context, msg string, key ports.SnapshotKey, err error) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelWarn, msg, slog.String("snapshot", key.String()), slog.String("error", err.Error()))
}

// Fingerprint hashes the shop's roster and stock into a short stable id.
func Fingerprint(shop *domain.Shop) string {
	h := sha256.New()
	var buf [8]byte
	for _, yak := range shop.Yaks() {
		h.Write([]byte(yak.Name))
		h.Write([]byte{0})
		binary.BigEndian.PutUint32(buf[:4], yak.AgeDays)
		binary.BigEndian.PutUint32(buf[4:], yak.LastShavedDays)
		h.Write(buf[:])
	}
	stock := shop.Stock()
	binary.BigEndian.PutUint64(buf[:], uint64(stock.Milk))
	h.Write(buf[:])
	binary.BigEndian.PutUint32(buf[:4], stock.Wool)
	h.Write(buf[:4])
	binary.BigEndian.PutUint64(buf[:], shop.ElapsedDays())
	h.Write(buf[:])
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}

var _ ports.Service = (*Service)(nil)
