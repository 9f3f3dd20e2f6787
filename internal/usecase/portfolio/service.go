package portfolio

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/propertyflow-backend/internal/domain"
	"github.com/simaogato/propertyflow-backend/internal/logging"
	"github.com/simaogato/propertyflow-backend/internal/usecase/metrics"
	"github.com/simaogato/propertyflow-backend/internal/usecase/seeder"
)

// PortfolioService handles session-scoped property tables.
// Every mutation recomputes the whole affected table; nothing derived is stored.
type PortfolioService struct {
	SessionRepo domain.SessionRepository
	Parser      domain.TableParser

	seeder *seeder.SampleSeeder
	logger *zap.Logger
	now    func() time.Time

	// mu serializes read-modify-write cycles so each session sees one action at a time
	mu sync.Mutex
}

// NewPortfolioService creates a new PortfolioService instance
func NewPortfolioService(sessionRepo domain.SessionRepository, parser domain.TableParser, logger *zap.Logger) *PortfolioService {
	return &PortfolioService{
		SessionRepo: sessionRepo,
		Parser:      parser,
		seeder:      seeder.NewSampleSeeder(sessionRepo),
		logger:      logging.OrNop(logger),
		now:         time.Now,
	}
}

// CreateSession starts a new session with empty manual and import tables
// If seedSample is true, the manual table starts with the sample portfolio
func (s *PortfolioService) CreateSession(ctx context.Context, seedSample bool) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := domain.NewSession(s.now())
	if err := s.SessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if seedSample {
		if err := s.seeder.Seed(ctx, session.ID); err != nil {
			return nil, err
		}
		seeded, err := s.SessionRepo.Get(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		session = seeded
	}

	s.logger.Info("session created",
		zap.String("session_id", session.ID.String()),
		zap.Int("manual_records", session.Manual.Len()))

	return session, nil
}

// AddProperty appends one manually entered record to the session's manual table
// Logic:
//   - The record is appended after all existing manual records (no dedup)
//   - The whole manual table is recomputed and returned
//
// The discount rate is not range checked; an out-of-range value is logged only.
func (s *PortfolioService) AddProperty(ctx context.Context, sessionID uuid.UUID, record domain.PropertyRecord) ([]domain.AugmentedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.SessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !record.DiscountRateInExpectedRange() {
		s.logger.Warn("discount rate outside expected range",
			zap.String("session_id", sessionID.String()),
			zap.String("property", record.Property),
			zap.Float64("discount_rate", record.DiscountRate))
	}

	next := session.WithStore(session.Manual.Append(record), s.now())
	if err := s.SessionRepo.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Debug("property added",
		zap.String("session_id", sessionID.String()),
		zap.String("property", record.Property),
		zap.Int("records", next.Manual.Len()))

	return metrics.AugmentStore(next.Manual), nil
}

// ImportCSV replaces the session's import table with the rows of a delimited file
// Logic:
//  1. Parse the source (ParseError on failure)
//  2. Validate the table (SchemaError / NoNumericDataError)
//  3. Convert every row to a record (MissingFieldError / FieldTypeError)
//  4. Replace the import table and recompute it
//
// A rejected import leaves the session untouched; manual records are never affected.
func (s *PortfolioService) ImportCSV(ctx context.Context, sessionID uuid.UUID, src io.Reader) ([]domain.AugmentedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.SessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	records, err := acceptTable(s.Parser, src)
	if err != nil {
		s.logger.Info("import rejected",
			zap.String("session_id", sessionID.String()),
			zap.Error(err))
		return nil, err
	}

	next := session.WithStore(session.Imported.Replace(records), s.now())
	if err := s.SessionRepo.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("table imported",
		zap.String("session_id", sessionID.String()),
		zap.Int("records", len(records)))

	return metrics.AugmentStore(next.Imported), nil
}

// Table recomputes and returns one of the session's tables along with the
// source it was read from. An empty source selects the table that was changed last.
func (s *PortfolioService) Table(ctx context.Context, sessionID uuid.UUID, source domain.Source) (domain.Source, []domain.AugmentedRecord, error) {
	if source != "" && !source.Valid() {
		return "", nil, fmt.Errorf("%w: %q", domain.ErrInvalidSource, source)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.SessionRepo.Get(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}

	store := session.Store(source)
	return store.Source(), metrics.AugmentStore(store), nil
}

// EndSession discards a session and both of its tables
func (s *PortfolioService) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.SessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}

	s.logger.Info("session ended", zap.String("session_id", sessionID.String()))
	return nil
}

// Analyze runs a source through the import pipeline and the metrics engine
// without touching any session
func Analyze(parser domain.TableParser, src io.Reader) ([]domain.AugmentedRecord, error) {
	records, err := acceptTable(parser, src)
	if err != nil {
		return nil, err
	}
	return metrics.Augment(records), nil
}

// acceptTable runs the import pipeline up to, but excluding, the store
func acceptTable(parser domain.TableParser, src io.Reader) ([]domain.PropertyRecord, error) {
	table, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table.Records()
}
