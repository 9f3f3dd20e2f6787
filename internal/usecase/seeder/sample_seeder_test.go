package seeder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/propertyflow-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestSampleProperties(t *testing.T) {
	props := SampleProperties()

	assert.Len(t, props, 10)
	assert.Equal(t, "Property 1", props[0].Property)
	assert.Equal(t, "Property 10", props[9].Property)
	for _, p := range props {
		assert.True(t, p.DiscountRateInExpectedRange(), p.Property)
	}

	// Callers get their own copy
	props[0].NetProfit = 0
	assert.Equal(t, 100000.0, SampleProperties()[0].NetProfit)
}

func TestSampleSeeder_Seed_EmptySession(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSessionRepository)
	seeder := NewSampleSeeder(mockRepo)

	session := domain.NewSession(time.Now())
	mockRepo.On("Get", ctx, session.ID).Return(session, nil)
	mockRepo.On("Save", ctx, mock.MatchedBy(func(s *domain.Session) bool {
		return s.ID == session.ID &&
			s.Manual.Len() == 10 &&
			s.Imported.Len() == 0 &&
			s.Active == domain.SourceManual
	})).Return(nil)

	err := seeder.Seed(ctx, session.ID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	// The stored session value itself is never mutated
	assert.Equal(t, 0, session.Manual.Len())
}

func TestSampleSeeder_Seed_AlreadyPopulated(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockSessionRepository)
	seeder := NewSampleSeeder(mockRepo)

	session := domain.NewSession(time.Now())
	session = session.WithStore(session.Manual.Append(domain.PropertyRecord{Property: "Mine"}), time.Now())
	mockRepo.On("Get", ctx, session.ID).Return(session, nil)

	err := seeder.Seed(ctx, session.ID)

	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "Save")
}

func TestSampleSeeder_Seed_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown session", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		id := uuid.New()
		mockRepo.On("Get", ctx, id).Return(nil, domain.ErrSessionNotFound)

		err := NewSampleSeeder(mockRepo).Seed(ctx, id)

		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
		mockRepo.AssertNotCalled(t, "Save")
	})

	t.Run("save fails", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		session := domain.NewSession(time.Now())
		mockRepo.On("Get", ctx, session.ID).Return(session, nil)
		mockRepo.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))

		err := NewSampleSeeder(mockRepo).Seed(ctx, session.ID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save seeded session")
	})
}
