package tests

import (
	"context"
	"testing"
	"time"

	"tableside/internal/domain"
	"tableside/internal/mocks"
	"tableside/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSessionService_NewSession(t *testing.T) {
	svc := service.NewSessionService(nil, nil, nil)

	session, err := svc.NewSession(3, "Ada", "555-0101")

	assert.NoError(t, err)
	assert.Len(t, session.Token, 48)
	for _, r := range session.Token {
		alnum := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		assert.True(t, alnum, "token contains non-alphanumeric %q", r)
	}
	assert.Equal(t, 3, session.TableID)
	assert.True(t, session.Active)
	assert.WithinDuration(t, time.Now().Add(6*time.Hour), session.ExpiresAt, time.Minute)
	assert.Zero(t, session.ID)

	other, err := svc.NewSession(3, "Ada", "555-0101")
	assert.NoError(t, err)
	assert.NotEqual(t, session.Token, other.Token)
}

func TestSessionService_Create(t *testing.T) {
	mockSessions := new(mocks.SessionRepository)
	svc := service.NewSessionService(mockSessions, nil, nil)

	mockSessions.On("InsertSession", mock.Anything, mock.AnythingOfType("*domain.CustomerSession")).Return(nil).Once()

	session, err := svc.Create(context.Background(), 2, "Ada", "")
	assert.NoError(t, err)
	assert.Equal(t, 2, session.TableID)
	mockSessions.AssertExpectations(t)

	_, err = svc.Create(context.Background(), 0, "Ada", "")
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "table_id")
}

func TestSessionService_Resolve(t *testing.T) {
	active := func() *domain.CustomerSession {
		return &domain.CustomerSession{
			ID:        1,
			Token:     "tok",
			TableID:   2,
			Active:    true,
			ExpiresAt: time.Now().Add(time.Hour),
		}
	}

	tests := []struct {
		name       string
		setupMocks func(*mocks.SessionRepository, *mocks.SessionCache)
		wantErr    error
	}{
		{
			name: "cache hit skips repository",
			setupMocks: func(sessions *mocks.SessionRepository, cache *mocks.SessionCache) {
				cache.On("SessionKey", "tok").Return("session:tok").Once()
				cache.On("GetSession", mock.Anything, "session:tok").Return(active(), nil).Once()
			},
		},
		{
			name: "cache miss falls back and stores",
			setupMocks: func(sessions *mocks.SessionRepository, cache *mocks.SessionCache) {
				cache.On("SessionKey", "tok").Return("session:tok").Twice()
				cache.On("GetSession", mock.Anything, "session:tok").Return(nil, nil).Once()
				sessions.On("GetSessionByToken", mock.Anything, "tok").Return(active(), nil).Once()
				cache.On("SetSession", mock.Anything, "session:tok", mock.AnythingOfType("*domain.CustomerSession"), mock.AnythingOfType("time.Duration")).Return(nil).Once()
			},
		},
		{
			name: "expired session in cache",
			setupMocks: func(sessions *mocks.SessionRepository, cache *mocks.SessionCache) {
				stale := active()
				stale.ExpiresAt = time.Now().Add(-time.Minute)
				cache.On("SessionKey", "tok").Return("session:tok").Once()
				cache.On("GetSession", mock.Anything, "session:tok").Return(stale, nil).Once()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "deactivated session in repository",
			setupMocks: func(sessions *mocks.SessionRepository, cache *mocks.SessionCache) {
				inactive := active()
				inactive.Active = false
				cache.On("SessionKey", "tok").Return("session:tok").Once()
				cache.On("GetSession", mock.Anything, "session:tok").Return(nil, nil).Once()
				sessions.On("GetSessionByToken", mock.Anything, "tok").Return(inactive, nil).Once()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "unknown token",
			setupMocks: func(sessions *mocks.SessionRepository, cache *mocks.SessionCache) {
				cache.On("SessionKey", "tok").Return("session:tok").Once()
				cache.On("GetSession", mock.Anything, "session:tok").Return(nil, nil).Once()
				sessions.On("GetSessionByToken", mock.Anything, "tok").Return(nil, domain.ErrNotFound).Once()
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockSessions := new(mocks.SessionRepository)
			mockCache := new(mocks.SessionCache)
			svc := service.NewSessionService(mockSessions, nil, mockCache)

			testCase.setupMocks(mockSessions, mockCache)

			session, err := svc.Resolve(context.Background(), "tok")

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Nil(t, session)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "tok", session.Token)
			}
			mockSessions.AssertExpectations(t)
			mockCache.AssertExpectations(t)
		})
	}
}

func TestSessionService_Orders(t *testing.T) {
	started := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	session := &domain.CustomerSession{ID: 1, TableID: 4, CreatedAt: started}
	window := []domain.Order{
		{ID: 12, TableID: 4, CreatedAt: started.Add(30 * time.Minute)},
		{ID: 11, TableID: 4, CreatedAt: started},
	}

	mockOrders := new(mocks.OrderRepository)
	svc := service.NewSessionService(nil, mockOrders, nil)

	mockOrders.On("ListOrdersForTableSince", mock.Anything, 4, started).Return(window, nil).Once()

	orders, err := svc.Orders(context.Background(), session)

	assert.NoError(t, err)
	assert.Equal(t, window, orders)
	mockOrders.AssertExpectations(t)
}
