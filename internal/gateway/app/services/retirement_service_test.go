package services_test

import (
	"context"
	"errors"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adaptercache "retireplan/internal/gateway/adapters/cache"
	"retireplan/internal/gateway/app/dto"
	"retireplan/internal/gateway/app/services"
	"retireplan/internal/gateway/config"
	"retireplan/internal/gateway/ports/cache"
	"retireplan/internal/gateway/ports/provider"
	portservices "retireplan/internal/gateway/ports/services"
	"retireplan/internal/gateway/resilience"
	"retireplan/internal/report"
	"retireplan/internal/retirement"
)

var fixedNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

type MockUserDataProvider struct {
	mock.Mock
}

func (m *MockUserDataProvider) FetchUser(ctx context.Context, userID int64) (*dto.UserRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserRecord), args.Error(1)
}

func testRecord() *dto.UserRecord {
	return &dto.UserRecord{
		UserInfo: dto.UserInfo{
			DateOfBirth:              "1990-01-01",
			HouseholdIncome:          100000,
			CurrentSavingsRate:       10,
			CurrentRetirementSavings: 50000,
		},
		Assumptions: dto.PlanAssumptions{
			PreRetirementIncomePercent: 80,
			LifeExpectancy:             90,
			ExpectedRateOfReturn:       7,
			RetirementAge:              65,
		},
	}
}

func providerConfig() config.ProviderConfig {
	return config.ProviderConfig{
		Retry: config.RetryConfig{
			MaxAttempts:    3,
			InitialBackoff: time.Millisecond,
			MaxBackoff:     time.Millisecond,
			BackoffFactor:  2,
		},
		Breaker: config.BreakerConfig{
			ErrorThreshold:   10,
			OpenTimeout:      time.Minute,
			SuccessThreshold: 1,
		},
	}
}

func newRedisCache(t *testing.T) (*adaptercache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	s := miniredis.RunT(t)
	host, portStr, err := net.SplitHostPort(s.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	redisCache, err := adaptercache.NewRedisCache(context.Background(), &config.RedisConfig{
		Host:           host,
		Port:           port,
		ConnectTimeout: time.Second,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		DefaultTTL:     time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisCache.Close() })

	return redisCache, s
}

func newService(p provider.UserDataProvider, c cache.Cache, assumptions retirement.Assumptions) portservices.RetirementService {
	calculator := retirement.NewCalculator(assumptions, retirement.WithClock(func() time.Time { return fixedNow }))
	res := resilience.NewFromConfig("user-data-provider", providerConfig(), provider.ErrUserNotFound)
	return services.NewRetirementService(p, c, res, calculator)
}

func expectedProjection(t *testing.T, record *dto.UserRecord) retirement.Projection {
	t.Helper()

	inputs, err := record.ToInputs()
	require.NoError(t, err)
	p, err := retirement.ComputeProjection(inputs, fixedNow, retirement.DefaultAssumptions())
	require.NoError(t, err)
	return p
}

func TestGetSummary(t *testing.T) {
	mockProvider := new(MockUserDataProvider)
	mockProvider.On("FetchUser", mock.Anything, int64(7)).Return(testRecord(), nil).Once()

	svc := newService(mockProvider, adaptercache.NoopCache{}, retirement.DefaultAssumptions())

	message, err := svc.GetSummary(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, report.Message(65, expectedProjection(t, testRecord())), message)
	assert.Contains(t, message, "To retire at age 65:")
	mockProvider.AssertExpectations(t)
}

func TestGetProjection(t *testing.T) {
	mockProvider := new(MockUserDataProvider)
	mockProvider.On("FetchUser", mock.Anything, int64(1)).Return(testRecord(), nil)

	svc := newService(mockProvider, adaptercache.NoopCache{}, retirement.DefaultAssumptions())

	t.Run("without schedule", func(t *testing.T) {
		resp, err := svc.GetProjection(context.Background(), 1, false)
		require.NoError(t, err)

		expected := expectedProjection(t, testRecord())
		assert.Equal(t, 65, resp.RetirementAge)
		assert.Equal(t, 35, resp.CurrentAge)
		assert.Equal(t, 30, resp.YearsUntilRetirement)
		assert.Equal(t, 25, resp.YearsInRetirement)
		assert.InDelta(t, expected.AmountNeededToRetire, resp.AmountNeededToRetire, 1e-6)
		assert.InDelta(t, expected.ExpectedTotalSavings, resp.ExpectedTotalSavings, 1e-6)
		assert.Empty(t, resp.Schedule)
	})

	t.Run("with schedule", func(t *testing.T) {
		resp, err := svc.GetProjection(context.Background(), 1, true)
		require.NoError(t, err)

		require.Len(t, resp.Schedule, 30)
		assert.Equal(t, 35, resp.Schedule[0].Age)
		assert.InDelta(t, 10000, resp.Schedule[0].Amount, 1e-9)
	})
}

func TestGetProjection_InvalidUserID(t *testing.T) {
	mockProvider := new(MockUserDataProvider)
	svc := newService(mockProvider, adaptercache.NoopCache{}, retirement.DefaultAssumptions())

	_, err := svc.GetProjection(context.Background(), -1, false)
	assert.ErrorIs(t, err, services.ErrInvalidUserID)
	mockProvider.AssertNotCalled(t, "FetchUser", mock.Anything, mock.Anything)
}

func TestGetProjection_CacheReadThrough(t *testing.T) {
	redisCache, s := newRedisCache(t)

	mockProvider := new(MockUserDataProvider)
	mockProvider.On("FetchUser", mock.Anything, int64(3)).Return(testRecord(), nil).Once()

	svc := newService(mockProvider, redisCache, retirement.DefaultAssumptions())
	ctx := context.Background()

	first, err := svc.GetProjection(ctx, 3, false)
	require.NoError(t, err)
	assert.True(t, s.Exists(services.RecordCacheKeyPrefix+"3"))

	second, err := svc.GetProjection(ctx, 3, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	mockProvider.AssertNumberOfCalls(t, "FetchUser", 1)
}

func TestGetProjection_CorruptCacheEntryFallsBackToProvider(t *testing.T) {
	redisCache, s := newRedisCache(t)
	require.NoError(t, s.Set(services.RecordCacheKeyPrefix+"4", "{not json"))

	mockProvider := new(MockUserDataProvider)
	mockProvider.On("FetchUser", mock.Anything, int64(4)).Return(testRecord(), nil).Once()

	svc := newService(mockProvider, redisCache, retirement.DefaultAssumptions())

	_, err := svc.GetProjection(context.Background(), 4, false)
	require.NoError(t, err)
	mockProvider.AssertExpectations(t)
}

func TestGetProjection_CacheDownIsNotFatal(t *testing.T) {
	redisCache, s := newRedisCache(t)
	s.Close()

	mockProvider := new(MockUserDataProvider)
	mockProvider.On("FetchUser", mock.Anything, int64(5)).Return(testRecord(), nil).Once()

	svc := newService(mockProvider, redisCache, retirement.DefaultAssumptions())

	_, err := svc.GetProjection(context.Background(), 5, false)
	require.NoError(t, err)
}

func TestGetProjection_ProviderErrors(t *testing.T) {
	t.Run("transient failure is retried", func(t *testing.T) {
		mockProvider := new(MockUserDataProvider)
		mockProvider.On("FetchUser", mock.Anything, int64(1)).Return(nil, provider.ErrUnavailable).Once()
		mockProvider.On("FetchUser", mock.Anything, int64(1)).Return(testRecord(), nil).Once()

		svc := newService(mockProvider, adaptercache.NoopCache{}, retirement.DefaultAssumptions())

		_, err := svc.GetProjection(context.Background(), 1, false)
		require.NoError(t, err)
		mockProvider.AssertNumberOfCalls(t, "FetchUser", 2)
	})

	t.Run("not found is not retried", func(t *testing.T) {
		mockProvider := new(MockUserDataProvider)
		mockProvider.On("FetchUser", mock.Anything, int64(9)).Return(nil, provider.ErrUserNotFound)

		svc := newService(mockProvider, adaptercache.NoopCache{}, retirement.DefaultAssumptions())

		_, err := svc.GetProjection(context.Background(), 9, false)
		assert.ErrorIs(t, err, provider.ErrUserNotFound)
		mockProvider.AssertNumberOfCalls(t, "FetchUser", 1)
	})

	t.Run("persistent failure surfaces after retries", func(t *testing.T) {
		mockProvider := new(MockUserDataProvider)
		mockProvider.On("FetchUser", mock.Anything, int64(1)).Return(nil, provider.ErrUnexpectedStatus)

		svc := newService(mockProvider, adaptercache.NoopCache{}, retirement.DefaultAssumptions())

		_, err := svc.GetProjection(context.Background(), 1, false)
		assert.ErrorIs(t, err, provider.ErrUnexpectedStatus)
		mockProvider.AssertNumberOfCalls(t, "FetchUser", 3)
	})

	t.Run("invalid record from provider", func(t *testing.T) {
		record := testRecord()
		record.UserInfo.DateOfBirth = "01/01/1990"

		mockProvider := new(MockUserDataProvider)
		mockProvider.On("FetchUser", mock.Anything, int64(1)).Return(record, nil)

		svc := newService(mockProvider, adaptercache.NoopCache{}, retirement.DefaultAssumptions())

		_, err := svc.GetProjection(context.Background(), 1, false)
		assert.ErrorIs(t, err, services.ErrInvalidUserRecord)
	})
}

func TestProject(t *testing.T) {
	svc := newService(new(MockUserDataProvider), adaptercache.NoopCache{}, retirement.DefaultAssumptions())
	ctx := context.Background()

	t.Run("valid record", func(t *testing.T) {
		resp, err := svc.Project(ctx, testRecord(), false)
		require.NoError(t, err)
		assert.Equal(t, report.Message(65, expectedProjection(t, testRecord())), resp.Message)
		assert.Equal(t, resp.Shortfall <= 0, resp.OnTrack)
	})

	t.Run("nil record", func(t *testing.T) {
		_, err := svc.Project(ctx, nil, false)
		assert.ErrorIs(t, err, services.ErrInvalidRequest)
	})

	t.Run("validation failure", func(t *testing.T) {
		record := testRecord()
		record.UserInfo.HouseholdIncome = 0
		record.UserInfo.CurrentSavingsRate = 150

		_, err := svc.Project(ctx, record, false)
		assert.ErrorIs(t, err, services.ErrInvalidRequest)
	})

	t.Run("retirement age already reached", func(t *testing.T) {
		record := testRecord()
		record.Assumptions.RetirementAge = 30

		_, err := svc.Project(ctx, record, false)
		assert.ErrorIs(t, err, retirement.ErrRetirementAgeReached)
		assert.ErrorIs(t, err, retirement.ErrImplausibleInputs)
	})

	t.Run("life expectancy before retirement", func(t *testing.T) {
		record := testRecord()
		record.Assumptions.LifeExpectancy = 60

		_, err := svc.Project(ctx, record, false)
		assert.ErrorIs(t, err, retirement.ErrLifeExpectancyNotAfterRetirement)
	})
}

func TestProject_ArithmeticDomainError(t *testing.T) {
	svc := newService(new(MockUserDataProvider), adaptercache.NoopCache{},
		retirement.Assumptions{InflationRate: 0, SalaryIncreaseRate: 0.02})

	_, err := svc.Project(context.Background(), testRecord(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, retirement.ErrArithmeticDomain)
	assert.False(t, errors.Is(err, services.ErrInvalidRequest))
}

func TestProject_ClockReadOncePerRequest(t *testing.T) {
	eve := time.Date(2025, time.June, 14, 23, 59, 59, 0, time.UTC)
	birthday := eve.Add(time.Second)
	calls := 0
	calculator := retirement.NewCalculator(retirement.DefaultAssumptions(), retirement.WithClock(func() time.Time {
		calls++
		if calls == 1 {
			return eve
		}
		return birthday
	}))
	res := resilience.NewFromConfig("user-data-provider", providerConfig(), provider.ErrUserNotFound)
	svc := services.NewRetirementService(new(MockUserDataProvider), adaptercache.NoopCache{}, res, calculator)

	record := testRecord()
	record.UserInfo.DateOfBirth = "1961-06-15"
	record.Assumptions.RetirementAge = 64

	resp, err := svc.Project(context.Background(), record, true)
	require.NoError(t, err)

	assert.Equal(t, 63, resp.CurrentAge)
	assert.Equal(t, 1, resp.YearsUntilRetirement)
	require.Len(t, resp.Schedule, 1)
	assert.Equal(t, 63, resp.Schedule[0].Age)
}

func TestProject_VeryLargeIncome(t *testing.T) {
	svc := newService(new(MockUserDataProvider), adaptercache.NoopCache{}, retirement.DefaultAssumptions())

	record := testRecord()
	record.UserInfo.HouseholdIncome = 1e18

	resp, err := svc.Project(context.Background(), record, false)
	require.NoError(t, err)

	assert.Greater(t, resp.AmountNeededToRetire, 1e19)
	assert.Equal(t, report.Message(65, expectedProjection(t, record)), resp.Message)
	assert.NotContains(t, resp.Message, "$-")
	assert.Contains(t, resp.Message, "You will need $33,")
}
