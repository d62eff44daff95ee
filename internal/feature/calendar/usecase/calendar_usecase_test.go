package usecase_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saju_backend/internal/feature/calendar/domain"
	"saju_backend/internal/feature/calendar/domain/entity"
	"saju_backend/internal/feature/calendar/usecase"
	chartentity "saju_backend/internal/feature/chart/domain/entity"
)

func kst(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, entity.Zone)
}

// mockProvider はLunarProviderインターフェースのモック実装です。
type mockProvider struct {
	FetchFunc func(ctx context.Context, date time.Time) (entity.CalendarDay, error)
	calls     atomic.Int32
}

func (m *mockProvider) FetchDay(ctx context.Context, date time.Time) (entity.CalendarDay, error) {
	m.calls.Add(1)
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, date)
	}
	return entity.CalendarDay{}, errors.New("FetchFunc is not implemented")
}

// mockCache はDayCacheインターフェースのマップによるモック実装です。
type mockCache struct {
	mu      sync.Mutex
	data    map[string]entity.CalendarDay
	sets    int
	cleared bool
	getErr  error
}

func newMockCache() *mockCache { return &mockCache{data: map[string]entity.CalendarDay{}} }

func (m *mockCache) Get(_ context.Context, key string) (entity.CalendarDay, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return entity.CalendarDay{}, false, m.getErr
	}
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *mockCache) Set(_ context.Context, key string, day entity.CalendarDay) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = day
	m.sets++
	return nil
}

func (m *mockCache) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string]entity.CalendarDay{}
	m.cleared = true
	return nil
}

// mockRecorder は記録されたソースと結果を保持します。
type mockRecorder struct {
	mu       sync.Mutex
	sources  []string
	outcomes []string
}

func (m *mockRecorder) ObserveCalendarSource(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources = append(m.sources, source)
}

func (m *mockRecorder) ObserveProvider(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

// mockReferenceRepository はReferenceRepositoryインターフェースのモック実装です。
type mockReferenceRepository struct {
	days []entity.CalendarDay
	err  error
}

func (m *mockReferenceRepository) ListDays(context.Context) ([]entity.CalendarDay, error) {
	return m.days, m.err
}

// TestAdapter_Lookup_ReferenceWins は参照テーブルの日がプロバイダーより優先されることを検証します。
func TestAdapter_Lookup_ReferenceWins(t *testing.T) {
	t.Parallel()

	override := chartentity.NewPillar(chartentity.Byeong, chartentity.Tiger)
	ref := entity.CalendarDay{Date: kst(2024, time.February, 10), LunarMonth: 1, LunarDay: 1, MonthOverride: &override}
	provider := &mockProvider{}

	a := usecase.NewAdapter([]entity.CalendarDay{ref}, usecase.WithProvider(provider, newMockCache()))
	got := a.Lookup(context.Background(), kst(2024, time.February, 10).Add(13*time.Hour))

	assert.Equal(t, entity.SourceReference, got.Source)
	require.NotNil(t, got.MonthOverride)
	assert.True(t, got.MonthOverride.Equal(override))
	require.NotNil(t, got.MonthTerm)
	assert.Equal(t, entity.Ipchun, got.MonthTerm.Term)
	assert.Equal(t, int32(0), provider.calls.Load())
	assert.Equal(t, 1, a.ReferenceSize())
}

// TestAdapter_Lookup_Provider はプロバイダー取得とキャッシュの動作を検証します。
func TestAdapter_Lookup_Provider(t *testing.T) {
	t.Parallel()

	t.Run("success: cache miss fetches and stores", func(t *testing.T) {
		t.Parallel()

		provider := &mockProvider{FetchFunc: func(_ context.Context, date time.Time) (entity.CalendarDay, error) {
			return entity.CalendarDay{Date: date, LunarMonth: 1, LunarDay: 15}, nil
		}}
		cache := newMockCache()
		rec := &mockRecorder{}
		a := usecase.NewAdapter(nil, usecase.WithProvider(provider, cache), usecase.WithRecorder(rec))

		got := a.Lookup(context.Background(), kst(2024, time.February, 24))

		assert.Equal(t, entity.SourceProvider, got.Source)
		assert.Equal(t, 1, got.LunarMonth)
		assert.Equal(t, 15, got.LunarDay)
		require.NotNil(t, got.SolarTerm)
		assert.Equal(t, entity.Usu, got.SolarTerm.Term)
		require.NotNil(t, got.MonthTerm)
		assert.Equal(t, entity.Ipchun, got.MonthTerm.Term)
		assert.Equal(t, 1, cache.sets)
		assert.Equal(t, []string{"fetched"}, rec.outcomes)
		assert.Equal(t, []string{"provider"}, rec.sources)
	})

	t.Run("success: cache hit skips provider", func(t *testing.T) {
		t.Parallel()

		provider := &mockProvider{}
		cache := newMockCache()
		cache.data["2024-02-24"] = entity.CalendarDay{Date: kst(2024, time.February, 24), LunarMonth: 1, LunarDay: 15, Source: entity.SourceProvider}
		a := usecase.NewAdapter(nil, usecase.WithProvider(provider, cache))

		got := a.Lookup(context.Background(), kst(2024, time.February, 24))

		assert.Equal(t, entity.SourceProvider, got.Source)
		assert.Equal(t, int32(0), provider.calls.Load())
	})

	t.Run("fallback: cache read error still fetches", func(t *testing.T) {
		t.Parallel()

		provider := &mockProvider{FetchFunc: func(_ context.Context, date time.Time) (entity.CalendarDay, error) {
			return entity.CalendarDay{Date: date, LunarMonth: 1, LunarDay: 15}, nil
		}}
		cache := newMockCache()
		cache.getErr = errors.New("redis down")
		a := usecase.NewAdapter(nil, usecase.WithProvider(provider, cache))

		got := a.Lookup(context.Background(), kst(2024, time.February, 24))

		assert.Equal(t, entity.SourceProvider, got.Source)
		assert.Equal(t, int32(1), provider.calls.Load())
	})
}

// TestAdapter_Lookup_Fallback はプロバイダー失敗時にローカル近似へ落ちることを検証します。
func TestAdapter_Lookup_Fallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		fetch       func(ctx context.Context, date time.Time) (entity.CalendarDay, error)
		wantOutcome string
	}{
		{
			name: "not found",
			fetch: func(context.Context, time.Time) (entity.CalendarDay, error) {
				return entity.CalendarDay{}, domain.ErrNotFound
			},
			wantOutcome: "not_found",
		},
		{
			name: "provider error",
			fetch: func(context.Context, time.Time) (entity.CalendarDay, error) {
				return entity.CalendarDay{}, errors.New("connection refused")
			},
			wantOutcome: "error",
		},
		{
			name: "timeout",
			fetch: func(ctx context.Context, _ time.Time) (entity.CalendarDay, error) {
				<-ctx.Done()
				return entity.CalendarDay{}, ctx.Err()
			},
			wantOutcome: "timeout",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &mockRecorder{}
			cache := newMockCache()
			a := usecase.NewAdapter(nil,
				usecase.WithProvider(&mockProvider{FetchFunc: tt.fetch}, cache),
				usecase.WithProviderTimeout(20*time.Millisecond),
				usecase.WithRecorder(rec),
			)

			got := a.Lookup(context.Background(), kst(2024, time.February, 24))

			assert.Equal(t, entity.SourceApproximation, got.Source)
			assert.Equal(t, 1, got.LunarMonth)
			assert.Equal(t, 15, got.LunarDay)
			require.NotNil(t, got.MonthTerm)
			assert.Equal(t, entity.Ipchun, got.MonthTerm.Term)
			assert.Equal(t, []string{tt.wantOutcome}, rec.outcomes)
			assert.Equal(t, 0, cache.sets)
		})
	}
}

// TestAdapter_Lookup_Gregorian は近似も範囲外の場合に太陽暦のみの日を返すことを検証します。
func TestAdapter_Lookup_Gregorian(t *testing.T) {
	t.Parallel()

	a := usecase.NewAdapter(nil)
	got := a.Lookup(context.Background(), kst(1850, time.June, 1))

	assert.Equal(t, entity.SourceGregorian, got.Source)
	assert.Nil(t, got.SolarTerm)
	assert.Nil(t, got.MonthOverride)
	assert.False(t, got.HasLunar())
	assert.Equal(t, "1850-06-01", got.Key())
}

// TestAdapter_Lookup_Coalesces は同じキーへの同時要求が1回のプロバイダー呼び出しにまとまることを検証します。
func TestAdapter_Lookup_Coalesces(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	provider := &mockProvider{FetchFunc: func(_ context.Context, date time.Time) (entity.CalendarDay, error) {
		<-release
		return entity.CalendarDay{Date: date, LunarMonth: 1, LunarDay: 15}, nil
	}}
	a := usecase.NewAdapter(nil, usecase.WithProvider(provider, newMockCache()))

	const callers = 8
	var started, done sync.WaitGroup
	results := make([]entity.CalendarDay, callers)
	for i := 0; i < callers; i++ {
		started.Add(1)
		done.Add(1)
		go func(i int) {
			defer done.Done()
			started.Done()
			results[i] = a.Lookup(context.Background(), kst(2024, time.February, 24))
		}(i)
	}
	started.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	done.Wait()

	assert.Equal(t, int32(1), provider.calls.Load())
	for _, r := range results {
		assert.Equal(t, entity.SourceProvider, r.Source)
	}
}

// TestAdapter_Clear はキャッシュの破棄が委譲されることを検証します。
func TestAdapter_Clear(t *testing.T) {
	t.Parallel()

	cache := newMockCache()
	a := usecase.NewAdapter(nil, usecase.WithProvider(&mockProvider{}, cache))
	require.NoError(t, a.Clear(context.Background()))
	assert.True(t, cache.cleared)

	// キャッシュなしでもエラーにならない
	require.NoError(t, usecase.NewAdapter(nil).Clear(context.Background()))
}

// TestLoadAdapter は参照テーブルの読み込みとエラー伝播を検証します。
func TestLoadAdapter(t *testing.T) {
	t.Parallel()

	a, err := usecase.LoadAdapter(context.Background(), &mockReferenceRepository{
		days: []entity.CalendarDay{{Date: kst(2024, time.February, 10)}, {Date: kst(2024, time.February, 11)}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, a.ReferenceSize())

	errDB := errors.New("database error")
	_, err = usecase.LoadAdapter(context.Background(), &mockReferenceRepository{err: errDB})
	assert.ErrorIs(t, err, errDB)
}
