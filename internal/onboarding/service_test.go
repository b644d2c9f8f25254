package onboarding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/dashapi"
	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/hours"
	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/model"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) GetOnboarding(ctx context.Context, companyID string) (*dashapi.Onboarding, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashapi.Onboarding), args.Error(1)
}

func (m *mockAPI) SaveBusinessHours(ctx context.Context, companyID string, w model.WeeklyScheduleWire) error {
	return m.Called(ctx, companyID, w).Error(0)
}

func perDayOnboarding() *dashapi.Onboarding {
	return &dashapi.Onboarding{
		CompanyID: "acme",
		Timezone:  "Europe/Berlin",
		BusinessHours: model.WeeklyScheduleWire{
			Monday:  []model.TimeWindow{{StartTime: "09:00", EndTime: "17:00"}},
			Tuesday: []model.TimeWindow{{StartTime: "10:00", EndTime: "18:00"}},
		},
	}
}

func TestOpen_LoadsOnce(t *testing.T) {
	api := new(mockAPI)
	api.On("GetOnboarding", mock.Anything, "acme").Return(perDayOnboarding(), nil).Once()

	svc := NewService(api, NewSessionStore(time.Hour), nil)
	ctx := context.Background()

	first, err := svc.Open(ctx, "acme")
	require.NoError(t, err)
	second, err := svc.Open(ctx, "acme")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.True(t, first.Loaded())
	assert.Equal(t, "Europe/Berlin", first.Timezone)
	first.View(func(m *hours.Manager) {
		assert.Equal(t, hours.ModePerDay, m.Mode())
	})
	assert.Len(t, first.Payload().Tuesday, 1)
	api.AssertExpectations(t)
}

func TestOpen_ErrorLeavesSessionUnloaded(t *testing.T) {
	api := new(mockAPI)
	api.On("GetOnboarding", mock.Anything, "acme").Return(nil, errors.New("boom")).Once()
	api.On("GetOnboarding", mock.Anything, "acme").Return(perDayOnboarding(), nil).Once()

	svc := NewService(api, nil, nil)
	_, err := svc.Open(context.Background(), "acme")
	require.Error(t, err)

	session, err := svc.Open(context.Background(), "acme")
	require.NoError(t, err)
	assert.True(t, session.Loaded())
	api.AssertExpectations(t)
}

func TestSave_SubmitsPayloadVerbatim(t *testing.T) {
	api := new(mockAPI)
	api.On("GetOnboarding", mock.Anything, "acme").Return(&dashapi.Onboarding{CompanyID: "acme"}, nil)

	svc := NewService(api, nil, nil)
	session, err := svc.Open(context.Background(), "acme")
	require.NoError(t, err)

	require.NoError(t, session.Edit(func(m *hours.Manager) error {
		m.SetWeekendAggregate(true)
		return m.SetUniformWeekdayWindow(model.EndTime, "18:00")
	}))

	want := session.Payload()
	assert.Equal(t, []model.TimeWindow{{StartTime: "09:00", EndTime: "18:00"}}, want.Wednesday)
	assert.Equal(t, []model.TimeWindow{model.DefaultWindow}, want.Sunday)

	api.On("SaveBusinessHours", mock.Anything, "acme", want).Return(nil).Once()
	require.NoError(t, svc.Save(context.Background(), "acme"))
	api.AssertExpectations(t)
}

func TestSave_ValidationBlocksSubmit(t *testing.T) {
	api := new(mockAPI)
	api.On("GetOnboarding", mock.Anything, "acme").Return(perDayOnboarding(), nil)

	svc := NewService(api, nil, nil)
	session, err := svc.Open(context.Background(), "acme")
	require.NoError(t, err)

	require.NoError(t, session.Edit(func(m *hours.Manager) error {
		m.SetDayWindow(model.Saturday, model.StartTime, "10:00")
		return nil
	}))

	err = svc.Save(context.Background(), "acme")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Please select an end time for Saturday", vErr.Message)
	api.AssertNotCalled(t, "SaveBusinessHours", mock.Anything, mock.Anything, mock.Anything)
}

func TestSave_APIError(t *testing.T) {
	api := new(mockAPI)
	api.On("GetOnboarding", mock.Anything, "acme").Return(perDayOnboarding(), nil)
	api.On("SaveBusinessHours", mock.Anything, "acme", mock.Anything).Return(&dashapi.APIError{Status: 500})

	svc := NewService(api, nil, nil)
	_, err := svc.Open(context.Background(), "acme")
	require.NoError(t, err)

	err = svc.Save(context.Background(), "acme")
	var apiErr *dashapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
}

func TestSave_WithoutSession(t *testing.T) {
	svc := NewService(new(mockAPI), nil, nil)
	assert.Error(t, svc.Save(context.Background(), "nobody"))
}

func TestReload_DropsLocalEdits(t *testing.T) {
	api := new(mockAPI)
	api.On("GetOnboarding", mock.Anything, "acme").Return(perDayOnboarding(), nil).Twice()

	svc := NewService(api, nil, nil)
	session, err := svc.Open(context.Background(), "acme")
	require.NoError(t, err)
	require.NoError(t, session.Edit(func(m *hours.Manager) error {
		m.SetDayWindow(model.Monday, model.StartTime, hours.Closed)
		return nil
	}))

	reloaded, err := svc.Reload(context.Background(), "acme")
	require.NoError(t, err)
	assert.NotSame(t, session, reloaded)
	assert.Len(t, reloaded.Payload().Monday, 1)
	api.AssertExpectations(t)
}

func TestRunCleanup_StopsWithContext(t *testing.T) {
	store := NewSessionStore(time.Nanosecond)
	store.GetOrCreate("acme")
	svc := NewService(new(mockAPI), store, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.RunCleanup(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}

// gatedAPI blocks loads of one company until release is closed.
type gatedAPI struct {
	slow    string
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedAPI(slow string) *gatedAPI {
	return &gatedAPI{slow: slow, started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedAPI) GetOnboarding(ctx context.Context, companyID string) (*dashapi.Onboarding, error) {
	if companyID == g.slow {
		g.once.Do(func() { close(g.started) })
		select {
		case <-g.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &dashapi.Onboarding{CompanyID: companyID}, nil
}

func (g *gatedAPI) SaveBusinessHours(context.Context, string, model.WeeklyScheduleWire) error {
	return nil
}

func TestOpen_SlowLoadDoesNotBlockOtherCompanies(t *testing.T) {
	api := newGatedAPI("slow")
	store := NewSessionStore(time.Hour)
	svc := NewService(api, store, nil)
	ctx := context.Background()

	slow := make(chan *Session, 2)
	for i := 0; i < 2; i++ {
		go func() {
			session, err := svc.Open(ctx, "slow")
			assert.NoError(t, err)
			slow <- session
		}()
	}
	<-api.started

	other := make(chan error, 1)
	go func() {
		_, err := svc.Open(ctx, "other")
		other <- err
	}()

	select {
	case err := <-other:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("open of another company waited for an in-flight load")
	}
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 0, store.Cleanup())

	close(api.release)
	first, second := <-slow, <-slow
	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.True(t, first.Loaded())
}

func TestOpen_ConcurrentFirstOpensShareOneRequest(t *testing.T) {
	release := make(chan struct{})
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
		_, _ = w.Write([]byte(`{"company_id":"acme","business_hours":{"monday":[{"start_time":"08:00","end_time":"16:00"}]}}`))
	}))
	defer srv.Close()

	svc := NewService(dashapi.NewClient(srv.URL, ""), nil, nil)

	var wg sync.WaitGroup
	sessions := make([]*Session, 4)
	for i := range sessions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			session, err := svc.Open(context.Background(), "acme")
			assert.NoError(t, err)
			sessions[i] = session
		}(i)
	}

	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	for _, session := range sessions[1:] {
		assert.Same(t, sessions[0], session)
	}
	assert.Len(t, sessions[0].Payload().Monday, 1)
}
