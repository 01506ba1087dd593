package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"kh-portfolio/internal/auth"
	"kh-portfolio/internal/carousel"
	"kh-portfolio/internal/view"
	"kh-portfolio/internal/works"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestRegistry(t *testing.T) (*Registry, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(time.Hour, carousel.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.now = c.Now
	t.Cleanup(r.Close)
	return r, c
}

func TestLogoTripleClickOpensAdminEntry(t *testing.T) {
	r, c := newTestRegistry(t)
	s := r.Create()

	action, _ := s.ClickLogo()
	assert.Equal(t, view.ActionNone, action)
	c.Advance(200 * time.Millisecond)
	s.ClickLogo()
	c.Advance(200 * time.Millisecond)
	action, st := s.ClickLogo()

	assert.Equal(t, view.ActionAdmin, action)
	assert.Equal(t, view.AdminLogin, st.View)
}

func TestLogoWindowLapseGoesHome(t *testing.T) {
	r, c := newTestRegistry(t)
	s := r.Create()
	s.Navigate(view.About)

	s.ClickLogo()
	s.ClickLogo()
	c.Advance(900 * time.Millisecond)
	s.expireLogo()

	assert.Equal(t, view.Home, s.State().View)

	// The next click starts a fresh window.
	action, _ := s.ClickLogo()
	assert.Equal(t, view.ActionNone, action)
}

func TestLogoTimerFires(t *testing.T) {
	r, _ := newTestRegistry(t)
	s := r.Create()
	s.now = time.Now
	s.logo = view.NewLogoClicks(20 * time.Millisecond)
	s.Navigate(view.About)

	s.ClickLogo()
	assert.Eventually(t, func() bool {
		return s.State().View == view.Home
	}, time.Second, 5*time.Millisecond)
}

func TestLoginAndLogout(t *testing.T) {
	r, _ := newTestRegistry(t)
	s := r.Create()
	gate, err := auth.NewGate("")
	require.NoError(t, err)

	st, ok := s.Navigate(view.AdminLogin)
	require.True(t, ok)
	assert.Equal(t, view.AdminLogin, st.View)

	_, err = s.Login(gate, "nope")
	assert.ErrorIs(t, err, auth.ErrIncorrectPassword)
	assert.False(t, s.IsAdmin())
	assert.Equal(t, view.AdminLogin, s.State().View)

	st, err = s.Login(gate, auth.DefaultAdminPassword)
	require.NoError(t, err)
	assert.True(t, s.IsAdmin())
	assert.Equal(t, view.Admin, st.View)

	st = s.Logout()
	assert.False(t, s.IsAdmin())
	assert.Equal(t, view.Home, st.View)
}

func TestSelectWorkAndVisit(t *testing.T) {
	r, _ := newTestRegistry(t)
	s := r.Create()
	w := works.Seed()[0]

	st := s.SelectWork(w)
	assert.Equal(t, view.WorkLanding, st.View)
	require.True(t, st.HasWork())

	url, ok := s.VisitURL()
	assert.True(t, ok)
	assert.Equal(t, w.ProjectURL, url)

	st = s.ShowDetail(w)
	assert.Equal(t, view.WorkDetail, st.View)
}

func TestRegistrySweep(t *testing.T) {
	r, c := newTestRegistry(t)
	old := r.Create()
	c.Advance(50 * time.Minute)
	fresh := r.Create()

	c.Advance(20 * time.Minute)
	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())

	_, ok := r.Get(old.ID)
	assert.False(t, ok)
	_, ok = r.Get(fresh.ID)
	assert.True(t, ok)

	// The swept session's scheduler no longer runs.
	assert.NoError(t, old.Carousel().Run(context.Background(), time.Millisecond, func(carousel.Frame) error { return nil }))
}

func TestRegistryGetTouches(t *testing.T) {
	r, c := newTestRegistry(t)
	s := r.Create()
	c.Advance(50 * time.Minute)
	_, ok := r.Get(s.ID)
	require.True(t, ok)
	c.Advance(50 * time.Minute)
	assert.Zero(t, r.Sweep())
}

func TestStartSweeperRejectsBadSchedule(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, err := r.StartSweeper("every now and then")
	assert.Error(t, err)

	c, err := r.StartSweeper("@every 1m")
	require.NoError(t, err)
	<-c.Stop().Done()
}
