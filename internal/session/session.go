// Package session keeps the state of one visitor: the page they are on, the
// logo click gesture, the admin flag and the showcase scheduler.
package session

import (
	"context"
	"sync"
	"time"

	"kh-portfolio/internal/auth"
	"kh-portfolio/internal/carousel"
	"kh-portfolio/internal/view"
	"kh-portfolio/internal/works"
)

type Session struct {
	ID string

	mu         sync.Mutex
	controller *view.Controller
	logo       *view.LogoClicks
	logoTimer  *time.Timer
	admin      bool
	scheduler  *carousel.Scheduler
	visibility carousel.Visibility
	lastSeen   time.Time
	closed     bool
	now        func() time.Time
}

func newSession(id string, cfg carousel.Config, now func() time.Time) *Session {
	return &Session{
		ID:         id,
		controller: view.NewController(),
		logo:       view.NewLogoClicks(view.LogoWindow),
		scheduler:  carousel.NewScheduler(cfg),
		lastSeen:   now(),
		now:        now,
	}
}

func (s *Session) State() view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Current()
}

func (s *Session) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin
}

func (s *Session) Navigate(to view.Name) (view.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Navigate(to, s.admin)
}

func (s *Session) SelectWork(w works.Work) view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.SelectWork(w)
}

func (s *Session) ShowDetail(w works.Work) view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.ShowDetail(w)
}

func (s *Session) VisitURL() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.VisitURL()
}

// ClickLogo feeds one logo click into the gesture. The window timer sends the
// visitor home if the third click never comes.
func (s *Session) ClickLogo() (view.Action, view.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	action := s.logo.Click(now)
	s.apply(action)

	if action == view.ActionAdmin {
		s.stopLogoTimerLocked()
	} else if s.logo.Count() == 1 {
		// A new window opened.
		s.stopLogoTimerLocked()
		if deadline, ok := s.logo.Deadline(); ok {
			s.logoTimer = time.AfterFunc(deadline.Sub(now), s.expireLogo)
		}
	}
	return action, s.controller.Current()
}

func (s *Session) expireLogo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.apply(s.logo.Expire(s.now()))
}

func (s *Session) apply(action view.Action) {
	switch action {
	case view.ActionHome:
		s.controller.Home()
	case view.ActionAdmin:
		s.controller.AdminEntry(s.admin)
	}
}

func (s *Session) stopLogoTimerLocked() {
	if s.logoTimer != nil {
		s.logoTimer.Stop()
		s.logoTimer = nil
	}
}

// Login flips the admin flag when the password matches. A wrong password
// leaves the session untouched.
func (s *Session) Login(gate *auth.Gate, password string) (view.State, error) {
	if err := gate.Check(password); err != nil {
		return s.State(), err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = true
	return s.controller.LoginSucceeded(), nil
}

func (s *Session) Logout() view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = false
	return s.controller.Logout()
}

func (s *Session) Carousel() *carousel.Scheduler {
	return s.scheduler
}

// ObserveVisibility reports whether the marquee may run.
func (s *Session) ObserveVisibility(ratio float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibility.Observe(ratio)
}

// Close stops the logo timer and the scheduler. The session is unusable
// afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.stopLogoTimerLocked()
	s.mu.Unlock()
	s.scheduler.Stop()
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = s.now()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
