// Package view holds the per-visitor navigation state: which page is shown
// and which work, if any, it is about.
package view

import (
	"kh-portfolio/internal/works"
)

type Name string

const (
	Home        Name = "home"
	WorksList   Name = "works"
	WorkLanding Name = "work-landing"
	WorkDetail  Name = "work-detail"
	About       Name = "about"
	AdminLogin  Name = "admin-login"
	Admin       Name = "admin"
	NotFound    Name = "not-found"
)

// State is a view plus the work it carries. Work is only set for
// WorkLanding and WorkDetail.
type State struct {
	View Name        `json:"view"`
	Work *works.Work `json:"work,omitempty"`
}

// HasWork reports whether the state carries a selected work. Pages that need
// one render nothing when it is missing.
func (s State) HasWork() bool {
	return s.Work != nil
}

// Controller is not safe for concurrent use; the owning session serializes
// access.
type Controller struct {
	state State
}

func NewController() *Controller {
	return &Controller{state: State{View: Home}}
}

func (c *Controller) Current() State {
	s := c.state
	if s.Work != nil {
		w := *s.Work
		s.Work = &w
	}
	return s
}

func (c *Controller) set(v Name, w *works.Work) State {
	c.state = State{View: v, Work: w}
	return c.Current()
}

func (c *Controller) Home() State     { return c.set(Home, nil) }
func (c *Controller) Works() State    { return c.set(WorksList, nil) }
func (c *Controller) About() State    { return c.set(About, nil) }
func (c *Controller) NotFound() State { return c.set(NotFound, nil) }

// AdminEntry goes straight to the dashboard for a logged-in session and to
// the password prompt otherwise.
func (c *Controller) AdminEntry(loggedIn bool) State {
	if loggedIn {
		return c.set(Admin, nil)
	}
	return c.set(AdminLogin, nil)
}

func (c *Controller) LoginSucceeded() State { return c.set(Admin, nil) }
func (c *Controller) Logout() State         { return c.set(Home, nil) }

func (c *Controller) SelectWork(w works.Work) State {
	return c.set(WorkLanding, &w)
}

func (c *Controller) ShowDetail(w works.Work) State {
	return c.set(WorkDetail, &w)
}

// VisitURL returns the selected work's live site. ok is false when nothing is
// selected or the work has only the placeholder link.
func (c *Controller) VisitURL() (string, bool) {
	w := c.state.Work
	if w == nil || !w.HasProjectURL() {
		return "", false
	}
	return w.ProjectURL, true
}

// Navigate maps a navigation target onto the matching transition. Targets
// that carry a work are not reachable this way.
func (c *Controller) Navigate(to Name, adminLoggedIn bool) (State, bool) {
	switch to {
	case Home:
		return c.Home(), true
	case WorksList:
		return c.Works(), true
	case About:
		return c.About(), true
	case NotFound:
		return c.NotFound(), true
	case Admin, AdminLogin:
		return c.AdminEntry(adminLoggedIn), true
	}
	return c.Current(), false
}
