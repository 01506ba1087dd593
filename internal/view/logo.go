package view

import "time"

type Action int

const (
	ActionNone Action = iota
	ActionHome
	ActionAdmin
)

func (a Action) String() string {
	switch a {
	case ActionHome:
		return "home"
	case ActionAdmin:
		return "admin"
	}
	return "none"
}

// LogoWindow is how long after the first click the third one may arrive.
const LogoWindow = 800 * time.Millisecond

// LogoClicks counts clicks on the site logo. Three clicks inside one window
// open the admin entry; a window that runs out sends the visitor home.
type LogoClicks struct {
	window   time.Duration
	count    int
	deadline time.Time
}

func NewLogoClicks(window time.Duration) *LogoClicks {
	if window <= 0 {
		window = LogoWindow
	}
	return &LogoClicks{window: window}
}

// Click records a click at now. When the previous window had already run out
// without Expire being called, its ActionHome is returned and this click
// opens a new window.
func (l *LogoClicks) Click(now time.Time) Action {
	if l.count > 0 && !now.Before(l.deadline) {
		l.reset()
		l.open(now)
		return ActionHome
	}

	if l.count == 0 {
		l.open(now)
		return ActionNone
	}

	l.count++
	if l.count >= 3 {
		l.reset()
		return ActionAdmin
	}
	return ActionNone
}

// Expire closes a window whose deadline has passed.
func (l *LogoClicks) Expire(now time.Time) Action {
	if l.count == 0 || now.Before(l.deadline) {
		return ActionNone
	}
	l.reset()
	return ActionHome
}

// Deadline returns when the open window runs out.
func (l *LogoClicks) Deadline() (time.Time, bool) {
	if l.count == 0 {
		return time.Time{}, false
	}
	return l.deadline, true
}

func (l *LogoClicks) Count() int {
	return l.count
}

func (l *LogoClicks) open(now time.Time) {
	l.count = 1
	l.deadline = now.Add(l.window)
}

func (l *LogoClicks) reset() {
	l.count = 0
	l.deadline = time.Time{}
}
