package media

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
)

// FallbackImage is shown in place of a thumbnail that fails to load.
const FallbackImage = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iODgiIGhlaWdodD0iODgiIHhtbG5zPSJodHRwOi8vd3d3LnczLm9yZy8yMDAwL3N2ZyIgc3Ryb2tlPSIjMDAwIiBzdHJva2UtbGluZWpvaW49InJvdW5kIiBvcGFjaXR5PSIuMyIgZmlsbD0ibm9uZSIgc3Ryb2tlLXdpZHRoPSIzLjciPjxyZWN0IHg9IjE2IiB5PSIxNiIgd2lkdGg9IjU2IiBoZWlnaHQ9IjU2IiByeD0iNiIvPjxwYXRoIGQ9Im0xNiA1OCAxNi0xOCAzMiAzMiIvPjxjaXJjbGUgY3g9IjUzIiBjeT0iMzUiIHI9IjciLz48L3N2Zz4KCg=="

type State string

const (
	StateEmpty    State = "empty"
	StateOK       State = "ok"
	StateFallback State = "fallback"
)

// Image is what a thumbnail slot should display.
type Image struct {
	Src      string `json:"src"`
	State    State  `json:"state"`
	Original string `json:"original,omitempty"`
	// Animated marks GIFs; they only play while hovered.
	Animated bool `json:"animated"`
}

type Resolver struct {
	client   *http.Client
	attempts uint
	delay    time.Duration
	log      *slog.Logger
}

func NewResolver(client *http.Client, attempts uint, log *slog.Logger) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	if attempts == 0 {
		attempts = 2
	}
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{client: client, attempts: attempts, delay: 200 * time.Millisecond, log: log}
}

// Resolve never fails: anything that cannot be loaded becomes FallbackImage.
func (r *Resolver) Resolve(ctx context.Context, src string) Image {
	src = strings.TrimSpace(src)
	if src == "" {
		return Image{State: StateEmpty}
	}

	animated := strings.Contains(strings.ToLower(src), ".gif") || strings.HasPrefix(src, "data:image/gif")
	if strings.HasPrefix(src, "data:") {
		if strings.HasPrefix(src, "data:image/") {
			return Image{Src: src, State: StateOK, Animated: animated}
		}
		return r.fallback(src)
	}
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return r.fallback(src)
	}

	if err := r.probe(ctx, src); err != nil {
		r.log.Warn("media resolve: fallback", slog.String("src", src), slog.String("error", err.Error()))
		return r.fallback(src)
	}
	return Image{Src: src, State: StateOK, Animated: animated}
}

func (r *Resolver) fallback(src string) Image {
	return Image{Src: FallbackImage, State: StateFallback, Original: src}
}

func (r *Resolver) probe(ctx context.Context, src string) error {
	return retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, src, nil)
		if err != nil {
			return retry.Unrecoverable(err)
		}
		resp, err := r.client.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()
		switch {
		case resp.StatusCode >= 500:
			return fmt.Errorf("status %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			return retry.Unrecoverable(fmt.Errorf("status %d", resp.StatusCode))
		}
		return nil
	},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			r.log.Debug("media probe: retry", slog.String("src", src), slog.Uint64("attempt", uint64(n)), slog.String("error", err.Error()))
		}),
	)
}
