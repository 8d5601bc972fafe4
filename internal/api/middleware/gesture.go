package middleware

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

const msgDuplicateGesture = "запрос уже обрабатывается"

// gcThreshold размер карты, после которого вычищаются давно не использованные ограничители
const gcThreshold = 1024

type gestureLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// GestureGuard пропускает не больше одного запроса одного жеста одной сессии за окно.
// Жест = шаблон маршрута, сессия = {sessionId} из пути.
type GestureGuard struct {
	window   time.Duration
	mu       sync.Mutex
	limiters map[string]*gestureLimiter
	logger   Logger
	now      func() time.Time
}

// NewGestureGuard создает guard с указанным окном
func NewGestureGuard(window time.Duration, logger Logger) *GestureGuard {
	return &GestureGuard{
		window:   window,
		limiters: make(map[string]*gestureLimiter),
		logger:   logger,
		now:      time.Now,
	}
}

// Middleware оборачивает обработчик жеста
func (g *GestureGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := mux.Vars(r)["sessionId"] + "|" + r.Method + " " + routeTemplate(r)

		if !g.allow(key) {
			g.logger.Warn("%s %s - Duplicate gesture suppressed: key=%s", r.Method, r.URL.Path, key)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"code":    http.StatusTooManyRequests,
				"message": msgDuplicateGesture,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (g *GestureGuard) allow(key string) bool {
	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.limiters) >= gcThreshold {
		g.gcLocked(now)
	}

	l, ok := g.limiters[key]
	if !ok {
		l = &gestureLimiter{limiter: rate.NewLimiter(rate.Every(g.window), 1)}
		g.limiters[key] = l
	}
	l.lastSeen = now
	return l.limiter.AllowN(now, 1)
}

func (g *GestureGuard) gcLocked(now time.Time) {
	for key, l := range g.limiters {
		if now.Sub(l.lastSeen) > g.window {
			delete(g.limiters, key)
		}
	}
}
