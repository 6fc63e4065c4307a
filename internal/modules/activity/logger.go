package activity

import (
	"context"
	"log"
	"sync"

	"crmcore/internal/domain"
)

type ActivityRepository interface {
	Create(ctx context.Context, a *domain.ActivityLog) error
	List(ctx context.Context, entityID string, limit int) ([]domain.ActivityLog, error)
}

// Logger persists audit entries off the request path. Emit never blocks the
// caller and never surfaces storage errors; the audit feed is best-effort by
// contract.
type Logger struct {
	repo ActivityRepository
	hub  *Hub

	entries chan domain.ActivityLog
	done    chan struct{}
	once    sync.Once
}

func NewLogger(repo ActivityRepository, hub *Hub) *Logger {
	l := &Logger{
		repo:    repo,
		hub:     hub,
		entries: make(chan domain.ActivityLog, 256),
		done:    make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Logger) Emit(entry domain.ActivityLog) {
	select {
	case l.entries <- entry:
	default:
		log.Printf("activity: feed buffer full, dropping %s %s", entry.Action, entry.EntityID)
	}
}

func (l *Logger) run() {
	for entry := range l.entries {
		e := entry
		if err := l.repo.Create(context.Background(), &e); err != nil {
			log.Printf("activity: failed to record %s %s: %v", e.Action, e.EntityID, err)
			continue
		}
		if l.hub != nil {
			l.hub.Broadcast(e)
		}
	}
	close(l.done)
}

// Close drains the buffer and stops the writer goroutine.
func (l *Logger) Close() {
	l.once.Do(func() {
		close(l.entries)
	})
	<-l.done
}
