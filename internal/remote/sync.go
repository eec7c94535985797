package remote

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// SyncClient mirrors local mutations to the backend. Pushes are
// fire-and-forget: they are never retried, never cancelled and never
// reported back to the caller. Failures are only logged.
type SyncClient struct {
	transport Transport
	log       *zap.Logger
	wg        sync.WaitGroup
}

// NewSyncClient creates a SyncClient writing through t.
func NewSyncClient(t Transport, log *zap.Logger) *SyncClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &SyncClient{transport: t, log: log}
}

// Push sends op in the background and returns immediately.
func (s *SyncClient) Push(op Operation) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.send(op)
	}()
}

// Wait blocks until every push issued so far has completed.
func (s *SyncClient) Wait() {
	s.wg.Wait()
}

func (s *SyncClient) send(op Operation) {
	fields := []zap.Field{zap.String("path", op.Path)}
	if op.ID != "" {
		fields = append(fields, zap.String("id", op.ID))
	}

	env, err := s.transport.Post(context.Background(), op)
	if err != nil {
		s.log.Warn("push failed", append(fields, zap.Error(err))...)
		return
	}
	if env.Error != "" {
		s.log.Warn("push rejected", append(fields, zap.String("error", env.Error))...)
		return
	}
	if env.Message != "" {
		s.log.Debug("push acknowledged", append(fields, zap.String("message", env.Message))...)
	}
}
