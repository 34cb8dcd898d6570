package draftstore

import (
	"context"
	"errors"

	id "rxintake/pkg/domain"
	"rxintake/pkg/platform/sentinel"
)

// ErrorCounter receives one call per failed backend operation.
type ErrorCounter interface {
	IncDraftStoreError(operation string)
}

// Instrumented counts backend failures. Absent keys are not failures.
type Instrumented struct {
	next    Store
	metrics ErrorCounter
}

func NewInstrumented(next Store, metrics ErrorCounter) *Instrumented {
	return &Instrumented{next: next, metrics: metrics}
}

func (s *Instrumented) Get(ctx context.Context, session id.SessionID, key Key) ([]byte, error) {
	v, err := s.next.Get(ctx, session, key)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		s.metrics.IncDraftStoreError("get")
	}
	return v, err
}

func (s *Instrumented) Set(ctx context.Context, session id.SessionID, key Key, value []byte) error {
	err := s.next.Set(ctx, session, key, value)
	if err != nil {
		s.metrics.IncDraftStoreError("set")
	}
	return err
}

func (s *Instrumented) Delete(ctx context.Context, session id.SessionID, key Key) error {
	err := s.next.Delete(ctx, session, key)
	if err != nil {
		s.metrics.IncDraftStoreError("delete")
	}
	return err
}

func (s *Instrumented) Ping(ctx context.Context) error {
	err := s.next.Ping(ctx)
	if err != nil {
		s.metrics.IncDraftStoreError("ping")
	}
	return err
}
