// Package draftstore is the durable per-session key/value store that holds the
// in-progress treatment request and its session artifacts.
//
// The Store interface is deliberately narrow (get/set/delete) so backends can
// be swapped without touching call sites. There are no cross-key
// transactions: callers order their writes so that a crash between two writes
// leaves a recoverable state (draft before step pointer, finalize before
// clearing the cart). Values are not encrypted at this layer.
package draftstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
	"rxintake/pkg/platform/sentinel"
)

// Store is implemented by every backend. Get returns sentinel.ErrNotFound for
// an absent key. Delete of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, session id.SessionID, key Key) ([]byte, error)
	Set(ctx context.Context, session id.SessionID, key Key, value []byte) error
	Delete(ctx context.Context, session id.SessionID, key Key) error
	Ping(ctx context.Context) error
}

// Session is a typed JSON view of a Store bound to one browser session. It
// converts backend failures into domain errors.
type Session struct {
	store Store
	id    id.SessionID
}

// Bind returns the view of store for sessionID.
func Bind(store Store, sessionID id.SessionID) *Session {
	return &Session{store: store, id: sessionID}
}

func (s *Session) ID() id.SessionID { return s.id }

// Ping fails closed: an unreachable store sends the caller back to the start
// of the flow.
func (s *Session) Ping(ctx context.Context) error {
	if s.id.IsNil() {
		return dErrors.WithRedirect(dErrors.CodeUnavailable, "browser session is missing", dErrors.RedirectStart)
	}
	if err := s.store.Ping(ctx); err != nil {
		return &dErrors.Error{
			Code:     dErrors.CodeUnavailable,
			Message:  "draft store unavailable",
			Redirect: dErrors.RedirectStart,
			Err:      err,
		}
	}
	return nil
}

// Load decodes key into v. found is false when the key is absent.
func (s *Session) Load(ctx context.Context, key Key, v any) (found bool, err error) {
	raw, err := s.store.Get(ctx, s.id, key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, unavailable(err, "read", key)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("stored %s is unreadable", key))
	}
	return true, nil
}

// Save encodes v under key.
func (s *Session) Save(ctx context.Context, key Key, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("encode %s", key))
	}
	if err := s.store.Set(ctx, s.id, key, raw); err != nil {
		return unavailable(err, "write", key)
	}
	return nil
}

// Remove deletes keys in order, stopping at the first failure.
func (s *Session) Remove(ctx context.Context, keys ...Key) error {
	for _, key := range keys {
		if err := s.store.Delete(ctx, s.id, key); err != nil {
			return unavailable(err, "delete", key)
		}
	}
	return nil
}

// Has reports whether key is present without decoding it.
func (s *Session) Has(ctx context.Context, key Key) (bool, error) {
	_, err := s.store.Get(ctx, s.id, key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, unavailable(err, "read", key)
	}
	return true, nil
}

func unavailable(err error, op string, key Key) error {
	return dErrors.Wrap(err, dErrors.CodeUnavailable, fmt.Sprintf("draft store %s failed for %s", op, key))
}

func checkKey(key Key) error {
	if !key.Valid() {
		return fmt.Errorf("unknown draft key %q: %w", key, sentinel.ErrInvalidState)
	}
	return nil
}
