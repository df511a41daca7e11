// Package fallback implements the primary-with-fallback storage strategy shared by
// the order, kitchen status and menu stores: the remote datastore answers first,
// the local file store answers when it fails, and file writes may be mirrored back
// to the remote store in the background.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// ErrStorageUnavailable is returned only when every enabled backend failed.
var ErrStorageUnavailable = errors.New("storage unavailable")

// errNoValue lets a primary read report "nothing stored" so the secondary is consulted.
var errNoValue = errors.New("no value in primary store")

const defaultMirrorTimeout = 5 * time.Second

type Options struct {
	// Name tags log lines, e.g. "order".
	Name string
	// PrimaryEnabled is false when no remote datastore is configured.
	PrimaryEnabled bool
	// Mirror re-sends successful fallback writes to the primary store.
	Mirror        bool
	MirrorTimeout time.Duration
}

// Policy runs read and write operations against a primary and a secondary backend.
// It is safe for concurrent use.
type Policy struct {
	name           string
	primaryEnabled bool
	mirror         bool
	mirrorTimeout  time.Duration
	wg             sync.WaitGroup
}

func NewPolicy(opts Options) *Policy {
	timeout := opts.MirrorTimeout
	if timeout <= 0 {
		timeout = defaultMirrorTimeout
	}
	name := opts.Name
	if name == "" {
		name = "store"
	}
	return &Policy{
		name:           name,
		primaryEnabled: opts.PrimaryEnabled,
		mirror:         opts.Mirror,
		mirrorTimeout:  timeout,
	}
}

// Read returns the primary's answer, or the secondary's when the primary fails.
func Read[T any](ctx context.Context, p *Policy, op string, primary, secondary func(context.Context) (T, error)) (T, error) {
	var primaryErr error
	if p.primaryEnabled {
		v, err := primary(ctx)
		if err == nil {
			return v, nil
		}
		primaryErr = err
		if errors.Is(err, errNoValue) {
			log.Printf("[%s][fallback] %s: primary has no value; reading file store", p.name, op)
		} else {
			log.Printf("[%s][fallback] %s: primary failed; reading file store err=%v", p.name, op, err)
		}
	}

	v, err := secondary(ctx)
	if err != nil {
		log.Printf("[%s][fallback] %s: file store failed err=%v", p.name, op, err)
		var zero T
		return zero, unavailable(op, primaryErr, err)
	}
	return v, nil
}

// Write stores through the primary, or through the secondary when the primary fails.
// After a successful secondary write, mirror (if non-nil and mirroring is on) is run
// in the background; its outcome is only logged.
func (p *Policy) Write(ctx context.Context, op string, primary, secondary, mirror func(context.Context) error) error {
	var primaryErr error
	if p.primaryEnabled {
		err := primary(ctx)
		if err == nil {
			return nil
		}
		primaryErr = err
		log.Printf("[%s][fallback] %s: primary failed; writing file store err=%v", p.name, op, err)
	}

	if err := secondary(ctx); err != nil {
		log.Printf("[%s][fallback] %s: file store failed err=%v", p.name, op, err)
		return unavailable(op, primaryErr, err)
	}

	if p.primaryEnabled && p.mirror && mirror != nil {
		p.startMirror(ctx, op, mirror)
	}
	return nil
}

// Wait blocks until all in-flight mirror writes have finished.
func (p *Policy) Wait() {
	p.wg.Wait()
}

func (p *Policy) startMirror(ctx context.Context, op string, mirror func(context.Context) error) {
	mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.mirrorTimeout)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()
		if err := mirror(mctx); err != nil {
			log.Printf("[%s][fallback] %s: mirror to primary failed err=%v", p.name, op, err)
			return
		}
		log.Printf("[%s][fallback] %s: mirrored to primary", p.name, op)
	}()
}

func unavailable(op string, primaryErr, secondaryErr error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, errors.Join(primaryErr, secondaryErr))
}
