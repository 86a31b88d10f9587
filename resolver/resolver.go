// Package resolver runs a platform's extraction strategies in priority order until one succeeds.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/liveurl/liveurl/log"
	"github.com/liveurl/liveurl/room"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Strategy is one extraction method. Attempt makes a single try; the chain is the only retry.
type Strategy struct {
	Name    string
	Attempt func(ctx context.Context, ref room.Reference) mo.Result[room.Record]
}

// Canonicalizer maps a vanity URL to the canonical room URL.
type Canonicalizer interface {
	CanonicalURL(ctx context.Context, rawURL, proxy string) (string, error)
}

// Chain is an ordered, immutable list of strategies for one platform.
// It holds no per-call state and is safe for concurrent use.
type Chain struct {
	platform   string
	strategies []Strategy
	remap      Canonicalizer
}

// New creates a chain. remap may be nil, disabling the identity remap.
func New(platform string, remap Canonicalizer, strategies ...Strategy) *Chain {
	return &Chain{
		platform:   platform,
		strategies: strategies,
		remap:      remap,
	}
}

// Platform returns the platform the chain resolves.
func (c *Chain) Platform() string {
	return c.platform
}

// Names returns the strategy names in priority order.
func (c *Chain) Names() []string {
	return lo.Map(c.strategies, func(s Strategy, _ int) string {
		return s.Name
	})
}

// Resolve folds over the strategies and returns the first successful record.
//
// Failures are logged and the next strategy runs. An unsupported live format ends
// the resolution. When the strategies are exhausted and one of them rejected the URL
// shape, the URL is remapped to its canonical form and the chain runs once more.
// Resolve never fails: an unsuccessful resolution is room.Failed().
func (c *Chain) Resolve(ctx context.Context, ref room.Reference) room.Record {
	res, wantRemap := c.fold(ctx, ref)
	if res.IsOk() {
		return res.MustGet()
	}

	if wantRemap && c.remap != nil && ctx.Err() == nil {
		if canonical, ok := c.canonical(ctx, ref); ok {
			res, _ = c.fold(ctx, ref.WithURL(canonical))
			if res.IsOk() {
				return res.MustGet()
			}
		}
	}

	c.logger(ref).Warnf("resolution failed: %v", res.Error())
	return room.Failed()
}

// fold returns the first Ok result, or the last failure. wantRemap reports whether
// any strategy rejected the URL shape.
func (c *Chain) fold(ctx context.Context, ref room.Reference) (res mo.Result[room.Record], wantRemap bool) {
	var failures []error

	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}

		res = c.attempt(ctx, s, ref)
		if res.IsOk() {
			rec := res.MustGet()
			rec.Platform = c.platform
			c.logger(ref).WithField("strategy", s.Name).Debugf("resolved %q (%s)", rec.AnchorName, rec.Status)
			return mo.Ok(rec), false
		}

		err := res.Error()
		failures = append(failures, fmt.Errorf("%s: %w", s.Name, err))
		c.logger(ref).WithField("strategy", s.Name).Infof("strategy failed: %v", err)

		if errors.Is(err, room.ErrUnsupportedURLKind) {
			wantRemap = true
		}

		if errors.Is(err, room.ErrUnsupportedLiveFormat) {
			return mo.Err[room.Record](errors.Join(failures...)), false
		}
	}

	return mo.Err[room.Record](fmt.Errorf("%w: %w", room.ErrStrategiesExhausted, errors.Join(failures...))), wantRemap
}

// attempt runs one strategy, turning a panic into a failure.
func (c *Chain) attempt(ctx context.Context, s Strategy, ref room.Reference) (res mo.Result[room.Record]) {
	defer func() {
		if r := recover(); r != nil {
			c.logger(ref).WithField("strategy", s.Name).Errorf("strategy panicked: %v", r)
			res = mo.Err[room.Record](fmt.Errorf("%w: panic: %v", room.ErrExtractionFailed, r))
		}
	}()

	return s.Attempt(ctx, ref)
}

func (c *Chain) canonical(ctx context.Context, ref room.Reference) (string, bool) {
	canonical, err := c.remap.CanonicalURL(ctx, ref.URL, ref.Proxy)
	if err != nil {
		c.logger(ref).Infof("identity remap failed: %v", err)
		return "", false
	}

	if canonical == "" || canonical == ref.URL {
		return "", false
	}

	c.logger(ref).Infof("remapped to %s", canonical)
	return canonical, true
}

func (c *Chain) logger(ref room.Reference) *log.Entry {
	return log.WithFields(log.Fields{
		"platform": c.platform,
		"url":      ref.URL,
	})
}
