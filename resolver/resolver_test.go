package resolver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/liveurl/liveurl/room"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

// recorder counts attempts per strategy and the URLs they saw.
type recorder struct {
	calls map[string]int
	urls  []string
}

func (r *recorder) strategy(name string, outcome func(ref room.Reference) mo.Result[room.Record]) Strategy {
	return Strategy{
		Name: name,
		Attempt: func(_ context.Context, ref room.Reference) mo.Result[room.Record] {
			r.calls[name]++
			r.urls = append(r.urls, ref.URL)
			return outcome(ref)
		},
	}
}

func fail(kind error) func(room.Reference) mo.Result[room.Record] {
	return func(room.Reference) mo.Result[room.Record] {
		return mo.Err[room.Record](fmt.Errorf("%w: test", kind))
	}
}

func succeed(anchor string) func(room.Reference) mo.Result[room.Record] {
	return func(room.Reference) mo.Result[room.Record] {
		return mo.Ok(room.Record{AnchorName: anchor, Status: room.StatusLive})
	}
}

type canonicalizer struct {
	url   string
	err   error
	calls int
}

func (c *canonicalizer) CanonicalURL(context.Context, string, string) (string, error) {
	c.calls++
	return c.url, c.err
}

func TestChain(t *testing.T) {
	ctx := context.Background()
	ref := room.Reference{URL: "https://v.example.com/share"}

	Convey("Given a chain whose first strategy rejects the URL shape", t, func() {
		r := &recorder{calls: map[string]int{}}
		chain := New("demo", nil,
			r.strategy("web-api", fail(room.ErrUnsupportedURLKind)),
			r.strategy("reflow-api", succeed("Alice")),
		)

		rec := chain.Resolve(ctx, ref)

		Convey("The second strategy's record is returned", func() {
			So(rec.AnchorName, ShouldEqual, "Alice")
			So(rec.Platform, ShouldEqual, "demo")
		})

		Convey("The first strategy is never retried", func() {
			So(r.calls["web-api"], ShouldEqual, 1)
			So(r.calls["reflow-api"], ShouldEqual, 1)
		})
	})

	Convey("When every strategy fails", t, func() {
		r := &recorder{calls: map[string]int{}}
		chain := New("demo", nil,
			r.strategy("a", fail(room.ErrRiskControl)),
			r.strategy("b", fail(room.ErrExtractionFailed)),
			r.strategy("c", func(room.Reference) mo.Result[room.Record] {
				return mo.Err[room.Record](errors.New("dial tcp: i/o timeout"))
			}),
		)

		rec := chain.Resolve(ctx, ref)

		So(rec.AnchorName, ShouldBeEmpty)
		So(rec.Status, ShouldEqual, room.StatusUnsupported)
		So(r.calls, ShouldResemble, map[string]int{"a": 1, "b": 1, "c": 1})
	})

	Convey("An unsupported live format ends the resolution", t, func() {
		r := &recorder{calls: map[string]int{}}
		chain := New("demo", nil,
			r.strategy("a", fail(room.ErrUnsupportedLiveFormat)),
			r.strategy("b", succeed("never")),
		)

		So(chain.Resolve(ctx, ref).AnchorName, ShouldBeEmpty)
		So(r.calls["b"], ShouldEqual, 0)
	})

	Convey("Given a canonicalizer", t, func() {
		canonical := "https://live.example.com/123"

		Convey("Exhaustion with a URL-shape rejection restarts the chain once on the canonical URL", func() {
			r := &recorder{calls: map[string]int{}}
			remap := &canonicalizer{url: canonical}
			chain := New("demo", remap,
				r.strategy("web-api", func(ref room.Reference) mo.Result[room.Record] {
					if ref.URL == canonical {
						return succeed("Bob")(ref)
					}
					return fail(room.ErrUnsupportedURLKind)(ref)
				}),
				r.strategy("page", fail(room.ErrRiskControl)),
			)

			rec := chain.Resolve(ctx, ref)
			So(rec.AnchorName, ShouldEqual, "Bob")
			So(remap.calls, ShouldEqual, 1)
			So(r.urls, ShouldResemble, []string{ref.URL, ref.URL, canonical})
		})

		Convey("The remap happens at most once", func() {
			r := &recorder{calls: map[string]int{}}
			remap := &canonicalizer{url: canonical}
			chain := New("demo", remap, r.strategy("a", fail(room.ErrUnsupportedURLKind)))

			So(chain.Resolve(ctx, ref).AnchorName, ShouldBeEmpty)
			So(remap.calls, ShouldEqual, 1)
			So(r.calls["a"], ShouldEqual, 2)
		})

		Convey("Failures other than URL shape never remap", func() {
			r := &recorder{calls: map[string]int{}}
			remap := &canonicalizer{url: canonical}
			chain := New("demo", remap, r.strategy("a", fail(room.ErrRiskControl)))

			So(chain.Resolve(ctx, ref).AnchorName, ShouldBeEmpty)
			So(remap.calls, ShouldEqual, 0)
		})

		Convey("A failed or identical remap does not restart", func() {
			r := &recorder{calls: map[string]int{}}
			chain := New("demo", &canonicalizer{err: room.ErrUnsupportedURLKind}, r.strategy("a", fail(room.ErrUnsupportedURLKind)))
			So(chain.Resolve(ctx, ref).AnchorName, ShouldBeEmpty)
			So(r.calls["a"], ShouldEqual, 1)

			chain = New("demo", &canonicalizer{url: ref.URL}, r.strategy("b", fail(room.ErrUnsupportedURLKind)))
			So(chain.Resolve(ctx, ref).AnchorName, ShouldBeEmpty)
			So(r.calls["b"], ShouldEqual, 1)
		})
	})

	Convey("A cancelled context stops the fold", t, func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		r := &recorder{calls: map[string]int{}}
		chain := New("demo", &canonicalizer{url: "https://other"}, r.strategy("a", succeed("x")))

		So(chain.Resolve(cctx, ref).AnchorName, ShouldBeEmpty)
		So(r.calls["a"], ShouldEqual, 0)
	})

	Convey("A panicking strategy degrades to a failure", t, func() {
		r := &recorder{calls: map[string]int{}}
		chain := New("demo", nil,
			r.strategy("a", func(room.Reference) mo.Result[room.Record] { panic("boom") }),
			r.strategy("b", succeed("Eve")),
		)

		So(chain.Resolve(ctx, ref).AnchorName, ShouldEqual, "Eve")
	})

	Convey("Names lists strategies in priority order", t, func() {
		r := &recorder{calls: map[string]int{}}
		chain := New("demo", nil, r.strategy("x", succeed("a")), r.strategy("y", succeed("b")))
		So(chain.Names(), ShouldResemble, []string{"x", "y"})
		So(chain.Platform(), ShouldEqual, "demo")
	})
}
