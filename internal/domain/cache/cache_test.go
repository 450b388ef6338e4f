package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/reflekt/repute/internal/domain/cache"
	"github.com/reflekt/repute/internal/domain/wallet"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryCache(t *testing.T) {
	Convey("Given a snapshot cache with a controllable clock", t, func() {
		ctx := context.Background()
		now := time.Unix(1_700_000_000, 0)
		clock := func() time.Time { return now }
		c := cache.NewInMemoryCache(
			cache.WithTTL(5*time.Minute),
			cache.WithClock(clock),
		)

		analysis := wallet.Analysis{
			Metrics:       wallet.Metrics{Address: "0xAbC", TransactionCount: 42},
			ActivityLevel: wallet.ActivityActive,
			Timestamp:     now,
		}

		Convey("When a snapshot is stored", func() {
			c.Put(ctx, "0xAbC", analysis)

			Convey("Then it is returned while fresh", func() {
				got, ok := c.Get(ctx, "0xAbC")
				So(ok, ShouldBeTrue)
				So(got.TransactionCount, ShouldEqual, 42)
			})

			Convey("And lookups are case-insensitive on address", func() {
				_, ok := c.Get(ctx, "0XABC")
				So(ok, ShouldBeTrue)
			})

			Convey("And it expires once the TTL elapses", func() {
				now = now.Add(5 * time.Minute)
				_, ok := c.Get(ctx, "0xAbC")
				So(ok, ShouldBeFalse)
			})

			Convey("And a re-Put for the same address replaces, not duplicates", func() {
				c.Put(ctx, "0XABC", analysis)
				So(c.Size(), ShouldEqual, 1)
			})
		})

		Convey("When an unknown address is requested", func() {
			_, ok := c.Get(ctx, "0xmissing")
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a cache bounded to three entries", t, func() {
		ctx := context.Background()
		now := time.Unix(1_700_000_000, 0)
		c := cache.NewInMemoryCache(
			cache.WithMaxEntries(3),
			cache.WithClock(func() time.Time { return now }),
		)

		Convey("When a fourth address arrives the oldest is evicted", func() {
			for i := 0; i < 3; i++ {
				c.Put(ctx, fmt.Sprintf("0x%d", i), wallet.Analysis{Timestamp: now})
				now = now.Add(time.Second)
			}
			c.Put(ctx, "0x3", wallet.Analysis{Timestamp: now})

			So(c.Size(), ShouldEqual, 3)
			_, ok := c.Get(ctx, "0x0")
			So(ok, ShouldBeFalse)
			_, ok = c.Get(ctx, "0x3")
			So(ok, ShouldBeTrue)
		})
	})
}
