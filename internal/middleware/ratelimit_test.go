package middleware

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
)

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    5,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	for i := 0; i < 5; i++ {
		if !rl.Allow("test-ip") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_BlocksAfterMax(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    3,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	for i := 0; i < 3; i++ {
		rl.Allow("test-ip")
	}

	if rl.Allow("test-ip") {
		t.Fatal("4th request should be blocked")
	}
}

func TestRateLimiter_DifferentKeysIndependent(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    2,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	rl.Allow("ip-a")
	rl.Allow("ip-a")

	// ip-a is exhausted
	if rl.Allow("ip-a") {
		t.Fatal("ip-a should be blocked")
	}

	// ip-b should still be allowed
	if !rl.Allow("ip-b") {
		t.Fatal("ip-b should be allowed (independent key)")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    2,
		Window: 50 * time.Millisecond,
		KeyFn:  KeyByIP,
	})

	rl.Allow("test")
	rl.Allow("test")

	if rl.Allow("test") {
		t.Fatal("should be blocked within window")
	}

	// Wait for window to expire
	time.Sleep(60 * time.Millisecond)

	if !rl.Allow("test") {
		t.Fatal("should be allowed after window reset")
	}
}

func TestRateLimiter_HandlerConcurrentRequests(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    10,
		Window: 20 * time.Millisecond,
		KeyFn:  func(fiber.Ctx) string { return "shared" },
	})

	app := fiber.New()
	app.Get("/x", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }, rl.Handler())

	// Hammer a single key across window boundaries so entries get
	// replaced while other requests are in flight.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
				if err != nil {
					t.Errorf("request failed: %v", err)
					return
				}
				if resp.StatusCode != fiber.StatusOK && resp.StatusCode != fiber.StatusTooManyRequests {
					t.Errorf("unexpected status %d", resp.StatusCode)
					return
				}
				resp.Body.Close()
			}
		}()
	}
	wg.Wait()
}

func TestRateLimiter_BlockMutationConfig(t *testing.T) {
	rl := NewBlockMutationRateLimiter()
	for i := 0; i < 20; i++ {
		if !rl.Allow("user:42") {
			t.Fatalf("block mutation request %d should be allowed (max 20)", i+1)
		}
	}
	if rl.Allow("user:42") {
		t.Fatal("21st block mutation should be blocked")
	}
}

func TestRateLimiter_BlockListingConfig(t *testing.T) {
	rl := NewBlockListingRateLimiter()
	for i := 0; i < 30; i++ {
		if !rl.Allow("user:42") {
			t.Fatalf("block listing request %d should be allowed (max 30)", i+1)
		}
	}
	if rl.Allow("user:42") {
		t.Fatal("31st block listing should be blocked")
	}
}

func TestRateLimiter_ListingConfig(t *testing.T) {
	rl := NewListingRateLimiter()
	for i := 0; i < 100; i++ {
		if !rl.Allow("ip:127.0.0.1") {
			t.Fatalf("listing request %d should be allowed (max 100)", i+1)
		}
	}
	if rl.Allow("ip:127.0.0.1") {
		t.Fatal("101st listing request should be blocked")
	}
}
