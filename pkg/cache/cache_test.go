package cache

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	DefaultBackoff.Base = time.Millisecond
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() = %v", err)
	}

	if _, hit, err := c.Get(ctx, "dot:abc"); hit || err != nil {
		t.Fatalf("Get(empty) = %v, %v", hit, err)
	}

	if err := c.Set(ctx, "dot:abc", []byte("digraph g {}"), time.Hour); err != nil {
		t.Fatalf("Set() = %v", err)
	}
	data, hit, err := c.Get(ctx, "dot:abc")
	if err != nil || !hit || string(data) != "digraph g {}" {
		t.Fatalf("Get() = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "dot:abc"); err != nil {
		t.Fatalf("Delete() = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "dot:abc"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "dot:abc"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero ttl entry should not expire")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() = %v", err)
	}
	for _, k := range []string{"a", "b"} {
		if _, hit, _ := c.Get(ctx, k); hit {
			t.Errorf("%s survived Clear", k)
		}
	}
	if err := c.Set(ctx, "c", []byte("3"), 0); err != nil {
		t.Errorf("Set after Clear = %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if gk := k.GraphKey("abc"); !strings.HasPrefix(gk, "graph:") || gk == k.GraphKey("abd") {
		t.Errorf("GraphKey unexpected: %s", gk)
	}

	d1 := k.DOTKey("abc", DOTKeyOpts{GraphName: "g"})
	d2 := k.DOTKey("abc", DOTKeyOpts{GraphName: "h"})
	d3 := k.DOTKey("abc", DOTKeyOpts{GraphName: "g", Verified: true})
	if !strings.HasPrefix(d1, "dot:") {
		t.Errorf("DOTKey prefix: %s", d1)
	}
	if d1 == d2 || d1 == d3 {
		t.Error("Different DOTKeyOpts should produce different keys")
	}
	if d1 != k.DOTKey("abc", DOTKeyOpts{GraphName: "g"}) {
		t.Error("DOTKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "api:")
	inner := NewDefaultKeyer()

	if got, want := scoped.GraphKey("x"), "api:"+inner.GraphKey("x"); got != want {
		t.Errorf("GraphKey = %s, want %s", got, want)
	}
	opts := DOTKeyOpts{GraphName: "g"}
	if got, want := scoped.DOTKey("x", opts), "api:"+inner.DOTKey("x", opts); got != want {
		t.Errorf("DOTKey = %s, want %s", got, want)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(ErrNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	permanent := errors.New("permanent")

	tests := []struct {
		name      string
		failUntil int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success first try", 0, nil, 1, nil},
		{"non-retryable stops", 99, permanent, 1, permanent},
		{"retry then succeed", 2, Retryable(ErrNetwork), 2, nil},
		{"gives up after three", 99, Retryable(ErrNetwork), 3, ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, func() error {
				calls++
				if calls < tt.failUntil {
					return tt.err
				}
				if tt.failUntil == 99 {
					return tt.err
				}
				return nil
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestBackoffDelays(t *testing.T) {
	b := Backoff{Attempts: 4, Base: time.Millisecond, Max: 2 * time.Millisecond}
	var stamps []time.Time
	err := b.Do(context.Background(), func() error {
		stamps = append(stamps, time.Now())
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, ErrNetwork) || len(stamps) != 4 {
		t.Fatalf("err = %v after %d calls, want ErrNetwork after 4", err, len(stamps))
	}
	for i := 1; i < len(stamps); i++ {
		if gap := stamps[i].Sub(stamps[i-1]); gap < time.Millisecond {
			t.Errorf("gap %d = %v, want at least 1ms", i, gap)
		}
	}
}

func TestBackoffZeroAttempts(t *testing.T) {
	calls := 0
	_ = Backoff{}.Do(context.Background(), func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}
	if err := classify(redis.Nil); err != redis.Nil || IsRetryable(err) {
		t.Errorf("classify(redis.Nil) = %v", err)
	}
	if err := classify(io.EOF); !IsRetryable(err) || !errors.Is(err, ErrNetwork) {
		t.Errorf("classify(EOF) = %v, want retryable network error", err)
	}
	if err := classify(errors.New("WRONGTYPE")); IsRetryable(err) {
		t.Errorf("server errors should not be retried: %v", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open(default) = %v", err)
	}
	if _, ok := c.(*FileCache); !ok {
		t.Errorf("Open(default) = %T, want *FileCache", c)
	}

	c, err = Open(ctx, Config{Backend: BackendNone})
	if err != nil {
		t.Fatalf("Open(none) = %v", err)
	}
	if _, ok := c.(*NullCache); !ok {
		t.Errorf("Open(none) = %T, want *NullCache", c)
	}

	if _, err := Open(ctx, Config{Backend: "memcached"}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open(memcached) = %v, want ErrUnknownBackend", err)
	}
	if _, err := Open(ctx, Config{Backend: BackendRedis, RedisURL: "not a url"}); err == nil {
		t.Error("Open(redis, bad url) should fail")
	}
	if _, err := Open(ctx, Config{Backend: BackendMongo, MongoURI: "http://example.com"}); err == nil {
		t.Error("Open(mongo, bad uri) should fail")
	}
}

func TestClassifyMongo(t *testing.T) {
	if classifyMongo(nil) != nil {
		t.Error("classifyMongo(nil) should be nil")
	}
	if err := classifyMongo(mongo.ErrNoDocuments); err != mongo.ErrNoDocuments || IsRetryable(err) {
		t.Errorf("classifyMongo(ErrNoDocuments) = %v", err)
	}
	if err := classifyMongo(context.DeadlineExceeded); !IsRetryable(err) || !errors.Is(err, ErrNetwork) {
		t.Errorf("classifyMongo(deadline) = %v, want retryable network error", err)
	}
	if err := classifyMongo(errors.New("duplicate key")); IsRetryable(err) {
		t.Error("server errors should not be retryable")
	}
}
