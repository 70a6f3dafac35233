package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"google.golang.org/genai"
)

func TestNewRequiresKeys(t *testing.T) {
	if _, err := New(nil, logger.NewNop()); err == nil {
		t.Error("New() should fail without keys")
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("Error 429, Message: too many requests"), true},
		{errors.New("RESOURCE_EXHAUSTED"), true},
		{errors.New("you exceeded your current quota"), true},
		{errors.New("Error 500, Message: internal"), false},
	}
	for _, tt := range tests {
		if got := IsRateLimited(tt.err); got != tt.want {
			t.Errorf("IsRateLimited(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestRotateFrom(t *testing.T) {
	c, _ := New([]string{"a", "b", "c"}, logger.NewNop())

	c.rotateFrom(0)
	if key, _ := c.key(); key != "b" {
		t.Errorf("key after rotate = %q, want b", key)
	}
	// a stale rotation for key 0 must not skip b
	c.rotateFrom(0)
	if key, _ := c.key(); key != "b" {
		t.Errorf("key after stale rotate = %q, want b", key)
	}
	c.rotateFrom(1)
	c.rotateFrom(2)
	if key, _ := c.key(); key != "a" {
		t.Errorf("key after wrap = %q, want a", key)
	}
}

func requestKey(r *http.Request) string {
	if k := r.Header.Get("x-goog-api-key"); k != "" {
		return k
	}
	return r.URL.Query().Get("key")
}

func TestGenerate(t *testing.T) {
	var mu sync.Mutex
	var seen []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := requestKey(r)
		mu.Lock()
		seen = append(seen, key)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if key == "limited" {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`)
			return
		}
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"short "},{"text":"summary"}]}}]}`)
	}))
	defer srv.Close()

	c, _ := New([]string{"limited", "good"}, logger.NewNop())
	c.baseURL = srv.URL + "/"

	ctx := context.Background()
	contents := genai.Text("hello")

	if _, err := c.Generate(ctx, "gemini-2.5-flash", contents, nil); err == nil {
		t.Fatal("Generate() with a limited key should fail")
	}
	got, err := c.Generate(ctx, "gemini-2.5-flash", contents, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "short summary" {
		t.Errorf("Generate() = %q, want %q", got, "short summary")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) < 2 || seen[0] != "limited" || seen[len(seen)-1] != "good" {
		t.Errorf("keys used = %v, want limited then good", seen)
	}
}
