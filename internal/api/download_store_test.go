package api

import (
	"testing"
	"time"
)

func TestDownloadStore_PutGet(t *testing.T) {
	t.Parallel()

	s := newDownloadStore()
	token := s.put("出货单_20260315.zip", []byte("zip-bytes"), time.Minute)
	if token == "" {
		t.Fatal("empty token")
	}

	d, ok := s.get(token)
	if !ok {
		t.Fatal("token not found right after put")
	}
	if d.filename != "出货单_20260315.zip" || string(d.data) != "zip-bytes" {
		t.Errorf("got %q/%q", d.filename, d.data)
	}

	if _, ok := s.get("no-such-token"); ok {
		t.Error("unknown token should miss")
	}
}

func TestDownloadStore_TokensAreUnique(t *testing.T) {
	t.Parallel()

	s := newDownloadStore()
	a := s.put("a.zip", nil, time.Minute)
	b := s.put("b.zip", nil, time.Minute)
	if a == b {
		t.Fatalf("duplicate tokens: %s", a)
	}
}

func TestDownloadStore_Expiry(t *testing.T) {
	t.Parallel()

	s := newDownloadStore()
	token := s.put("a.zip", []byte("x"), -time.Second)
	if _, ok := s.get(token); ok {
		t.Fatal("expired token should miss")
	}
	s.mu.Lock()
	n := len(s.items)
	s.mu.Unlock()
	if n != 0 {
		t.Errorf("expired items not purged, %d left", n)
	}
}
