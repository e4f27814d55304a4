package memory

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/pkg/metrics"
)

func newUnit(id string) *domain.OutputUnit {
	return &domain.OutputUnit{
		ID:           id,
		Relationship: domain.RelSuccess,
		Attributes:   map[string]string{domain.AttrRecordCount: "1"},
		Content:      []byte(`[{"id":1}]`),
	}
}

func TestSetGet_HitMiss(t *testing.T) {
	c := NewLRUCacheTTL(2, 5*time.Minute)
	ctx := context.Background()

	missBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("miss"))
	if _, ok := c.Get(ctx, "id-1"); ok {
		t.Fatalf("expected miss before Set")
	}
	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("miss")); got != missBefore+1 {
		t.Fatalf("miss counter: want %v, got %v", missBefore+1, got)
	}

	_ = c.Set(ctx, newUnit("id-1"))
	got, ok := c.Get(ctx, "id-1")
	if !ok || got.ID != "id-1" {
		t.Fatalf("expected hit for id-1")
	}
}

func TestTTL_Expiry(t *testing.T) {
	c := NewLRUCacheTTL(2, 50*time.Millisecond)
	ctx := context.Background()

	_ = c.Set(ctx, newUnit("ttl"))
	if _, ok := c.Get(ctx, "ttl"); !ok {
		t.Fatalf("expected hit right after Set")
	}
	time.Sleep(80 * time.Millisecond)
	if _, ok := c.Get(ctx, "ttl"); ok {
		t.Fatalf("expected miss after TTL expires")
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRUCacheTTL(2, 0) // 0 = без TTL
	ctx := context.Background()

	_ = c.Set(ctx, newUnit("A"))
	_ = c.Set(ctx, newUnit("B"))
	// A сделать «свежим»
	if _, ok := c.Get(ctx, "A"); !ok {
		t.Fatalf("expected hit for A")
	}
	// C вытеснит B (самый старый)
	_ = c.Set(ctx, newUnit("C"))

	if _, ok := c.Get(ctx, "B"); ok {
		t.Fatalf("expected B to be evicted")
	}
	if _, ok := c.Get(ctx, "A"); !ok || c.Len() != 2 {
		t.Fatalf("expected A & C to stay in cache")
	}
}

func TestCloneImmutability(t *testing.T) {
	c := NewLRUCacheTTL(1, 0)
	ctx := context.Background()
	orig := newUnit("Z")
	_ = c.Set(ctx, orig)

	// исходный объект меняется после Set — кэш не должен это увидеть
	orig.Attributes[domain.AttrRecordCount] = "100"

	u1, _ := c.Get(ctx, "Z")
	u1.Content[0] = 'x'

	u2, _ := c.Get(ctx, "Z")
	if u2.Attributes[domain.AttrRecordCount] != "1" || u2.Content[0] != '[' {
		t.Fatalf("cache must hold its own copy, got %+v", u2)
	}
}

func TestSet_IgnoresEmpty(t *testing.T) {
	c := NewLRUCacheTTL(1, 0)
	_ = c.Set(context.Background(), nil)
	_ = c.Set(context.Background(), &domain.OutputUnit{})
	if c.Len() != 0 {
		t.Fatalf("empty units must not be cached")
	}
}
