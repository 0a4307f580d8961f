package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// BenchmarkMemoryCache_Get_Hit measures cache hit performance.
func BenchmarkMemoryCache_Get_Hit(b *testing.B) {
	policy := DefaultPolicy()
	c := NewMemoryCache(policy)
	ctx := context.Background()

	// Pre-populate
	_ = c.Set(ctx, "key", []byte("value"), time.Hour)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Get(ctx, "key")
	}
}

// BenchmarkMemoryCache_Get_Miss measures cache miss performance.
func BenchmarkMemoryCache_Get_Miss(b *testing.B) {
	policy := DefaultPolicy()
	c := NewMemoryCache(policy)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Get(ctx, "missing")
	}
}

// BenchmarkMemoryCache_Set measures write performance.
func BenchmarkMemoryCache_Set(b *testing.B) {
	policy := DefaultPolicy()
	c := NewMemoryCache(policy)
	ctx := context.Background()
	value := []byte("test value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Set(ctx, fmt.Sprintf("key-%d", i), value, time.Hour)
	}
}

// BenchmarkMemoryCache_Set_SameKey measures overwrite performance.
func BenchmarkMemoryCache_Set_SameKey(b *testing.B) {
	policy := DefaultPolicy()
	c := NewMemoryCache(policy)
	ctx := context.Background()
	value := []byte("test value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Set(ctx, "same-key", value, time.Hour)
	}
}

// BenchmarkMemoryCache_Delete measures delete performance.
func BenchmarkMemoryCache_Delete(b *testing.B) {
	policy := DefaultPolicy()
	c := NewMemoryCache(policy)
	ctx := context.Background()

	// Pre-populate
	for i := 0; i < b.N; i++ {
		_ = c.Set(ctx, fmt.Sprintf("key-%d", i), []byte("value"), time.Hour)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Delete(ctx, fmt.Sprintf("key-%d", i))
	}
}

// BenchmarkMemoryCache_Concurrent_ReadWrite measures mixed concurrent operations.
func BenchmarkMemoryCache_Concurrent_ReadWrite(b *testing.B) {
	policy := DefaultPolicy()
	c := NewMemoryCache(policy)
	ctx := context.Background()

	// Pre-populate some entries
	for i := 0; i < 100; i++ {
		_ = c.Set(ctx, fmt.Sprintf("key-%d", i), []byte("value"), time.Hour)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := fmt.Sprintf("key-%d", i%100)
			if i%4 == 0 {
				// 25% writes
				_ = c.Set(ctx, key, []byte("new-value"), time.Hour)
			} else {
				// 75% reads
				_, _ = c.Get(ctx, key)
			}
			i++
		}
	})
}

// BenchmarkMemoryCache_Concurrent_ReadHeavy measures read-heavy workload.
func BenchmarkMemoryCache_Concurrent_ReadHeavy(b *testing.B) {
	policy := DefaultPolicy()
	c := NewMemoryCache(policy)
	ctx := context.Background()

	// Pre-populate
	for i := 0; i < 100; i++ {
		_ = c.Set(ctx, fmt.Sprintf("key-%d", i), []byte("value"), time.Hour)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = c.Get(ctx, fmt.Sprintf("key-%d", i%100))
			i++
		}
	})
}

// BenchmarkDefaultKeyer_Key measures key generation.
func BenchmarkDefaultKeyer_Key(b *testing.B) {
	keyer := NewDefaultKeyer()
	input := map[string]any{
		"query": "test",
		"limit": 10,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = keyer.Key("github.search", input)
	}
}

// BenchmarkDefaultKeyer_Key_LargeInput measures key generation with large input.
func BenchmarkDefaultKeyer_Key_LargeInput(b *testing.B) {
	keyer := NewDefaultKeyer()
	input := map[string]any{
		"query":   "test query string",
		"limit":   100,
		"offset":  0,
		"filters": []any{"filter1", "filter2", "filter3"},
		"nested": map[string]any{
			"key1": "value1",
			"key2": "value2",
			"key3": "value3",
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = keyer.Key("billing.getInvoice", input)
	}
}

// BenchmarkDefaultKeyer_Key_Concurrent measures concurrent key generation.
func BenchmarkDefaultKeyer_Key_Concurrent(b *testing.B) {
	keyer := NewDefaultKeyer()
	input := map[string]any{"query": "test"}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = keyer.Key("movies.search", input)
		}
	})
}

// BenchmarkPolicy_EffectiveTTL measures TTL calculation.
func BenchmarkPolicy_EffectiveTTL(b *testing.B) {
	policy := DefaultPolicy()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = policy.EffectiveTTL(10 * time.Minute)
	}
}

// BenchmarkPolicy_ShouldCache measures cache decision.
func BenchmarkPolicy_ShouldCache(b *testing.B) {
	policy := DefaultPolicy()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = policy.ShouldCache()
	}
}

// BenchmarkValidateKey measures key validation.
func BenchmarkValidateKey(b *testing.B) {
	key := "cache:github.search:abc123def456"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ValidateKey(key)
	}
}
