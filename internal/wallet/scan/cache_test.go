package scan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/tron-custody/internal/wallet/scan"
)

func TestCacheFreshness(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := scan.NewCache(30, func() time.Time { return now })

	transactions := []scan.ParsedTransaction{{Hash: "cached-tx"}}
	cache.Set("TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf", transactions)

	// 29 minutes later the entry is served verbatim
	now = now.Add(29 * time.Minute)
	got, ok := cache.Get("TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf")
	require.True(t, ok)
	assert.Equal(t, transactions, got)

	// 31 minutes after the write it is a miss
	now = now.Add(2 * time.Minute)
	_, ok = cache.Get("TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf")
	assert.False(t, ok)
}

func TestCacheMissForUnknownAddress(t *testing.T) {
	cache := scan.NewCache(30, nil)

	_, ok := cache.Get("TJRabPrwbZy45sbavfcjinPJC18kjpRTv8")
	assert.False(t, ok)
}

func TestCacheOverwriteRefreshesTimestamp(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := scan.NewCache(30, func() time.Time { return now })

	cache.Set("addr", []scan.ParsedTransaction{{Hash: "old"}})

	now = now.Add(25 * time.Minute)
	cache.Set("addr", []scan.ParsedTransaction{{Hash: "new"}})

	// 20 more minutes: past the first write's window, inside the second's
	now = now.Add(20 * time.Minute)
	got, ok := cache.Get("addr")
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Hash)
}
