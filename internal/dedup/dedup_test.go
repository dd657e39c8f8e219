package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferCache_AddAndIsSeen(t *testing.T) {
	cache := NewOfferCache(t.TempDir())

	assert.False(t, cache.IsSeen("https://justjoin.it/job-offer/a"))

	cache.Add([]string{"https://justjoin.it/job-offer/a"})
	assert.True(t, cache.IsSeen("https://justjoin.it/job-offer/a"))
	assert.False(t, cache.IsSeen("https://justjoin.it/job-offer/b"))
}

func TestOfferCache_PersistsAcrossReload(t *testing.T) {
	dir := t.TempDir()

	cache := NewOfferCache(dir)
	cache.Add([]string{
		"https://justjoin.it/job-offer/a",
		"https://theprotocol.it/szczegoly/praca/b",
	})

	reloaded := NewOfferCache(dir)
	assert.True(t, reloaded.IsSeen("https://justjoin.it/job-offer/a"))
	assert.True(t, reloaded.IsSeen("https://theprotocol.it/szczegoly/praca/b"))
	assert.False(t, reloaded.IsSeen("https://justjoin.it/job-offer/c"))
}

func TestOfferCache_ExpiresOldEntries(t *testing.T) {
	dir := t.TempDir()
	now := time.Now().UnixMilli()

	entries := []seenEntry{
		{URL: "https://justjoin.it/job-offer/fresh", Timestamp: now - int64(24*time.Hour/time.Millisecond)},
		{URL: "https://justjoin.it/job-offer/stale", Timestamp: now - int64(40*24*time.Hour/time.Millisecond)},
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seen_offers.json"), data, 0644))

	cache := NewOfferCache(dir)
	assert.True(t, cache.IsSeen("https://justjoin.it/job-offer/fresh"))
	assert.False(t, cache.IsSeen("https://justjoin.it/job-offer/stale"))
}

func TestOfferCache_IgnoresCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seen_offers.json"), []byte("{not json"), 0644))

	cache := NewOfferCache(dir)
	assert.False(t, cache.IsSeen("https://justjoin.it/job-offer/a"))

	cache.Add([]string{"https://justjoin.it/job-offer/a"})
	assert.True(t, cache.IsSeen("https://justjoin.it/job-offer/a"))
}
