package dedup

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

type seenEntry struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
}

// OfferCache remembers which offer URLs were already scraped, persisted as
// JSON so repeated CLI runs skip known offers. Entries expire after 30 days.
type OfferCache struct {
	mu       sync.Mutex
	filePath string
	seen     mapset.Set[string]
	stamps   map[string]int64
}

const thirtyDaysMs = int64(30 * 24 * 60 * 60 * 1000)

// NewOfferCache creates or loads an offer cache under cacheDir.
func NewOfferCache(cacheDir string) *OfferCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache directory: %v", err)
	}
	cache := &OfferCache{
		filePath: filepath.Join(cacheDir, "seen_offers.json"),
		seen:     mapset.NewSet[string](),
		stamps:   make(map[string]int64),
	}
	cache.load()
	return cache
}

// IsSeen reports whether the URL was scraped within the retention window.
func (c *OfferCache) IsSeen(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seen.Contains(url)
}

// Add marks URLs as seen and persists the cache when anything changed.
func (c *OfferCache) Add(urls []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixMilli()
	changed := false
	for _, url := range urls {
		if c.seen.Add(url) {
			c.stamps[url] = now
			changed = true
		}
	}

	if changed {
		c.save()
	}
}

func (c *OfferCache) load() {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read seen_offers.json: %v", err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse seen_offers.json: %v", err)
		return
	}

	cutoff := time.Now().UnixMilli() - thirtyDaysMs
	for _, e := range entries {
		if e.Timestamp > cutoff {
			c.seen.Add(e.URL)
			c.stamps[e.URL] = e.Timestamp
		}
	}
}

func (c *OfferCache) save() {
	entries := make([]seenEntry, 0, len(c.stamps))
	for url, ts := range c.stamps {
		entries = append(entries, seenEntry{URL: url, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal seen offers: %v", err)
		return
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write seen_offers.json: %v", err)
	}
}
