package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go-offer-scraper/internal/browser"
	"go-offer-scraper/internal/config"
	"go-offer-scraper/internal/database"
	"go-offer-scraper/internal/dedup"
	"go-offer-scraper/internal/engine"
	"go-offer-scraper/internal/governor"
	"go-offer-scraper/internal/offer"
	"go-offer-scraper/internal/telegram"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: scraper <offer-url> [offer-url ...]")
		os.Exit(2)
	}
	urls := os.Args[1:]

	//load config
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Concurrency limit: %d", cfg.MaxConcurrentBrowsers)

	ctx := context.Background()

	//skip offers we already scraped
	cache := dedup.NewOfferCache(cfg.CachePath)
	var fresh []string
	for _, u := range urls {
		if cache.IsSeen(u) {
			log.Printf("⏭️ Already scraped, skipping: %s", u)
			continue
		}
		fresh = append(fresh, u)
	}
	if len(fresh) == 0 {
		log.Println("ℹ️ Nothing new to scrape.")
		return
	}

	//build the browser launcher, with cookies when configured
	var opts []browser.LauncherOption
	opts = append(opts, browser.WithHeadless(cfg.Headless))
	if cfg.CookiesPath != "" {
		cookieFile := filepath.Join(cfg.CookiesPath, "cookies-linkedin.json")
		if cookies, err := browser.LoadCookies(cookieFile); err == nil {
			log.Printf("🍪 Loaded %d cookies", len(cookies))
			opts = append(opts, browser.WithCookies(cookies))
		} else if !os.IsNotExist(err) {
			log.Printf("⚠️ Could not load cookies: %v. Continuing.", err)
		}
	}
	launcher := browser.NewLauncher(opts...)
	defer launcher.Close()

	eng := engine.New(launcher, governor.New(cfg.MaxConcurrentBrowsers))

	log.Printf("🚀 Scraping %d offer(s)...", len(fresh))
	start := time.Now()
	results := eng.ScrapeBatch(ctx, fresh)
	log.Printf("🏁 Finished in %s", time.Since(start).Round(time.Millisecond))

	printResults(results)

	//mark successful scrapes as seen
	var seen []string
	for _, r := range results {
		if r.Status == offer.StatusSuccess {
			seen = append(seen, r.InitialURL)
		}
	}
	cache.Add(seen)

	notify(ctx, cfg, results)
	persist(ctx, cfg, results)
}

func printResults(results []offer.JobOffer) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatalf("❌ Failed to marshal results: %v", err)
	}
	fmt.Println(string(data))
}

func notify(ctx context.Context, cfg *config.Config, results []offer.JobOffer) {
	if cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
		return
	}
	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Printf("⚠️ Failed to init Telegram bot: %v", err)
		return
	}
	sent := 0
	for _, r := range results {
		if err := bot.SendOffer(r); err != nil {
			log.Printf("⚠️ Failed to send offer to Telegram: %v", err)
			continue
		}
		sent++
		//1 second delay to avoid 429
		time.Sleep(1 * time.Second)
	}
	if err := bot.SendStatus(fmt.Sprintf("✅ Scraped %d offer(s), sent %d.", len(results), sent)); err != nil {
		log.Printf("⚠️ Failed to send status to Telegram: %v", err)
	}
}

func persist(ctx context.Context, cfg *config.Config, results []offer.JobOffer) {
	if cfg.DatabaseURL == "" {
		return
	}
	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Printf("⚠️ Database unavailable: %v", err)
		return
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		log.Printf("⚠️ %v", err)
		return
	}
	for _, r := range results {
		if err := repo.SaveOffer(ctx, r); err != nil {
			log.Printf("⚠️ %v", err)
		}
	}
	log.Printf("💾 Persisted %d result(s)", len(results))
}
