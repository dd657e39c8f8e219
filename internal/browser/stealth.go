package browser

import (
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// randomDelay pauses for a random time between min and max milliseconds to
// mimic human pacing.
func randomDelay(min, max int) {
	if min >= max {
		time.Sleep(time.Duration(min) * time.Millisecond)
		return
	}
	time.Sleep(time.Duration(rand.Intn(max-min)+min) * time.Millisecond)
}

// humanScroll walks the page down in uneven steps and finishes at the bottom
// so lazy-loaded content is triggered before extraction.
func humanScroll(page playwright.Page) {
	for i := 0; i < 4; i++ {
		if _, err := page.Evaluate("window.scrollBy(0, window.innerHeight / 2)"); err != nil {
			return
		}
		randomDelay(200, 500)
	}
	// small upward correction, then jump to the bottom
	page.Mouse().Wheel(0, -200)
	randomDelay(100, 300)
	page.Evaluate("window.scrollTo(0, document.body.scrollHeight)")
}
