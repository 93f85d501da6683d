package protection

import "strings"

// search engine crawlers are let through
var allowedCrawlers = []string{
	"googlebot", "bingbot", "duckduckbot", "yandexbot", "baiduspider", "applebot", "qwantify",
}

var automationMarkers = []string{
	"bot", "crawler", "spider", "curl", "wget", "python-requests", "python-urllib",
	"go-http-client", "scrapy", "httpclient", "okhttp", "headlesschrome", "phantomjs",
	"selenium", "playwright", "puppeteer", "libwww-perl", "httpie",
}

// IsBot reports whether userAgent looks automated. An empty agent counts as a bot.
func IsBot(userAgent string) bool {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return true
	}

	for _, crawler := range allowedCrawlers {
		if strings.Contains(ua, crawler) {
			return false
		}
	}

	for _, marker := range automationMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}

	return false
}
