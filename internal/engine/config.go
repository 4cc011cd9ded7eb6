package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
	stealth "github.com/anatolykoptev/go-stealth"
	twitter "github.com/anatolykoptev/go-twitter"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	LLMAPIKey            string
	LLMAPIKeyFallbacks   []string
	LLMAPIBase           string
	LLMModel             string
	LLMTemperature       float64
	LLMMaxTokens         int
	MaxComments          int
	MaxContentChars      int
	FetchTimeout         time.Duration
	InnertubeRPS         float64
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	DatabaseURL          string
	HTTPClient           *http.Client
	BrowserClient        *stealth.BrowserClient // nil = browser-fingerprint fallback disabled
	TwitterClient        *twitter.Client        // nil = twitter adapter disabled
	LLMClient            *llm.Client
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (gaps, sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
