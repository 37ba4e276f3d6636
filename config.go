package main

import (
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"jekyll2astro/jekyll"
)

// Config holds the converter settings read from the environment.
type Config struct {
	PostsDir      string
	OutputDir     string
	Collection    string
	Permalink     string
	StripSegments int
	RedirectsFile string
	SiteURL       string
	LogLevel      string
	Workers       int

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

// LoadConfig loads variables from a .env file, if present, and fills in defaults.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found; using environment variables")
	}

	return Config{
		PostsDir:      getenv("JEKYLL_POSTS_DIR", "./_posts"),
		OutputDir:     getenv("POSTS_OUTPUT_DIR", "./src/content/blog"),
		Collection:    getenv("COLLECTION", "blog"),
		Permalink:     getenv("PERMALINK", jekyll.DefaultPermalink),
		StripSegments: cast.ToInt(getenv("STRIP_SEGMENTS", "1")),
		RedirectsFile: getenv("REDIRECTS_FILE", "./redirects.json"),
		SiteURL:       os.Getenv("SITE_URL"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		Workers:       cast.ToInt(os.Getenv("WORKERS")),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getenv("DB_PORT", "3306"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}
}

// UseDatabase reports whether posts come from MySQL instead of a _posts directory.
func (c Config) UseDatabase() bool {
	return c.DBHost != ""
}

// WorkerCount defaults to one worker per CPU.
func (c Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
