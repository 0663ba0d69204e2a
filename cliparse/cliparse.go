package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Submission backends
const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMongo    = "mongo"
)

// Defaults
const (
	DefaultPort            = 3318
	DefaultTable           = "surveys"
	DefaultSQLitePath      = "file:quickly-rate.db"
	DefaultMongoDatabase   = "kiosk"
	DefaultTransitionDelay = 400 * time.Millisecond
	DefaultThanksDelay     = 5 * time.Second
	DefaultSubmitTimeout   = 10 * time.Second
	DefaultLocale          = "es"
)

type Config struct {
	Port       int
	LocationID string

	Backend       string
	SupabaseURL   string
	SupabaseKey   string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
	Table         string

	SkipDetail      bool
	TransitionDelay time.Duration
	ThanksDelay     time.Duration
	SubmitTimeout   time.Duration
	Locale          string

	LogLevel string
	LogFile  string
}

// LoadEnvFile loads KEY=value pairs from path into the environment.
// Variables already set are not overridden. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags, falling back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickly-rate", flag.ContinueOnError)

	// Kiosk identity and network
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.LocationID, "l", "", "Location ID of this kiosk")

	// Submission backend
	fs.StringVar(&cfg.Backend, "b", "", "Submission backend (supabase, postgres, sqlite or mongo)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (postgres or sqlite)")
	fs.StringVar(&cfg.Table, "table", "", "Response table or collection name")

	// Flow
	fs.BoolVar(&cfg.SkipDetail, "skip-detail", false, "Submit right after the score, without the detail step")
	fs.DurationVar(&cfg.TransitionDelay, "transition-delay", 0, "Pause between score selection and the next step")
	fs.DurationVar(&cfg.ThanksDelay, "thanks-delay", 0, "How long the thank-you step is shown")
	fs.StringVar(&cfg.Locale, "locale", "", "UI language (es or en)")

	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.LocationID == "" {
		cfg.LocationID = os.Getenv("LOCATION_ID")
	}
	if cfg.LocationID == "" {
		return Config{}, errors.New("location ID required (use -l or LOCATION_ID env)")
	}

	if err := parseBackend(&cfg); err != nil {
		return Config{}, err
	}

	if !cfg.SkipDetail {
		if raw := os.Getenv("SKIP_DETAIL"); raw != "" {
			skip, err := strconv.ParseBool(raw)
			if err != nil {
				return Config{}, errors.New("invalid SKIP_DETAIL env variable")
			}
			cfg.SkipDetail = skip
		}
	}

	var err error
	if cfg.TransitionDelay, err = durationFromEnv(cfg.TransitionDelay, "TRANSITION_DELAY", DefaultTransitionDelay); err != nil {
		return Config{}, err
	}
	if cfg.ThanksDelay, err = durationFromEnv(cfg.ThanksDelay, "THANKS_DELAY", DefaultThanksDelay); err != nil {
		return Config{}, err
	}
	if cfg.SubmitTimeout, err = durationFromEnv(0, "SUBMIT_TIMEOUT", DefaultSubmitTimeout); err != nil {
		return Config{}, err
	}
	if cfg.TransitionDelay < 0 || cfg.ThanksDelay <= 0 || cfg.SubmitTimeout <= 0 {
		return Config{}, errors.New("delays must be positive (transition delay may be 0)")
	}

	if cfg.Locale == "" {
		cfg.Locale = envOr("LOCALE", DefaultLocale)
	}
	if cfg.Locale != "es" && cfg.Locale != "en" {
		return Config{}, fmt.Errorf("unsupported locale %q (use es or en)", cfg.Locale)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = envOr("LOG_LEVEL", "info")
	}
	cfg.LogFile = os.Getenv("LOG_FILE")

	return cfg, nil
}

func parseBackend(cfg *Config) error {
	if cfg.Backend == "" {
		cfg.Backend = envOr("SUBMISSION_BACKEND", BackendSupabase)
	}
	if cfg.Table == "" {
		cfg.Table = envOr("SURVEY_TABLE", DefaultTable)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	switch cfg.Backend {
	case BackendSupabase:
		cfg.SupabaseURL = os.Getenv("SUPABASE_URL")
		cfg.SupabaseKey = os.Getenv("SUPABASE_ANON_KEY")
		if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
			return errors.New("SUPABASE_URL and SUPABASE_ANON_KEY required for the supabase backend")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case BackendSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = DefaultSQLitePath
		}
	case BackendMongo:
		cfg.MongoURI = os.Getenv("MONGO_URI")
		if cfg.MongoURI == "" {
			return errors.New("MONGO_URI required for the mongo backend")
		}
		cfg.MongoDatabase = envOr("MONGO_DATABASE", DefaultMongoDatabase)
	default:
		return fmt.Errorf("unknown submission backend %q", cfg.Backend)
	}
	return nil
}

func durationFromEnv(current time.Duration, key string, def time.Duration) (time.Duration, error) {
	if current != 0 {
		return current, nil
	}
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable '%s': %w", key, raw, err)
	}
	return d, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
