package common

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var StartTime = time.Now().Unix()
var Version = "v0.1.0"
var SystemName = "LearnNest"

// Command line flags
var (
	Port          = flag.Int("port", 3000, "the listening port")
	PrintVersion  = flag.Bool("version", false, "print version and exit")
	PrintHelpFlag = flag.Bool("help", false, "print help and exit")
	LogDir        = flag.String("log-dir", "", "the log directory")
)

// SessionSecret signs the session cookie. Overridable via config file or env.
var SessionSecret = uuid.New().String()

// SQLitePath is the path of the sqlite database file.
var SQLitePath = "data/learnnest.db"

// JWT secrets, loaded from config file / env. Empty values are rejected at startup.
var (
	JWTSecret        = ""
	JWTRefreshSecret = ""
)

// Token lifetimes.
var (
	AccessTokenExpiry  = 24 * time.Hour
	RefreshTokenExpiry = 7 * 24 * time.Hour
)

// MinIO blob store settings. The blob store is optional: when MinIOEndpoint is
// empty the server still runs, upload URLs fail and file URLs resolve to null.
var (
	MinIOEndpoint  = ""
	MinIOAccessKey = ""
	MinIOSecretKey = ""
	MinIOBucket    = "learnnest-files"
	MinIOUseSSL    = false
)

// Rate limit knobs (requests per window).
var (
	GlobalApiRateLimitNum      = 180
	GlobalApiRateLimitDuration = 3 * time.Minute
	CriticalRateLimitNum       = 20
	CriticalRateLimitDuration  = 20 * time.Minute
)

func init() {
	if os.Getenv("SESSION_SECRET") != "" {
		SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if os.Getenv("SQLITE_PATH") != "" {
		SQLitePath = os.Getenv("SQLITE_PATH")
	}
	if os.Getenv("JWT_SECRET") != "" {
		JWTSecret = os.Getenv("JWT_SECRET")
	}
	if os.Getenv("JWT_REFRESH_SECRET") != "" {
		JWTRefreshSecret = os.Getenv("JWT_REFRESH_SECRET")
	}
	if os.Getenv("MINIO_ENDPOINT") != "" {
		MinIOEndpoint = os.Getenv("MINIO_ENDPOINT")
		MinIOAccessKey = os.Getenv("MINIO_ACCESS_KEY")
		MinIOSecretKey = os.Getenv("MINIO_SECRET_KEY")
	}
	if os.Getenv("MINIO_BUCKET") != "" {
		MinIOBucket = os.Getenv("MINIO_BUCKET")
	}
	if os.Getenv("MINIO_USE_SSL") != "" {
		MinIOUseSSL, _ = strconv.ParseBool(os.Getenv("MINIO_USE_SSL"))
	}
}

func PrintHelp() {
	println(SystemName + " " + Version)
	println("Usage: learnnest [--port <port>] [--log-dir <log dir>] [--version] [--help]")
}
