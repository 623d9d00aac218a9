package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	WhatsApp WhatsAppConfig
	Ollama   OllamaConfig
	Storage  StorageConfig
	Drive    DriveConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	APIVersion    string
	VerifyToken   string
	BaseURL       string
	SendTimeout   time.Duration
}

type OllamaConfig struct {
	URL     string
	Model   string
	Timeout time.Duration
}

type StorageConfig struct {
	DownloadDir string
	LedgerFile  string
	MinCVLength int
}

type DriveConfig struct {
	Enabled         bool
	CredentialsFile string
	TokenFile       string
	FolderID        string
}

type WorkerConfig struct {
	Concurrency int
	QueueSize   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "5000"),
			Env:  getEnv("ENV", "development"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   getEnv("WHATSAPP_ACCESS_TOKEN", ""),
			PhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
			APIVersion:    getEnv("GRAPH_API_VERSION", "v21.0"),
			VerifyToken:   getEnv("WEBHOOK_VERIFY_TOKEN", ""),
			BaseURL:       getEnv("GRAPH_API_BASE_URL", "https://graph.facebook.com"),
			SendTimeout:   getEnvAsDuration("WHATSAPP_SEND_TIMEOUT", "15s"),
		},
		Ollama: OllamaConfig{
			URL:     getEnv("OLLAMA_URL", "http://localhost:11434"),
			Model:   getEnv("OLLAMA_MODEL", "llama3.2"),
			Timeout: getEnvAsDuration("OLLAMA_TIMEOUT", "5m"),
		},
		Storage: StorageConfig{
			DownloadDir: getEnv("DOWNLOAD_DIR", "./downloaded_cvs"),
			LedgerFile:  getEnv("LEDGER_FILE", "Candidate_Database.xlsx"),
			MinCVLength: getEnvAsInt("MIN_CV_LENGTH", 50),
		},
		Drive: DriveConfig{
			Enabled:         getEnvAsBool("DRIVE_SYNC_ENABLED", true),
			CredentialsFile: getEnv("DRIVE_CREDENTIALS_FILE", "credentials.json"),
			TokenFile:       getEnv("DRIVE_TOKEN_FILE", "token.json"),
			FolderID:        getEnv("DRIVE_FOLDER_ID", ""),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 3),
			QueueSize:   getEnvAsInt("WORKER_QUEUE_SIZE", 100),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
