package config

import "os"

type Config struct {
	ServerPort  string
	DBPath      string
	MaxFileSize int64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "visa462.db"
	}

	return &Config{
		ServerPort:  serverPort,
		DBPath:      dbPath,
		MaxFileSize: 10 * 1024 * 1024, // 10 MB
	}
}
