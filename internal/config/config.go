package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Load() {
	/*
		.env-local для реальной бд, .env.docker для докера
	*/
	if err := godotenv.Load(os.Getenv("START")); err != nil {
		log.Fatalf("Env file not found")
	}

	if os.Getenv("MYSQL_DSN") == "" {
		log.Fatalf("MYSQL_DSN is not set in environment")
	}
	if os.Getenv("MONGO_URI") == "" {
		log.Fatalf("MONGO_URI is not set in environment")
	}
	if os.Getenv("MONGO_DB_NAME") == "" {
		log.Fatalf("MONGO_DB_NAME is not set in environment")
	}
	// REDIS_ADDR не обязателен: без него логин-лимитер выключен
}

func HTTPAddr() string {
	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		return addr
	}
	return ":8082"
}
