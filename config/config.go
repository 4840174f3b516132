// config/config.go
package config

import (
	"log"
	"os"
	"time"
)

var (
	Port          string
	MongoURI      string
	DBName        string
	JWTKey        []byte
	JWTExpiration time.Duration
	ActaTemplate  string
)

func LoadConfig() {
	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017"
	}

	DBName = os.Getenv("DB_NAME")
	if DBName == "" {
		DBName = "GenchiReg"
	}

	JWTKey = []byte(os.Getenv("JWT_SECRET"))
	if len(JWTKey) == 0 {
		JWTKey = []byte("secret")
	}

	expireStr := os.Getenv("JWT_EXPIRE")
	dur := 24 * time.Hour
	if expireStr != "" {
		if expireStr == "7d" {
			dur = 7 * 24 * time.Hour
		} else {
			var err error
			dur, err = time.ParseDuration(expireStr)
			if err != nil {
				log.Printf("Invalid JWT_EXPIRE: %s, using 24h", expireStr)
				dur = 24 * time.Hour
			}
		}
	}
	JWTExpiration = dur

	ActaTemplate = os.Getenv("ACTA_TEMPLATE")
	if ActaTemplate == "" {
		ActaTemplate = "templates/plantilla-acta-entrega.docx"
	}
}
