package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

const (
	DEFAULT_TABLE_NAME = "RecipeData"
	DEFAULT_INDEX_1    = "GS1"
	DEFAULT_INDEX_2    = "GS2"
)

type Config struct {
	TableName   string
	FirstIndex  string
	SecondIndex string
	TopicArn    string
	JwtSecret   []byte
	TokenSecret []byte
	Env         string
}

func getOrDefault(name string, fallback string) string {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		return value
	}
	return fallback
}

// Load reads the environment, after applying a .env file when one exists.
// Variables already set in the environment win over the file.
func Load(files ...string) Config {
	_ = godotenv.Load(files...)
	jwtSecret := os.Getenv("JWT_SECRET")
	return Config{
		TableName:   getOrDefault("TABLE_NAME", DEFAULT_TABLE_NAME),
		FirstIndex:  getOrDefault("INDEX_NAME_1", DEFAULT_INDEX_1),
		SecondIndex: getOrDefault("INDEX_NAME_2", DEFAULT_INDEX_2),
		TopicArn:    os.Getenv("TOPIC_ARN"),
		JwtSecret:   []byte(jwtSecret),
		TokenSecret: []byte(getOrDefault("TOKEN_SECRET", jwtSecret)),
		Env:         getOrDefault("ENV", "development"),
	}
}

var ErrMissingTokenSecret = errors.New("TOKEN_SECRET or JWT_SECRET must be set to encrypt pagination tokens")

// Validate fails when pagination tokens would be encrypted with an empty key.
func (c Config) Validate() error {
	if len(c.TokenSecret) == 0 {
		return ErrMissingTokenSecret
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}
