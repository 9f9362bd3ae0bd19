package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv overlays values taken from the process environment and from a
// dotenv file (-env flag, or ./.env when present). Real environment
// variables win over the file.
//
// Recognised variables:
//
//	ADDRESS, PORT, DATABASE_DSN, MONGO_URI, DATABASE_NAME, JWT_SECRET,
//	TOKEN_TTL, CORS_ORIGIN, IMAGE_STORAGE, UPLOAD_DIR, S3_ROOT_USER,
//	S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT, LOG_LEVEL
func parseEnv(config *Config, args []string) {
	envFile := flagx.EnvFileFlag(args)
	explicit := envFile != ""
	if !explicit {
		envFile = defaultEnvFile
	}

	fileVars, err := godotenv.Read(envFile)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
		fileVars = map[string]string{}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok && v != ""
	}

	setString := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok {
				*dst = v
				return
			}
		}
	}

	if port, ok := lookup("PORT"); ok {
		config.EndpointAddrHTTP = ":" + port
	}
	setString(&config.EndpointAddrHTTP, "ADDRESS")
	setString(&config.DatabaseDSN, "DATABASE_DSN", "MONGO_URI")
	setString(&config.DatabaseName, "DATABASE_NAME")
	setString(&config.SecretKey, "JWT_SECRET")
	setString(&config.AllowedOrigin, "CORS_ORIGIN")
	setString(&config.ImageStorage, "IMAGE_STORAGE")
	setString(&config.UploadDir, "UPLOAD_DIR")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	setString(&config.LogLevel, "LOG_LEVEL")

	if v, ok := lookup("TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = d
	}
}
