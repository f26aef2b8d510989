package config

import (
	"net"
	"os"
	"strconv"
	"strings"
)

const (
	VariantGallery = "gallery"
	VariantFiles   = "files"

	StorageTypeFile = "file"
	StorageTypeS3   = "s3"
)

var (
	VARIANT       = VariantFiles // "gallery" (bookimages) or "files" (file manager)
	BIND_ADDRESS  = "0.0.0.0:2000"
	PORT          = "" // overrides the port part of BIND_ADDRESS
	BASE_URL      = "" // client-facing base URL, empty means same origin
	TLS_DOMAINS   = "" // e.g. "example.com,example2.com"
	DEBUG_MODE    = true
	CORS_ORIGINS  = "*"
	MYSQL_DSN     = "" // MySQL will be used if this is set (or DB_HOST)
	DB_HOST       = ""
	DB_PORT       = 3306
	DB_USER       = "root"
	DB_PASSWORD   = ""
	DB_NAME       = "uploader"
	SQLITE_FILE   = "uploader.db" // SQLite will be used if no MySQL settings are present
	UPLOAD_DIR    = "uploads"
	MAX_UPLOAD_MB = 10
	STORAGE_TYPE  = StorageTypeFile
	S3_BUCKET     = ""
	S3_PREFIX     = "uploads"
	S3_REGION     = "us-east-1"
	S3_ENDPOINT   = "" // for S3 compatible services (minio, etc)
	S3_KEY        = ""
	S3_SECRET     = ""
	S3_SSE        = "" // server side encryption, e.g. "AES256"
)

func init() {
	Load()
}

// Load (re)reads all settings from the environment. Unset variables keep their current value.
func Load() {
	readEnvString("VARIANT", &VARIANT)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("PORT", &PORT)
	readEnvString("BASE_URL", &BASE_URL)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("CORS_ORIGINS", &CORS_ORIGINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("DB_HOST", &DB_HOST)
	readEnvInt("DB_PORT", &DB_PORT)
	readEnvString("DB_USER", &DB_USER)
	readEnvString("DB_PASSWORD", &DB_PASSWORD)
	readEnvString("DB_NAME", &DB_NAME)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("UPLOAD_DIR", &UPLOAD_DIR)
	readEnvInt("MAX_UPLOAD_MB", &MAX_UPLOAD_MB)
	readEnvString("STORAGE_TYPE", &STORAGE_TYPE)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvString("S3_SSE", &S3_SSE)

	VARIANT = strings.ToLower(strings.TrimSpace(VARIANT))
	STORAGE_TYPE = strings.ToLower(strings.TrimSpace(STORAGE_TYPE))
}

// ListenAddress returns BIND_ADDRESS with the port replaced by PORT, if set
func ListenAddress() string {
	if PORT == "" {
		return BIND_ADDRESS
	}
	host, _, err := net.SplitHostPort(BIND_ADDRESS)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, PORT)
}

// MaxUploadSize in bytes
func MaxUploadSize() int64 {
	if MAX_UPLOAD_MB <= 0 {
		return 10 << 20
	}
	return int64(MAX_UPLOAD_MB) << 20
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
