package db

import (
	"log"
	"net"
	"strconv"
	"uploader/config"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Instance *gorm.DB

// Init opens the configured database. MySQL is used if MYSQL_DSN or DB_HOST is set,
// SQLite (SQLITE_FILE) otherwise.
func Init() {
	db, err := Open(Dialector())
	if err != nil || db == nil {
		panic(err)
	}
	Instance = db
}

func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
}

func Dialector() gorm.Dialector {
	if dsn := MySQLDSN(); dsn != "" {
		log.Printf("Using MySQL database %s", config.DB_NAME)
		return mysql.Open(dsn)
	}
	log.Printf("Using SQLite database %s", config.SQLITE_FILE)
	return sqlite.Open(config.SQLITE_FILE)
}

// MySQLDSN returns MYSQL_DSN if set, otherwise builds one from the DB_* settings.
// Empty result means MySQL is not configured.
func MySQLDSN() string {
	if config.MYSQL_DSN != "" {
		return config.MYSQL_DSN
	}
	if config.DB_HOST == "" {
		return ""
	}
	cfg := gomysql.NewConfig()
	cfg.User = config.DB_USER
	cfg.Passwd = config.DB_PASSWORD
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(config.DB_HOST, strconv.Itoa(config.DB_PORT))
	cfg.DBName = config.DB_NAME
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}
