package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"

	"github.com/go-sql-driver/mysql"
)

var validDatabaseName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// MySQLOptions locates a MySQL server and the database holding the records.
type MySQLOptions struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

func (o MySQLOptions) Validate() error {
	var errs []error
	if o.Host == "" {
		errs = append(errs, errors.New("mysql host is required"))
	}
	if o.Port <= 0 || o.Port > 65535 {
		errs = append(errs, fmt.Errorf("mysql port %d out of range", o.Port))
	}
	if o.User == "" {
		errs = append(errs, errors.New("mysql user is required"))
	}
	if !validDatabaseName.MatchString(o.Database) {
		errs = append(errs, fmt.Errorf("mysql database name %q must match %s", o.Database, validDatabaseName))
	}
	return errors.Join(errs...)
}

// DSN returns the driver DSN for the records database.
func (o MySQLOptions) DSN() string {
	return o.config(o.Database).FormatDSN()
}

func (o MySQLOptions) config(dbName string) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = o.User
	cfg.Passwd = o.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
	cfg.DBName = dbName
	// Report matched rather than changed rows so an UPDATE that rewrites
	// identical values is not mistaken for a missing id.
	cfg.ClientFoundRows = true
	return cfg
}

// EnsureDatabase creates the records database on the server if it is missing.
func EnsureDatabase(ctx context.Context, o MySQLOptions) error {
	if !validDatabaseName.MatchString(o.Database) {
		return fmt.Errorf("invalid database name %q", o.Database)
	}

	db, err := sql.Open("mysql", o.config("").FormatDSN())
	if err != nil {
		return fmt.Errorf("open mysql server connection: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS `"+o.Database+"`"); err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) {
			return fmt.Errorf("create database %s: mysql error %d: %s", o.Database, myErr.Number, myErr.Message)
		}
		return fmt.Errorf("create database %s: %w", o.Database, err)
	}
	return nil
}
