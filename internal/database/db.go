// Package database opens the MySQL handle shared by all repositories.
package database

import (
    "context"
    "database/sql"
    "time"

    "github.com/go-sql-driver/mysql"
)

// Pool sizing: generation runs hold row locks for the whole
// discard-and-regenerate transaction, so a bounded pool keeps lock
// queues short instead of piling up concurrent transactions.
const (
    maxOpenConns    = 25
    maxIdleConns    = 25
    connMaxLifetime = 30 * time.Minute
)

// Open connects to MySQL and verifies the connection.
//
// ParseTime turns DATE and DATETIME columns into time.Time, which the
// engine requires: consumption dates and schedule boundaries are
// compared as instants, never as strings.  Everything is read and
// written in UTC; repositories format timestamps in UTC too, so a
// server timezone change can never shift a stay by a day.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
    cfg := mysql.NewConfig()
    cfg.User = user
    cfg.Passwd = pass
    cfg.Net = "tcp"
    cfg.Addr = host + ":" + port
    cfg.DBName = name
    cfg.ParseTime = true
    cfg.Loc = time.UTC
    cfg.Params = map[string]string{"charset": "utf8mb4"}

    db, err := sql.Open("mysql", cfg.FormatDSN())
    if err != nil {
        return nil, err
    }

    db.SetMaxOpenConns(maxOpenConns)
    db.SetMaxIdleConns(maxIdleConns)
    db.SetConnMaxLifetime(connMaxLifetime)

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := db.PingContext(ctx); err != nil {
        db.Close()
        return nil, err
    }
    return db, nil
}
