package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var sqliteSchema = `
create table if not exists local_storage
(
    key			text	not null	constraint local_storage_pk	primary key,
    value		text	not null,
    updated_at	integer	not null
);`

var sqliteUpsert = `
insert into local_storage (key, value, updated_at)
values (:key, :value, :updated_at)
on conflict (key) do update set value      = excluded.value,
                                updated_at = excluded.updated_at;`

type sqliteItem struct {
	Key       string `db:"key"`
	Value     string `db:"value"`
	UpdatedAt int64  `db:"updated_at"`
}

type SQLiteStorage struct {
	db *sqlx.DB
}

func OpenSQLite(path string) (*SQLiteStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var item sqliteItem
	err := s.db.GetContext(ctx, &item, `select * from local_storage where key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return item.Value, true, nil
}

func (s *SQLiteStorage) SetItem(ctx context.Context, key, value string) error {
	_, err := s.db.NamedExecContext(ctx, sqliteUpsert, sqliteItem{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UnixMilli(),
	})
	return err
}

func (s *SQLiteStorage) RemoveItem(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `delete from local_storage where key = ?`, key)
	return err
}
