package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"beerbasement/internal/domain/beer"
)

// Storage хранилище коллекции в файле SQLite, используется без DATABASE_URI
type Storage struct {
	db  *sql.DB
	log *slog.Logger
}

func New(path string, log *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}
	// одно соединение, запись в SQLite последовательная
	db.SetMaxOpenConns(1)

	storage := &Storage{
		db:  db,
		log: log.With("component", "sqlite_repository"),
	}

	// Создаем таблицы
	if err := storage.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return storage, nil
}

func (s *Storage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS beers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner TEXT NOT NULL,
			brewery TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			style TEXT NOT NULL DEFAULT '',
			abv REAL NOT NULL DEFAULT 0,
			volume REAL NOT NULL DEFAULT 0,
			picture_url TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_beers_owner ON beers(owner);
	`)

	return err
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

const selectBeers = `
	SELECT id, owner, brewery, name, style, abv, volume, picture_url, quantity
	FROM beers`

func (s *Storage) List(ctx context.Context) ([]beer.Record, error) {
	return s.list(ctx, selectBeers+` ORDER BY id`)
}

func (s *Storage) ListByOwner(ctx context.Context, owner string) ([]beer.Record, error) {
	return s.list(ctx, selectBeers+` WHERE owner = ? ORDER BY id`, owner)
}

func (s *Storage) Get(ctx context.Context, id int) (*beer.Record, error) {
	var rec beer.Record
	err := s.db.QueryRowContext(ctx, selectBeers+` WHERE id = ?`, id).Scan(
		&rec.ID, &rec.Owner, &rec.Brewery, &rec.Name, &rec.Style,
		&rec.ABV, &rec.Volume, &rec.PictureURL, &rec.Quantity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, beer.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}
	return &rec, nil
}

func (s *Storage) Create(ctx context.Context, rec *beer.Record) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO beers (owner, brewery, name, style, abv, volume, picture_url, quantity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.Owner, rec.Brewery, rec.Name, rec.Style, rec.ABV, rec.Volume, rec.PictureURL, rec.Quantity)
	if err != nil {
		s.log.Error("failed to create beer", "owner", rec.Owner, "error", err)
		return 0, fmt.Errorf("ошибка сохранения записи: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка получения id записи: %w", err)
	}
	return int(id), nil
}

func (s *Storage) Update(ctx context.Context, rec *beer.Record) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE beers
		SET owner = ?, brewery = ?, name = ?, style = ?, abv = ?, volume = ?,
		    picture_url = ?, quantity = ?
		WHERE id = ?
	`, rec.Owner, rec.Brewery, rec.Name, rec.Style, rec.ABV, rec.Volume,
		rec.PictureURL, rec.Quantity, rec.ID)
	if err != nil {
		s.log.Error("failed to update beer", "id", rec.ID, "error", err)
		return fmt.Errorf("ошибка обновления записи: %w", err)
	}
	return affected(res)
}

func (s *Storage) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM beers WHERE id = ?`, id)
	if err != nil {
		s.log.Error("failed to delete beer", "id", id, "error", err)
		return fmt.Errorf("ошибка удаления записи: %w", err)
	}
	return affected(res)
}

func (s *Storage) list(ctx context.Context, query string, args ...interface{}) ([]beer.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка записей: %w", err)
	}
	defer rows.Close()

	beers := make([]beer.Record, 0)
	for rows.Next() {
		var rec beer.Record
		if err := rows.Scan(
			&rec.ID, &rec.Owner, &rec.Brewery, &rec.Name, &rec.Style,
			&rec.ABV, &rec.Volume, &rec.PictureURL, &rec.Quantity,
		); err != nil {
			return nil, fmt.Errorf("ошибка чтения записи: %w", err)
		}
		beers = append(beers, rec)
	}
	return beers, rows.Err()
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка проверки результата: %w", err)
	}
	if n == 0 {
		return beer.ErrNotFound
	}
	return nil
}
