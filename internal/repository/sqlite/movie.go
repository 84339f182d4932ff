package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/moviweb/internal/domain"
)

const movieColumns = `id, user_id, title, director, year, rating, poster_url, created_at, updated_at`

// MovieRepository implements domain.MovieRepository using SQLite.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new SQLite-backed MovieRepository.
func NewMovieRepository(db *DB) *MovieRepository {
	return &MovieRepository{db: db.SqlDB}
}

func (r *MovieRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Movie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user movies: %w", err)
	}
	defer rows.Close()

	movies := []domain.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *m)
	}
	return movies, rows.Err()
}

func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	return m, nil
}

func (r *MovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO movies (user_id, title, director, year, rating, poster_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		movie.UserID, movie.Title, movie.Director, movie.Year, movie.Rating, movie.PosterURL, now, now,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return domain.ErrUnknownUser
		}
		return fmt.Errorf("insert movie: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit movie: %w", err)
	}

	movie.ID = id
	movie.CreatedAt = now
	movie.UpdatedAt = now
	return nil
}

func (r *MovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`UPDATE movies SET user_id = ?, title = ?, director = ?, year = ?, rating = ?, poster_url = ?, updated_at = ?
		 WHERE id = ?`,
		movie.UserID, movie.Title, movie.Director, movie.Year, movie.Rating, movie.PosterURL, now, movie.ID,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return domain.ErrUnknownUser
		}
		return fmt.Errorf("update movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit movie update: %w", err)
	}

	movie.UpdatedAt = now
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*domain.Movie, error) {
	var m domain.Movie
	err := row.Scan(&m.ID, &m.UserID, &m.Title, &m.Director, &m.Year, &m.Rating, &m.PosterURL, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan movie: %w", err)
	}
	return &m, nil
}
