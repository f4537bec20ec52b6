package session

import (
	"context"
	"database/sql"
	"errors"

	"github.com/handora-games/session-api/internal/modules/core"
	"github.com/handora-games/session-api/internal/modules/session/domain"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

const sessionColumns = `
	s.*,
	(SELECT count(*) FROM session_event e WHERE e.session_id = s.id) AS total_events`

var _ Store = (*PostgresStore)(nil)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db}
}

func (s *PostgresStore) Insert(ctx context.Context, session domain.Session) error {
	const stmt = `
		INSERT INTO
			session (id, game_key, started_at)
		VALUES
			(:id, :game_key, :started_at);`

	_, err := tql.Exec(ctx, s.db, stmt, session)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id string) (domain.Session, error) {
	// Ids are uuids - a malformed id was never issued.
	if _, err := uuid.Parse(id); err != nil {
		return domain.Session{}, ErrSessionNotFound
	}

	const query = `
		SELECT` + sessionColumns + `
		FROM
			session s
		WHERE
			s.id = $1;`

	session, err := tql.QueryFirst[domain.Session](ctx, s.db, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, ErrSessionNotFound
	}

	return session, err
}

func (s *PostgresStore) Update(ctx context.Context, session domain.Session) error {
	const stmt = `
		UPDATE
			session
		SET
			baseline_by_finger = :baseline_by_finger,
			score              = :score,
			accuracy           = :accuracy,
			rom_percent        = :rom_percent,
			reaction_time_ms   = :reaction_time_ms,
			smoothness         = :smoothness,
			metrics            = :metrics,
			finished_at        = :finished_at
		WHERE
			id = :id;`

	result, err := tql.Exec(ctx, s.db, stmt, session)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]domain.Session, error) {
	const query = `
		SELECT` + sessionColumns + `
		FROM
			session s
		ORDER BY
			s.created_at DESC;`

	return tql.Query[domain.Session](ctx, s.db, query)
}

func (s *PostgresStore) ListByGameKey(
	ctx context.Context,
	key domain.GameKey,
	excludeID string,
) ([]domain.Session, error) {
	const query = `
		SELECT` + sessionColumns + `
		FROM
			session s
		WHERE
			s.game_key = $1 AND s.id <> $2
		ORDER BY
			s.started_at DESC;`

	return tql.Query[domain.Session](ctx, s.db, query, string(key), excludeID)
}

func (s *PostgresStore) AppendEvent(ctx context.Context, event domain.Event) (int, error) {
	var total int

	txFn := func(ctx context.Context, tx *sql.Tx) error {
		const stmt = `
			INSERT INTO
				session_event (id, session_id, timestamp_ms, hit, flex_angle, accuracy, rom_percent)
			VALUES
				(:id, :session_id, :timestamp_ms, :hit, :flex_angle, :accuracy, :rom_percent);`

		if _, err := tql.Exec(ctx, tx, stmt, event); err != nil {
			return err
		}

		const query = `
			SELECT
				count(*)
			FROM
				session_event
			WHERE
				session_id = $1;`

		count, err := tql.QueryFirst[int](ctx, tx, query, event.SessionID)
		if err != nil {
			return err
		}

		total = count
		return nil
	}

	if err := core.Tx(ctx, s.db, txFn); err != nil {
		return 0, err
	}

	return total, nil
}
