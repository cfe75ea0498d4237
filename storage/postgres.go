package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/aletube/catalogd/model"
)

type PostgresInfo struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type Postgres struct {
	db *sql.DB
}

func NewPostgres(info PostgresInfo) (*Postgres, error) {
	db, err := sql.Open("postgres", fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		info.Host, info.Port, info.User, info.Password, info.Database))
	if err != nil {
		return &Postgres{}, err
	}
	p := &Postgres{db: db}
	if err := p.migrate(pgMigration); err != nil {
		return &Postgres{}, err
	}

	return p, nil
}

func (p *Postgres) migrate(wanted []string) error {
	query := `CREATE TABLE IF NOT EXISTS migration
("id" SERIAL PRIMARY KEY, "query" TEXT)`
	_, err := p.db.Exec(query)
	if err != nil {
		return err
	}

	// find existing
	rows, err := p.db.Query(`SELECT query FROM migration ORDER BY id`)
	if err != nil {
		return err
	}

	existing := []string{}
	for rows.Next() {
		var query string
		if err := rows.Scan(&query); err != nil {
			return err
		}
		existing = append(existing, query)
	}
	rows.Close()

	// compare
	missing, err := compareMigrations(wanted, existing)
	if err != nil {
		return err
	}

	// execute missing
	for _, query := range missing {
		if _, err := p.db.Exec(query); err != nil {
			return err
		}

		// register
		if _, err := p.db.Exec(`
INSERT INTO migration
(query) VALUES ($1)
`, query); err != nil {
			return err
		}
	}

	return nil
}

func compareMigrations(wanted, existing []string) ([]string, error) {
	needed := []string{}
	if len(wanted) < len(existing) {
		return []string{}, fmt.Errorf("not enough migrations")
	}

	for i, want := range wanted {
		switch {
		case i >= len(existing):
			needed = append(needed, want)
		case want == existing[i]:
			// do nothing
		case want != existing[i]:
			return []string{}, fmt.Errorf("incompatible migration: %v", want)
		}
	}

	return needed, nil
}

type PostgresPreferenceRepository struct {
	db *sql.DB
}

func NewPostgresPreferenceRepository(postgres *Postgres) *PostgresPreferenceRepository {
	return &PostgresPreferenceRepository{db: postgres.db}
}

func (p *PostgresPreferenceRepository) Add(viewer string, kind model.PreferenceKind, id model.VideoID) error {
	_, err := p.db.Exec(`
INSERT INTO preference (viewer, kind, video_id)
VALUES ($1, $2, $3)
ON CONFLICT DO NOTHING`, viewer, string(kind), string(id))

	return err
}

func (p *PostgresPreferenceRepository) Remove(viewer string, kind model.PreferenceKind, id model.VideoID) error {
	_, err := p.db.Exec(`
DELETE FROM preference
WHERE viewer = $1 AND kind = $2 AND video_id = $3`, viewer, string(kind), string(id))

	return err
}

func (p *PostgresPreferenceRepository) List(viewer string, kind model.PreferenceKind) ([]model.VideoID, error) {
	rows, err := p.db.Query(`
SELECT video_id FROM preference
WHERE viewer = $1 AND kind = $2
ORDER BY video_id`, viewer, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []model.VideoID{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, model.VideoID(id))
	}

	return ids, rows.Err()
}

func (p *PostgresPreferenceRepository) SavePlaylist(playlist model.Playlist) error {
	if playlist.ID == uuid.Nil {
		playlist.ID = uuid.New()
	}
	_, err := p.db.Exec(`
INSERT INTO playlist (id, viewer, name, video_ids)
VALUES ($1, $2, $3, $4)
ON CONFLICT (viewer, name)
DO UPDATE SET video_ids = EXCLUDED.video_ids`,
		playlist.ID, playlist.Viewer, playlist.Name, joinIDs(playlist.Videos))

	return err
}

func (p *PostgresPreferenceRepository) Playlists(viewer string) ([]model.Playlist, error) {
	rows, err := p.db.Query(`
SELECT id, name, video_ids FROM playlist
WHERE viewer = $1
ORDER BY name`, viewer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	playlists := []model.Playlist{}
	for rows.Next() {
		var (
			id     uuid.UUID
			name   string
			rawIDs string
		)
		if err := rows.Scan(&id, &name, &rawIDs); err != nil {
			return nil, err
		}
		playlists = append(playlists, model.Playlist{
			ID:     id,
			Viewer: viewer,
			Name:   name,
			Videos: splitIDs(rawIDs),
		})
	}

	return playlists, rows.Err()
}

func (p *PostgresPreferenceRepository) DeletePlaylist(viewer, name string) error {
	result, err := p.db.Exec(`
DELETE FROM playlist
WHERE viewer = $1 AND name = $2`, viewer, name)
	if err != nil {
		return err
	}
	count, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}

	return nil
}

func joinIDs(ids []model.VideoID) string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = string(id)
	}
	return strings.Join(strs, ",")
}

func splitIDs(raw string) []model.VideoID {
	if raw == "" {
		return []model.VideoID{}
	}
	parts := strings.Split(raw, ",")
	ids := make([]model.VideoID, len(parts))
	for i, part := range parts {
		ids[i] = model.VideoID(part)
	}
	return ids
}
