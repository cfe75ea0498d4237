package storage

var pgMigration = []string{
	`CREATE TABLE preference (
viewer VARCHAR(255) NOT NULL,
kind VARCHAR(16) NOT NULL,
video_id VARCHAR(255) NOT NULL,
PRIMARY KEY (viewer, kind, video_id)
)`,
	`CREATE TABLE playlist (
id uuid PRIMARY KEY,
viewer VARCHAR(255) NOT NULL,
name VARCHAR(255) NOT NULL,
video_ids TEXT NOT NULL DEFAULT '',
UNIQUE (viewer, name)
)`,
	`CREATE INDEX preference_viewer_kind ON preference (viewer, kind)`,
}
