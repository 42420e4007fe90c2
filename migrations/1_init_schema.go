package migrations

import (
	"github.com/go-pg/migrations/v8"
)

func InitSchema(col *migrations.Collection) {
	col.MustRegisterTx(func(db migrations.DB) error {
		stmts := []string{
			`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,
			`CREATE TABLE "user" (
				user_id       uuid PRIMARY KEY DEFAULT uuid_generate_v4(),
				email         text UNIQUE NOT NULL,
				password_hash text NOT NULL,
				created_at    timestamptz NOT NULL DEFAULT now(),
				updated_at    timestamptz NOT NULL DEFAULT now()
			)`,
			`CREATE TABLE content (
				content_id               bigserial PRIMARY KEY,
				creator_id               uuid NOT NULL REFERENCES "user" (user_id),
				title                    text NOT NULL,
				description              text NOT NULL DEFAULT '',
				category                 varchar(100) NOT NULL,
				tags                     text[] NOT NULL DEFAULT '{}',
				thumbnail_url            varchar(500) NOT NULL DEFAULT '',
				video_url                varchar(500) NOT NULL DEFAULT '',
				duration_seconds         integer,
				ai_generated_description text,
				ai_predicted_category    varchar(100),
				ai_relevance_score       numeric(3,2),
				ai_content_rating        varchar(20),
				ai_sentiment             varchar(20),
				is_published             boolean NOT NULL DEFAULT false,
				view_count               bigint NOT NULL DEFAULT 0,
				created_at               timestamptz NOT NULL DEFAULT now(),
				updated_at               timestamptz NOT NULL DEFAULT now()
			)`,
			`CREATE INDEX content_creator_id_idx ON content (creator_id)`,
			`CREATE INDEX content_category_idx ON content (category)`,
			`CREATE INDEX content_is_published_idx ON content (is_published)`,
			`CREATE TABLE category (
				category_id bigserial PRIMARY KEY,
				name        varchar(100) UNIQUE NOT NULL,
				description text NOT NULL DEFAULT '',
				created_at  timestamptz NOT NULL DEFAULT now()
			)`,
			`CREATE TABLE viewing_history (
				viewing_history_id    bigserial PRIMARY KEY,
				user_id               uuid NOT NULL REFERENCES "user" (user_id),
				content_id            bigint NOT NULL REFERENCES content (content_id),
				watch_time_seconds    integer NOT NULL DEFAULT 0,
				last_position_seconds integer NOT NULL DEFAULT 0,
				completed             boolean NOT NULL DEFAULT false,
				created_at            timestamptz NOT NULL DEFAULT now(),
				updated_at            timestamptz NOT NULL DEFAULT now(),
				UNIQUE (user_id, content_id)
			)`,
			`CREATE INDEX viewing_history_user_id_idx ON viewing_history (user_id)`,
			`CREATE INDEX viewing_history_content_id_idx ON viewing_history (content_id)`,
		}
		for _, stmt := range stmts {
			if _, err := db.Exec(stmt); err != nil {
				return err
			}
		}
		return nil
	}, func(db migrations.DB) error {
		stmts := []string{
			`DROP TABLE IF EXISTS viewing_history`,
			`DROP TABLE IF EXISTS category`,
			`DROP TABLE IF EXISTS content`,
			`DROP TABLE IF EXISTS "user"`,
		}
		for _, stmt := range stmts {
			if _, err := db.Exec(stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
