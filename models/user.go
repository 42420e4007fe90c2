package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

type User struct {
	tableName struct{} `pg:"\"user\""` //nolint:unused

	UserID       uuid.UUID `pg:"user_id,pk,type:uuid,default:uuid_generate_v4()" json:"id"`
	Email        string    `pg:"email,unique" json:"email"`
	PasswordHash string    `pg:"password_hash" json:"-"`
	CreatedAt    time.Time `pg:"created_at,default:now()" json:"createdAt"`
	UpdatedAt    time.Time `pg:"updated_at,default:now()" json:"updatedAt"`
}

func GetUserByEmail(ctx context.Context, db *pg.DB, email string) (*User, error) {
	u := &User{}
	err := db.Model(u).
		Context(ctx).
		Where("email = ?", email).
		Limit(1).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db *pg.DB, id uuid.UUID) (*User, error) {
	u := &User{}
	err := db.Model(u).
		Context(ctx).
		Where("user_id = ?", id).
		Limit(1).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func CreateUser(ctx context.Context, db *pg.DB, u *User) error {
	_, err := db.Model(u).
		Context(ctx).
		Returning("user_id, created_at, updated_at").
		Insert()
	return err
}
