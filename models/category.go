package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
)

type Category struct {
	tableName struct{} `pg:"category"` //nolint:unused

	CategoryID  int64     `pg:"category_id,pk" json:"id"`
	Name        string    `pg:"name,unique" json:"name"`
	Description string    `pg:"description" json:"description"`
	CreatedAt   time.Time `pg:"created_at,default:now()" json:"createdAt"`
}

func GetAllCategories(ctx context.Context, db *pg.DB) ([]*Category, error) {
	var cats []*Category
	err := db.Model(&cats).
		Context(ctx).
		Order("name ASC").
		Select()
	if err != nil {
		return nil, err
	}
	return cats, nil
}

func GetCategoryByID(ctx context.Context, db *pg.DB, id int64) (*Category, error) {
	cat := &Category{}
	err := db.Model(cat).
		Context(ctx).
		Where("category_id = ?", id).
		Limit(1).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}

func CreateCategory(ctx context.Context, db *pg.DB, cat *Category) (bool, error) {
	res, err := db.Model(cat).
		Context(ctx).
		OnConflict("(name) DO NOTHING").
		Returning("category_id, created_at").
		Insert()
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func DeleteCategory(ctx context.Context, db *pg.DB, id int64) error {
	_, err := db.Model((*Category)(nil)).
		Context(ctx).
		Where("category_id = ?", id).
		Delete()
	return err
}
