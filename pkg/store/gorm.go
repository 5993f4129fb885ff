package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormGateway implements Gateway on top of gorm
type GormGateway struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewGormGateway creates a gateway. timeout bounds every single call; zero
// disables the bound.
func NewGormGateway(db *gorm.DB, timeout time.Duration) *GormGateway {
	return &GormGateway{db: db, timeout: timeout}
}

// DB exposes the underlying handle for migrations and health checks
func (g *GormGateway) DB() *gorm.DB {
	return g.db
}

func (g *GormGateway) session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if g.timeout <= 0 {
		return g.db.WithContext(ctx), func() {}
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	return g.db.WithContext(ctx), cancel
}

func (g *GormGateway) Create(ctx context.Context, doc Document) error {
	db, cancel := g.session(ctx)
	defer cancel()

	return translate(db.Create(doc).Error)
}

func (g *GormGateway) Get(ctx context.Context, id uint, dest Document) error {
	db, cancel := g.session(ctx)
	defer cancel()

	return translate(db.First(dest, id).Error)
}

func (g *GormGateway) First(ctx context.Context, dest Document, q Query) error {
	if err := q.Validate(); err != nil {
		return err
	}
	db, cancel := g.session(ctx)
	defer cancel()

	return translate(apply(db, q).First(dest).Error)
}

func (g *GormGateway) Update(ctx context.Context, model Document, id uint, fields map[string]interface{}) error {
	db, cancel := g.session(ctx)
	defer cancel()

	res := db.Model(model).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormGateway) CompareAndUpdate(ctx context.Context, model Document, id uint, version int64, fields map[string]interface{}) error {
	db, cancel := g.session(ctx)
	defer cancel()

	values := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		values[k] = v
	}
	values["version"] = version + 1

	res := db.Model(model).Where("id = ? AND version = ?", id, version).Updates(values)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := db.Table(model.TableName()).Where("id = ?", id).Count(&n).Error; err != nil {
		return translate(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %s #%d at version %d", ErrConflict, model.TableName(), id, version)
}

func (g *GormGateway) Delete(ctx context.Context, model Document, id uint) error {
	db, cancel := g.session(ctx)
	defer cancel()

	res := db.Delete(model, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormGateway) Query(ctx context.Context, dest interface{}, q Query) error {
	if err := q.Validate(); err != nil {
		return err
	}
	db, cancel := g.session(ctx)
	defer cancel()

	return translate(apply(db, q).Find(dest).Error)
}

func (g *GormGateway) Count(ctx context.Context, model Document, q Query) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	db, cancel := g.session(ctx)
	defer cancel()

	var n int64
	q.Limit, q.Offset, q.Orders = 0, 0, nil
	err := apply(db.Model(model), q).Count(&n).Error
	return n, translate(err)
}

// Transaction runs fn inside a database transaction. fn must only use the
// Gateway it is given; returning an error rolls everything back.
func (g *GormGateway) Transaction(ctx context.Context, fn func(tx Gateway) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormGateway{db: tx, timeout: g.timeout})
	})
}

func apply(db *gorm.DB, q Query) *gorm.DB {
	for _, f := range q.Filters {
		db = db.Where(fmt.Sprintf("%s %s ?", f.Field, sqlOps[f.Op]), f.Value)
	}
	for _, o := range q.Orders {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Field}, Desc: o.Desc})
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}
	return db
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

// Drivers without an error translator still report unique violations in
// their message.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
