// Package store is the persistence boundary of the ledger. Engines talk to a
// Gateway, never to gorm directly, so a unit of work can be rebound to a
// transaction by handing the engine the transactional Gateway.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrConflict      = errors.New("concurrent modification, version mismatch")
	ErrDuplicate     = errors.New("duplicate key")
	ErrInvalidFilter = errors.New("invalid filter")
)

// IsNotFound reports whether err is or wraps ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Document is anything stored in a named collection (table)
type Document interface {
	TableName() string
}

// Gateway is the collection-scoped CRUD and query contract
type Gateway interface {
	Create(ctx context.Context, doc Document) error
	Get(ctx context.Context, id uint, dest Document) error
	First(ctx context.Context, dest Document, q Query) error
	Update(ctx context.Context, model Document, id uint, fields map[string]interface{}) error
	// CompareAndUpdate applies fields only if the stored version still equals
	// version, and bumps it. A mismatch yields ErrConflict.
	CompareAndUpdate(ctx context.Context, model Document, id uint, version int64, fields map[string]interface{}) error
	Delete(ctx context.Context, model Document, id uint) error
	Query(ctx context.Context, dest interface{}, q Query) error
	Count(ctx context.Context, model Document, q Query) (int64, error)
	Transaction(ctx context.Context, fn func(tx Gateway) error) error
}

// Op is a filter comparison operator
type Op string

const (
	Eq  Op = "=="
	Ne  Op = "!="
	Gte Op = ">="
	Lt  Op = "<"
)

var sqlOps = map[Op]string{
	Eq:  "=",
	Ne:  "<>",
	Gte: ">=",
	Lt:  "<",
}

var fieldPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Filter is a single (field, operator, value) condition
type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

// Order sorts by a field
type Order struct {
	Field string
	Desc  bool
}

// Query is an immutable filter/order/page description
type Query struct {
	Filters []Filter
	Orders  []Order
	Limit   int
	Offset  int
}

// Q starts an empty query
func Q() Query {
	return Query{}
}

func (q Query) Where(field string, op Op, value interface{}) Query {
	filters := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(filters, q.Filters)
	q.Filters = append(filters, Filter{Field: field, Op: op, Value: value})
	return q
}

func (q Query) OrderBy(field string, desc bool) Query {
	orders := make([]Order, len(q.Orders), len(q.Orders)+1)
	copy(orders, q.Orders)
	q.Orders = append(orders, Order{Field: field, Desc: desc})
	return q
}

func (q Query) Page(limit, offset int) Query {
	q.Limit = limit
	q.Offset = offset
	return q
}

// Validate rejects unknown operators and field names that are not plain
// snake_case identifiers; field names are interpolated into SQL.
func (q Query) Validate() error {
	for _, f := range q.Filters {
		if !fieldPattern.MatchString(f.Field) {
			return fmt.Errorf("%w: field %q", ErrInvalidFilter, f.Field)
		}
		if _, ok := sqlOps[f.Op]; !ok {
			return fmt.Errorf("%w: operator %q", ErrInvalidFilter, f.Op)
		}
	}
	for _, o := range q.Orders {
		if !fieldPattern.MatchString(o.Field) {
			return fmt.Errorf("%w: order field %q", ErrInvalidFilter, o.Field)
		}
	}
	if q.Limit < 0 || q.Offset < 0 {
		return fmt.Errorf("%w: negative limit or offset", ErrInvalidFilter)
	}
	return nil
}
