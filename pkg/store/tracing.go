package store

import (
	"context"
	"errors"
	"reflect"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("store-gateway")

type tracingGateway struct {
	next Gateway
}

// WithTracing wraps every gateway call in a span named store.<Method>
func WithTracing(next Gateway) Gateway {
	if _, ok := next.(*tracingGateway); ok {
		return next
	}
	return &tracingGateway{next: next}
}

func (t *tracingGateway) Create(ctx context.Context, doc Document) error {
	ctx, span := start(ctx, "store.Create", doc.TableName())
	defer span.End()

	return finish(span, t.next.Create(ctx, doc))
}

func (t *tracingGateway) Get(ctx context.Context, id uint, dest Document) error {
	ctx, span := start(ctx, "store.Get", dest.TableName(), attribute.Int64("db.document_id", int64(id)))
	defer span.End()

	return finish(span, t.next.Get(ctx, id, dest))
}

func (t *tracingGateway) First(ctx context.Context, dest Document, q Query) error {
	ctx, span := start(ctx, "store.First", dest.TableName(), attribute.Int("db.filters", len(q.Filters)))
	defer span.End()

	return finish(span, t.next.First(ctx, dest, q))
}

func (t *tracingGateway) Update(ctx context.Context, model Document, id uint, fields map[string]interface{}) error {
	ctx, span := start(ctx, "store.Update", model.TableName(),
		attribute.Int64("db.document_id", int64(id)),
		attribute.Int("db.fields", len(fields)),
	)
	defer span.End()

	return finish(span, t.next.Update(ctx, model, id, fields))
}

func (t *tracingGateway) CompareAndUpdate(ctx context.Context, model Document, id uint, version int64, fields map[string]interface{}) error {
	ctx, span := start(ctx, "store.CompareAndUpdate", model.TableName(),
		attribute.Int64("db.document_id", int64(id)),
		attribute.Int64("db.expected_version", version),
	)
	defer span.End()

	err := t.next.CompareAndUpdate(ctx, model, id, version, fields)
	if errors.Is(err, ErrConflict) {
		span.SetAttributes(attribute.Bool("db.conflict", true))
	}
	return finish(span, err)
}

func (t *tracingGateway) Delete(ctx context.Context, model Document, id uint) error {
	ctx, span := start(ctx, "store.Delete", model.TableName(), attribute.Int64("db.document_id", int64(id)))
	defer span.End()

	return finish(span, t.next.Delete(ctx, model, id))
}

func (t *tracingGateway) Query(ctx context.Context, dest interface{}, q Query) error {
	ctx, span := start(ctx, "store.Query", collectionOf(dest),
		attribute.Int("db.filters", len(q.Filters)),
		attribute.Int("db.limit", q.Limit),
	)
	defer span.End()

	err := t.next.Query(ctx, dest, q)
	if err == nil {
		if v := reflect.Indirect(reflect.ValueOf(dest)); v.Kind() == reflect.Slice {
			span.SetAttributes(attribute.Int("result.count", v.Len()))
		}
	}
	return finish(span, err)
}

func (t *tracingGateway) Count(ctx context.Context, model Document, q Query) (int64, error) {
	ctx, span := start(ctx, "store.Count", model.TableName(), attribute.Int("db.filters", len(q.Filters)))
	defer span.End()

	n, err := t.next.Count(ctx, model, q)
	span.SetAttributes(attribute.Int64("result.count", n))
	return n, finish(span, err)
}

func (t *tracingGateway) Transaction(ctx context.Context, fn func(tx Gateway) error) error {
	ctx, span := tracer.Start(ctx, "store.Transaction")
	defer span.End()

	err := t.next.Transaction(ctx, func(tx Gateway) error {
		return fn(WithTracing(tx))
	})
	if err != nil {
		span.SetAttributes(attribute.Bool("db.rolled_back", true))
	}
	return finish(span, err)
}

func start(ctx context.Context, name, collection string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("db.system", "gorm"),
		attribute.String("db.collection", collection),
	)
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// finish marks the span failed; a miss is an expected outcome, not an error
func finish(span trace.Span, err error) error {
	if err != nil && !errors.Is(err, ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func collectionOf(dest interface{}) string {
	t := reflect.TypeOf(dest)
	for t != nil && (t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice) {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	if doc, ok := reflect.New(t).Interface().(Document); ok {
		return doc.TableName()
	}
	return t.Name()
}
