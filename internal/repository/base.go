package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/mailflow/mailflow/internal/tracing"
)

// Entity is anything a Repository can persist. PrimaryID carries the
// primary-key value used by Update to verify the row exists.
type Entity interface {
	PrimaryID() string
}

// Scope narrows a query. Scopes compose with And and plug straight into
// gorm's Scopes chain.
type Scope func(*gorm.DB) *gorm.DB

// ListOptions shapes a GetAll query. A nil FilterBy means no filtering,
// empty SortBy means no explicit ordering, Limit <= 0 means no cap.
// Includes are association paths to preload, e.g. "Labels.Label".
type ListOptions struct {
	FilterBy   Scope
	SortBy     string
	Descending bool
	Limit      int
	Includes   []string
}

// Repository is a generic CRUD store over a gorm-backed table.
type Repository[T Entity] struct {
	db   *gorm.DB
	name string
}

func NewRepository[T Entity](db *gorm.DB, name string) Repository[T] {
	return Repository[T]{db: db, name: name}
}

func (r Repository[T]) DB() *gorm.DB {
	return r.db
}

// Add persists a new entity. A nil entity yields 400, a storage failure
// yields 500 with the driver's message, success yields 201.
func (r Repository[T]) Add(ctx context.Context, entity *T) Result {
	span, ctx := opentracing.StartSpanFromContext(ctx, r.name+".Add")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if entity == nil {
		return InvalidResult(ErrNilEntity.Error())
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		tracing.TraceErr(span, err)
		return InternalResult(err)
	}
	tracing.TagEntity(span, (*entity).PrimaryID())
	return CreatedResult()
}

// GetAll lists entities, applying filter, includes, ordering and limit in
// that order. An empty match is not an error; the result is always 200.
func (r Repository[T]) GetAll(ctx context.Context, opts ListOptions) TypedResult[[]T] {
	span, ctx := opentracing.StartSpanFromContext(ctx, r.name+".GetAll")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	query := r.db.WithContext(ctx).Model(new(T))
	if opts.FilterBy != nil {
		query = query.Scopes(gormScope(opts.FilterBy))
	}
	for _, include := range opts.Includes {
		query = query.Preload(include)
	}
	if opts.SortBy != "" {
		direction := ""
		if opts.Descending {
			direction = " DESC"
		}
		query = query.Order(opts.SortBy + direction)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var entities []T
	if err := query.Find(&entities).Error; err != nil {
		tracing.TraceErr(span, err)
		return TypedResult[[]T]{Result: InternalResult(err)}
	}
	return TypedResult[[]T]{Result: OkResult(), Data: entities}
}

// Get returns the first entity matching the scope. A nil scope is a 400,
// no match is a 404.
func (r Repository[T]) Get(ctx context.Context, filter Scope, includes ...string) TypedResult[*T] {
	span, ctx := opentracing.StartSpanFromContext(ctx, r.name+".Get")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if filter == nil {
		return TypedResult[*T]{Result: InvalidResult(ErrNilExpression.Error())}
	}
	query := r.db.WithContext(ctx).Model(new(T)).Scopes(gormScope(filter))
	for _, include := range includes {
		query = query.Preload(include)
	}

	var entities []T
	if err := query.Limit(1).Find(&entities).Error; err != nil {
		tracing.TraceErr(span, err)
		return TypedResult[*T]{Result: InternalResult(err)}
	}
	if len(entities) == 0 {
		return TypedResult[*T]{Result: NotFoundResult(ErrEntityNotFound.Error())}
	}
	tracing.TagEntity(span, entities[0].PrimaryID())
	return TypedResult[*T]{Result: OkResult(), Data: &entities[0]}
}

// Exists reports whether any entity matches the scope. A nil scope is a
// 400, no match a 404, a match a 200.
func (r Repository[T]) Exists(ctx context.Context, filter Scope) Result {
	span, ctx := opentracing.StartSpanFromContext(ctx, r.name+".Exists")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if filter == nil {
		return InvalidResult(ErrInvalidExpr.Error())
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Scopes(gormScope(filter)).Count(&count).Error; err != nil {
		tracing.TraceErr(span, err)
		return InternalResult(err)
	}
	if count == 0 {
		return NotFoundResult(ErrEntityNotFound.Error())
	}
	return OkResult()
}

// Update saves an existing entity. The row must already exist; updating an
// unknown primary key is a 404, never an upsert.
func (r Repository[T]) Update(ctx context.Context, entity *T) Result {
	span, ctx := opentracing.StartSpanFromContext(ctx, r.name+".Update")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if entity == nil {
		return InvalidResult(ErrNilEntity.Error())
	}
	tracing.TagEntity(span, (*entity).PrimaryID())

	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).
		Where("id = ?", (*entity).PrimaryID()).
		Count(&count).Error; err != nil {
		tracing.TraceErr(span, err)
		return InternalResult(err)
	}
	if count == 0 {
		return NotFoundResult(ErrEntityNotFound.Error())
	}
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		tracing.TraceErr(span, err)
		return InternalResult(err)
	}
	return OkResult()
}

// Delete removes a single entity by value.
func (r Repository[T]) Delete(ctx context.Context, entity *T) Result {
	span, ctx := opentracing.StartSpanFromContext(ctx, r.name+".Delete")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if entity == nil {
		return InvalidResult(ErrNilEntity.Error())
	}
	tracing.TagEntity(span, (*entity).PrimaryID())

	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).
		Where("id = ?", (*entity).PrimaryID()).
		Count(&count).Error; err != nil {
		tracing.TraceErr(span, err)
		return InternalResult(err)
	}
	if count == 0 {
		return NotFoundResult(ErrEntityNotFound.Error())
	}
	if err := r.db.WithContext(ctx).Delete(entity).Error; err != nil {
		tracing.TraceErr(span, err)
		return InternalResult(err)
	}
	return OkResult()
}

// DeleteMany removes every entity matching the scope inside one
// transaction, so a failure midway leaves all rows in place. Matching
// nothing is a 404.
func (r Repository[T]) DeleteMany(ctx context.Context, filter Scope) CountResult {
	span, ctx := opentracing.StartSpanFromContext(ctx, r.name+".DeleteMany")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if filter == nil {
		return CountResult{Result: InvalidResult(ErrInvalidExpr.Error())}
	}

	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entities []T
		if err := tx.Model(new(T)).Scopes(gormScope(filter)).Find(&entities).Error; err != nil {
			return err
		}
		if len(entities) == 0 {
			return ErrNoEntitiesFound
		}
		res := tx.Scopes(gormScope(filter)).Delete(new(T))
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err == ErrNoEntitiesFound {
		return CountResult{Result: NotFoundResult(ErrNoEntitiesFound.Error())}
	}
	if err != nil {
		tracing.TraceErr(span, err)
		return CountResult{Result: InternalResult(err)}
	}
	return CountResult{Result: OkResult(), Count: deleted}
}

// Count returns the number of entities matching the scope. A nil scope
// counts the whole table.
func (r Repository[T]) Count(ctx context.Context, filter Scope) CountResult {
	span, ctx := opentracing.StartSpanFromContext(ctx, r.name+".Count")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	query := r.db.WithContext(ctx).Model(new(T))
	if filter != nil {
		query = query.Scopes(gormScope(filter))
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		tracing.TraceErr(span, err)
		return CountResult{Result: InternalResult(err)}
	}
	return CountResult{Result: OkResult(), Count: count}
}

func gormScope(s Scope) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return s(db)
	}
}
