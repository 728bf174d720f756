package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"taghazout/infras/otel"
	"taghazout/infras/postgres"
	"taghazout/shared/constant"
	"taghazout/shared/dto"
	"taghazout/shared/logger"
)

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

// SQLStore is a sqlx-backed Store. Columns come from the `db` tags of T,
// including those of embedded structs.
type SQLStore[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []string
}

func NewSQLStore[T any](entity, table, primaryColumn string, db *postgres.Connection, otl otel.Otel) *SQLStore[T] {
	var zero T

	return &SQLStore[T]{
		db:            db,
		otel:          otl,
		table:         table,
		entity:        entity,
		primaryColumn: primaryColumn,
		columns:       columnsOf(reflect.TypeOf(zero)),
	}
}

func (repo *SQLStore[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, op))
}

func (repo *SQLStore[T]) insertQuery() string {
	placeholders := make([]string, len(repo.columns))
	for i, col := range repo.columns {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.columns, ", "), strings.Join(placeholders, ", "))
}

func (repo *SQLStore[T]) exec(ctx context.Context, db execer, op, query string, arg any) (sql.Result, error) {
	ctx, scope := repo.scope(ctx, op)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	res, err := db.NamedExecContext(ctx, query, arg)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to %s data (%s): %w", op, repo.entity, err)
	}

	return res, nil
}

func (repo *SQLStore[T]) Insert(ctx context.Context, model T) error {
	_, err := repo.exec(ctx, repo.db.Write, "insert", repo.insertQuery(), model)

	return err
}

func (repo *SQLStore[T]) InsertBulk(ctx context.Context, models []T) error {
	if len(models) == 0 {
		return nil
	}

	_, err := repo.exec(ctx, repo.db.Write, "insertBulk", repo.insertQuery(), models)

	return err
}

func (repo *SQLStore[T]) FindAll(ctx context.Context) ([]T, error) {
	return repo.Select(ctx, dto.FilterGroup{}, dto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: dto.SortDirAsc})
}

// Select runs a filtered, optionally paginated query.
func (repo *SQLStore[T]) Select(ctx context.Context, filter dto.FilterGroup, params dto.QueryParams) ([]T, error) {
	ctx, scope := repo.scope(ctx, "Select")
	defer scope.End()

	where, args := whereClause(filter)

	var ordering, pagination string

	if params.SortBy != "" && params.SortDir != "" && slices.Contains(repo.columns, params.SortBy) {
		ordering = fmt.Sprintf("ORDER BY %s %s, %s ASC", params.SortBy, params.SortDir, repo.primaryColumn)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = (max(params.Page, 1) - 1) * params.Limit

		pagination = "LIMIT :limit OFFSET :offset"
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s", strings.Join(repo.columns, ", "), repo.table, where, ordering, pagination)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	models := []T{}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to prepare statement (%s): %w", repo.entity, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &models, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to get all data (%s): %w", repo.entity, err)
	}

	return models, nil
}

func (repo *SQLStore[T]) FindBy(ctx context.Context, column string, value any) (T, bool, error) {
	ctx, scope := repo.scope(ctx, "FindBy")
	defer scope.End()

	var model T

	if !slices.Contains(repo.columns, column) {
		return model, false, fmt.Errorf("unknown column %q (%s)", column, repo.entity)
	}

	where, args := whereClause(dto.FilterGroup{Filters: []any{
		dto.Filter{Field: column, Value: value, Operator: dto.FilterOperatorEq},
	}})

	query := fmt.Sprintf("SELECT %s FROM %s %s LIMIT 1", strings.Join(repo.columns, ", "), repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, false, fmt.Errorf("failed to prepare statement (%s): %w", repo.entity, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &model, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, false, fmt.Errorf("failed to get data (%s): %w", repo.entity, err)
	}

	return model, true, nil
}

func (repo *SQLStore[T]) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	set := make([]string, 0, len(fields))

	for _, col := range slices.Sorted(maps.Keys(fields)) {
		if !slices.Contains(repo.columns, col) {
			return fmt.Errorf("unknown column %q (%s)", col, repo.entity)
		}

		set = append(set, fmt.Sprintf("%s = :%s", col, col))
	}

	where, args := repo.byID(id)
	maps.Copy(args, fields)

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(set, ", "), where)

	res, err := repo.exec(ctx, repo.db.Write, "update", query, args)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func (repo *SQLStore[T]) Delete(ctx context.Context, id string) error {
	where, args := repo.byID(id)
	if where == "" {
		return errRequiredFilter
	}

	res, err := repo.exec(ctx, repo.db.Write, "delete", fmt.Sprintf("DELETE FROM %s %s", repo.table, where), args)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func (repo *SQLStore[T]) byID(id string) (string, map[string]any) {
	return whereClause(dto.FilterGroup{Filters: []any{
		dto.Filter{ArgName: "pk", Field: repo.primaryColumn, Value: id, Operator: dto.FilterOperatorEq},
	}})
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func whereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

func columnsOf(reflectType reflect.Type) []string {
	var columns []string

	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, columnsOf(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}
