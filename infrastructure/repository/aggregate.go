// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/ledgerline/crm-intelligence-api/infrastructure/database/postgres"
	"github.com/ledgerline/crm-intelligence-api/infrastructure/integrator/backend"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const functionSchema = "crm"

var procedureName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

type aggregateRepository struct {
	conn *postgres.Connection
}

// NewAggregateRepository executa os procedimentos de agregação direto no banco.
// As funções devem retornar json/jsonb, como no acesso por RPC.
func NewAggregateRepository(conn *postgres.Connection) backend.RPCCaller {
	return &aggregateRepository{
		conn: conn,
	}
}

func (r *aggregateRepository) Call(ctx context.Context, procedure string, params map[string]any) ([]byte, error) {
	sqlQuery, args, err := buildProcedureQuery(procedure, params, true)
	if err != nil {
		return nil, err
	}

	var payload []byte
	err = r.inTenantScope(ctx, params, func(q postgres.Queryer) error {
		var result sql.NullString
		if err := q.QueryRowContext(ctx, sqlQuery, args...).Scan(&result); err != nil {
			return err
		}
		if result.Valid {
			payload = []byte(result.String)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao executar %s.%s", functionSchema, procedure)
	}

	return payload, nil
}

func (r *aggregateRepository) Exec(ctx context.Context, procedure string, params map[string]any) error {
	sqlQuery, args, err := buildProcedureQuery(procedure, params, false)
	if err != nil {
		return err
	}

	err = r.inTenantScope(ctx, params, func(q postgres.Queryer) error {
		_, err := q.ExecContext(ctx, sqlQuery, args...)
		return err
	})
	if err != nil {
		return errors.Wrapf(err, "erro ao executar %s.%s", functionSchema, procedure)
	}

	return nil
}

// inTenantScope roda fn no escopo de RLS do tenant informado em p_tenant_id
func (r *aggregateRepository) inTenantScope(ctx context.Context, params map[string]any, fn func(postgres.Queryer) error) error {
	tenantID, _ := params[backend.ParamTenantID].(string)

	return r.conn.RunInTenantTransaction(ctx, tenantID, fn)
}

// buildProcedureQuery monta SELECT crm.<procedure>(p_a => $1, p_b => $2) com os parâmetros em ordem alfabética.
// Mapas e listas são enviados como jsonb.
func buildProcedureQuery(procedure string, params map[string]any, asText bool) (string, []any, error) {
	if !procedureName.MatchString(procedure) {
		return "", nil, fmt.Errorf("nome de procedimento inválido: %q", procedure)
	}

	names := make([]string, 0, len(params))
	for name := range params {
		if !procedureName.MatchString(name) {
			return "", nil, fmt.Errorf("nome de parâmetro inválido: %q", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	placeholders := make([]string, 0, len(names))
	args := make([]any, 0, len(names))
	for _, name := range names {
		value, isJSON, err := sqlValue(params[name])
		if err != nil {
			return "", nil, errors.Wrapf(err, "erro ao serializar %s", name)
		}

		placeholder := name + " => ?"
		if isJSON {
			placeholder += "::jsonb"
		}
		placeholders = append(placeholders, placeholder)
		args = append(args, value)
	}

	call := fmt.Sprintf("%s.%s(%s)", functionSchema, procedure, strings.Join(placeholders, ", "))
	if asText {
		call += "::text"
	}

	return squirrel.
		Select().
		Column(squirrel.Expr(call, args...)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func sqlValue(value any) (any, bool, error) {
	switch v := value.(type) {
	case nil, string, bool, int, int32, int64, float32, float64:
		return v, false, nil
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, false, err
		}
		return string(encoded), true, nil
	}
}
