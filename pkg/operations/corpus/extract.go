package corpus

import (
	"github.com/weavedata/weave/pkg/collaborators/sqlobject"
	"github.com/weavedata/weave/pkg/operation"
	"github.com/weavedata/weave/pkg/signature"
)

func init() {
	mustRegister(operation.New(extractSQL, signature.MustNew("sql"), operation.WithName("extract")))
	mustRegister(operation.New(extractRows, signature.MustNew("rows"), operation.WithName("extract")))
}

// extractSQL reports the pushed-down query text, the path taken when
// the "sql" representation is available.
func extractSQL(ctx operation.Context, operands []any, params []any) (any, error) {
	obj := operands[0].(*sqlobject.SQLObject)
	_, query, _ := obj.SQL()
	return query, nil
}

// extractRows materializes every row of the first column, the path
// taken when only the "rows" representation is available.
func extractRows(ctx operation.Context, operands []any, params []any) (any, error) {
	obj := operands[0].(*sqlobject.SQLObject)
	rows, err := obj.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
