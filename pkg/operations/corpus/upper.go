package corpus

import (
	"strings"

	"github.com/weavedata/weave/pkg/collaborators/textobject"
	"github.com/weavedata/weave/pkg/operation"
	"github.com/weavedata/weave/pkg/signature"
)

func init() {
	mustRegister(operation.New(upperText, signature.MustNew("text"), operation.WithName("upper")))
	mustRegister(operation.New(upperRows, signature.MustNew("rows"), operation.WithName("upper")))
}

// upperText reads the whole string at once and upper-cases it.
func upperText(ctx operation.Context, operands []any, params []any) (any, error) {
	obj := operands[0].(*textobject.TextObject)
	return strings.ToUpper(obj.Text()), nil
}

// upperRows iterates row by row before upper-casing, the path taken
// when only the "rows" representation is available.
func upperRows(ctx operation.Context, operands []any, params []any) (any, error) {
	obj := operands[0].(*textobject.TextObject)
	return strings.ToUpper(string(obj.Rows())), nil
}
