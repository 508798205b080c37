package repository

import (
	"fmt"
	"strings"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/model"
)

// assignment is one "column = value" pair of an UPDATE.
type assignment struct {
	column string
	value  any
}

// userAssignments lists the columns present in in, in a fixed order.
func userAssignments(in model.UpdateUserInput) []assignment {
	var out []assignment

	if in.FirstName != nil {
		out = append(out, assignment{"first_name", *in.FirstName})
	}
	if in.LastName != nil {
		out = append(out, assignment{"last_name", *in.LastName})
	}
	if in.Password != nil {
		out = append(out, assignment{"password", *in.Password})
	}
	if in.Email != nil {
		out = append(out, assignment{"email", *in.Email})
	}
	if in.IsAdmin != nil {
		out = append(out, assignment{"is_admin", *in.IsAdmin})
	}

	return out
}

// partialUpdate builds the SET clause for assignments, numbering
// placeholders from $1, and returns it with the matching arguments.
//
//	[{first_name Aliya} {is_admin true}] -> "first_name = $1, is_admin = $2", [Aliya true]
//
// An empty list is rejected with a 400.
func partialUpdate(assignments []assignment) (string, []any, error) {
	if len(assignments) == 0 {
		return "", nil, errs.NewBadRequestError("No data", true, nil, nil)
	}

	clauses := make([]string, 0, len(assignments))
	args := make([]any, 0, len(assignments))
	for i, a := range assignments {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", a.column, i+1))
		args = append(args, a.value)
	}

	return strings.Join(clauses, ", "), args, nil
}
