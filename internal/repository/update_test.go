package repository

import (
	"testing"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestPartialUpdate(t *testing.T) {
	setClause, args, err := partialUpdate([]assignment{
		{"first_name", "Aliya"},
		{"is_admin", true},
	})
	require.NoError(t, err)

	assert.Equal(t, "first_name = $1, is_admin = $2", setClause)
	assert.Equal(t, []any{"Aliya", true}, args)
}

func TestPartialUpdate_Empty(t *testing.T) {
	_, _, err := partialUpdate(nil)
	require.Error(t, err)

	assert.True(t, errs.IsBadRequest(err))
	assert.EqualError(t, err, "No data")
}

func TestUserAssignments(t *testing.T) {
	tests := []struct {
		name    string
		in      model.UpdateUserInput
		columns []string
	}{
		{
			name: "empty",
			in:   model.UpdateUserInput{},
		},
		{
			name:    "single field",
			in:      model.UpdateUserInput{LastName: ptr("New")},
			columns: []string{"last_name"},
		},
		{
			name: "all fields keep a fixed order",
			in: model.UpdateUserInput{
				IsAdmin:   ptr(false),
				Email:     ptr("new@email.com"),
				Password:  ptr("hashed"),
				LastName:  ptr("L"),
				FirstName: ptr("F"),
			},
			columns: []string{"first_name", "last_name", "password", "email", "is_admin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var columns []string
			for _, a := range userAssignments(tt.in) {
				columns = append(columns, a.column)
			}
			assert.Equal(t, tt.columns, columns)
		})
	}
}

func TestUserAssignments_FalseIsPresent(t *testing.T) {
	got := userAssignments(model.UpdateUserInput{IsAdmin: ptr(false)})

	require.Len(t, got, 1)
	assert.Equal(t, assignment{"is_admin", false}, got[0])
}
