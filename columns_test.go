package dbrec

import (
	"testing"

	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Audit struct {
	CreatedBy string `db:"created_by"`
}

type Account struct {
	Record
	Audit
	ID       int64       `db:"id"`
	Email    null.String `db:"email"`
	Nickname string      `db:"nickname,omitempty"`
	Secret   string      `db:"-"`
	Balance  float64
	internal string
}

func TestColumnsOf(t *testing.T) {
	acc := &Account{
		Audit:    Audit{CreatedBy: "root"},
		ID:       1,
		Email:    null.StringFrom("a@example.com"),
		Secret:   "x",
		Balance:  2.5,
		internal: "y",
	}
	cols := ColumnsOf(acc)
	assert.Equal(t, Columns{
		"created_by": "root",
		"id":         int64(1),
		"email":      null.StringFrom("a@example.com"),
		"balance":    2.5,
	}, cols)

	assert.Equal(t, Columns{"a": 1}, ColumnsOf(map[string]any{"a": 1}))
	assert.Nil(t, ColumnsOf(42))
	assert.Nil(t, ColumnsOf(nil))
}

func TestAssignColumns(t *testing.T) {
	var acc Account
	require.NoError(t, assignColumns(&acc, Columns{
		"id":         int32(7),
		"email":      "b@example.com",
		"nickname":   int64(5),
		"created_by": "ops",
		"balance":    int64(3),
		"unknown":    "ignored",
		"secret":     "never",
	}))
	assert.Equal(t, int64(7), acc.ID)
	assert.Equal(t, null.StringFrom("b@example.com"), acc.Email)
	assert.Equal(t, "", acc.Nickname)
	assert.Equal(t, "ops", acc.CreatedBy)
	assert.Equal(t, 3.0, acc.Balance)
	assert.Equal(t, "", acc.Secret)

	require.NoError(t, assignColumns(&acc, Columns{"email": nil}))
	assert.Equal(t, "b@example.com", acc.Email.String)
}
