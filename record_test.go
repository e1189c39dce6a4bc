package dbrec

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithDefaultConnection(t *testing.T) {
	a := &stubAdapter{name: "A"}
	ns, rec := recordingNamespace()
	ns.SetDB(BaseClass, a, "", false)

	w, err := New[Widget](InNamespace(ns))
	require.NoError(t, err)
	assert.Equal(t, "widgets", w.Table())
	assert.Equal(t, ClassOf[Widget](), w.Class())

	require.Len(t, rec.helpers, 1)
	h := rec.last()
	assert.Same(t, a, h.binding.Adapter)
	assert.Equal(t, "widgets", h.binding.Table)
	assert.Equal(t, []string{"id"}, h.binding.PrimaryKeys)
	assert.Nil(t, h.binding.Columns)
	assert.Empty(t, h.setColumns)
	assert.Same(t, h, w.Result())
}

func TestNewWithArguments(t *testing.T) {
	a := &stubAdapter{name: "A"}
	ns, rec := recordingNamespace()
	cols := map[string]any{"id": 5, "name": "n"}

	u, err := New[User](InNamespace(ns), WithAdapter(a), WithTable("custom_table"), WithColumns(cols))
	require.NoError(t, err)
	assert.Equal(t, "custom_table", u.Table())
	assert.Equal(t, int64(5), u.ID)
	assert.Equal(t, "n", u.Name)

	h := rec.last()
	assert.Same(t, a, h.binding.Adapter)
	assert.Equal(t, "custom_table", h.binding.Table)
	assert.Equal(t, []string{"id"}, h.binding.PrimaryKeys)
	assert.Equal(t, Columns(cols), h.binding.Columns)
	assert.Equal(t, []Columns{cols}, h.setColumns)

	got, err := ns.DB(ClassOf[User]())
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.False(t, ns.HasDB(ClassOf[Widget]()))
}

func TestNewIsOrderIndependent(t *testing.T) {
	a := &stubAdapter{name: "A"}
	cols := map[string]any{"id": 1}
	opts := []Option{WithAdapter(a), WithTable("people"), WithColumns(cols)}
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	for _, p := range perms {
		ns, rec := recordingNamespace()
		u, err := New[User](InNamespace(ns), opts[p[0]], opts[p[1]], opts[p[2]])
		require.NoError(t, err, p)
		assert.Equal(t, "people", u.FullTable(), p)
		assert.Equal(t, int64(1), u.ID, p)
		h := rec.last()
		assert.Same(t, a, h.binding.Adapter, p)
		assert.Equal(t, Columns(cols), h.binding.Columns, p)
	}
}

func TestNewLastOptionWins(t *testing.T) {
	a, b := &stubAdapter{name: "A"}, &stubAdapter{name: "B"}
	ns, rec := recordingNamespace()

	u, err := New[User](InNamespace(ns), WithTable("first"), WithAdapter(a), WithTable("second"), WithAdapter(b))
	require.NoError(t, err)
	assert.Equal(t, "second", u.Table())
	assert.Same(t, b, rec.last().binding.Adapter)
}

func TestNewWithoutConnection(t *testing.T) {
	ns, rec := recordingNamespace()
	u, err := New[User](InNamespace(ns))
	assert.Nil(t, u)
	assert.True(t, errors.Is(err, ErrNoConnection))
	assert.Empty(t, rec.helpers)
}

func TestNewHonoursHooks(t *testing.T) {
	ns, rec := recordingNamespace()
	ns.SetDB(BaseClass, &stubAdapter{}, "", false)

	o, err := New[LegacyOrder](InNamespace(ns))
	require.NoError(t, err)
	assert.Equal(t, "orders_legacy", o.Table())
	assert.Equal(t, "app_", o.Prefix())
	assert.Equal(t, "app_orders_legacy", o.FullTable())
	assert.Equal(t, []string{"order_id", "line"}, o.PrimaryKeys())
	assert.Equal(t, "app_orders_legacy", rec.last().binding.Table)
	assert.Equal(t, []string{"order_id", "line"}, rec.last().binding.PrimaryKeys)

	o, err = New[LegacyOrder](InNamespace(ns), WithTable("orders"))
	require.NoError(t, err)
	assert.Equal(t, "app_orders", o.FullTable())
}

func TestNewWithStruct(t *testing.T) {
	ns, rec := recordingNamespace()
	ns.SetDB(BaseClass, &stubAdapter{}, "", false)

	u, err := New[User](InNamespace(ns), WithStruct(struct {
		ID   int64  `db:"id"`
		Name string `db:"name"`
	}{ID: 9, Name: "ann"}))
	require.NoError(t, err)
	assert.Equal(t, int64(9), u.ID)
	assert.Equal(t, Columns{"id": int64(9), "name": "ann"}, rec.last().binding.Columns)
}

func TestMaterialize(t *testing.T) {
	ns, rec := recordingNamespace()
	ns.SetDB(BaseClass, &stubAdapter{}, "", false)

	_, err := New[User](InNamespace(ns), WithTable("members"))
	require.NoError(t, err)
	parent := rec.last()
	require.NotNil(t, parent.binding.Materialize)

	item, err := parent.binding.Materialize(Columns{"id": int64(3), "name": "cat"})
	require.NoError(t, err)
	u, ok := item.(*User)
	require.True(t, ok)
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, "cat", u.Name)
	assert.Equal(t, "members", u.Table())
	assert.Equal(t, Columns{"id": int64(3), "name": "cat"}, u.Columns())
	assert.Equal(t, "members", rec.last().binding.Table)
}

func TestFullTable(t *testing.T) {
	r := new(Record)
	assert.Equal(t, "", r.FullTable())
	r.SetTable("users")
	assert.Equal(t, "users", r.FullTable())
	r.SetPrefix("app_")
	assert.Equal(t, "app_users", r.FullTable())
	r.SetPrefix("app.")
	assert.Equal(t, "app.users", r.FullTable())
	assert.Equal(t, r.Prefix()+r.Table(), r.FullTable())
}

func TestSetTableFromClassName(t *testing.T) {
	r := new(Record)
	assert.Equal(t, "user_profiles", r.SetTableFromClassName("github.com/acme/app/models.UserProfile").Table())
	assert.Equal(t, "users", r.SetTableFromClassName(`App\Models\User`).Table())
	assert.Equal(t, "categories", r.SetTableFromClassName("Model_Category").Table())
	assert.Equal(t, "people", r.SetTableFromClassName("Person").Table())
}

func TestPrimaryKeys(t *testing.T) {
	r := new(Record)
	assert.Equal(t, []string{"id"}, r.PrimaryKeys())
	keys := []string{"a", "b"}
	r.SetPrimaryKeys(keys)
	keys[0] = "z"
	assert.Equal(t, []string{"a", "b"}, r.PrimaryKeys())
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, "github.com/iamdanielyin/dbrec.User", ClassOf[User]())
	assert.Equal(t, "github.com/iamdanielyin/dbrec.User", ClassOf[*User]())
	assert.Equal(t, "github.com/iamdanielyin/dbrec.Record", BaseClass)
	assert.Equal(t, "int", ClassOf[int]())
}

func TestUnqualify(t *testing.T) {
	cases := map[string]string{
		`App\Models\User`:                  "User",
		"github.com/acme/models.UserGroup": "UserGroup",
		"Model_User":                       "User",
		`App\Model_User`:                   "User",
		"User":                             "User",
	}
	for in, want := range cases {
		assert.Equal(t, want, Unqualify(in), in)
	}
}
