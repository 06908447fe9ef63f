package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	f, err := ParseField(" dueDate : time.Time ")
	require.NoError(t, err)
	assert.Equal(t, Field{Name: "dueDate", Type: "time.Time"}, f)
	assert.Equal(t, "DueDate", f.Exported())
	assert.Equal(t, "dueDate", f.Private())

	for _, raw := range []string{"", "name", ":int", "name:"} {
		_, err := ParseField(raw)
		assert.ErrorIs(t, err, ErrBadField, raw)
	}
	_, err = ParseField("1st:int")
	assert.ErrorIs(t, err, ErrBadIdent)
}

func TestStoreValidate(t *testing.T) {
	fields := []Field{{Name: "title", Type: "string"}}
	assert.NoError(t, Store{Package: "todo", Type: "Todo", Fields: fields}.Validate())
	assert.ErrorIs(t, Store{Package: "todo-list", Type: "Todo", Fields: fields}.Validate(), ErrBadIdent)
	assert.ErrorIs(t, Store{Package: "todo", Type: "Todo"}.Validate(), ErrNoFields)

	dupes := append(fields, Field{Name: "Title", Type: "string"})
	assert.ErrorIs(t, Store{Package: "todo", Type: "Todo", Fields: dupes}.Validate(), ErrDupeField)

	for _, tc := range []struct {
		name   string
		fields []Field
		want   error
	}{
		{"state field", []Field{{Name: "state", Type: "int"}}, ErrReserved},
		{"snapshot method", []Field{{Name: "snapshot", Type: "int"}}, ErrReserved},
		{"assign method", []Field{{Name: "Assign", Type: "int"}}, ErrReserved},
		{"setter clash", []Field{{Name: "title", Type: "string"}, {Name: "setTitle", Type: "string"}}, ErrDupeField},
		{"box clash", []Field{{Name: "title", Type: "string"}, {Name: "titleBox", Type: "string"}}, ErrDupeField},
		{"no upper case", []Field{{Name: "_x", Type: "int"}}, ErrBadIdent},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := Store{Package: "todo", Type: "Todo", Fields: tc.fields}.Validate()
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.ErrorIs(t, Store{Package: "todo", Type: "reactive", Fields: fields}.Validate(), ErrReserved)

	ok := []Field{{Name: "title", Type: "string"}, {Name: "titles", Type: "[]string"}, {Name: "box", Type: "int"}}
	assert.NoError(t, Store{Package: "todo", Type: "Todo", Fields: ok}.Validate())
}

func TestStoreGen(t *testing.T) {
	out := StoreGen(Store{
		Package: "todo",
		Type:    "Todo",
		Fields: []Field{
			{Name: "title", Type: "string"},
			{Name: "done", Type: "bool"},
		},
	})
	assert.Contains(t, out, "// Todo keeps title, done in separate boxes, so\n")
	assert.Contains(t, out, "type TodoValues struct {\n\tTitle string\n\tDone bool\n}\n")
	assert.Contains(t, out, "func (x *Todo) DoneBox() *reactive.ObservableValue[bool] {")
	assert.Contains(t, out, "\tx.state.Batch(func() {\n\t\tx.title.Set(v.Title)\n\t\tx.done.Set(v.Done)\n\t})\n")
}
