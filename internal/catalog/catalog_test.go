package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogOrder(t *testing.T) {
	assert.Equal(t, []string{"GetAll", "GetById", "Create", "Update", "Enable", "Disable"}, Names())
	for i, op := range All() {
		assert.Equal(t, Operation(i), op)
		assert.Equal(t, op, op.Entry().Op)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Operation
		wantErr bool
	}{
		{"GetAll", GetAll, false},
		{"getbyid", GetByID, false},
		{"  CREATE ", Create, false},
		{"update", Update, false},
		{"Enable", Enable, false},
		{"disable", Disable, false},
		{"Delete", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownOperation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseList(t *testing.T) {
	ops, err := ParseList("Create, getall,,Disable")
	require.NoError(t, err)
	assert.Equal(t, []Operation{Create, GetAll, Disable}, ops)

	_, err = ParseList("GetAll,Remove")
	require.ErrorIs(t, err, ErrUnknownOperation)
	assert.Contains(t, err.Error(), `"Remove"`)
}

func TestSetKeepsCatalogOrder(t *testing.T) {
	s := NewSet(Disable, Create, GetAll, Create)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []Operation{GetAll, Create, Disable}, s.Operations())
	assert.Equal(t, "GetAll,Create,Disable", s.String())
	assert.True(t, s.Has(Create))
	assert.False(t, s.Has(Update))
	assert.False(t, s.Has(Operation(42)))
}

func TestEmptyAndFullSet(t *testing.T) {
	var empty Set
	assert.Zero(t, empty.Len())
	assert.Empty(t, empty.Entries())
	assert.Equal(t, "", empty.String())

	full := FullSet()
	assert.Equal(t, len(All()), full.Len())
	assert.Equal(t, All(), full.Operations())
}

func TestEntryShapes(t *testing.T) {
	tests := []struct {
		op        Operation
		attribute string
		method    string
		param     Param
		returns   Returns
		shape     Shape
		message   string
	}{
		{GetAll, "[HttpGet]", "GetAllAsync", ParamNone, ReturnsCollection, ShapeQuery, ""},
		{GetByID, `[HttpGet("GetById")]`, "GetByIdAsync", ParamID, ReturnsOptional, ShapeQuery, ""},
		{Create, "[HttpPost]", "CreateAsync", ParamBody, ReturnsEntity, ShapeMutation, "CreatedSuccessfully"},
		{Update, `[HttpPut("Update")]`, "UpdateAsync", ParamBody, ReturnsOptional, ShapeMutation, "UpdatedSuccessfully"},
		{Enable, `[HttpPut("Enable")]`, "EnableAsync", ParamID, ReturnsBool, ShapeToggle, "EnabledSuccessfully"},
		{Disable, `[HttpPut("Disable")]`, "DisableAsync", ParamID, ReturnsBool, ShapeToggle, "DisabledSuccessfully"},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			e := tt.op.Entry()
			assert.Equal(t, tt.attribute, e.HTTPAttribute())
			assert.Equal(t, tt.method, e.MethodName())
			assert.Equal(t, tt.param, e.Param)
			assert.Equal(t, tt.returns, e.Returns)
			assert.Equal(t, tt.shape, e.Shape)
			assert.Equal(t, tt.message, e.SuccessMessage)
		})
	}
}

func TestInvalidOperation(t *testing.T) {
	op := Operation(-1)
	assert.False(t, op.Valid())
	assert.Equal(t, "Operation(-1)", op.String())
	assert.Panics(t, func() { op.Entry() })
}

func TestEntriesReturnsCopy(t *testing.T) {
	es := Entries()
	es[0].Name = "Mutated"
	assert.Equal(t, "GetAll", GetAll.String())
}
