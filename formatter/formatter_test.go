package formatter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rediwo/redi-query/types"
)

func sampleResult() *types.Result {
	return &types.Result{
		Columns: []string{"id", "name"},
		Rows: [][]any{
			{int64(1), "alice"},
			{int64(2), nil},
		},
		IsSelect: true,
	}
}

func TestRenderTable(t *testing.T) {
	out, err := Render(sampleResult(), FormatTable)
	require.NoError(t, err)

	want := "+----+-------+\n" +
		"| id | name  |\n" +
		"+----+-------+\n" +
		"| 1  | alice |\n" +
		"| 2  | NULL  |\n" +
		"+----+-------+\n" +
		"(2 rows)"
	require.Equal(t, want, out)
}

func TestRenderTableSingleRowCount(t *testing.T) {
	result := &types.Result{
		Columns:  []string{"n"},
		Rows:     [][]any{{int64(1)}},
		IsSelect: true,
	}
	out, err := Render(result, FormatTable)
	require.NoError(t, err)
	require.Contains(t, out, "(1 row)")
}

func TestRenderTableEmpty(t *testing.T) {
	out, err := Render(&types.Result{IsSelect: true}, FormatTable)
	require.NoError(t, err)
	require.Equal(t, "(No results)", out)
}

func TestRenderRecord(t *testing.T) {
	out, err := Render(sampleResult(), FormatRecord)
	require.NoError(t, err)

	want := "*************************** 1. row ***************************\n" +
		"  id: 1\n" +
		"name: alice\n" +
		"*************************** 2. row ***************************\n" +
		"  id: 2\n" +
		"name: NULL\n" +
		"(2 rows)"
	require.Equal(t, want, out)
}

func TestRenderCSV(t *testing.T) {
	out, err := Render(sampleResult(), FormatCSV)
	require.NoError(t, err)
	require.Equal(t, "id,name\n1,alice\n2,", out, "NULL cells become empty CSV fields")
}

func TestRenderCSVQuoting(t *testing.T) {
	result := &types.Result{
		Columns:  []string{"note"},
		Rows:     [][]any{{"hello, world"}},
		IsSelect: true,
	}
	out, err := Render(result, FormatCSV)
	require.NoError(t, err)
	require.Equal(t, "note\n\"hello, world\"", out)
}

func TestRenderJSON(t *testing.T) {
	out, err := Render(sampleResult(), FormatJSON)
	require.NoError(t, err)

	want := "[\n" +
		"  {\n" +
		"    \"id\": 1,\n" +
		"    \"name\": \"alice\"\n" +
		"  },\n" +
		"  {\n" +
		"    \"id\": 2,\n" +
		"    \"name\": null\n" +
		"  }\n" +
		"]"
	require.Equal(t, want, out)
}

func TestRenderJSONEmpty(t *testing.T) {
	out, err := Render(&types.Result{IsSelect: true}, FormatJSON)
	require.NoError(t, err)
	require.Equal(t, "[]", out)
}

func TestRenderMutation(t *testing.T) {
	out, err := Render(&types.Result{AffectedRows: 3}, FormatTable)
	require.NoError(t, err)
	require.Equal(t, "Affected rows: 3", out)

	out, err = Render(&types.Result{AffectedRows: 1, LastInsertID: "42"}, FormatJSON)
	require.NoError(t, err)
	require.Equal(t, "Affected rows: 1, Last insert ID: 42", out, "mutations ignore the requested format")
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(sampleResult(), Format("yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "yaml")
}
