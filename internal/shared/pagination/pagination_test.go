package pagination

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuery map[string]string

func (q fakeQuery) DefaultQuery(key, def string) string {
	if v, ok := q[key]; ok {
		return v
	}
	return def
}

func Test_ParseDirection(t *testing.T) {
	assert.Equal(t, Desc, ParseDirection("DESC"))
	assert.Equal(t, Desc, ParseDirection("desc"))
	assert.Equal(t, Desc, ParseDirection("DeSc"))
	assert.Equal(t, Asc, ParseDirection("ASC"))
	assert.Equal(t, Asc, ParseDirection(""))
	assert.Equal(t, Asc, ParseDirection("descending"))
}

func Test_FromQuery_Defaults(t *testing.T) {
	// act
	req, err := FromQuery(fakeQuery{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, PageRequest{Page: 0, Size: 10, SortBy: "id", Direction: Asc}, req)
}

func Test_FromQuery_CapsSize(t *testing.T) {
	// act
	req, err := FromQuery(fakeQuery{"size": "500", "direction": "desc", "sortBy": "title", "page": "2"})

	// assert
	require.NoError(t, err)
	assert.Equal(t, MaxSize, req.Size)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, "title", req.SortBy)
	assert.True(t, req.Descending())
	assert.Equal(t, uint(200), req.Offset())
}

func Test_FromQuery_RejectsPageBeyondMax(t *testing.T) {
	// act
	_, err := FromQuery(fakeQuery{"page": "200000000000000000", "size": "100"})

	// assert
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "page")
}

func Test_Offset_AtMaxPageDoesNotWrap(t *testing.T) {
	req := NewPageRequest(MaxPage, MaxSize, "id", "ASC")

	require.NoError(t, req.Validate())
	assert.Equal(t, uint(MaxPage)*uint(MaxSize), req.Offset())
	assert.Greater(t, req.Offset(), uint(MaxPage))
}

func Test_FromQuery_RejectsBadValues(t *testing.T) {
	for _, q := range []fakeQuery{
		{"page": "x"},
		{"size": "ten"},
		{"page": "-1"},
		{"size": "0"},
	} {
		_, err := FromQuery(q)

		var verrs validation.Errors
		assert.ErrorAs(t, err, &verrs, "query %v", q)
	}
}

func Test_NewPage_TotalPages(t *testing.T) {
	req := NewPageRequest(1, 10, "id", "ASC")

	page := NewPage([]int{11, 12}, req, 12)

	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, int64(12), page.TotalElements)
	assert.True(t, page.HasPrevious())
	assert.False(t, page.HasNext())
}

func Test_NewPage_EmptyContentIsNotNil(t *testing.T) {
	page := NewPage[int](nil, NewPageRequest(0, 10, "", ""), 0)

	assert.NotNil(t, page.Content)
	assert.Equal(t, 0, page.TotalPages)
}
