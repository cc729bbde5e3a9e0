package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := NewDomainError(CodeNotFound, "customer 7 not found")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAlreadyExists))

	wrapped := fmt.Errorf("lookup: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestNewPaginated(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		pageSize  int
		wantPages int
	}{
		{"exact", 20, 10, 2},
		{"remainder", 25, 10, 3},
		{"empty", 0, 10, 0},
		{"single", 1, 10, 1},
		{"unpaged", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginated([]int{}, tt.total, 1, tt.pageSize)
			assert.Equal(t, tt.wantPages, p.TotalPages)
		})
	}
}

func TestFilter_Offset(t *testing.T) {
	assert.Equal(t, 0, Filter{Page: 0, PageSize: 10}.Offset())
	assert.Equal(t, 0, Filter{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 10, Filter{Page: 2, PageSize: 10}.Offset())
	assert.True(t, Filter{}.Unpaged())
}

func TestOptional_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Name Optional[string] `json:"name"`
	}

	t.Run("absent", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Name.Set)
		assert.False(t, p.Name.Present())
	})

	t.Run("null", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name":null}`), &p))
		assert.True(t, p.Name.Set)
		assert.True(t, p.Name.Null)
		assert.False(t, p.Name.Present())
	})

	t.Run("empty string", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name":""}`), &p))
		assert.True(t, p.Name.Present())
		assert.Equal(t, "", p.Name.Value)
	})

	t.Run("value", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Bob"}`), &p))
		assert.True(t, p.Name.Present())
		assert.Equal(t, "Bob", p.Name.Value)
	})

	t.Run("wrong type", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"name":12}`), &p))
	})
}
