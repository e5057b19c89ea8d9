package recmerge

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearMerge(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		key      KeyResolver
		expected []string
	}{
		{
			name: "merges adjacent objects with the same key",
			input: []string{
				`{"id":1,"name":"Alice"}`,
				`{"id":1,"name":"Alice Smith"}`,
				`{"id":2,"name":"Bob"}`,
				`{"id":2,"name":"Bob Brown"}`,
				`{"id":3,"name":"Charlie"}`,
			},
			key: Field("id"),
			expected: []string{
				`{"id":1,"name":"Alice"}`,
				`{"id":2,"name":"Bob"}`,
				`{"id":3,"name":"Charlie"}`,
			},
		},
		{
			name: "earlier wins, unique fields survive",
			input: []string{
				`{"id":1,"n":"A","email":"a@example.com"}`,
				`{"id":1,"n":"A2","age":30}`,
				`{"id":2,"n":"B"}`,
			},
			key: Field("id"),
			expected: []string{
				`{"id":1,"n":"A","age":30,"email":"a@example.com"}`,
				`{"id":2,"n":"B"}`,
			},
		},
		{
			name: "runs of three fold into one",
			input: []string{
				`{"id":1,"a":1}`,
				`{"id":1,"a":2,"b":2}`,
				`{"id":1,"a":3,"b":3,"c":3}`,
			},
			key:      Field("id"),
			expected: []string{`{"id":1,"a":1,"b":2,"c":3}`},
		},
		{
			name: "non-adjacent equal keys stay separate",
			input: []string{
				`{"id":1,"v":1}`,
				`{"id":2,"v":2}`,
				`{"id":1,"v":3}`,
			},
			key: Field("id"),
			expected: []string{
				`{"id":1,"v":1}`,
				`{"id":2,"v":2}`,
				`{"id":1,"v":3}`,
			},
		},
		{
			name: "does not merge when keys are different",
			input: []string{
				`{"id":1,"name":"Alice"}`,
				`{"id":2,"name":"Bob"}`,
			},
			key: Field("id"),
			expected: []string{
				`{"id":1,"name":"Alice"}`,
				`{"id":2,"name":"Bob"}`,
			},
		},
		{
			name: "adjacent absent keys never merge",
			input: []string{
				`{"v":1}`,
				`{"v":2}`,
			},
			key:      Field("id"),
			expected: []string{`{"v":1}`, `{"v":2}`},
		},
		{
			name: "adjacent absent deep keys never merge",
			input: []string{
				`{"user":{},"v":1}`,
				`{"user":{},"v":2}`,
			},
			key:      Path("user.id"),
			expected: []string{`{"user":{},"v":1}`, `{"user":{},"v":2}`},
		},
		{
			name: "deep key runs",
			input: []string{
				`{"user":{"id":1},"v":1}`,
				`{"user":{"id":1},"w":2}`,
				`{"user":{"id":2},"v":3}`,
			},
			key: Path("/user/id"),
			expected: []string{
				`{"user":{"id":1},"v":1,"w":2}`,
				`{"user":{"id":2},"v":3}`,
			},
		},
		{
			name:     "single record",
			input:    []string{`{"id":1}`},
			key:      Field("id"),
			expected: []string{`{"id":1}`},
		},
		{
			name:     "empty input",
			input:    []string{},
			key:      Field("id"),
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := LinearMerge(records(tt.input...), tt.key)
			require.NoError(t, err)
			assertRecords(t, tt.expected, result)
		})
	}
}

func TestLinearMergeNilInput(t *testing.T) {
	result, err := LinearMerge(nil, Field("id"))
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestLinearMergeCustomMergeFunc(t *testing.T) {
	input := records(
		`{"id":1,"name":"Alice","age":25}`,
		`{"id":1,"name":"Alice Smith","age":30}`,
	)

	customMerge := func(next, current Record) (Record, error) {
		return NewRecord(map[string]any{
			"id":   current.Get("id").Int(),
			"name": current.Get("name").String() + " & " + next.Get("name").String(),
			"age":  math.Max(current.Get("age").Float(), next.Get("age").Float()),
		})
	}

	result, err := LinearMerge(input, Field("id"), WithMergeFunc(customMerge))
	require.NoError(t, err)
	assertRecords(t, []string{`{"id":1,"name":"Alice & Alice Smith","age":30}`}, result)
}

func TestLinearMergeArgumentOrder(t *testing.T) {
	input := records(
		`{"id":1,"pos":"first"}`,
		`{"id":1,"pos":"second"}`,
		`{"id":1,"pos":"third"}`,
	)

	var calls [][2]string
	spy := func(later, earlier Record) (Record, error) {
		calls = append(calls, [2]string{later.Get("pos").String(), earlier.Get("pos").String()})
		return KeepLater(later, earlier)
	}

	result, err := LinearMerge(input, Field("id"), WithMergeFunc(spy))
	require.NoError(t, err)
	assertRecords(t, []string{`{"id":1,"pos":"third"}`}, result)
	assert.Equal(t, [][2]string{{"second", "first"}, {"third", "second"}}, calls)
}

func TestLinearMergeKeyChangedByMergeFunc(t *testing.T) {
	input := records(
		`{"id":1}`,
		`{"id":1}`,
		`{"id":2,"v":true}`,
	)
	bump := func(later, earlier Record) (Record, error) {
		return earlier.Set("id", 2)
	}

	result, err := LinearMerge(input, Field("id"), WithMergeFunc(bump))
	require.NoError(t, err)
	// the carried record now has id 2 and folds into its neighbour
	assertRecords(t, []string{`{"id":2,"v":true}`}, result)
}

func TestLinearMergeMergeFuncCannotReachInput(t *testing.T) {
	input := records(`{"id":1,"a":1}`, `{"id":1,"b":2}`)
	vandal := func(later, earlier Record) (Record, error) {
		for i := range later {
			later[i] = ' '
		}
		return earlier, nil
	}

	_, err := LinearMerge(input, Field("id"), WithMergeFunc(vandal))
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"b":2}`, input[1].String())
}

func TestLinearMergeErrors(t *testing.T) {
	input := records(`{"id":1}`, `{"id":1}`, `{"id":1}`)

	boom := errors.New("boom")
	_, err := LinearMerge(input, Field("id"), WithMergeFunc(func(_, _ Record) (Record, error) {
		return nil, boom
	}))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "record 1")

	_, err = LinearMerge(input, Field("id"), WithMergeFunc(func(_, _ Record) (Record, error) {
		return Record(`[]`), nil
	}))
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = LinearMerge(records(`{"id":1}`, `nope`), Field("id"))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestLinearMergeMergePatch(t *testing.T) {
	input := records(
		`{"id":1,"profile":{"name":"Alice","city":"LA"},"tmp":1}`,
		`{"id":1,"profile":{"city":"NYC"},"tmp":null}`,
	)

	result, err := LinearMerge(input, Field("id"), WithMergeFunc(MergePatch))
	require.NoError(t, err)
	// null deletes tmp from the patch result, but the later record still
	// carries its own tmp member, which survives the final assign
	assertRecords(t, []string{`{"id":1,"profile":{"name":"Alice","city":"NYC"},"tmp":null}`}, result)
}

func TestLinearMergeRunCount(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for round := 0; round < 20; round++ {
		input := randomRecords(rng, rng.Intn(60))

		runs := 0
		for i := range input {
			if i == 0 || !Field("id").Resolve(input[i-1]).Equal(Field("id").Resolve(input[i])) {
				runs++
			}
		}

		result, err := LinearMerge(input, Field("id"))
		require.NoError(t, err)
		assert.Len(t, result, runs)
	}
}
