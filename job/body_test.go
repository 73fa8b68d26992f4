package job

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/cronstorm/errors"
)

func TestEncodeBody_LiteralRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  interface{}
	}{
		{
			name:  "unquoted object literal",
			input: `{event: 'ping', count: 2, tags: ['a', 'b'], ok: true, none: null}`,
			want: map[string]interface{}{
				"event": "ping",
				"count": float64(2),
				"tags":  []interface{}{"a", "b"},
				"ok":    true,
				"none":  nil,
			},
		},
		{
			name:  "strict JSON stays equivalent",
			input: `{"a": {"b": [1, 2.5]}}`,
			want: map[string]interface{}{
				"a": map[string]interface{}{"b": []interface{}{float64(1), 2.5}},
			},
		},
		{
			name:  "trailing comma",
			input: `[1, 2, 3,]`,
			want:  []interface{}{float64(1), float64(2), float64(3)},
		},
		{
			name:  "single quoted string",
			input: `'hello'`,
			want:  "hello",
		},
		{
			name:  "number",
			input: `42`,
			want:  float64(42),
		},
		{
			name:  "hex number",
			input: `{mask: 0x1F, neg: -0x10}`,
			want:  map[string]interface{}{"mask": float64(31), "neg": float64(-16)},
		},
		{
			name:  "json5 number forms",
			input: `[+1, .5, 5.]`,
			want:  []interface{}{float64(1), 0.5, float64(5)},
		},
		{
			name:  "single quotes hold double quotes",
			input: `{msg: 'say "hi"'}`,
			want:  map[string]interface{}{"msg": `say "hi"`},
		},
		{
			name:  "boolean",
			input: `false`,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := EncodeBody(tt.input, MediaTypeJSON)
			require.NoError(t, err)

			var decoded interface{}
			require.NoError(t, json.Unmarshal([]byte(encoded), &decoded), "not valid JSON: %s", encoded)
			assert.Equal(t, tt.want, decoded)
		})
	}
}

func TestEncodeBody_RejectsExpressions(t *testing.T) {
	for _, input := range []string{
		`process.exit(1)`,
		`require('fs')`,
		`(function() { return 1 })()`,
		`1 + 1`,
		`{a: b}`,
		`hello`,
		``,
		`{a: 1} {b: 2}`,
		`NaN`,
		`{n: Infinity}`,
	} {
		_, err := EncodeBody(input, MediaTypeJSON)
		require.Error(t, err, "input %q", input)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, FieldBody, verr.Field)
	}
}

func TestEncodeBody_KeepsNumberDigits(t *testing.T) {
	got, err := EncodeBody(`{id: 12345678901234567890, ratio: 0.10000000000000000555}`, MediaTypeJSON)
	require.NoError(t, err)
	assert.Contains(t, got, `"id":12345678901234567890`)
	assert.Contains(t, got, `"ratio":0.10000000000000000555`)

	got, err = EncodeBody(`0xFFFFFFFFFFFFFFFFFF`, MediaTypeJSON)
	require.NoError(t, err)
	assert.Equal(t, "4722366482869645213695", got)
}

func TestEncodeBody_NonJSONPassesThrough(t *testing.T) {
	got, err := EncodeBody("a=1&b=2", "application/x-www-form-urlencoded")
	require.NoError(t, err)
	assert.Equal(t, "a=1&b=2", got)
}

func TestIsJSONContentType(t *testing.T) {
	assert.True(t, IsJSONContentType("application/json"))
	assert.True(t, IsJSONContentType("application/json; charset=utf-8"))
	assert.True(t, IsJSONContentType("Application/JSON"))
	assert.False(t, IsJSONContentType("text/plain"))
	assert.False(t, IsJSONContentType("application/jsonx"))
	assert.False(t, IsJSONContentType(""))
}
