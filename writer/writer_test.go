package writer

import (
	"fmt"
	"testing"

	"github.com/hexops/autogold/v2"
	"github.com/ibuildthecloud/rjson/parser"
	"github.com/ibuildthecloud/rjson/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteModes(t *testing.T) {
	v, err := parser.Parse([]byte(`{name: 'x', arr: ['a', 'b',], "needs quoting": true}`))
	require.NoError(t, err)

	autogold.Expect(`{
  "name": "x",
  "arr": [
    "a",
    "b"
  ],
  "needs quoting": true
}
`).Equal(t, string(Write(v, Strict)))

	autogold.Expect(`{
  name: 'x',
  arr: [
    'a',
    'b'
  ],
  'needs quoting': true
}
`).Equal(t, string(Write(v, Relaxed)))
}

func TestStrictNumbers(t *testing.T) {
	tests := []struct {
		src    string
		expect autogold.Value
	}{
		{src: "8675309.", expect: autogold.Expect("8675309.0\n")},
		{src: ".8675309", expect: autogold.Expect("0.8675309\n")},
		{src: "-.5", expect: autogold.Expect("-0.5\n")},
		{src: "+1", expect: autogold.Expect("1\n")},
		{src: "0x10", expect: autogold.Expect("16\n")},
		{src: "1e2", expect: autogold.Expect("1e2\n")},
		{src: "5.e3", expect: autogold.Expect("5.0e3\n")},
		{src: "-5.E3", expect: autogold.Expect("-5.0E3\n")},
	}

	for i, test := range tests {
		t.Run(fmt.Sprintf("%s%d", t.Name(), i), func(t *testing.T) {
			v, err := parser.Parse([]byte(test.src))
			require.NoError(t, err)
			test.expect.Equal(t, string(Write(v, Strict)))
		})
	}
}

func TestStrictStringEscapes(t *testing.T) {
	tests := []struct {
		in     string
		expect autogold.Value
	}{
		{in: "bell\aend", expect: autogold.Expect("\"bell\\u0007end\"\n")},
		{in: "vt\vesc\x1b", expect: autogold.Expect("\"vt\\u000besc\\u001b\"\n")},
		{in: "cr\rback\bfeed\f", expect: autogold.Expect("\"cr\\rback\\bfeed\\f\"\n")},
		{in: "tab\tline\nquote\"slash\\", expect: autogold.Expect("\"tab\\tline\\nquote\\\"slash\\\\\"\n")},
		{in: "plain ünïcode ok", expect: autogold.Expect("\"plain ünïcode ok\"\n")},
	}

	for i, test := range tests {
		t.Run(fmt.Sprintf("%s%d", t.Name(), i), func(t *testing.T) {
			test.expect.Equal(t, string(Write((value.String)(test.in), Strict)))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	docs := []string{
		`{name: 'x', arr: ['a', 'b',],}`,
		`{n: 8675309., frac: .8675309, signed: +1, hex: 0x1F}`,
		`{nested: {deep: {list: [1, 2, 3]}}, "null": null, ok: true}`,
		`[
			// comments vanish on write
			{a: 1},
			'two',
		]`,
		`'a bare \'scalar\''`,
		`{escapes: "tab\there\nand a line"}`,
	}

	for i, doc := range docs {
		t.Run(fmt.Sprintf("%s%d", t.Name(), i), func(t *testing.T) {
			v, err := parser.Parse([]byte(doc))
			require.NoError(t, err)

			strict := Write(v, Strict)
			back, err := parser.Parse(strict)
			require.NoError(t, err, "strict output did not reparse: %s", strict)
			assert.True(t, value.Equal(v, back), "strict round trip changed the tree: %s", strict)

			relaxed := Write(v, Relaxed)
			back, err = parser.Parse(relaxed)
			require.NoError(t, err, "relaxed output did not reparse: %s", relaxed)
			assert.True(t, value.Equal(v, back), "relaxed round trip changed the tree: %s", relaxed)
		})
	}
}

func TestEmptyCollections(t *testing.T) {
	v, err := parser.Parse([]byte(`{empty: {}, list: []}`))
	require.NoError(t, err)
	autogold.Expect(`{
  "empty": {},
  "list": []
}
`).Equal(t, string(Write(v, Strict)))
}
