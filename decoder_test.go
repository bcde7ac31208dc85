package rjson

import (
	"testing"

	"github.com/hexops/autogold/v2"
	"github.com/ibuildthecloud/rjson/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal(t *testing.T) {
	data := map[string]any{}

	err := Unmarshal([]byte(`
// settings for the demo
{
	name: 'x',
	arr: ['a', 'b',],
}`), &data)
	require.NoError(t, err)

	autogold.Expect(map[string]interface{}{
		"name": "x",
		"arr":  []interface{}{"a", "b"},
	}).Equal(t, data)
}

func TestUnmarshalValueTree(t *testing.T) {
	var tree value.Value
	err := Unmarshal([]byte(`{a: 1}`), &tree)
	require.NoError(t, err)

	obj, ok := tree.(*value.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, obj.Keys())
}

type serverConfig struct {
	Listen   string            `rjson:"listen"`
	Replicas int               `rjson:"replicas"`
	Labels   map[string]string `rjson:"labels"`
}

func TestUnmarshalMerge(t *testing.T) {
	cfg := serverConfig{
		Listen:   ":8080",
		Replicas: 3,
	}

	// only the keys present in the document are written
	err := Unmarshal([]byte(`{replicas: 5}`), &cfg)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, 5, cfg.Replicas)
}

func TestUnmarshalSourceName(t *testing.T) {
	err := Unmarshal([]byte(`{broken`), &map[string]any{}, Option{
		SourceName: "config.rjson",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.rjson:")
}

func TestUnmarshalList(t *testing.T) {
	var out []any
	err := Unmarshal([]byte(`[1, 'two', null]`), &out)
	require.NoError(t, err)
	autogold.Expect([]interface{}{int64(1), "two", nil}).Equal(t, out)
}
