package rjson

import (
	"testing"

	"github.com/hexops/autogold/v2"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	out, err := Marshal(serverConfig{
		Listen:   ":8080",
		Replicas: 3,
	})
	require.NoError(t, err)

	autogold.Expect(`{
  "listen": ":8080",
  "replicas": 3,
  "labels": null
}
`).Equal(t, string(out))
}

func TestMarshalRelaxed(t *testing.T) {
	out, err := MarshalRelaxed(serverConfig{
		Listen: ":8080",
		Labels: map[string]string{"env": "dev"},
	})
	require.NoError(t, err)

	// the projection drops members still holding their defaults
	autogold.Expect(`{
  listen: ':8080',
  labels: {
    env: 'dev'
  }
}
`).Equal(t, string(out))
}

func TestMarshalScalars(t *testing.T) {
	out, err := Marshal("x")
	require.NoError(t, err)
	autogold.Expect("\"x\"\n").Equal(t, string(out))

	out, err = Marshal(42)
	require.NoError(t, err)
	autogold.Expect("42\n").Equal(t, string(out))

	out, err = Marshal(nil)
	require.NoError(t, err)
	autogold.Expect("null\n").Equal(t, string(out))

	var cfg *serverConfig
	out, err = Marshal(cfg)
	require.NoError(t, err)
	autogold.Expect("null\n").Equal(t, string(out))

	out, err = MarshalRelaxed("x")
	require.NoError(t, err)
	autogold.Expect("'x'\n").Equal(t, string(out))
}

func TestMarshalRoundTrip(t *testing.T) {
	in := serverConfig{
		Listen:   ":9090",
		Replicas: 2,
		Labels:   map[string]string{"a": "1"},
	}

	out, err := MarshalRelaxed(in)
	require.NoError(t, err)

	got := serverConfig{}
	require.NoError(t, Unmarshal(out, &got))
	require.Equal(t, in, got)
}

func TestFormat(t *testing.T) {
	out, err := Format([]byte(`{name:'x',arr:['a','b',],}  // trailing note`))
	require.NoError(t, err)

	autogold.Expect(`{
  name: 'x',
  arr: [
    'a',
    'b'
  ]
}
`).Equal(t, string(out))
}

func TestFormatSyntaxError(t *testing.T) {
	_, err := Format([]byte(`{a:`))
	require.Error(t, err)
}
