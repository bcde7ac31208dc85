package bind

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hexops/autogold/v2"
	"github.com/ibuildthecloud/rjson/convert"
	"github.com/ibuildthecloud/rjson/parser"
	"github.com/ibuildthecloud/rjson/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type address struct {
	City string `rjson:"city"`
	Zip  string `rjson:"zip"`
}

type profile struct {
	Name     string            `rjson:"name"`
	Age      int               `rjson:"age"`
	Nickname *string           `rjson:"nickname"`
	Tags     []string          `rjson:"tags"`
	Labels   map[string]string `rjson:"labels"`
	Address  *address          `rjson:"address"`
	Secret   string            `rjson:"-"`
	Key      []byte            `rjson:"key"`
	ID       uuid.UUID         `rjson:"id"`
	When     time.Time         `rjson:"when"`
}

func decode(t *testing.T, doc string, target any) {
	t.Helper()
	parsed, err := parser.Parse([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, (&Binder{}).Decode(parsed, target))
}

func TestMergeDecode(t *testing.T) {
	type pair struct {
		A int `rjson:"a"`
		B int `rjson:"b"`
	}
	target := pair{A: 1, B: 2}

	decode(t, `{"a": 9}`, &target)

	assert.Equal(t, pair{A: 9, B: 2}, target)
}

func TestNullVsAbsent(t *testing.T) {
	nick := "buddy"
	target := profile{Nickname: &nick}

	// an absent key leaves the member exactly as it was
	decode(t, `{}`, &target)
	require.NotNil(t, target.Nickname)
	assert.Equal(t, "buddy", *target.Nickname)

	// a present null is a value: the member moves to its absent state
	decode(t, `{nickname: null}`, &target)
	assert.Nil(t, target.Nickname)
}

func TestNullOnNonNullable(t *testing.T) {
	target := profile{Name: "keep"}
	decode(t, `{name: null}`, &target)
	assert.Equal(t, "keep", target.Name)
}

func TestUnknownKeysIgnored(t *testing.T) {
	target := profile{}
	decode(t, `{name: 'x', futureField: {complex: [1, 2]}}`, &target)
	assert.Equal(t, "x", target.Name)
}

func TestTransientExcluded(t *testing.T) {
	target := profile{Secret: "keep"}
	decode(t, `{Secret: 'overwrite?'}`, &target)
	assert.Equal(t, "keep", target.Secret)
}

func TestNestedInstantiation(t *testing.T) {
	target := profile{}
	decode(t, `{address: {city: 'Oslo'}}`, &target)
	require.NotNil(t, target.Address)
	assert.Equal(t, "Oslo", target.Address.City)

	// merging into the existing instance keeps the other member
	decode(t, `{address: {zip: '0150'}}`, &target)
	assert.Equal(t, "Oslo", target.Address.City)
	assert.Equal(t, "0150", target.Address.Zip)
}

func TestCollections(t *testing.T) {
	target := profile{
		Tags:   []string{"old"},
		Labels: map[string]string{"env": "dev", "tier": "web"},
	}
	decode(t, `{tags: ['a', 'b'], labels: {env: 'prod'}}`, &target)

	// lists replace, mappings merge key by key
	assert.Equal(t, []string{"a", "b"}, target.Tags)
	assert.Equal(t, map[string]string{"env": "prod", "tier": "web"}, target.Labels)
}

func TestBuiltinConverters(t *testing.T) {
	target := profile{}
	decode(t, `{
		key: 'aGVsbG8',
		id: '6ba7b810-9dad-11d1-80b4-00c04fd430c8',
		when: '2023-04-05T06:07:08',
	}`, &target)

	assert.Equal(t, []byte("hello"), target.Key)
	assert.Equal(t, uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), target.ID)
	assert.Equal(t, time.Date(2023, 4, 5, 6, 7, 8, 0, time.UTC), target.When)
}

func TestBindingError(t *testing.T) {
	target := profile{}
	parsed, err := parser.Parse([]byte(`{age: 'not a number'}`))
	require.NoError(t, err)

	err = (&Binder{}).Decode(parsed, &target)
	require.Error(t, err)

	var bindErr *BindingError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, "age", bindErr.Member)
}

type compactRef struct {
	ID uuid.UUID `rjson:"id"`
}

func TestConverterOverride(t *testing.T) {
	Define(compactRef{}, Member{Name: "id", Field: "ID", Converter: &convert.UUIDBase64})

	u := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	encoded, err := (&Binder{}).Encode(compactRef{ID: u})
	require.NoError(t, err)

	s, ok := encoded.(*value.Object).LookupValue("id")
	require.True(t, ok)
	assert.Len(t, s.NativeValue(), 22)

	target := compactRef{}
	require.NoError(t, (&Binder{}).Decode(encoded, &target))
	assert.Equal(t, u, target.ID)
}

type tracked struct {
	name string
	sets int
}

func (c *tracked) Name() string {
	return c.name
}

func (c *tracked) SetName(v string) {
	c.name = v
	c.sets++
}

func TestAccessorMembers(t *testing.T) {
	Define(tracked{}, Member{Name: "name", Getter: "Name", Setter: "SetName"})

	target := tracked{}
	decode(t, `{name: 'via setter'}`, &target)
	assert.Equal(t, "via setter", target.name)
	assert.Equal(t, 1, target.sets)

	encoded, err := (&Binder{}).Encode(&target)
	require.NoError(t, err)
	autogold.Expect(map[string]interface{}{"name": "via setter"}).Equal(t, encoded.NativeValue())
}

type ticketState int

const (
	stateOpen ticketState = iota + 1
	stateClosed
)

var stateConverter = convert.Enum(map[string]ticketState{
	"open":   stateOpen,
	"closed": stateClosed,
})

type ticket struct {
	State ticketState
	Title string
}

func TestEnumLeniency(t *testing.T) {
	Define(ticket{},
		Member{Name: "state", Field: "State", Converter: &stateConverter},
		Member{Name: "title", Field: "Title"},
	)

	target := ticket{State: stateOpen}
	decode(t, `{state: 'closed', title: 'first'}`, &target)
	assert.Equal(t, stateClosed, target.State)

	// unknown symbolic text skips the member, the document still decodes
	decode(t, `{state: 'wontfix', title: 'second'}`, &target)
	assert.Equal(t, stateClosed, target.State)
	assert.Equal(t, "second", target.Title)
}

type collision struct {
	A string
	B string
}

func TestDuplicateMemberNames(t *testing.T) {
	Define(collision{},
		Member{Name: "same", Field: "A"},
		Member{Name: "same", Field: "B"},
	)

	parsed, err := parser.Parse([]byte(`{same: 'x'}`))
	require.NoError(t, err)
	err = (&Binder{}).Decode(parsed, &collision{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than once")
}

func TestEncodeProjection(t *testing.T) {
	nick := "buddy"
	target := profile{
		Name:     "x",
		Nickname: &nick,
		Address:  &address{City: "Oslo"},
	}

	projected, err := (&Binder{}).Encode(target, EncodeOptions{OmitDefaults: true})
	require.NoError(t, err)
	autogold.Expect(map[string]interface{}{
		"name":     "x",
		"nickname": "buddy",
		"address":  map[string]interface{}{"city": "Oslo"},
	}).Equal(t, projected.NativeValue())

	// declaration order drives entry order
	obj := projected.(*value.Object)
	assert.Equal(t, []string{"name", "nickname", "address"}, obj.Keys())
}

func TestEncodeFull(t *testing.T) {
	encoded, err := (&Binder{}).Encode(profile{Name: "x"})
	require.NoError(t, err)

	obj := encoded.(*value.Object)
	assert.Equal(t,
		[]string{"name", "age", "nickname", "tags", "labels", "address", "key", "id", "when"},
		obj.Keys())

	nickname, ok := obj.LookupValue("nickname")
	require.True(t, ok)
	assert.Equal(t, value.NullKind, nickname.Kind())
}

func TestConcurrentFirstUse(t *testing.T) {
	type fresh struct {
		N int `rjson:"n"`
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			target := fresh{}
			parsed, err := parser.Parse([]byte(`{n: 7}`))
			assert.NoError(t, err)
			assert.NoError(t, (&Binder{}).Decode(parsed, &target))
			assert.Equal(t, 7, target.N)
		}()
	}
	wg.Wait()
}
