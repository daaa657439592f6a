package common

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		text    string
		want    Kind
		wantErr bool
	}{
		{`{"a":1}`, KindObject, false},
		{`[1,2]`, KindArray, false},
		{`"x"`, KindString, false},
		{`12.5`, KindNumber, false},
		{`true`, KindBool, false},
		{`null`, KindNull, false},
		{``, KindNull, true},
		{`not json`, KindNull, true},
		{`{"a":1} trailing`, KindNull, true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			v, err := ParseValue(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Kind())
		})
	}
}

func TestValueAccessorsAreTotal(t *testing.T) {
	v, err := ParseValue(`{"name":"egg","tags":["a",1,"b",null],"n":3,"nil":null}`)
	require.NoError(t, err)

	obj, ok := v.AsObject()
	require.True(t, ok)
	assert.True(t, obj.Has("nil"))
	assert.False(t, obj.Has("missing"))
	assert.True(t, obj.HasAll("name", "tags", "n", "nil"))
	assert.False(t, obj.HasAll("name", "missing"))

	name, ok := v.Field("name")
	require.True(t, ok)
	s, ok := name.AsString()
	assert.True(t, ok)
	assert.Equal(t, "egg", s)

	tags, _ := v.Field("tags")
	assert.Equal(t, []string{"a", "b"}, tags.Strings())

	n, _ := v.Field("n")
	_, ok = n.AsString()
	assert.False(t, ok)
	assert.Equal(t, []string{}, n.Strings())

	_, ok = v.AsArray()
	assert.False(t, ok)

	_, ok = tags.Field("x")
	assert.False(t, ok)

	var zero Value
	assert.Equal(t, KindNull, zero.Kind())
	assert.Equal(t, []string{}, zero.Strings())
	_, ok = zero.AsObject()
	assert.False(t, ok)
}

func TestUnwrapCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n[1]\n```", `[1]`},
		{"  ```JSON\n{}\n```  ", `{}`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, UnwrapCodeFence(tt.in))
	}
}

func TestJoinIngredients(t *testing.T) {
	assert.Equal(t, "", JoinIngredients(nil))
	assert.Equal(t, "egg, milk", JoinIngredients([]string{"egg", "milk"}))
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****", MaskSecret("short"))
	assert.Equal(t, "abcd...wxyz", MaskSecret("abcdefghijklmnopqrstuvwxyz"))
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestIDFrom(ctx))
	assert.Equal(t, "", RequestIDFrom(context.Background()))
}

func TestCustomErrorResponse(t *testing.T) {
	err := ErrInvalidRequest.WithError(assert.AnError)

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, ErrorResponse{Code: ErrCodeInvalidRequest, Message: "invalid request"}, err.Response(false))
	assert.Equal(t, assert.AnError.Error(), err.Response(true).Details)
	assert.Nil(t, ErrInvalidRequest.Err)
}

func TestPredefinedErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrInvalidRequest.Status)
	assert.Equal(t, http.StatusGatewayTimeout, ErrRequestTimeout.Status)
	assert.Equal(t, http.StatusRequestEntityTooLarge, ErrPayloadTooLarge.Status)
	assert.Equal(t, http.StatusInternalServerError, ErrInternalError.Status)
}
