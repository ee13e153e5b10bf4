package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{`{"a": 1}`, `{"a": 1}`},
		{"  \n```json\n{}\n```  ", "{}"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StripCodeFence(tc.in))
	}
}

func TestSliceJSONObject(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, SliceJSONObject(`Here you go: {"a": 1} hope that helps`))
	assert.Equal(t, `{"a": {"b": 2}}`, SliceJSONObject(`{"a": {"b": 2}}`))
	// 沒有物件時原樣回傳
	assert.Equal(t, "no json here", SliceJSONObject("no json here"))
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	err := ParseJSON(`{"a": 1}{"b": 2}`, &v)
	assert.Error(t, err)
}

func TestParseJSONStrictRejectsUnknownFields(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, ParseJSON(`{"a": 1, "extra": true}`, &v))
	assert.Error(t, ParseJSONStrict(`{"a": 1, "extra": true}`, &v))
}

func TestQuoteJSONKeys(t *testing.T) {
	assert.Equal(t, `{"a": 1, "b": 2}`, QuoteJSONKeys(`{a: 1, b: 2}`))
	// 已加引號的鍵不受影響
	assert.Equal(t, `{"a": 1}`, QuoteJSONKeys(`{"a": 1}`))
}

func TestToJSONRoundTrip(t *testing.T) {
	s, err := ToJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, s)
}
