package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(reader("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(reader("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(reader(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetTextDefault(t *testing.T) {
	var out bytes.Buffer
	got, err := GetTextDefault(reader("\n"), "Host", "srv", &out)
	require.NoError(t, err)
	assert.Equal(t, "srv", got)
	assert.Contains(t, out.String(), "Host [srv]")

	got, err = GetTextDefault(reader("other\n"), "Host", "srv", &out)
	require.NoError(t, err)
	assert.Equal(t, "other", got)
}

func TestGetIntDefault(t *testing.T) {
	var out bytes.Buffer
	n, err := GetIntDefault(reader("\n"), "Port", 3389, &out)
	require.NoError(t, err)
	assert.Equal(t, 3389, n)

	n, err = GetIntDefault(reader("3390\n"), "Port", 3389, &out)
	require.NoError(t, err)
	assert.Equal(t, 3390, n)

	_, err = GetIntDefault(reader("abc\n"), "Port", 3389, &out)
	require.Error(t, err)
}

func TestGetBoolDefault(t *testing.T) {
	var out bytes.Buffer
	tests := []struct {
		in      string
		current bool
		want    bool
		wantErr bool
	}{
		{"\n", true, true, false},
		{"\n", false, false, false},
		{"y\n", false, true, false},
		{"No\n", true, false, false},
		{"perhaps\n", true, false, true},
	}
	for _, tt := range tests {
		got, err := GetBoolDefault(reader(tt.in), "Q", tt.current, &out)
		if tt.wantErr {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, Confirm(reader("yes\n"), "Sure?", &out))
	assert.False(t, Confirm(reader("\n"), "Sure?", &out))
	assert.False(t, Confirm(reader("what\n"), "Sure?", &out))
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out, "Password: ")
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out, "Password: ")
	require.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := parseID([]string{"42"}, "show <id>")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseID(nil, "show <id>")
	require.EqualError(t, err, "usage: show <id>")

	for _, bad := range []string{"x", "0", "-3"} {
		_, err = parseID([]string{bad}, "show <id>")
		require.Error(t, err, bad)
	}
}
