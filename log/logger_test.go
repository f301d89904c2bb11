// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHandlerWithAttrs(t *testing.T) {
	out := new(bytes.Buffer)
	glog := NewLogger(NewTerminalHandlerWithLevel(out, new(slog.LevelVar), false).WithAttrs([]slog.Attr{slog.String("baz", "bat")}))
	glog.Info("a message", "foo", "bar")
	have := out.String()
	// The timestamp is locale-dependent, so we want to trim that off
	// "INFO [01-01|00:00:00.000] a message ..." -> "a message..."
	have = strings.Split(have, "]")[1]
	want := " a message                                baz=bat foo=bar\n"
	assert.Equal(t, want, have)
}

func TestTerminalHandlerLevel(t *testing.T) {
	out := new(bytes.Buffer)
	var lvl slog.LevelVar
	lvl.Set(slog.LevelWarn)
	l := NewLogger(NewTerminalHandlerWithLevel(out, &lvl, false))

	l.Info("dropped")
	l.Debug("dropped")
	assert.Empty(t, out.String())

	l.Warn("kept")
	assert.Contains(t, out.String(), "kept")
	assert.True(t, strings.HasPrefix(out.String(), "WARN "))
}

func TestJSONHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(JSONHandler(out))
	l.Debug("hi there", "n", big.NewInt(1234), "raw", []byte{0xab})

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "debug", rec["lvl"])
	assert.Equal(t, "hi there", rec["msg"])
	assert.Equal(t, "1234", rec["n"])
	assert.Equal(t, "0xab", rec["raw"])
}

func TestOddArgumentsNormalized(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(LogfmtHandler(out))
	l.Info("odd", "key")
	assert.Contains(t, out.String(), errorKey)
}

func TestWithContextFollowsRoot(t *testing.T) {
	prev := Root()
	defer SetDefault(prev)

	pkgLogger := WithContext("pkg", "test")

	out := new(bytes.Buffer)
	SetDefault(NewLogger(NewTerminalHandler(out, false)))
	pkgLogger.Info("after set default", "k", 1)

	assert.Contains(t, out.String(), "pkg=test")
	assert.Contains(t, out.String(), "k=1")

	child := pkgLogger.New("sub", "x")
	child.Warn("child")
	assert.Contains(t, out.String(), "sub=x")
}

func TestFromLegacyLevel(t *testing.T) {
	tests := []struct {
		in   int
		want slog.Level
	}{
		{0, LevelCrit},
		{1, LevelError},
		{2, LevelWarn},
		{3, LevelInfo},
		{4, LevelDebug},
		{5, LevelTrace},
		{9, LevelTrace},
		{-1, LevelCrit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FromLegacyLevel(tt.in), "legacy level %d", tt.in)
	}
	assert.Equal(t, "trace", LevelString(LevelTrace))
	assert.Equal(t, "INFO ", LevelAlignedString(LevelInfo))
}

func TestAppendUint64(t *testing.T) {
	assert.Equal(t, "99999", string(appendUint64(nil, 99999, false)))
	assert.Equal(t, "1,000,000", string(appendUint64(nil, 1000000, false)))
	assert.Equal(t, "-123,456", string(appendInt64(nil, -123456)))
}
