// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0x", formatBytes(nil))
	assert.Equal(t, "0x0102", formatBytes([]byte{1, 2}))

	long := bytes.Repeat([]byte{0xab}, maxBytesAttr+8)
	got := formatBytes(long)
	assert.True(t, strings.HasPrefix(got, "0x"+strings.Repeat("ab", maxBytesAttr)+".."), got)
	assert.True(t, strings.HasSuffix(got, "(len=40)"), got)
}

func TestTerminalGroups(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false).WithGroup("store").WithAttrs([]slog.Attr{slog.Int("round", 3)}))
	l.Info("written", "blocks", 2, "tx", []byte{0xff})

	line := out.String()
	assert.Contains(t, line, "store.round=3")
	assert.Contains(t, line, "store.blocks=2")
	assert.Contains(t, line, "store.tx=0xff")
}

func TestTerminalDerivedHandlersShareLevel(t *testing.T) {
	var lvl slog.LevelVar
	lvl.Set(LevelWarn)

	out := new(bytes.Buffer)
	base := NewTerminalHandlerWithLevel(out, &lvl, false)
	l := NewLogger(base.WithAttrs([]slog.Attr{slog.String("pkg", "x")}))

	l.Info("hidden")
	assert.Empty(t, out.String())

	lvl.Set(LevelInfo)
	l.Info("shown")
	assert.Contains(t, out.String(), "shown")
	assert.Contains(t, out.String(), "pkg=x")
}

var sink []byte

func BenchmarkAppendUint64(b *testing.B) {
	buf := make([]byte, 100)
	b.ReportAllocs()
	for b.Loop() {
		sink = appendUint64(buf, rand.Uint64(), false) //#nosec G404
	}
}
