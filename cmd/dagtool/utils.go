// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/hex"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/committee"
	"github.com/vechain/dagbft/cry"
	"github.com/vechain/dagbft/log"
	"github.com/vechain/dagbft/thor"
)

// logLevel is shared with the admin server to change verbosity at runtime.
var logLevel slog.LevelVar

func initLogger(ctx *cli.Context) error {
	lvl := ctx.Uint64(verbosityFlag.Name)
	if lvl > math.MaxInt32 {
		return errors.New("verbosity out of range")
	}
	logLevel.Set(log.FromLegacyLevel(int(lvl)))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, &logLevel)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, &logLevel, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
	return nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func loadCommittee(ctx *cli.Context) (*committee.Committee, error) {
	path := ctx.String(committeeFlag.Name)
	if path == "" {
		return nil, errors.New("missing --committee")
	}
	return committee.LoadFile(path)
}

// loadConfig reads block limits from the --config file, falling back to defaults.
func loadConfig(ctx *cli.Context) (thor.Config, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return thor.DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return thor.Config{}, errors.Wrap(err, "read config")
	}
	var cfg thor.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return thor.Config{}, errors.Wrap(err, "decode config")
	}
	cfg = cfg.Merge()
	if err := cfg.Validate(); err != nil {
		return thor.Config{}, errors.WithMessage(err, path)
	}
	return cfg, nil
}

func loadKey(path string) (*cry.KeyPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read key file")
	}
	key, err := cry.KeyPairFromHex(string(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode key file")
	}
	return key, nil
}

func saveKey(path string, key *cry.KeyPair) error {
	return errors.Wrap(os.WriteFile(path, []byte(key.Hex()), 0o600), "write key file")
}

// parseAncestor parses "round:author:digest".
func parseAncestor(s string) (block.BlockRef, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return block.BlockRef{}, errors.Errorf("ancestor %q: want round:author:digest", s)
	}
	round, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return block.BlockRef{}, errors.Wrapf(err, "ancestor %q: round", s)
	}
	author, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return block.BlockRef{}, errors.Wrapf(err, "ancestor %q: author", s)
	}
	digest, err := block.ParseBlockDigest(parts[2])
	if err != nil {
		return block.BlockRef{}, errors.WithMessagef(err, "ancestor %q", s)
	}
	return block.NewBlockRef(block.Round(round), committee.AuthorityIndex(author), digest), nil
}

func formatRef(ref block.BlockRef) string {
	return strconv.FormatUint(uint64(ref.Round), 10) + ":" +
		strconv.FormatUint(uint64(ref.Author), 10) + ":" +
		ref.Digest.Hex()
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}

// readHexOrFile decodes arg as hex, or as the hex content of the file it names.
func readHexOrFile(arg string) ([]byte, error) {
	if data, err := decodeHex(arg); err == nil {
		return data, nil
	}
	content, err := os.ReadFile(arg)
	if err != nil {
		return nil, errors.Errorf("%q is neither hex nor a readable file", arg)
	}
	data, err := decodeHex(string(content))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", arg)
	}
	return data, nil
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "dagbft")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "dagbft")
		default:
			return filepath.Join(home, ".dagbft")
		}
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
