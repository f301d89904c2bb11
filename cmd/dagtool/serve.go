// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/dagbft/admin"
	"github.com/vechain/dagbft/api"
	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/blockstore"
	"github.com/vechain/dagbft/committee"
	"github.com/vechain/dagbft/health"
	"github.com/vechain/dagbft/log"
	"github.com/vechain/dagbft/lvldb"
	"github.com/vechain/dagbft/metrics"
	"github.com/vechain/dagbft/verifier"
)

// the node is reported unhealthy when no new round is stored for this long.
const healthWindow = time.Minute

func serveAction(ctx *cli.Context) error {
	defer func() { log.Info("exited") }()

	c, err := loadCommittee(ctx)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	store, instanceDir, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer func() { log.Info("closing block store..."); store.Close() }()

	if err := store.Write(block.GenesisBlocks(c)...); err != nil {
		return errors.WithMessage(err, "write genesis")
	}

	v, err := verifier.New(c, verifier.WithConfig(cfg))
	if err != nil {
		return err
	}
	go checkClockOffset(time.Duration(cfg.MaxTimestampDriftMs) * time.Millisecond)

	var apiLogs atomic.Bool
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	handler := api.New(store, v, c, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		PprofOn:              ctx.Bool(pprofFlag.Name),
		EnableReqLogger:      &apiLogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
	})
	apiURL, srvCloser, err := startAPIServer(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	defer func() { log.Info("stopping API server..."); srvCloser() }()

	if addr := ctx.String(adminAddrFlag.Name); addr != "" {
		adminURL, adminCloser, err := admin.StartServer(addr, &logLevel, &apiLogs, health.New(store, healthWindow))
		if err != nil {
			return err
		}
		defer func() { log.Info("stopping admin server..."); adminCloser() }()
		log.Info("admin server started", "url", adminURL)
	}

	log.Info("block store API started",
		"url", apiURL,
		"epoch", c.Epoch(),
		"committee", c.Size(),
		"data", instanceDir,
		"lastRound", store.LastRound(),
	)

	<-handleExitSignal().Done()
	return nil
}

func openStore(ctx *cli.Context, c *committee.Committee) (*blockstore.Store, string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return nil, "", errors.New("unable to infer default data dir, use --data-dir to specify")
	}
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("epoch-%d", c.Epoch()))

	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	store, err := blockstore.Open(filepath.Join(instanceDir, "blocks.db"), blockstore.Options{
		Options: lvldb.Options{
			CacheSize:              cacheMB / 2,
			OpenFilesCacheCapacity: 64,
		},
		RawCacheMB: cacheMB / 2,
	})
	if err != nil {
		return nil, "", errors.WithMessage(err, "open block store")
	}
	return store, instanceDir, nil
}

func startAPIServer(addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes sync.WaitGroup
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		goes.Wait()
	}, nil
}
