// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/blockstore"
	"github.com/vechain/dagbft/log"
	"github.com/vechain/dagbft/verifier"
)

type checkReport struct {
	Blocks           int
	Invalid          int
	MissingAncestors int
}

func checkAction(ctx *cli.Context) error {
	c, err := loadCommittee(ctx)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	store, instanceDir, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer store.Close()

	v, err := verifier.New(c, verifier.WithConfig(cfg))
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	fmt.Fprintf(w, ">> Checking block store [%v] <<\n", instanceDir)
	report, err := checkStore(store, v, w, !ctx.Bool(noProgressFlag.Name))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "rounds:            %d\n", store.LastRound())
	fmt.Fprintf(w, "blocks:            %d\n", report.Blocks)
	fmt.Fprintf(w, "invalid:           %d\n", report.Invalid)
	fmt.Fprintf(w, "missing ancestors: %d\n", report.MissingAncestors)
	if report.Invalid > 0 {
		return errors.Errorf("%d invalid blocks found", report.Invalid)
	}
	return nil
}

// checkStore re-verifies every stored block above genesis and looks up the
// ancestors it references.
func checkStore(store *blockstore.Store, v *verifier.Verifier, out io.Writer, progress bool) (*checkReport, error) {
	last := store.LastRound()

	bar := pb.New64(int64(last) + 1).
		Set64(0).
		SetMaxWidth(90)
	if progress {
		bar.Output = out
	} else {
		bar.NotPrint = true
	}
	bar.Start()
	defer bar.Finish()

	var report checkReport
	for round := block.Round(0); ; round++ {
		blocks, err := store.Range(
			block.NewBlockRef(round, 0, block.MinBlockDigest),
			block.NewBlockRef(round+1, 0, block.MinBlockDigest),
		)
		if err != nil {
			return nil, errors.WithMessagef(err, "load round %d", round)
		}
		for _, vb := range blocks {
			report.Blocks++
			if round == 0 {
				continue
			}
			if err := v.VerifySigned(vb.SignedBlock()); err != nil {
				report.Invalid++
				log.Warn("invalid stored block", "ref", vb.Reference(), "err", err)
				continue
			}
			for _, a := range vb.SignedBlock().Block().Ancestors() {
				has, err := store.Has(a)
				if err != nil {
					return nil, err
				}
				if !has {
					report.MissingAncestors++
					log.Debug("missing ancestor", "ref", vb.Reference(), "ancestor", a)
				}
			}
		}
		bar.Increment()
		if round == last {
			break
		}
	}
	return &report, nil
}
