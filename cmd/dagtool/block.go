// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/committee"
	"github.com/vechain/dagbft/verifier"
)

func signAction(ctx *cli.Context) error {
	c, err := loadCommittee(ctx)
	if err != nil {
		return err
	}
	if ctx.String(keyFlag.Name) == "" {
		return errors.New("missing --key")
	}
	key, err := loadKey(ctx.String(keyFlag.Name))
	if err != nil {
		return err
	}

	round := ctx.Uint64(roundFlag.Name)
	if round == 0 || round > uint64(^block.Round(0)) {
		return errors.Errorf("invalid --round %d", round)
	}
	author := committee.AuthorityIndex(ctx.Uint64(authorFlag.Name))
	if !c.IsValidIndex(author) {
		return errors.Errorf("invalid --author %d", ctx.Uint64(authorFlag.Name))
	}
	if c.PublicKey(author) != key.Public() {
		return errors.Errorf("key %v does not belong to authority %v", key.Public(), author)
	}

	ts := block.TimestampMs(ctx.Uint64(timestampFlag.Name))
	if ts == 0 {
		ts = block.TimestampMs(time.Now().UnixMilli())
	}

	var ancestors []block.BlockRef
	for _, s := range ctx.StringSlice(ancestorFlag.Name) {
		ref, err := parseAncestor(s)
		if err != nil {
			return err
		}
		ancestors = append(ancestors, ref)
	}
	var txs []block.Transaction
	for i, s := range ctx.StringSlice(txFlag.Name) {
		data, err := decodeHex(s)
		if err != nil {
			return errors.Wrapf(err, "--tx #%d", i)
		}
		txs = append(txs, block.NewTransaction(data))
	}

	blk := block.NewBlockV1(c.Epoch(), block.Round(round), author, ts, ancestors, txs, nil, nil)
	signed, err := block.NewSignedBlock(blk, key)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	v, err := verifier.New(c, verifier.WithConfig(cfg))
	if err != nil {
		return err
	}
	if err := v.VerifySigned(signed); err != nil {
		return errors.WithMessage(err, "signed block would be rejected")
	}

	data, err := signed.Serialize()
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, hex.EncodeToString(data))
	return nil
}

func verifyAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expect exactly one <hex|file> argument")
	}
	c, err := loadCommittee(ctx)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	data, err := readHexOrFile(ctx.Args().First())
	if err != nil {
		return err
	}

	v, err := verifier.New(c, verifier.WithConfig(cfg))
	if err != nil {
		return err
	}
	vb, err := v.Verify(data)
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	fmt.Fprintf(w, "ok %v\n", vb)
	fmt.Fprintf(w, "  ref        %s\n", formatRef(vb.Reference()))
	fmt.Fprintf(w, "  timestamp  %d\n", vb.TimestampMs())
	fmt.Fprintf(w, "  ancestors  %d\n", len(vb.Ancestors()))
	fmt.Fprintf(w, "  txs        %d (%d bytes)\n", len(vb.Transactions()), block.TotalSize(vb.Transactions()))
	fmt.Fprintf(w, "  votes      %d\n", len(vb.CommitVotes()))
	fmt.Fprintf(w, "  reports    %d\n", len(vb.MisbehaviorReports()))
	if ctx.Bool(dumpFlag.Name) {
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
		cfg.Fdump(w, vb.SignedBlock())
	}
	return nil
}
