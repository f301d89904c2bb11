// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/committee"
)

const committeeFileName = "committee.yaml"

func keyFileName(i committee.AuthorityIndex) string {
	return fmt.Sprintf("authority-%02d.key", uint32(i))
}

func keygenAction(ctx *cli.Context) error {
	count := ctx.Int(countFlag.Name)
	if count <= 0 || count > int(committee.MaxAuthorityIndex) {
		return errors.Errorf("invalid --count %d", count)
	}
	out := ctx.String(outFlag.Name)
	if err := os.MkdirAll(out, 0o700); err != nil {
		return errors.Wrap(err, "create output dir")
	}

	c, keys, err := committee.NewLocal(committee.Epoch(ctx.Uint64(epochFlag.Name)), count)
	if err != nil {
		return err
	}
	for i, key := range keys {
		if err := saveKey(filepath.Join(out, keyFileName(committee.AuthorityIndex(i))), key); err != nil {
			return err
		}
	}
	path := filepath.Join(out, committeeFileName)
	if err := c.SaveFile(path); err != nil {
		return err
	}

	w := ctx.App.Writer
	fmt.Fprintf(w, "committee of %d authorities, epoch %d: %s\n", c.Size(), c.Epoch(), path)
	for i, a := range c.Authorities() {
		fmt.Fprintf(w, "  %v %s %v\n", i, keyFileName(i), a.ProtocolKey)
	}
	return nil
}

func genesisAction(ctx *cli.Context) error {
	c, err := loadCommittee(ctx)
	if err != nil {
		return err
	}
	for _, g := range block.GenesisBlocks(c) {
		fmt.Fprintln(ctx.App.Writer, formatRef(g.Reference()))
	}
	return nil
}
