// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vechain/dagbft/api/utils"
	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/log"
	"github.com/vechain/dagbft/thor"
)

var logger = log.WithContext("pkg", "api/blocks")

// Store is the block storage the API reads from and writes to.
type Store interface {
	Write(blocks ...*block.VerifiedBlock) error
	Get(ref block.BlockRef) (*block.VerifiedBlock, error)
	Slot(slot block.Slot) ([]*block.VerifiedBlock, error)
	Range(from, to block.BlockRef) ([]*block.VerifiedBlock, error)
	IsNotFound(err error) bool
}

// Verifier checks serialized blocks submitted by clients.
type Verifier interface {
	Verify(serialized []byte) (*block.VerifiedBlock, error)
}

type Blocks struct {
	store    Store
	verifier Verifier
}

func New(store Store, verifier Verifier) *Blocks {
	return &Blocks{
		store,
		verifier,
	}
}

func (b *Blocks) handleGetRound(w http.ResponseWriter, req *http.Request) error {
	round, err := utils.ParseRound(mux.Vars(req)["round"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "round"))
	}

	from := block.NewBlockRef(round, 0, block.MinBlockDigest)
	to := block.MaxBlockRef
	if round < thor.MaxRound {
		to = block.NewBlockRef(round+1, 0, block.MinBlockDigest)
	}
	blocks, err := b.store.Range(from, to)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertBlocks(blocks))
}

func (b *Blocks) handleGetSlot(w http.ResponseWriter, req *http.Request) error {
	slot, err := parseSlot(req)
	if err != nil {
		return err
	}
	blocks, err := b.store.Slot(slot)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertBlocks(blocks))
}

func (b *Blocks) handleGetBlock(w http.ResponseWriter, req *http.Request) error {
	slot, err := parseSlot(req)
	if err != nil {
		return err
	}
	digest, err := block.ParseBlockDigest(mux.Vars(req)["digest"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "digest"))
	}
	raw, err := utils.ParseBool(req.URL.Query().Get("raw"))
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "raw"))
	}

	blk, err := b.store.Get(block.NewBlockRef(slot.Round, slot.Authority, digest))
	if err != nil {
		if b.store.IsNotFound(err) {
			return utils.WriteJSON(w, nil)
		}
		return err
	}
	if raw {
		return utils.WriteJSON(w, &JSONRawBlock{Raw: hexutil.Bytes(blk.Serialized())})
	}
	return utils.WriteJSON(w, convertBlock(blk))
}

func (b *Blocks) handlePostBlock(w http.ResponseWriter, req *http.Request) error {
	var body JSONRawBlock
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if len(body.Raw) == 0 {
		return utils.BadRequest(errors.New("body: empty raw block"))
	}

	blk, err := b.verifier.Verify(body.Raw)
	if err != nil {
		logger.Debug("rejected block", "err", err)
		return utils.BadRequest(errors.WithMessage(err, "block"))
	}
	if err := b.store.Write(blk); err != nil {
		return err
	}
	logger.Debug("accepted block", "ref", blk.Reference())
	return utils.WriteJSON(w, convertRef(blk.Reference()))
}

func parseSlot(req *http.Request) (block.Slot, error) {
	vars := mux.Vars(req)
	round, err := utils.ParseRound(vars["round"])
	if err != nil {
		return block.Slot{}, utils.BadRequest(errors.WithMessage(err, "round"))
	}
	author, err := utils.ParseAuthority(vars["author"])
	if err != nil {
		return block.Slot{}, utils.BadRequest(errors.WithMessage(err, "author"))
	}
	return block.NewSlot(round, author), nil
}

func (b *Blocks) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodPost).
		Name("blocks_post_block").
		HandlerFunc(utils.WrapHandlerFunc(b.handlePostBlock))
	sub.Path("/{round}").
		Methods(http.MethodGet).
		Name("blocks_get_round").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetRound))
	sub.Path("/{round}/{author}").
		Methods(http.MethodGet).
		Name("blocks_get_slot").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetSlot))
	sub.Path("/{round}/{author}/{digest}").
		Methods(http.MethodGet).
		Name("blocks_get_block").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetBlock))
}
