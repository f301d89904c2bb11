// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vechain/dagbft/api/utils"
	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/committee"
)

type Node struct {
	committee *committee.Committee
	genesis   []*block.VerifiedBlock
}

func New(c *committee.Committee) *Node {
	return &Node{
		c,
		block.GenesisBlocks(c),
	}
}

func (n *Node) handleGetGenesis(w http.ResponseWriter, _ *http.Request) error {
	refs := make([]*GenesisRef, 0, len(n.genesis))
	for _, b := range n.genesis {
		ref := b.Reference()
		refs = append(refs, &GenesisRef{
			Round:  ref.Round,
			Author: ref.Author,
			Digest: ref.Digest,
		})
	}
	return utils.WriteJSON(w, refs)
}

func (n *Node) handleGetCommittee(w http.ResponseWriter, _ *http.Request) error {
	c := &Committee{
		Epoch:      n.committee.Epoch(),
		TotalStake: n.committee.TotalStake(),
	}
	for i, a := range n.committee.Authorities() {
		c.Authorities = append(c.Authorities, &Authority{
			Index:     i,
			Name:      i.String(),
			Authority: a,
		})
	}
	return utils.WriteJSON(w, c)
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	root.Path(pathPrefix + "/genesis").
		Methods(http.MethodGet).
		Name("node_get_genesis").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetGenesis))
	root.Path(pathPrefix + "/committee").
		Methods(http.MethodGet).
		Name("node_get_committee").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetCommittee))
}
