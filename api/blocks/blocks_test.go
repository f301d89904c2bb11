// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/dagbft/api/blocks"
	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/block/blocktest"
	"github.com/vechain/dagbft/blockstore"
	"github.com/vechain/dagbft/cry"
	"github.com/vechain/dagbft/verifier"
)

type testServer struct {
	*httptest.Server
	store   *blockstore.Store
	keys    []*cry.KeyPair
	genesis []*block.VerifiedBlock
}

func initBlockServer(t *testing.T) *testServer {
	c, keys := blocktest.Committee(t, 0, 4)
	store, err := blockstore.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	v, err := verifier.New(c)
	require.NoError(t, err)

	genesis := block.GenesisBlocks(c)
	require.NoError(t, store.Write(genesis...))

	router := mux.NewRouter()
	blocks.New(store, v).Mount(router, "/blocks")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return &testServer{ts, store, keys, genesis}
}

func (ts *testServer) genesisRefs() (refs []block.BlockRef) {
	for _, g := range ts.genesis {
		refs = append(refs, g.Reference())
	}
	return
}

func (ts *testServer) signed(t *testing.T, b *blocktest.TestBlock) *block.VerifiedBlock {
	blk := b.Build()
	return blocktest.SignAndVerify(t, blk, ts.keys[blk.Author()])
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) // #nosec
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func httpPost(t *testing.T, url string, obj any) ([]byte, int) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data)) // #nosec
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func TestGetRound(t *testing.T) {
	ts := initBlockServer(t)

	body, code := httpGet(t, ts.URL+"/blocks/0")
	require.Equal(t, http.StatusOK, code)

	var got []*blocks.JSONBlock
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, 4)
	for i, b := range got {
		assert.EqualValues(t, 0, b.Round)
		assert.EqualValues(t, i, b.Author)
		assert.Equal(t, ts.genesis[i].Digest(), b.Digest)
		assert.Empty(t, b.Ancestors)
		assert.Empty(t, b.Signature)
	}

	body, code = httpGet(t, ts.URL+"/blocks/1")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]\n", string(body))

	_, code = httpGet(t, ts.URL+"/blocks/abc")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetSlotAndBlock(t *testing.T) {
	ts := initBlockServer(t)
	vb := ts.signed(t, blocktest.New(1, 2).
		SetAncestors(ts.genesisRefs()).
		SetTransactions([]block.Transaction{block.NewTransaction([]byte{1, 2, 3})}))
	require.NoError(t, ts.store.Write(vb))

	body, code := httpGet(t, ts.URL+"/blocks/1/2")
	require.Equal(t, http.StatusOK, code)
	var slot []*blocks.JSONBlock
	require.NoError(t, json.Unmarshal(body, &slot))
	require.Len(t, slot, 1)
	assert.Equal(t, vb.Digest(), slot[0].Digest)
	assert.Len(t, slot[0].Ancestors, 4)
	assert.Equal(t, []hexutil.Bytes{{1, 2, 3}}, slot[0].Transactions)
	assert.Equal(t, hexutil.Bytes(vb.Signature()), slot[0].Signature)
	assert.Equal(t, len(vb.Serialized()), slot[0].Size)

	url := fmt.Sprintf("%s/blocks/1/2/%s", ts.URL, vb.Digest().Hex())
	body, code = httpGet(t, url)
	require.Equal(t, http.StatusOK, code)
	var one blocks.JSONBlock
	require.NoError(t, json.Unmarshal(body, &one))
	assert.Equal(t, vb.Digest(), one.Digest)

	body, code = httpGet(t, url+"?raw=true")
	require.Equal(t, http.StatusOK, code)
	var raw blocks.JSONRawBlock
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, vb.Serialized(), []byte(raw.Raw))

	_, code = httpGet(t, url+"?raw=maybe")
	assert.Equal(t, http.StatusBadRequest, code)

	// unknown digest
	body, code = httpGet(t, fmt.Sprintf("%s/blocks/1/2/%s", ts.URL, block.MaxBlockDigest.Hex()))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null\n", string(body))

	_, code = httpGet(t, ts.URL+"/blocks/1/2/0x1234")
	assert.Equal(t, http.StatusBadRequest, code)
	_, code = httpGet(t, ts.URL+"/blocks/1/x")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPostBlock(t *testing.T) {
	ts := initBlockServer(t)
	vb := ts.signed(t, blocktest.New(1, 0).SetAncestors(ts.genesisRefs()))

	body, code := httpPost(t, ts.URL+"/blocks", &blocks.JSONRawBlock{Raw: vb.Serialized()})
	require.Equal(t, http.StatusOK, code, string(body))

	var ref blocks.JSONBlockRef
	require.NoError(t, json.Unmarshal(body, &ref))
	assert.EqualValues(t, 1, ref.Round)
	assert.EqualValues(t, 0, ref.Author)
	assert.Equal(t, vb.Digest(), ref.Digest)

	stored, err := ts.store.Get(vb.Reference())
	require.NoError(t, err)
	assert.True(t, vb.Equal(stored))

	// posting twice is harmless
	_, code = httpPost(t, ts.URL+"/blocks", &blocks.JSONRawBlock{Raw: vb.Serialized()})
	assert.Equal(t, http.StatusOK, code)
}

func TestPostBlockRejected(t *testing.T) {
	ts := initBlockServer(t)

	// signed by the wrong authority
	forged := blocktest.SignAndVerify(t, blocktest.New(1, 0).Build(), ts.keys[1])
	_, code := httpPost(t, ts.URL+"/blocks", &blocks.JSONRawBlock{Raw: forged.Serialized()})
	assert.Equal(t, http.StatusBadRequest, code)

	has, err := ts.store.Has(forged.Reference())
	require.NoError(t, err)
	assert.False(t, has)

	_, code = httpPost(t, ts.URL+"/blocks", &blocks.JSONRawBlock{Raw: []byte{0xc0}})
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpPost(t, ts.URL+"/blocks", &blocks.JSONRawBlock{})
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpPost(t, ts.URL+"/blocks", map[string]string{"unknown": "0x00"})
	assert.Equal(t, http.StatusBadRequest, code)
}
