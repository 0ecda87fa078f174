package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meverselabs/farms/cmd/closer"
	"github.com/meverselabs/farms/cmd/config"
	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/service/apiserver"
	"github.com/meverselabs/farms/service/journal"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, config.LoadString("store_driver = \"bolt\"\nrpc_port = 48100\n", config.TOML, &cfg))
	cfg.setDefaults()
	assert.Equal(t, "./fdata", cfg.StoreRoot)
	assert.Equal(t, "bolt", cfg.StoreDriver)
	assert.Equal(t, 48100, cfg.RPCPort)
	assert.Equal(t, filepath.Join("./fdata", "journal.db"), cfg.JournalPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestSetupLog(t *testing.T) {
	level := logrus.GetLevel()
	t.Cleanup(func() { logrus.SetLevel(level) })

	require.NoError(t, setupLog(&Config{LogLevel: "debug"}))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	assert.Error(t, setupLog(&Config{LogLevel: "loud"}))
}

func rpc(t *testing.T, url string, v interface{}, method string, params ...interface{}) {
	bs, err := json.Marshal(&apiserver.JRPCRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	require.NoError(t, err)
	res, err := http.Post(url+"/api/endpoints/http", "application/json", bytes.NewReader(bs))
	require.NoError(t, err)
	defer res.Body.Close()

	var ret struct {
		Result json.RawMessage `json:"result"`
		Error  string          `json:"error"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&ret))
	require.Empty(t, ret.Error, method)
	require.NoError(t, json.Unmarshal(ret.Result, v))
}

func TestDaemonServesTheFarm(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{
		StoreRoot:   root,
		StoreDriver: "leveldb",
	}
	cfg.setDefaults()

	cm := closer.NewManager()
	d, err := newDaemon(cfg, cm)
	require.NoError(t, err)
	t.Cleanup(cm.CloseAll)
	ts := httptest.NewServer(d.api)
	t.Cleanup(ts.Close)

	owner := common.HexToAddress("0x0000000000000000000000000000000000004001")
	var manager common.Address
	rpc(t, ts.URL, &manager, "farm.appoint", owner.String())
	assert.NotEqual(t, common.ZeroAddr, manager)

	m, err := d.fr.Manager(manager)
	require.NoError(t, err)
	assert.Equal(t, owner, m.Owner)

	var entries []*journal.Entry
	rpc(t, ts.URL, &entries, "journal.list", map[string]interface{}{"name": "Appoint"})
	require.Len(t, entries, 1)
	assert.Equal(t, manager.String(), entries[0].Manager)
	assert.Equal(t, filepath.Join(root, "journal.db"), cfg.JournalPath)
}
