// Package dbbadger provides persistent implementations of the domain
// repositories on top of a badger store managed through badgerhold.
package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/bondex-network/bondex-daemon/internal/core/domain"
	"github.com/bondex-network/bondex-daemon/internal/core/ports"
)

type repoManager struct {
	store *badgerhold.Store

	marketRepository domain.MarketRepository
	tradeRepository  domain.TradeRepository
	assetLedger      domain.AssetLedger
}

// NewRepoManager opens (or creates if missing) the badger store in the given
// data directory and returns a ports.RepoManager backed by it.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	store, err := createDb(filepath.Join(baseDbDir, "markets"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening markets db: %w", err)
	}

	return &repoManager{
		store:            store,
		marketRepository: NewMarketRepositoryImpl(store),
		tradeRepository:  NewTradeRepositoryImpl(store),
		assetLedger:      NewAssetLedgerImpl(store),
	}, nil
}

func (d *repoManager) MarketRepository() domain.MarketRepository {
	return d.marketRepository
}

func (d *repoManager) TradeRepository() domain.TradeRepository {
	return d.tradeRepository
}

func (d *repoManager) AssetLedger() domain.AssetLedger {
	return d.assetLedger
}

func (d *repoManager) Close() {
	// nolint
	d.store.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir).WithLogger(logger)

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}

// JSONEncode is a custom JSON based encoder for badger.
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)
	if err := en.Encode(value); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger.
func JSONDecode(data []byte, value interface{}) error {
	de := json.NewDecoder(bytes.NewReader(data))
	return de.Decode(value)
}
