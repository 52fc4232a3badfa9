package database

import (
	"fmt"

	"chartline/config"

	"github.com/valkey-io/valkey-go"
)

// Valkey Database Index Organization
// Each database index provides logical separation for different cache categories
const (
	// GENERAL_CACHE_INDEX (DB 0) - General purpose caching
	GENERAL_CACHE_INDEX = iota

	// SPAM_CACHE_INDEX (DB 1) - Short-lived spam suppression counters
	// Keys are (voter, message-hash) pairs with a sliding-window expiry
	SPAM_CACHE_INDEX

	// CATALOG_CACHE_INDEX (DB 2) - Verified catalog snapshots
	// Holds the verified-song list and artist alias map with a short TTL,
	// invalidated on any verification, rejection, or merge
	CATALOG_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.Errorf("failed to initialize cache database", "address or port is empty")
	}

	var cacheDB Cache

	var err error
	cacheDB.General, err = valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    GENERAL_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create general valkey client", err)
	}

	cacheDB.Spam, err = valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    SPAM_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create spam valkey client", err)
	}

	cacheDB.Catalog, err = valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    CATALOG_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create catalog valkey client", err)
	}

	s.Cache = cacheDB

	return nil
}
