package cache

import (
	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/store"
	ristrettoCache "github.com/eko/gocache/store/ristretto/v4"
	"github.com/spf13/viper"
)

// S is the process local store the memory session backend lives in.
var S store.StoreInterface

// R is the ristretto cache behind S.
var R *ristretto.Cache

const DefaultMaxCost = 1 << 27

func NewStore() error {
	maxCost := viper.GetInt64("cache.max_cost")
	if maxCost <= 0 {
		maxCost = DefaultMaxCost
	}

	ristr, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost / 8,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return err
	}

	R = ristr
	S = ristrettoCache.NewRistretto(ristr)

	return nil
}

// Wait blocks until the writes buffered by ristretto are applied,
// a read issued afterwards sees them.
func Wait() {
	if R != nil {
		R.Wait()
	}
}
