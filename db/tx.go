package db

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Store is the keyed view the contract and the token ledger work against.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte)
	Delete(key string)
	// Iterate visits keys in [start, limit) in order until fn returns false.
	Iterate(start, limit string, reverse bool, fn func(key string, value []byte) (bool, error)) error
}

type item struct {
	value   []byte
	deleted bool
}

// Tx buffers writes on top of the committed state until Commit.
type Tx struct {
	ldb    *LDB
	writes map[string]*item
}

// Snapshot is a restore point inside a Tx.
type Snapshot map[string]*item

func (l *LDB) Begin() *Tx {
	return &Tx{ldb: l, writes: make(map[string]*item)}
}

func (t *Tx) Get(key string) ([]byte, error) {
	if it, ok := t.writes[key]; ok {
		if it.deleted {
			return nil, nil
		}
		return it.value, nil
	}
	return t.ldb.get(key)
}

func (t *Tx) Put(key string, value []byte) {
	t.writes[key] = &item{value: value}
}

func (t *Tx) Delete(key string) {
	t.writes[key] = &item{deleted: true}
}

func (t *Tx) Snapshot() Snapshot {
	s := make(Snapshot, len(t.writes))
	for k, v := range t.writes {
		s[k] = v
	}
	return s
}

func (t *Tx) Restore(s Snapshot) {
	t.writes = make(map[string]*item, len(s))
	for k, v := range s {
		t.writes[k] = v
	}
}

// Dirty reports whether the Tx holds any write.
func (t *Tx) Dirty() bool {
	return len(t.writes) > 0
}

func (t *Tx) Commit() error {
	if len(t.writes) == 0 {
		return nil
	}
	batch := new(leveldb.Batch)
	keys := t.sortedKeys("", "")
	for _, k := range keys {
		it := t.writes[k]
		if it.deleted {
			batch.Delete([]byte(k))
		} else {
			batch.Put([]byte(k), it.value)
		}
	}
	if err := t.ldb.write(batch, keys); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	t.writes = make(map[string]*item)
	return nil
}

func (t *Tx) Discard() {
	t.writes = make(map[string]*item)
}

func (t *Tx) sortedKeys(start, limit string) []string {
	keys := make([]string, 0, len(t.writes))
	for k := range t.writes {
		if k < start || (limit != "" && k >= limit) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Iterate merges the committed range with the buffered writes. An empty limit
// means every key starting with start.
func (t *Tx) Iterate(start, limit string, reverse bool, fn func(key string, value []byte) (bool, error)) error {
	rng := &util.Range{Start: []byte(start)}
	if limit == "" {
		rng = util.BytesPrefix([]byte(start))
		limit = string(rng.Limit)
	} else {
		rng.Limit = []byte(limit)
	}

	pending := t.sortedKeys(start, limit)
	if reverse {
		for i, j := 0, len(pending)-1; i < j; i, j = i+1, j-1 {
			pending[i], pending[j] = pending[j], pending[i]
		}
	}

	iter := t.ldb.DB.NewIterator(rng, nil)
	defer iter.Release()

	var ok bool
	if reverse {
		ok = iter.Last()
	} else {
		ok = iter.First()
	}
	advance := func() {
		if reverse {
			ok = iter.Prev()
		} else {
			ok = iter.Next()
		}
	}

	i := 0
	for ok || i < len(pending) {
		var key string
		var value []byte
		switch {
		case !ok:
			key = pending[i]
		case i >= len(pending):
			key, value = string(iter.Key()), iter.Value()
		default:
			committed := string(iter.Key())
			c := 0
			if pending[i] < committed {
				c = -1
			} else if pending[i] > committed {
				c = 1
			}
			if reverse {
				c = -c
			}
			if c <= 0 {
				key = pending[i]
				if c == 0 {
					advance()
				}
			} else {
				key, value = committed, iter.Value()
			}
		}

		if i < len(pending) && key == pending[i] {
			i++
			it := t.writes[key]
			if it.deleted {
				continue
			}
			value = it.value
		} else {
			value = append([]byte(nil), value...)
			advance()
		}

		more, err := fn(key, value)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
	return errors.Wrap(iter.Error(), "iterate")
}
