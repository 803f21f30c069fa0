package db

import (
	"fmt"
	"reflect"
	"sync"

	"comments-contract/logger"
	"comments-contract/types"

	"github.com/bluele/gcache"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	dbName            = "comments_contract_"
	DefaultCacheSize  = 100000
	bloomBitsPerKey   = 10
	autoIncrementName = "auto_increment_"
)

type LDB struct {
	DB    *leveldb.DB
	lock  sync.RWMutex
	cache gcache.Cache
}

// NewLdb opens (or recovers) the database stored at dir.
func NewLdb(dir, tailFix string, cacheSize int) (*LDB, error) {
	o := &opt.Options{
		Filter: filter.NewBloomFilter(bloomBitsPerKey),
	}
	path := dir + "/." + dbName + tailFix
	db, err := leveldb.OpenFile(path, o)
	if _, corrupted := err.(*lerrors.ErrCorrupted); corrupted {
		logger.Logger.Warnf("database %s corrupted, recovering", path)
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open leveldb %s", path)
	}
	return newLdb(db, cacheSize), nil
}

// NewMemLdb returns a database kept entirely in memory.
func NewMemLdb(cacheSize int) (*LDB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "open memory leveldb")
	}
	return newLdb(db, cacheSize), nil
}

func newLdb(db *leveldb.DB, cacheSize int) *LDB {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &LDB{
		DB:    db,
		cache: gcache.New(cacheSize).LRU().Build(),
	}
}

func (l *LDB) Close() error {
	return l.DB.Close()
}

// get reads a committed value, nil when the key does not exist.
func (l *LDB) get(key string) ([]byte, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	if v, err := l.cache.Get(key); err == nil {
		return v.([]byte), nil
	}
	data, err := l.DB.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get %s", key)
	}
	_ = l.cache.Set(key, data)
	return data, nil
}

// write commits batch and drops every written key from the read cache.
func (l *LDB) write(batch *leveldb.Batch, keys []string) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if err := l.DB.Write(batch, nil); err != nil {
		return errors.Wrap(err, "write batch")
	}
	for _, k := range keys {
		l.cache.Remove(k)
	}
	return nil
}

// Transaction runs fc inside a fresh overlay and commits it when fc succeeds.
func (l *LDB) Transaction(fc func(tx *Tx) error) error {
	tx := l.Begin()
	if err := fc(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// GetRecordByType loads the committed value stored under record.Key() into record.
func (l *LDB) GetRecordByType(record types.DbRecord) (bool, error) {
	data, err := l.get(record.Key())
	if err != nil || data == nil {
		return false, err
	}
	if err = json.Unmarshal(data, record); err != nil {
		return false, fmt.Errorf("failed to unmarshal record: %v", err)
	}
	return true, nil
}

// GetAllRecordsWithAutoId pages over the records sharing record.Prefix().
func (l *LDB) GetAllRecordsWithAutoId(record types.DbRecordAutoId, limit, offset int, ascending bool) ([]interface{}, int, error) {
	if limit <= 0 {
		return nil, 0, fmt.Errorf("limit must be greater than 0")
	}
	if offset < 0 {
		return nil, 0, fmt.Errorf("offset cannot be negative")
	}

	var records []interface{}
	iter := l.DB.NewIterator(util.BytesPrefix([]byte(record.Prefix())), nil)
	defer iter.Release()

	total := 0
	for iter.Next() {
		total++
	}
	if err := iter.Error(); err != nil {
		logger.Logger.Errorf("iterator error during total count: %v", err)
		return nil, 0, err
	}

	var ok bool
	if ascending {
		ok = iter.First()
	} else {
		ok = iter.Last()
	}
	recordType := reflect.TypeOf(record).Elem()
	for skipped := 0; ok && len(records) < limit; {
		if skipped < offset {
			skipped++
		} else {
			newRecord := reflect.New(recordType).Interface()
			if err := json.Unmarshal(iter.Value(), newRecord); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal record: %v", err)
			}
			records = append(records, newRecord)
		}
		if ascending {
			ok = iter.Next()
		} else {
			ok = iter.Prev()
		}
	}
	if err := iter.Error(); err != nil {
		logger.Logger.Errorf("iterator error: %v", err)
		return nil, 0, err
	}
	return records, total, nil
}

func getNextID(s Store, recordType string) (uint64, error) {
	data, err := s.Get(autoIncrementKey(recordType))
	if err != nil {
		return 0, err
	}
	if data == nil {
		return 1, nil
	}
	last, err := BytesToUint64(data)
	if err != nil {
		return 0, errors.Wrapf(err, "auto increment of %s", recordType)
	}
	return last + 1, nil
}

func autoIncrementKey(recordType string) string {
	return autoIncrementName + recordType
}

func storeRecordWithAutoID(s Store, record types.DbRecordAutoId) error {
	nextID, err := getNextID(s, record.Prefix())
	if err != nil {
		return err
	}
	record.SetId(nextID)
	if err = PutRecord(s, record); err != nil {
		return err
	}
	s.Put(autoIncrementKey(record.Prefix()), Uint64ToBytes(nextID))
	return nil
}

// StoreRecord writes record, assigning the next id first for auto-id records.
func StoreRecord(s Store, record types.DbRecord) error {
	if recordAuto, ok := record.(types.DbRecordAutoId); ok {
		return storeRecordWithAutoID(s, recordAuto)
	}
	return PutRecord(s, record)
}

func PutRecord(s Store, record types.DbRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrapf(err, "marshal %s", record.Key())
	}
	s.Put(record.Key(), data)
	return nil
}

// GetRecord loads the value stored under record.Key() into record.
func GetRecord(s Store, record types.DbRecord) (bool, error) {
	data, err := s.Get(record.Key())
	if err != nil || data == nil {
		return false, err
	}
	if err = json.Unmarshal(data, record); err != nil {
		return false, errors.Wrapf(err, "unmarshal %s", record.Key())
	}
	return true, nil
}

func DeleteRecord(s Store, record types.DbRecord) {
	s.Delete(record.Key())
}

// Unmarshal decodes a stored value with the codec records are written with.
func Unmarshal(data []byte, v interface{}) error {
	return errors.Wrap(json.Unmarshal(data, v), "unmarshal record")
}
