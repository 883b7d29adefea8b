package db

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"

	"github.com/ackama/tracker-db/pkg/types"
)

const (
	SchemaVersion = 1

	rootBucket     = "tracker-db"
	metadataBucket = "metadata"
	metadataKey    = "data"
)

var (
	db    *bolt.DB
	dbDir string
)

// Operation is the persistence boundary the converter hands canonical
// records to.
type Operation interface {
	BatchUpdate(fn func(*bolt.Tx) error) error
	PutVulnerabilityRecord(tx *bolt.Tx, record types.VulnerabilityRecord) error
	GetVulnerabilityRecords(pkgName string) ([]types.VulnerabilityRecord, error)
	SetMetadata(metadata Metadata) error
}

type Metadata struct {
	Version    int
	NextUpdate time.Time
	UpdatedAt  time.Time
}

type Config struct {
}

func Init(cacheDir string) (err error) {
	dbPath := Path(cacheDir)
	dbDir = filepath.Dir(dbPath)
	if err = os.MkdirAll(dbDir, 0700); err != nil {
		return xerrors.Errorf("failed to mkdir: %w", err)
	}

	db, err = bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return xerrors.Errorf("failed to open db: %w", err)
	}
	return nil
}

func Path(cacheDir string) string {
	return filepath.Join(cacheDir, "db", "tracker.db")
}

func Dir(cacheDir string) string {
	return filepath.Join(cacheDir, "db")
}

func Close() error {
	if err := db.Close(); err != nil {
		return xerrors.Errorf("failed to close DB: %w", err)
	}
	return nil
}

func GetMetadata() (Metadata, error) {
	var metadata Metadata
	value, err := Config{}.get(rootBucket, metadataBucket, metadataKey)
	if err != nil {
		return Metadata{}, err
	}
	if err = json.Unmarshal(value, &metadata); err != nil {
		return Metadata{}, xerrors.Errorf("json unmarshal error: %w", err)
	}
	return metadata, nil
}

func (dbc Config) SetMetadata(metadata Metadata) error {
	err := dbc.update(rootBucket, metadataBucket, metadataKey, metadata)
	if err != nil {
		return xerrors.Errorf("failed to save metadata: %w", err)
	}
	return nil
}

func (dbc Config) BatchUpdate(fn func(tx *bolt.Tx) error) error {
	err := db.Batch(fn)
	if err != nil {
		return xerrors.Errorf("error in batch update: %w", err)
	}
	return nil
}

func (dbc Config) update(rootBucket, nestedBucket, key string, value interface{}) error {
	err := db.Update(func(tx *bolt.Tx) error {
		return dbc.putNestedBucket(tx, rootBucket, nestedBucket, key, value)
	})
	if err != nil {
		return xerrors.Errorf("error in db update: %w", err)
	}
	return err
}

func (dbc Config) putNestedBucket(tx *bolt.Tx, rootBucket, nestedBucket, key string, value interface{}) error {
	root, err := tx.CreateBucketIfNotExists([]byte(rootBucket))
	if err != nil {
		return xerrors.Errorf("failed to create a bucket: %w", err)
	}
	return dbc.put(root, nestedBucket, key, value)
}

func (dbc Config) put(root *bolt.Bucket, nestedBucket, key string, value interface{}) error {
	nested, err := root.CreateBucketIfNotExists([]byte(nestedBucket))
	if err != nil {
		return xerrors.Errorf("failed to create a bucket: %w", err)
	}
	v, err := json.Marshal(value)
	if err != nil {
		return xerrors.Errorf("failed to marshal JSON: %w", err)
	}
	return nested.Put([]byte(key), v)
}

func (dbc Config) get(rootBucket, nestedBucket, key string) (value []byte, err error) {
	err = db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(rootBucket))
		if root == nil {
			return nil
		}
		nested := root.Bucket([]byte(nestedBucket))
		if nested == nil {
			return nil
		}
		value = nested.Get([]byte(key))
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to get data from db: %w", err)
	}
	return value, nil
}
