package db

import (
	"encoding/json"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"

	"github.com/ackama/tracker-db/pkg/types"
)

const recordBucket = "vulnerability-record"

// PutVulnerabilityRecord stores one canonical record under
// vulnerability-record -> package name -> CVE ID.
func (dbc Config) PutVulnerabilityRecord(tx *bolt.Tx, record types.VulnerabilityRecord) error {
	root, err := tx.CreateBucketIfNotExists([]byte(recordBucket))
	if err != nil {
		return xerrors.Errorf("failed to create a bucket: %w", err)
	}
	return dbc.put(root, record.Package, record.ID, record)
}

// GetVulnerabilityRecords returns all canonical records stored for the given
// source package, in key order.
func (dbc Config) GetVulnerabilityRecords(pkgName string) ([]types.VulnerabilityRecord, error) {
	var records []types.VulnerabilityRecord
	err := db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(recordBucket))
		if root == nil {
			return nil
		}
		pkgBucket := root.Bucket([]byte(pkgName))
		if pkgBucket == nil {
			return nil
		}
		err := pkgBucket.ForEach(func(cveID, v []byte) error {
			var record types.VulnerabilityRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return xerrors.Errorf("failed to unmarshal vulnerability record: %w", err)
			}
			records = append(records, record)
			return nil
		})
		if err != nil {
			return xerrors.Errorf("error in db foreach: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to get vulnerability records: %w", err)
	}
	return records, nil
}
