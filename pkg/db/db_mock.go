package db

import (
	"github.com/stretchr/testify/mock"
	bolt "go.etcd.io/bbolt"

	"github.com/ackama/tracker-db/pkg/types"
)

type MockOperation struct {
	mock.Mock
}

type PutVulnerabilityRecordArgs struct {
	Tx             *bolt.Tx
	TxAnything     bool
	Record         types.VulnerabilityRecord
	RecordAnything bool
}

type PutVulnerabilityRecordReturns struct {
	Err error
}

type PutVulnerabilityRecordExpectation struct {
	Args    PutVulnerabilityRecordArgs
	Returns PutVulnerabilityRecordReturns
}

func (_m *MockOperation) ApplyPutVulnerabilityRecordExpectation(e PutVulnerabilityRecordExpectation) {
	var args []interface{}
	if e.Args.TxAnything {
		args = append(args, mock.Anything)
	} else {
		args = append(args, e.Args.Tx)
	}
	if e.Args.RecordAnything {
		args = append(args, mock.Anything)
	} else {
		args = append(args, e.Args.Record)
	}
	_m.On("PutVulnerabilityRecord", args...).Return(e.Returns.Err)
}

func (_m *MockOperation) ApplyPutVulnerabilityRecordExpectations(expectations []PutVulnerabilityRecordExpectation) {
	for _, e := range expectations {
		_m.ApplyPutVulnerabilityRecordExpectation(e)
	}
}

func (_m *MockOperation) PutVulnerabilityRecord(tx *bolt.Tx, record types.VulnerabilityRecord) error {
	ret := _m.Called(tx, record)
	return ret.Error(0)
}

func (_m *MockOperation) BatchUpdate(fn func(*bolt.Tx) error) error {
	ret := _m.Called(fn)
	if ret.Error(0) != nil {
		return ret.Error(0)
	}
	return fn(nil)
}

func (_m *MockOperation) GetVulnerabilityRecords(pkgName string) ([]types.VulnerabilityRecord, error) {
	ret := _m.Called(pkgName)
	records, _ := ret.Get(0).([]types.VulnerabilityRecord)
	return records, ret.Error(1)
}

func (_m *MockOperation) SetMetadata(metadata Metadata) error {
	ret := _m.Called(metadata)
	return ret.Error(0)
}
