package domain

// Source tags where the records of a store came from
type Source string

const (
	SourceManual Source = "MANUAL"
	SourceImport Source = "IMPORT"
)

// Valid reports whether s is a known source
func (s Source) Valid() bool {
	return s == SourceManual || s == SourceImport
}

// RecordStore is an ordered, immutable collection of accepted records.
// Append and Replace return a new store and leave the receiver untouched,
// so a store value can be shared freely.
type RecordStore struct {
	source  Source
	records []PropertyRecord
}

// NewRecordStore creates an empty store tagged with its input source
func NewRecordStore(source Source) RecordStore {
	return RecordStore{source: source}
}

// Source returns the input source tag of the store
func (s RecordStore) Source() Source {
	return s.source
}

// Len returns the number of records held
func (s RecordStore) Len() int {
	return len(s.records)
}

// Records returns a copy of the records in insertion order
func (s RecordStore) Records() []PropertyRecord {
	out := make([]PropertyRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Append returns a new store with record placed after all existing records.
// No deduplication by property name is done.
func (s RecordStore) Append(record PropertyRecord) RecordStore {
	records := make([]PropertyRecord, len(s.records), len(s.records)+1)
	copy(records, s.records)
	return RecordStore{
		source:  s.source,
		records: append(records, record),
	}
}

// Replace returns a new store holding exactly records, with the same source tag
func (s RecordStore) Replace(records []PropertyRecord) RecordStore {
	out := make([]PropertyRecord, len(records))
	copy(out, records)
	return RecordStore{
		source:  s.source,
		records: out,
	}
}
