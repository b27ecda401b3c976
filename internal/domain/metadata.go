package domain

// Well-known metadata keys.
const (
	MetaSampleInfoStored  = "sample_info_stored"
	MetaRawFileExtensions = "raw_file_extensions"
	MetaRawFileSize       = "raw_file_size"
	MetaLastSizeUpdate    = "last_size_update"
	MetaSampleID          = "sample_id"
)

// Metadata is implemented by every owner-attached key/value row type.
type Metadata interface {
	TableName() string
	OwnerColumn() string
	MetadataOwnerID() int64
	MetadataKey() string
	MetadataValue() string
}

type DatasetMetadata struct {
	ID        int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	DatasetID int64    `gorm:"column:dataset_id;not null;index" json:"dataset_id"`
	Dataset   *Dataset `gorm:"foreignKey:DatasetID;references:ID" json:"-"`
	Key       string   `gorm:"column:key;not null" json:"key"`
	Value     string   `gorm:"column:value;not null;default:''" json:"value"`
}

func (DatasetMetadata) TableName() string        { return "datasets_metadata" }
func (DatasetMetadata) OwnerColumn() string      { return "dataset_id" }
func (m DatasetMetadata) MetadataOwnerID() int64 { return m.DatasetID }
func (m DatasetMetadata) MetadataKey() string    { return m.Key }
func (m DatasetMetadata) MetadataValue() string  { return m.Value }

func NewDatasetMetadata(ownerID int64, key, value string) DatasetMetadata {
	return DatasetMetadata{DatasetID: ownerID, Key: key, Value: value}
}

type PatientMetadata struct {
	ID        int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID int64    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Patient   *Patient `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Key       string   `gorm:"column:key;not null" json:"key"`
	Value     string   `gorm:"column:value;not null;default:''" json:"value"`
}

func (PatientMetadata) TableName() string        { return "patients_metadata" }
func (PatientMetadata) OwnerColumn() string      { return "patient_id" }
func (m PatientMetadata) MetadataOwnerID() int64 { return m.PatientID }
func (m PatientMetadata) MetadataKey() string    { return m.Key }
func (m PatientMetadata) MetadataValue() string  { return m.Value }

func NewPatientMetadata(ownerID int64, key, value string) PatientMetadata {
	return PatientMetadata{PatientID: ownerID, Key: key, Value: value}
}

type SampleMetadata struct {
	ID       int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	SampleID int64   `gorm:"column:sample_id;not null;index" json:"sample_id"`
	Sample   *Sample `gorm:"foreignKey:SampleID;references:ID" json:"-"`
	Key      string  `gorm:"column:key;not null" json:"key"`
	Value    string  `gorm:"column:value;not null;default:''" json:"value"`
}

func (SampleMetadata) TableName() string        { return "samples_metadata" }
func (SampleMetadata) OwnerColumn() string      { return "sample_id" }
func (m SampleMetadata) MetadataOwnerID() int64 { return m.SampleID }
func (m SampleMetadata) MetadataKey() string    { return m.Key }
func (m SampleMetadata) MetadataValue() string  { return m.Value }

func NewSampleMetadata(ownerID int64, key, value string) SampleMetadata {
	return SampleMetadata{SampleID: ownerID, Key: key, Value: value}
}

type RawFileMetadata struct {
	ID        int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	RawFileID int64    `gorm:"column:raw_file_id;not null;index" json:"raw_file_id"`
	RawFile   *RawFile `gorm:"foreignKey:RawFileID;references:ID" json:"-"`
	Key       string   `gorm:"column:key;not null" json:"key"`
	Value     string   `gorm:"column:value;not null;default:''" json:"value"`
}

func (RawFileMetadata) TableName() string        { return "raw_files_metadata" }
func (RawFileMetadata) OwnerColumn() string      { return "raw_file_id" }
func (m RawFileMetadata) MetadataOwnerID() int64 { return m.RawFileID }
func (m RawFileMetadata) MetadataKey() string    { return m.Key }
func (m RawFileMetadata) MetadataValue() string  { return m.Value }

func NewRawFileMetadata(ownerID int64, key, value string) RawFileMetadata {
	return RawFileMetadata{RawFileID: ownerID, Key: key, Value: value}
}

// Attributes is the typed view of one owner's metadata bag. Later rows win on
// duplicate keys.
type Attributes map[string]string

func AttributesOf[T Metadata](rows []T) Attributes {
	out := make(Attributes, len(rows))
	for _, r := range rows {
		out[r.MetadataKey()] = r.MetadataValue()
	}
	return out
}

// Lookup returns the value for key and whether it was present.
func (a Attributes) Lookup(key string) (string, bool) {
	v, ok := a[key]
	return v, ok
}

// KV is a metadata pair as accepted by administrative create calls.
type KV struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
