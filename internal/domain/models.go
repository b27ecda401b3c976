package domain

type Project struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string `gorm:"column:name;not null" json:"name"`
	Status string `gorm:"column:status;not null;default:''" json:"status"`
}

func (Project) TableName() string { return "projects" }

type Dataset struct {
	ID        int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID int64    `gorm:"column:project_id;not null;index" json:"project_id"`
	Project   *Project `gorm:"foreignKey:ProjectID;references:ID" json:"-"`
	Name      string   `gorm:"column:name;not null" json:"name"`
}

func (Dataset) TableName() string { return "datasets" }

type Patient struct {
	ID              int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID       int64    `gorm:"column:project_id;not null;index" json:"project_id"`
	Project         *Project `gorm:"foreignKey:ProjectID;references:ID" json:"-"`
	ExtPatientID    string   `gorm:"column:ext_patient_id;not null;index" json:"ext_patient_id"`
	ExtPatientURL   string   `gorm:"column:ext_patient_url;not null;default:''" json:"ext_patient_url"`
	PublicPatientID *string  `gorm:"column:public_patient_id" json:"public_patient_id"`
}

func (Patient) TableName() string { return "patients" }

type Sample struct {
	ID           int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID    int64    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Patient      *Patient `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	ExtSampleID  string   `gorm:"column:ext_sample_id;not null;index" json:"ext_sample_id"`
	ExtSampleURL string   `gorm:"column:ext_sample_url;not null;default:''" json:"ext_sample_url"`
}

func (Sample) TableName() string { return "samples" }

// RawFile is unique per (dataset_id, path).
type RawFile struct {
	ID        int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	DatasetID int64    `gorm:"column:dataset_id;not null;uniqueIndex:idx_raw_files_dataset_path" json:"dataset_id"`
	Dataset   *Dataset `gorm:"foreignKey:DatasetID;references:ID" json:"-"`
	Path      string   `gorm:"column:path;not null;uniqueIndex:idx_raw_files_dataset_path" json:"path"`
}

func (RawFile) TableName() string { return "raw_files" }
