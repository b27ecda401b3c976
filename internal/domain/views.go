package domain

// Nested read models assembled from flat join rows.

type DatasetView struct {
	ID        int64             `json:"id"`
	ProjectID int64             `json:"project_id"`
	Name      string            `json:"name"`
	Metadata  []DatasetMetadata `json:"metadata"`
}

func (v DatasetView) Attributes() Attributes { return AttributesOf(v.Metadata) }

type SampleView struct {
	ID           int64            `json:"id"`
	PatientID    int64            `json:"patient_id"`
	ExtSampleID  string           `json:"ext_sample_id"`
	ExtSampleURL string           `json:"ext_sample_url"`
	Metadata     []SampleMetadata `json:"metadata"`
	Patient      *Patient         `json:"patient,omitempty"`
}

type PatientView struct {
	ID              int64             `json:"id"`
	ProjectID       int64             `json:"project_id"`
	ExtPatientID    string            `json:"ext_patient_id"`
	ExtPatientURL   string            `json:"ext_patient_url"`
	PublicPatientID *string           `json:"public_patient_id"`
	Metadata        []PatientMetadata `json:"metadata"`
	Samples         []SampleView      `json:"samples"`
}

type RawFileView struct {
	ID        int64             `json:"id"`
	DatasetID int64             `json:"dataset_id"`
	Path      string            `json:"path"`
	Metadata  []RawFileMetadata `json:"metadata"`
}
