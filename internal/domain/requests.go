package domain

// MetadataPair is the wire form of one metadata entry on a raw file submission.
type MetadataPair struct {
	MetadataKey   string `json:"metadata_key"`
	MetadataValue string `json:"metadata_value"`
}

// RawFileRequest asks the store to register one discovered file.
type RawFileRequest struct {
	DatasetID int64          `json:"dataset_id"`
	Path      string         `json:"path"`
	Metadata  []MetadataPair `json:"metadata"`
}

// SizeUpdate records the total size of a dataset's matched raw files.
type SizeUpdate struct {
	DatasetID      int64  `json:"dataset_id"`
	RawFileSize    string `json:"raw_file_size"`
	LastSizeUpdate string `json:"last_size_update"`
}

// SubmitResult counts what a raw file batch did. Skipped files were already registered.
type SubmitResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type NewProject struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type NewDataset struct {
	ProjectID int64  `json:"project_id"`
	Name      string `json:"name"`
	Metadata  []KV   `json:"metadata"`
}
