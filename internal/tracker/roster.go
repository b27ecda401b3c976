package tracker

import "github.com/yungbote/redmane-backend/internal/domain"

// RosterSample is one candidate sample the matchers test files against.
type RosterSample struct {
	SampleID     int64
	PatientID    int64
	ExtSampleID  string
	ExtPatientID string
}

// RosterFromSamples flattens sample views into roster entries, keeping order.
// Samples without an embedded patient get an empty patient identifier and so
// never match by patient.
func RosterFromSamples(samples []domain.SampleView) []RosterSample {
	out := make([]RosterSample, 0, len(samples))
	for _, s := range samples {
		r := RosterSample{
			SampleID:    s.ID,
			PatientID:   s.PatientID,
			ExtSampleID: s.ExtSampleID,
		}
		if s.Patient != nil {
			r.ExtPatientID = s.Patient.ExtPatientID
		}
		out = append(out, r)
	}
	return out
}
