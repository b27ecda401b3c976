package logger

import "testing"

func TestSanitizeKVsHashesPatientIdentifiers(t *testing.T) {
	out := sanitizeKVs([]interface{}{"ext_patient_id", "P 100", "path", "/data/S1.fastq"})
	if len(out) != 4 {
		t.Fatalf("unexpected length: got=%d want=4", len(out))
	}
	got, _ := out[1].(string)
	if got == "P 100" || len(got) != len("hash:")+12 {
		t.Fatalf("expected hashed patient id, got=%q", got)
	}
	if out[3] != "/data/S1.fastq" {
		t.Fatalf("path should pass through: got=%v", out[3])
	}
}

func TestSanitizeKVsRedactsSecretsAndDSNs(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"db_password", "hunter2",
		"dsn", "postgres://user:pw@db:5432/redmane",
	})
	if out[1] != "[REDACTED]" {
		t.Fatalf("password not redacted: %v", out[1])
	}
	if out[3] != "postgres://[REDACTED]@db:5432/redmane" {
		t.Fatalf("dsn not redacted: %v", out[3])
	}
}

func TestSanitizeKVsKeepsDanglingKey(t *testing.T) {
	out := sanitizeKVs([]interface{}{"a", 1, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}
