// internal/compliance/compliance.go
// Package compliance decides which model records count as benchmark-compliant.
package compliance

import "github.com/mwiater/matboard/internal/modelschema"

// IsCompliant reports whether a record was trained for the benchmark and not aborted.
// A record without a status is compliant. Metrics never influence the result.
func IsCompliant(r modelschema.ModelRecord) bool {
	return r.TrainedForBenchmark && r.Status != modelschema.StatusAborted
}

// Filter returns the records to show. With includeNonCompliant the input is returned
// unchanged; otherwise only compliant records are kept in their original relative order.
func Filter(records []modelschema.ModelRecord, includeNonCompliant bool) []modelschema.ModelRecord {
	if includeNonCompliant {
		return records
	}
	out := make([]modelschema.ModelRecord, 0, len(records))
	for _, r := range records {
		if IsCompliant(r) {
			out = append(out, r)
		}
	}
	return out
}

// Partition splits records into compliant and non-compliant, preserving order in both.
func Partition(records []modelschema.ModelRecord) (compliant, nonCompliant []modelschema.ModelRecord) {
	for _, r := range records {
		if IsCompliant(r) {
			compliant = append(compliant, r)
		} else {
			nonCompliant = append(nonCompliant, r)
		}
	}
	return compliant, nonCompliant
}
