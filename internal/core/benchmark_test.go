package core

import (
	"testing"
	"time"
)

func BenchmarkMetricsRecording(b *testing.B) {
	metrics := NewMetrics()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		metrics.RecordRun(time.Millisecond)
		if i%10 == 0 {
			metrics.RecordError()
		}
	}
}

func BenchmarkClassify(b *testing.B) {
	rs, err := NewRuleSet(nil)
	if err != nil {
		b.Fatalf("NewRuleSet failed: %v", err)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := rs.Classify(100); err != nil {
			b.Fatal(err)
		}
	}
}

// Memory allocation benchmarks
func BenchmarkLabelAllocation(b *testing.B) {
	rs, err := NewRuleSet(nil)
	if err != nil {
		b.Fatalf("NewRuleSet failed: %v", err)
	}

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = rs.Label(i + 1)
	}
}
