package kineto

import "testing"

func TestOutputFile(t *testing.T) {
	tests := []struct {
		name    string
		logFile string
		pid     int64
		want    string
	}{
		{"json extension", "/tmp/trace.json", 1234, "/tmp/trace_1234.json"},
		{"gzipped trace", "/tmp/trace.json.gz", 9, "/tmp/trace.json_9.gz"},
		{"no extension", "/tmp/trace", 77, "/tmp/trace_77"},
		{"dotted directory", "/opt/v1.2/trace", 5, "/opt/v1.2/trace_5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputFile(tt.logFile, tt.pid); got != tt.want {
				t.Errorf("OutputFile(%q, %d) = %q, want %q", tt.logFile, tt.pid, got, tt.want)
			}
		})
	}
}
