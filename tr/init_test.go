package tr

import (
	"testing"
)

func TestParseOtelEnvHeaders(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want map[string]string
	}{
		{"single", "authorization=Bearer abc", map[string]string{"authorization": "Bearer abc"}},
		{"multiple", "a=1,b=2", map[string]string{"a": "1", "b": "2"}},
		{"trims spaces", " a = 1 , b=2", map[string]string{"a": "1", "b": "2"}},
		{"skips empty keys", "a=1,,=x", map[string]string{"a": "1"}},
		{"value with equals", "k=a=b", map[string]string{"k": "a=b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := parseOtelEnvHeaders(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d headers, got %d (%v)", len(tt.want), len(got), got)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("header %q: expected %q, got %q", k, v, got[k])
				}
			}
		})
	}
}

func TestIsLoopbackAddress(t *testing.T) {
	t.Parallel()
	tests := []struct {
		endpoint string
		want     bool
	}{
		{"127.0.0.1:4317", true},
		{"http://127.0.0.1:4317", true},
		{"10.0.0.5:4317", true},
		{"8.8.8.8:4317", false},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			t.Parallel()
			got, err := isLoopbackAddress(tt.endpoint)
			if err != nil {
				t.Fatalf("isLoopbackAddress(%q): %v", tt.endpoint, err)
			}
			if got != tt.want {
				t.Errorf("isLoopbackAddress(%q) = %v, want %v", tt.endpoint, got, tt.want)
			}
		})
	}
}

func TestInit_NoEndpointIsNoop(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	shutdown, err := Init("reelpipe-test")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	shutdown()
}
