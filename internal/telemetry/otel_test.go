package telemetry

import (
	"testing"

	"github.com/vnmchuo/openai-go/config"
)

func TestInitTracer_None(t *testing.T) {
	shutdown, err := InitTracer("test", &config.Config{OTELExporterType: "none"})
	if err != nil {
		t.Fatalf("InitTracer failed: %v", err)
	}
	shutdown()
}

func TestInitTracer_Stdout(t *testing.T) {
	shutdown, err := InitTracer("test", &config.Config{OTELExporterType: "stdout"})
	if err != nil {
		t.Fatalf("InitTracer failed: %v", err)
	}
	shutdown()
}

func TestInitTracer_Unknown(t *testing.T) {
	if _, err := InitTracer("test", &config.Config{OTELExporterType: "zipkin"}); err == nil {
		t.Error("Expected error for unknown exporter type")
	}
}
