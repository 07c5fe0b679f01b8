package rpc

import (
	"strings"
	"testing"

	"google.golang.org/grpc/encoding"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type ping struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

func TestCodec_RegisteredAndRoundTrips(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	if c == nil {
		t.Fatalf("codec %q not registered", CodecName)
	}
	raw, err := c.Marshal(&ping{Message: "hi", Count: 2})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got ping
	if err := c.Unmarshal(raw, &got); err != nil || got.Message != "hi" || got.Count != 2 {
		t.Fatalf("unmarshal = %+v, %v", got, err)
	}
	if err := c.Unmarshal(nil, &got); err != nil {
		t.Fatalf("empty body: %v", err)
	}
}

func TestCodec_ProtoMessages(t *testing.T) {
	var c Codec
	raw, err := c.Marshal(&healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"SERVING"`) {
		t.Fatalf("protojson output = %s", raw)
	}
	var resp healthpb.HealthCheckResponse
	if err := c.Unmarshal(raw, &resp); err != nil || resp.Status != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("unmarshal = %v, %v", resp.Status, err)
	}
}
