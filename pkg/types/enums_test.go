package types

import "testing"

func TestProxyProtocol(t *testing.T) {
	tests := []struct {
		p        ProxyProtocol
		want     string
		valid    bool
		wantPort uint16
	}{
		{ProtocolHTTP, "HTTP", true, 80},
		{ProtocolTLS, "TLS", true, 443},
		{ProxyProtocol(99), "Unknown", false, 80},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.p.String(); got != tt.want {
				t.Errorf("ProxyProtocol(%d).String() = %q, want %q", tt.p, got, tt.want)
			}
			if got := tt.p.Valid(); got != tt.valid {
				t.Errorf("ProxyProtocol(%d).Valid() = %v, want %v", tt.p, got, tt.valid)
			}
			if got := tt.p.DefaultPort(); got != tt.wantPort {
				t.Errorf("ProxyProtocol(%d).DefaultPort() = %d, want %d", tt.p, got, tt.wantPort)
			}
		})
	}
}

func TestComponent(t *testing.T) {
	tests := []struct {
		c    Component
		want string
	}{
		{ComponentNone, "None"},
		{ComponentProxyServer, "ProxyServer"},
		{ComponentProxyClient, "ProxyClient"},
		{ComponentHopper, "Hopper"},
		{ComponentNeighborhood, "Neighborhood"},
		{Component(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.c.String(); got != tt.want {
				t.Errorf("Component(%d).String() = %q, want %q", tt.c, got, tt.want)
			}
		})
	}

	if Component(99).Valid() {
		t.Error("Component(99).Valid() = true, want false")
	}
}

func TestPayloadKind(t *testing.T) {
	tests := []struct {
		k    PayloadKind
		want string
	}{
		{PayloadUnknown, "Unknown"},
		{PayloadClientRequest, "ClientRequest"},
		{PayloadClientResponse, "ClientResponse"},
		{PayloadKind(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.k.String(); got != tt.want {
				t.Errorf("PayloadKind(%d).String() = %q, want %q", tt.k, got, tt.want)
			}
		})
	}

	if got := (&ClientRequestPayload{}).PayloadKind(); got != PayloadClientRequest {
		t.Errorf("ClientRequestPayload.PayloadKind() = %v", got)
	}
	if got := (&ClientResponsePayload{}).PayloadKind(); got != PayloadClientResponse {
		t.Errorf("ClientResponsePayload.PayloadKind() = %v", got)
	}
}
