package auth

import (
	"testing"
	"time"
)

func TestIdentity_IsExpired(t *testing.T) {
	tests := []struct {
		name     string
		identity *Identity
		want     bool
	}{
		{
			name:     "zero expiry",
			identity: &Identity{},
			want:     false,
		},
		{
			name:     "expired",
			identity: &Identity{ExpiresAt: time.Now().Add(-time.Hour)},
			want:     true,
		},
		{
			name:     "not expired",
			identity: &Identity{ExpiresAt: time.Now().Add(time.Hour)},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.identity.IsExpired(); got != tt.want {
				t.Errorf("Identity.IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIdentity_IsAnonymous(t *testing.T) {
	tests := []struct {
		name     string
		identity *Identity
		want     bool
	}{
		{
			name:     "nil identity",
			identity: nil,
			want:     true,
		},
		{
			name:     "anonymous method",
			identity: &Identity{Principal: "anon", Method: AuthMethodAnonymous},
			want:     true,
		},
		{
			name:     "empty principal",
			identity: &Identity{Principal: "", Method: AuthMethodJWT},
			want:     true,
		},
		{
			name:     "normal user",
			identity: &Identity{Principal: "user123", Method: AuthMethodJWT},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.identity.IsAnonymous(); got != tt.want {
				t.Errorf("Identity.IsAnonymous() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIdentity_PartitionKey(t *testing.T) {
	tests := []struct {
		name     string
		identity *Identity
		want     string
	}{
		{
			name:     "nil identity",
			identity: nil,
			want:     "anonymous",
		},
		{
			name:     "neither tenant nor principal set",
			identity: &Identity{},
			want:     "anonymous",
		},
		{
			name:     "principal only",
			identity: &Identity{Principal: "user123"},
			want:     "user123",
		},
		{
			name:     "tenant takes priority over principal",
			identity: &Identity{Principal: "user123", TenantID: "tenant1"},
			want:     "tenant1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.identity.PartitionKey(); got != tt.want {
				t.Errorf("Identity.PartitionKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnonymousIdentity(t *testing.T) {
	id := AnonymousIdentity()

	if id.Principal != "anonymous" {
		t.Errorf("Principal = %v, want anonymous", id.Principal)
	}
	if id.Method != AuthMethodAnonymous {
		t.Errorf("Method = %v, want anonymous", id.Method)
	}
	if id.Claims == nil {
		t.Error("Claims should be initialized")
	}
	if got := id.PartitionKey(); got != "anonymous" {
		t.Errorf("PartitionKey() = %v, want anonymous", got)
	}
}

func TestAuthMethod_Constants(t *testing.T) {
	tests := []struct {
		method AuthMethod
		want   string
	}{
		{AuthMethodNone, "none"},
		{AuthMethodJWT, "jwt"},
		{AuthMethodAPIKey, "api_key"},
		{AuthMethodAnonymous, "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if string(tt.method) != tt.want {
				t.Errorf("AuthMethod = %v, want %v", string(tt.method), tt.want)
			}
		})
	}
}
