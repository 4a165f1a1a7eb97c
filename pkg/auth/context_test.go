package auth

import (
	"context"
	"testing"
)

func TestWithAdmin_IsAdminFromCtx(t *testing.T) {
	ctx := WithAdmin(context.Background())
	if !IsAdminFromCtx(ctx) {
		t.Fatal("expected admin context to read as admin")
	}
}

func TestIsAdminFromCtx_EmptyContext(t *testing.T) {
	if IsAdminFromCtx(context.Background()) {
		t.Fatal("expected bare context to read as non-admin")
	}
}

func TestIsAdminFromCtx_WrongType(t *testing.T) {
	// A value stored under a colliding string key must not grant access;
	// the unexported key type keeps it invisible to IsAdminFromCtx.
	ctx := context.WithValue(context.Background(), "admin", true) //nolint:staticcheck
	if IsAdminFromCtx(ctx) {
		t.Fatal("expected string-keyed value to be ignored")
	}
}

func TestContextGate(t *testing.T) {
	gate := ContextGate{}
	if gate.IsAdmin(context.Background()) {
		t.Fatal("expected gate to deny bare context")
	}
	if !gate.IsAdmin(WithAdmin(context.Background())) {
		t.Fatal("expected gate to allow stamped context")
	}
}
