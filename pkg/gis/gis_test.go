package gis

import (
	"context"
	"testing"
)

func TestFacadeOpensSession(t *testing.T) {
	svc, err := NewService(Options{})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	defer svc.Close(context.Background())

	session, err := svc.OpenSession(context.Background())
	if err != nil {
		t.Fatalf("OpenSession returned error: %v", err)
	}
	var snap Snapshot = session.Snapshot()
	if snap.ID == "" {
		t.Fatalf("expected session id")
	}
}
