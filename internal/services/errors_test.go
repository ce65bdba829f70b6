package services_test

import (
	"errors"
	"strings"
	"testing"

	"movconv/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrEncoderExit, "convert", "run ffmpeg", "exit status 1", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrEncoderExit) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"convert", "run ffmpeg", "exit status 1"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutMarkerDefaultsToEncoderExit(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrEncoderExit) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"discovery", services.Wrap(services.ErrDiscovery, "discover", "read dir", "", errors.New("enoent")), true},
		{"locked", services.Wrap(services.ErrLocked, "run", "lock", "", nil), true},
		{"output dir", services.Wrap(services.ErrOutputDir, "run", "mkdir", "", nil), true},
		{"configuration", services.ErrConfiguration, true},
		{"spawn", services.Wrap(services.ErrSpawn, "convert", "start", "", nil), false},
		{"exit", services.Wrap(services.ErrEncoderExit, "convert", "wait", "", nil), false},
		{"delete", services.Wrap(services.ErrDelete, "cleanup", "remove", "", nil), false},
		{"plain", errors.New("plain"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.IsFatal(tt.err); got != tt.want {
				t.Fatalf("IsFatal(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestFailureReason(t *testing.T) {
	if got := services.FailureReason(nil); got != "" {
		t.Fatalf("expected empty reason for nil, got %q", got)
	}
	canceled := services.Wrap(services.ErrCanceled, "convert", "", "", nil)
	if got := services.FailureReason(canceled); got != "canceled" {
		t.Fatalf("unexpected reason %q", got)
	}
	spawn := services.Wrap(services.ErrSpawn, "convert", "", "", nil)
	if got := services.FailureReason(spawn); got != "encoder could not be started" {
		t.Fatalf("unexpected reason %q", got)
	}
	if got := services.FailureReason(errors.New("x")); got != "conversion failed" {
		t.Fatalf("unexpected reason %q", got)
	}
}
