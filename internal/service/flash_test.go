package service_test

import (
	"testing"

	"github.com/msomdec/moviweb/internal/domain"
	"github.com/msomdec/moviweb/internal/service"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestFlashService_RoundTrip(t *testing.T) {
	flash, err := service.NewFlashService(testSecret)
	if err != nil {
		t.Fatalf("NewFlashService: %v", err)
	}

	want := domain.Notice{Kind: domain.NoticeSuccess, Message: "Movie added successfully!"}
	token, err := flash.Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := flash.Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestFlashService_RejectsForeignKey(t *testing.T) {
	signer, _ := service.NewFlashService(testSecret)
	verifier, _ := service.NewFlashService("a-completely-different-secret")

	token, err := signer.Encode(domain.Notice{Kind: domain.NoticeError, Message: "nope"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := verifier.Decode(token); err == nil {
		t.Fatal("expected token signed with another key to be rejected")
	}
}

func TestFlashService_RejectsGarbage(t *testing.T) {
	flash, _ := service.NewFlashService(testSecret)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := flash.Decode(token); err == nil {
			t.Fatalf("expected %q to be rejected", token)
		}
	}
}
