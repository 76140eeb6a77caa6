package metadata

import (
	"testing"
)

func TestFooterLength(t *testing.T) {
	trailer := []byte{0x05, 0x00, 0x00, 0x00, 'P', 'A', 'R', '1'}
	if got := FooterLength(trailer); got != 5 {
		t.Fatalf("expected footer length 5, got %d", got)
	}
}

func TestOpenRejectsBadMagic(t *testing.T) {
	header := []byte("XXXX")
	trailer := []byte{0, 0, 0, 0, 'P', 'A', 'R', '1'}
	_, err := Open(header, trailer, nil)
	if err == nil {
		t.Fatal("expected an error for invalid leading magic")
	}
}

func TestOpenRejectsFooterLengthMismatch(t *testing.T) {
	header := []byte(Magic)
	trailer := []byte{9, 0, 0, 0, 'P', 'A', 'R', '1'}
	_, err := Open(header, trailer, []byte{1, 2, 3})
	if err == nil {
		t.Fatal("expected a footer length mismatch error")
	}
}
