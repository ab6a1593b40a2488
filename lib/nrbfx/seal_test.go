// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbfx

import (
	"bytes"
	"testing"

	"github.com/CrispStrobe/nrbf/lib/secret"
)

func mustPassphrase(t *testing.T, s string) *secret.Buffer {
	t.Helper()
	buf, err := secret.NewFromBytes([]byte(s))
	if err != nil {
		t.Fatalf("secret.NewFromBytes: %v", err)
	}
	t.Cleanup(func() { buf.Close() })
	return buf
}

func TestSealUnsealRoundTrip(t *testing.T) {
	plaintext := []byte(`{"root":1,"records":{}}`)
	passphrase := mustPassphrase(t, "correct horse battery staple")

	ciphertext, err := Seal(passphrase, plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Equal(ciphertext, plaintext) {
		t.Fatal("ciphertext equals plaintext; Seal did not encrypt anything")
	}

	unsealPassphrase := mustPassphrase(t, "correct horse battery staple")
	out, err := Unseal(unsealPassphrase, ciphertext)
	if err != nil {
		t.Fatalf("Unseal: %v", err)
	}
	defer out.Close()
	if !bytes.Equal(out.Bytes(), plaintext) {
		t.Fatalf("Unseal = %q, want %q", out.Bytes(), plaintext)
	}
}

func TestUnsealWithWrongPassphraseFails(t *testing.T) {
	plaintext := []byte("secret save data")
	passphrase := mustPassphrase(t, "correct horse battery staple")

	ciphertext, err := Seal(passphrase, plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	wrongPassphrase := mustPassphrase(t, "wrong passphrase entirely")
	if _, err := Unseal(wrongPassphrase, ciphertext); err == nil {
		t.Fatal("expected Unseal with the wrong passphrase to fail")
	}
}
