// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nrbfx

import (
	"bytes"
	"fmt"
	"io"

	"filippo.io/age"

	"github.com/CrispStrobe/nrbf/lib/secret"
)

// Seal encrypts data (typically an ExportJSON or ExportCBOR blob,
// optionally already run through Compress) to a passphrase using age's
// scrypt-based identity, returning the raw ciphertext. Decrypting
// requires the same passphrase — there is no recipient/identity
// keypair here.
func Seal(passphrase *secret.Buffer, data []byte) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase.String())
	if err != nil {
		return nil, fmt.Errorf("nrbfx: building passphrase recipient: %w", err)
	}

	var ciphertext bytes.Buffer
	writer, err := age.Encrypt(&ciphertext, recipient)
	if err != nil {
		return nil, fmt.Errorf("nrbfx: creating age encryptor: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("nrbfx: writing plaintext to age encryptor: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("nrbfx: finalizing age encryption: %w", err)
	}
	return ciphertext.Bytes(), nil
}

// Unseal decrypts a blob produced by Seal. The plaintext is returned
// in a secret.Buffer — the caller must Close it when done. Decrypting
// with the wrong passphrase fails with age's standard "no identity
// matched" error; there is no separate wrong-passphrase signal.
func Unseal(passphrase *secret.Buffer, ciphertext []byte) (*secret.Buffer, error) {
	identity, err := age.NewScryptIdentity(passphrase.String())
	if err != nil {
		return nil, fmt.Errorf("nrbfx: building passphrase identity: %w", err)
	}

	reader, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, fmt.Errorf("nrbfx: decrypting: %w", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("nrbfx: reading decrypted plaintext: %w", err)
	}

	if len(plaintext) == 0 {
		return secret.New(1)
	}
	buffer, err := secret.NewFromBytes(plaintext)
	if err != nil {
		for i := range plaintext {
			plaintext[i] = 0
		}
		return nil, fmt.Errorf("nrbfx: protecting decrypted plaintext: %w", err)
	}
	return buffer, nil
}
