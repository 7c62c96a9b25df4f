package rs256ctl

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/anchorageoss/rs256signer/envelope"
	"github.com/anchorageoss/rs256signer/internal/testkeys"
	"github.com/anchorageoss/rs256signer/pemkey"
	"github.com/anchorageoss/rs256signer/rs256"
)

func TestVerifyCommand(t *testing.T) {
	cmd := VerifyCommand()

	require.NotNil(t, cmd)
	require.Equal(t, "verify", cmd.Name)
	require.NotEmpty(t, cmd.Usage)

	var hasSignature, hasEnvelope bool
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.StringFlag); ok {
			if f.Name == "signature" {
				hasSignature = true
			}
			if f.Name == "envelope" {
				hasEnvelope = true
			}
		}
	}
	require.True(t, hasSignature, "should have --signature flag")
	require.True(t, hasEnvelope, "should have --envelope flag")
}

func TestRunVerifyCommand(t *testing.T) {
	t.Run("valid signature, base64", func(t *testing.T) {
		path := keyFile(t, testkeys.PKCS1PEM)

		app := &cli.Command{Commands: []*cli.Command{VerifyCommand()}}
		err := app.Run(context.Background(), []string{
			"rs256ctl", "verify",
			"--key-file", path,
			"--message", testkeys.Message,
			"--signature", testkeys.SignatureBase64,
		})
		require.NoError(t, err)
	})

	t.Run("valid signature, hex", func(t *testing.T) {
		path := keyFile(t, testkeys.PKCS1PEM)

		sigBytes, err := base64.StdEncoding.DecodeString(testkeys.SignatureBase64)
		require.NoError(t, err)

		app := &cli.Command{Commands: []*cli.Command{VerifyCommand()}}
		err = app.Run(context.Background(), []string{
			"rs256ctl", "verify",
			"--key-file", path,
			"--message", testkeys.Message,
			"--signature", hex.EncodeToString(sigBytes),
		})
		require.NoError(t, err)
	})

	t.Run("wrong message fails verification", func(t *testing.T) {
		path := keyFile(t, testkeys.PKCS1PEM)

		app := &cli.Command{Commands: []*cli.Command{VerifyCommand()}}
		err := app.Run(context.Background(), []string{
			"rs256ctl", "verify",
			"--key-file", path,
			"--message", "not the signed message",
			"--signature", testkeys.SignatureBase64,
		})
		require.Error(t, err)
	})

	t.Run("envelope input", func(t *testing.T) {
		path := keyFile(t, testkeys.PKCS1PEM)

		key, err := pemkey.Decode(testkeys.PKCS1PEM)
		require.NoError(t, err)
		message := []byte("envelope carried message")
		sig, err := rs256.Sign(key, message)
		require.NoError(t, err)

		b64, err := envelope.EncodeBase64(envelope.SignedAssertion{
			Message:        message,
			Signature:      sig,
			KeyFingerprint: envelope.Fingerprint(key),
			IssuedAtUnix:   1700000000,
		})
		require.NoError(t, err)

		app := &cli.Command{Commands: []*cli.Command{VerifyCommand()}}
		err = app.Run(context.Background(), []string{
			"rs256ctl", "verify",
			"--key-file", path,
			"--envelope", b64,
		})
		require.NoError(t, err)
	})

	t.Run("missing signature errors", func(t *testing.T) {
		path := keyFile(t, testkeys.PKCS1PEM)

		app := &cli.Command{Commands: []*cli.Command{VerifyCommand()}}
		err := app.Run(context.Background(), []string{
			"rs256ctl", "verify",
			"--key-file", path,
			"--message", testkeys.Message,
		})
		require.Error(t, err)
	})
}
