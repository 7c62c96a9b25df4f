package rs256ctl

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/anchorageoss/rs256signer/envelope"
	"github.com/anchorageoss/rs256signer/rs256"
)

// VerifyCommand creates the "verify" command.
func VerifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Verify an RS256 signature over a message using an RSA private key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "key-file",
				Usage:    "Path to a PEM-armoured RSA private key",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "message",
				Usage: "Message to verify, inline",
			},
			&cli.StringFlag{
				Name:  "message-file",
				Usage: "Path to a file containing the message to verify",
			},
			&cli.StringFlag{
				Name:  "signature",
				Usage: "Signature to verify, hex- or base64-encoded",
			},
			&cli.StringFlag{
				Name:  "envelope",
				Usage: "Base64 Borsh envelope carrying message + signature (see 'sign --envelope'); overrides --message/--signature",
			},
		},
		Action: runVerifyCommand,
	}
}

func runVerifyCommand(ctx context.Context, cmd *cli.Command) error {
	key, err := loadKeyFile(cmd.String("key-file"))
	if err != nil {
		return err
	}

	message, signature, err := resolveVerifyInput(cmd)
	if err != nil {
		return err
	}

	ok := rs256.Verify(key, message, signature)
	if !ok {
		fmt.Println("false")
		return errors.New("signature verification failed")
	}

	fmt.Println("true")
	return nil
}

func resolveVerifyInput(cmd *cli.Command) (message, signature []byte, err error) {
	if envelopeB64 := cmd.String("envelope"); envelopeB64 != "" {
		assertion, err := envelope.DecodeBase64(envelopeB64)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode envelope: %w", err)
		}
		return assertion.Message, assertion.Signature, nil
	}

	message, err = readMessageInput(cmd)
	if err != nil {
		return nil, nil, err
	}

	signature, err = decodeSignature(cmd.String("signature"))
	if err != nil {
		return nil, nil, err
	}
	return message, signature, nil
}

func decodeSignature(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("--signature must be provided unless --envelope is used")
	}
	if b, err := hex.DecodeString(s); err == nil {
		return b, nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("signature is neither valid hex nor valid base64: %w", err)
	}
	return b, nil
}
