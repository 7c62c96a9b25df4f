package rs256ctl

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/anchorageoss/rs256signer/envelope"
	"github.com/anchorageoss/rs256signer/pemkey"
	"github.com/anchorageoss/rs256signer/rs256"
)

// SignCommand creates the "sign" command.
func SignCommand() *cli.Command {
	return &cli.Command{
		Name:  "sign",
		Usage: "Sign a message with RS256 using an RSA private key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "key-file",
				Usage:    "Path to a PEM-armoured RSA private key",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "message",
				Usage: "Message to sign, inline",
			},
			&cli.StringFlag{
				Name:  "message-file",
				Usage: "Path to a file containing the message to sign",
			},
			&cli.BoolFlag{
				Name:  "base64",
				Usage: "Print the signature as base64 instead of hex",
			},
			&cli.BoolFlag{
				Name:  "envelope",
				Usage: "Also emit a base64 Borsh envelope wrapping message, signature, and key fingerprint",
			},
		},
		Action: runSignCommand,
	}
}

func runSignCommand(ctx context.Context, cmd *cli.Command) error {
	key, err := loadKeyFile(cmd.String("key-file"))
	if err != nil {
		return err
	}

	message, err := readMessageInput(cmd)
	if err != nil {
		return err
	}

	signature, err := rs256.Sign(key, message)
	if err != nil {
		return fmt.Errorf("failed to sign message: %w", err)
	}

	if cmd.Bool("base64") {
		fmt.Println(base64.StdEncoding.EncodeToString(signature))
	} else {
		fmt.Println(hex.EncodeToString(signature))
	}

	if cmd.Bool("envelope") {
		assertion := envelope.SignedAssertion{
			Message:        message,
			Signature:      signature,
			KeyFingerprint: envelope.Fingerprint(key),
			IssuedAtUnix:   time.Now().Unix(),
		}
		envelopeB64, err := envelope.EncodeBase64(assertion)
		if err != nil {
			return fmt.Errorf("failed to build envelope: %w", err)
		}
		fmt.Fprintf(os.Stderr, "envelope: %s\n", envelopeB64)
	}

	return nil
}

func loadKeyFile(path string) (*pemkey.RsaPrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	key, err := pemkey.Decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode key: %w", err)
	}
	return key, nil
}

// readMessageInput resolves the message bytes from --message or
// --message-file, requiring exactly one of them.
func readMessageInput(cmd *cli.Command) ([]byte, error) {
	inline := cmd.String("message")
	filePath := cmd.String("message-file")

	if inline == "" && filePath == "" {
		return nil, fmt.Errorf("either --message or --message-file must be provided")
	}
	if inline != "" && filePath != "" {
		return nil, fmt.Errorf("only one of --message or --message-file should be provided")
	}
	if inline != "" {
		return []byte(inline), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read message file: %w", err)
	}
	return data, nil
}
