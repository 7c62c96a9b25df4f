package rs256ctl

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/anchorageoss/rs256signer/pemkey"
)

// DecodeKeyCommand creates the "decode-key" command.
func DecodeKeyCommand() *cli.Command {
	return &cli.Command{
		Name:  "decode-key",
		Usage: "Decode a PEM-armoured PKCS#1 or PKCS#8 RSA private key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "Path to a PEM-armoured key file",
			},
			&cli.StringFlag{
				Name:  "pem",
				Usage: "PEM-armoured key text, inline",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output in JSON format",
			},
		},
		Action: runDecodeKeyCommand,
	}
}

func runDecodeKeyCommand(ctx context.Context, cmd *cli.Command) error {
	pemText, err := readPEMInput(cmd)
	if err != nil {
		return err
	}

	key, err := pemkey.Decode(pemText)
	if err != nil {
		return fmt.Errorf("failed to decode key: %w", err)
	}

	if cmd.Bool("json") {
		return printKeyJSON(key)
	}
	printKeyText(key)
	return nil
}

// readPEMInput resolves the key text from --file or --pem, requiring
// exactly one of them.
func readPEMInput(cmd *cli.Command) (string, error) {
	filePath := cmd.String("file")
	inline := cmd.String("pem")

	if filePath == "" && inline == "" {
		return "", fmt.Errorf("either --file or --pem must be provided")
	}
	if filePath != "" && inline != "" {
		return "", fmt.Errorf("only one of --file or --pem should be provided")
	}
	if inline != "" {
		return inline, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read key file: %w", err)
	}
	return string(data), nil
}

func printKeyText(key *pemkey.RsaPrivateKey) {
	fmt.Printf("=== RSA Private Key ===\n")
	fmt.Printf("Version:          %d\n", key.Version)
	fmt.Printf("Modulus bits:     %d\n", key.Modulus.BitLen())
	fmt.Printf("Signature length: %d bytes\n", key.K())
	fmt.Printf("n:    %s\n", hex.EncodeToString(key.Modulus.Bytes()))
	fmt.Printf("e:    %s\n", hex.EncodeToString(key.PublicExponent.Bytes()))
	fmt.Printf("d:    %s\n", hex.EncodeToString(key.PrivateExponent.Bytes()))
	fmt.Printf("p:    %s\n", hex.EncodeToString(key.Prime1.Bytes()))
	fmt.Printf("q:    %s\n", hex.EncodeToString(key.Prime2.Bytes()))
	fmt.Printf("dP:   %s\n", hex.EncodeToString(key.Exponent1.Bytes()))
	fmt.Printf("dQ:   %s\n", hex.EncodeToString(key.Exponent2.Bytes()))
	fmt.Printf("qInv: %s\n", hex.EncodeToString(key.Coefficient.Bytes()))
}

func printKeyJSON(key *pemkey.RsaPrivateKey) error {
	out := map[string]any{
		"version":         key.Version,
		"modulusBits":     key.Modulus.BitLen(),
		"signatureLength": key.K(),
		"n":               hex.EncodeToString(key.Modulus.Bytes()),
		"e":               hex.EncodeToString(key.PublicExponent.Bytes()),
		"d":               hex.EncodeToString(key.PrivateExponent.Bytes()),
		"p":               hex.EncodeToString(key.Prime1.Bytes()),
		"q":               hex.EncodeToString(key.Prime2.Bytes()),
		"dP":              hex.EncodeToString(key.Exponent1.Bytes()),
		"dQ":              hex.EncodeToString(key.Exponent2.Bytes()),
		"qInv":            hex.EncodeToString(key.Coefficient.Bytes()),
	}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
