package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/cryptomath/pkg/ecc"
	"github.com/mahdiidarabi/cryptomath/pkg/rsa"
)

func (c *cli) rsaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rsa",
		Short: "Textbook RSA key generation, encryption and decryption",
	}
	cmd.AddCommand(c.rsaKeygenCmd(), c.rsaEncryptCmd(), c.rsaDecryptCmd())
	return cmd
}

func (c *cli) rsaKeygenCmd() *cobra.Command {
	var (
		bits   int
		seed   uint64
		out    string
		pubOut string
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair and write it as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config := rsa.DefaultKeyGenConfig().WithBits(bits).WithSeed(seed)
			kp, err := rsa.NewKeyGenerator(config).WithLogger(c.logger).Generate(cmd.Context())
			if err != nil {
				return err
			}
			if err := rsa.WriteKeyFile(out, *kp); err != nil {
				return err
			}
			if pubOut != "" {
				if err := rsa.WriteKeyFile(pubOut, kp.PublicOnly()); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %d-bit key written to %s\n", c.okColor.Sprint("✓"), kp.Bits, out)
			fmt.Fprintf(w, "  n = %s\n", c.valueColor.Sprint(kp.Public.N))
			fmt.Fprintf(w, "  e = %s\n", c.valueColor.Sprint(kp.Public.E))
			return nil
		},
	}
	cmd.Flags().IntVarP(&bits, "bits", "b", 512, "modulus size in bits")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the deterministic random source")
	cmd.Flags().StringVarP(&out, "out", "o", "rsa_key.toml", "key pair output file")
	cmd.Flags().StringVar(&pubOut, "public-out", "", "optional public key output file")
	return cmd
}

func (c *cli) rsaEncryptCmd() *cobra.Command {
	var keyFile string
	cmd := &cobra.Command{
		Use:   "encrypt <message>",
		Short: "Encrypt an integer message with the public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := rsa.ReadKeyFile(keyFile)
			if err != nil {
				return err
			}
			v, err := parseArgs(args)
			if err != nil {
				return err
			}
			ct, err := rsa.Encrypt(v[0], kp.Public)
			if err != nil {
				return err
			}
			c.printValue(cmd.OutOrStdout(), ct)
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyFile, "key", "k", "rsa_key.toml", "TOML key file")
	return cmd
}

func (c *cli) rsaDecryptCmd() *cobra.Command {
	var keyFile string
	cmd := &cobra.Command{
		Use:   "decrypt <ciphertext>",
		Short: "Decrypt an integer ciphertext with the private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := rsa.ReadKeyFile(keyFile)
			if err != nil {
				return err
			}
			v, err := parseArgs(args)
			if err != nil {
				return err
			}
			m, err := kp.Decrypt(v[0])
			if err != nil {
				return err
			}
			c.printValue(cmd.OutOrStdout(), m)
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyFile, "key", "k", "rsa_key.toml", "TOML key file")
	return cmd
}

func (c *cli) eccCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ecc",
		Short: "secp256k1 point arithmetic",
	}
	cmd.AddCommand(c.eccPubCmd())
	return cmd
}

func (c *cli) eccPubCmd() *cobra.Command {
	var verify string
	cmd := &cobra.Command{
		Use:   "pub <private-key>",
		Short: "Print the compressed secp256k1 public key of a private scalar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseArgs(args)
			if err != nil {
				return err
			}
			pub, err := ecc.PublicKey(v[0])
			if err != nil {
				return err
			}
			compressed, err := ecc.Secp256k1().SerializeCompressed(pub)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			c.printValue(out, hex.EncodeToString(compressed))

			if verify == "" {
				return nil
			}
			expected, err := hex.DecodeString(strings.TrimPrefix(verify, "0x"))
			if err != nil {
				return fmt.Errorf("invalid public key hex: %w", err)
			}
			ok, err := ecc.VerifyPublicKey(v[0], expected)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, c.failColor.Sprint("✗ does not match"))
				return errors.New("public key mismatch")
			}
			fmt.Fprintln(out, c.okColor.Sprint("✓ Verified against public key!"))
			return nil
		},
	}
	cmd.Flags().StringVar(&verify, "verify", "", "compressed public key (hex) to check against")
	return cmd
}
