// Command rotordes is a small host program around the hybrid rotor/DES
// cipher library: encrypt, decrypt, and a demo run printing intermediate
// stage values.  It is not part of the core library: it is the host
// program around the core, shaped like the teacher's examples/main.go.
package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli"

	"github.com/nkazakov/rotorfeistel/bitstring"
	"github.com/nkazakov/rotorfeistel/blockcipher"
	"github.com/nkazakov/rotorfeistel/hybrid"
)

func main() {
	app := cli.NewApp()
	app.Name = "rotordes"
	app.Usage = "rotor machine + DES-family Feistel hybrid cipher"
	app.Commands = []cli.Command{
		{
			Name:  "encrypt",
			Usage: "encrypt plaintext with a hybrid cipher built from a key",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "key, k", Usage: "64-bit key as an 8-character string"},
				cli.StringFlag{Name: "text, t", Usage: "plaintext to encrypt"},
			},
			Action: runEncrypt,
		},
		{
			Name:  "decrypt",
			Usage: "decrypt ciphertext with a hybrid cipher built from a key",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "key, k", Usage: "64-bit key as an 8-character string"},
				cli.StringFlag{Name: "text, t", Usage: "ciphertext to decrypt, hex-encoded as encrypt prints it"},
			},
			Action: runDecrypt,
		},
		{
			Name:   "demo",
			Usage:  "encrypt and decrypt a sample sentence, printing each intermediate stage",
			Action: runDemo,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func buildCipher(keyText string) (*hybrid.Cipher, error) {
	key, err := bitstring.NewBitCodec().ToBits(keyText)
	if err != nil {
		return nil, err
	}
	return hybrid.New(hybrid.Config{BlockConfig: blockcipher.Config{Key: &key}})
}

func runEncrypt(c *cli.Context) error {
	cipher, err := buildCipher(c.String("key"))
	if err != nil {
		return err
	}
	ciphertext, err := cipher.Encrypt(c.String("text"))
	if err != nil {
		return err
	}
	fmt.Printf("%x\n", ciphertext)
	return nil
}

func runDecrypt(c *cli.Context) error {
	cipher, err := buildCipher(c.String("key"))
	if err != nil {
		return err
	}
	ciphertext, err := hex.DecodeString(c.String("text"))
	if err != nil {
		return err
	}
	plaintext, err := cipher.Decrypt(string(ciphertext))
	if err != nil {
		return err
	}
	fmt.Println(plaintext)
	return nil
}

func runDemo(c *cli.Context) error {
	cipher, err := buildCipher("12345678")
	if err != nil {
		return err
	}

	plaintext := "The quick brown fox"
	ciphertext, err := cipher.Encrypt(plaintext)
	if err != nil {
		return err
	}

	e1, _ := cipher.E1()
	fmt.Printf("plaintext:        %s\n", plaintext)
	fmt.Printf("rotor stage (E1): %s\n", e1)
	fmt.Printf("ciphertext (E2):  %x\n", ciphertext)

	decrypted, err := cipher.Decrypt(ciphertext)
	if err != nil {
		return err
	}
	d1, _ := cipher.D1()
	fmt.Printf("block stage (D1): %x\n", d1)
	fmt.Printf("decrypted (D2):   %s\n", decrypted)
	fmt.Printf("match: %v\n", plaintext == decrypted)
	return nil
}
