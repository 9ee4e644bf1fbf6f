package main

import (
	"fmt"
	"os"

	"github.com/tassiius1-pixel/condominio/internal/auth"
	"github.com/tassiius1-pixel/condominio/internal/util"
)

// hashpass gera o hash argon2id de uma senha para uso em seeds e
// migrações manuais do banco.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: hashpass <senha>")
		os.Exit(1)
	}

	senha := os.Args[1]
	if err := util.ValidatePassword(senha); err != nil {
		fmt.Fprintf(os.Stderr, "senha rejeitada: %v\n", err)
		os.Exit(1)
	}

	hash, err := auth.Hash(senha)
	if err != nil {
		fmt.Fprintf(os.Stderr, "erro ao gerar hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
