package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"apparel-erp/pkg/config"
)

// Dumps the database with pg_dump, encrypts the dump with AES-256-CBC
// and writes a .sha256 checksum next to it. Exits 0 on success, 1 on
// any failure.
func main() {
	cfg := config.New()
	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "backup failed:", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if cfg.Backup.EncryptionKey == "" {
		return fmt.Errorf("BACKUP_ENCRYPTION_KEY is not set")
	}
	if err := os.MkdirAll(cfg.Backup.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var dump bytes.Buffer
	cmd := exec.Command(cfg.Backup.PgDumpPath, "--no-owner", "--format=plain", cfg.Postgres.DSN)
	cmd.Stdout = &dump
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pg_dump: %w", err)
	}

	key := encryptionKey(cfg.Backup.EncryptionKey)
	encrypted, err := encryptCBC(key, dump.Bytes())
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}

	name := fmt.Sprintf("backup_%s.sql.enc", time.Now().Format("2006-01-02T15-04-05"))
	outPath := filepath.Join(cfg.Backup.OutputDir, name)
	if err := os.WriteFile(outPath, encrypted, 0o600); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksumHex(encrypted)+"  "+name+"\n"), 0o644); err != nil {
		return fmt.Errorf("write checksum: %w", err)
	}

	fmt.Println("backup written:", outPath)
	return nil
}
