// Package toolchain shells out to nasm and ld to assemble and link the
// generated NASM source into a native executable.
package toolchain

import (
	"fmt"
	"os"
	"os/exec"
)

// WriteAssembly writes asm to stem+".asm".
func WriteAssembly(stem, asm string) (string, error) {
	path := stem + ".asm"
	if err := os.WriteFile(path, []byte(asm), 0o644); err != nil {
		return "", fmt.Errorf("toolchain: writing %s: %w", path, err)
	}
	return path, nil
}

// Assemble runs `nasm <asmPath> -felf64 -o <stem>.o`.
func Assemble(asmPath, stem string) (string, error) {
	objPath := stem + ".o"
	cmd := exec.Command("nasm", asmPath, "-felf64", "-o", objPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("toolchain: nasm failed: %w", err)
	}
	return objPath, nil
}

// Link runs `ld -o <stem> <objPath>`.
func Link(objPath, stem string) (string, error) {
	cmd := exec.Command("ld", "-o", stem, objPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("toolchain: ld failed: %w", err)
	}
	return stem, nil
}

// Run executes the built binary, connecting its standard streams to
// the parent process's, and returns its exit code (0 on success).
func Run(binPath string) (int, error) {
	cmd := exec.Command(binPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("toolchain: running %s: %w", binPath, err)
}
