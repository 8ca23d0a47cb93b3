package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// PathResolver finds dataset files given on the command line or in config.
type PathResolver struct {
	executableDir string
	workDir       string
}

// NewPathResolver creates a resolver anchored at the working directory and
// the directory of the running binary.
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		workDir:       cwd,
	}
	log.Debugf("PathResolver initialized: cwd=%s, execDir=%s", pr.workDir, pr.executableDir)
	return pr, nil
}

// Candidates lists where a relative path is looked for, in order of preference:
// 1. Relative to current working directory
// 2. Relative to executable directory
func (pr *PathResolver) Candidates(path string) []string {
	if filepath.IsAbs(path) {
		return []string{path}
	}
	candidates := []string{filepath.Join(pr.workDir, path)}
	if pr.executableDir != pr.workDir {
		candidates = append(candidates, filepath.Join(pr.executableDir, path))
	}
	return candidates
}

// ResolveInput returns the first candidate that exists as a regular file.
func (pr *PathResolver) ResolveInput(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no input path given")
	}
	candidates := pr.Candidates(path)
	for _, candidate := range candidates {
		if stat, err := os.Stat(candidate); err == nil && !stat.IsDir() {
			log.Debugf("Found input file: %s", candidate)
			return candidate, nil
		}
		log.Debugf("Input candidate not found: %s", candidate)
	}
	return "", fmt.Errorf("input %s not found (looked in %v): %w", path, candidates, os.ErrNotExist)
}

// ResolveOutput returns where an output file should be written. Relative
// paths are taken from the working directory.
func (pr *PathResolver) ResolveOutput(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(pr.workDir, path)
}

// GetExecutableDir returns the directory containing the executable
func (pr *PathResolver) GetExecutableDir() string {
	return pr.executableDir
}
